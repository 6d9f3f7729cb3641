package domain

import "errors"

var (
	ErrNotFound         = errors.New("portfolio entry not found")
	ErrInvalidEnumValue = errors.New("invalid enum value")
	ErrValidation       = errors.New("validation failed")
	ErrTransport        = errors.New("transport error")
)
