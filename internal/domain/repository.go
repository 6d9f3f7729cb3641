package domain

import "context"

// EntryRepository defines the interface for portfolio entry persistence.
// FindAll returns the collection in display order (sort_order ascending).
// FindByID and Delete return an error wrapping ErrNotFound for unknown ids.
// All methods accept context.Context to enable proper timeout handling,
// cancellation propagation, and request-scoped values like tracing IDs.
type EntryRepository interface {
	Save(ctx context.Context, entry *Entry) error
	FindByID(ctx context.Context, id string) (*Entry, error)
	FindAll(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}
