package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/showcase/internal/domain"
)

// CodeSuccess is the envelope code of every successful response. Failed
// responses carry their HTTP status as the code.
const CodeSuccess = 200

// Error kinds carried in the envelope so remote callers can recover the
// domain sentinel behind a failure.
const (
	KindNotFound         = "not_found"
	KindInvalidEnumValue = "invalid_enum_value"
	KindValidation       = "validation"
	KindBadRequest       = "bad_request"
	KindInternal         = "internal"
)

// Response is the envelope wrapping every API payload. Kind is set on
// failures only.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Data    any    `json:"data"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: CodeSuccess, Message: "success", Data: data})
}

func respondBadRequest(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "Invalid request", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: err.Error(), Kind: KindBadRequest})
}

func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	c.JSON(status, Response{Code: status, Message: err.Error(), Kind: KindFor(err)})
}

// KindFor names the error kind of err for the envelope.
func KindFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidEnumValue):
		return KindInvalidEnumValue
	case errors.Is(err, domain.ErrValidation):
		return KindValidation
	case errors.Is(err, domain.ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidEnumValue):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
