package experiments

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/paginalab/internal/uploads"
	"github.com/JaimeStill/paginalab/pkg/validation"
)

var (
	ErrNotFound    = errors.New("experiment not found")
	ErrDuplicate   = errors.New("experiment already exists")
	ErrInvalidBody = errors.New("invalid request body")
)

// MapHTTPStatus maps experiment errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidBody), validation.IsError(err), uploads.IsRejection(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
