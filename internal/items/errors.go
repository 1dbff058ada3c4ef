package items

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/paginalab/pkg/validation"
)

var (
	ErrNotFound    = errors.New("item not found")
	ErrDuplicate   = errors.New("item already exists")
	ErrInvalidBody = errors.New("invalid request body")
)

// MapHTTPStatus maps item errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidBody), validation.IsError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
