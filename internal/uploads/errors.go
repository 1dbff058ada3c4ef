package uploads

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidType     = errors.New("invalid file type, allowed: JPEG, JPG, PNG, GIF, WEBP")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnexpectedField = errors.New("unexpected file field")
	ErrInvalidForm     = errors.New("invalid multipart form")
	ErrFileNotFound    = errors.New("file not found")
)

// MapHTTPStatus maps upload errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrUnexpectedField),
		errors.Is(err, ErrInvalidForm):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsRejection reports whether err is a client-side upload rule violation.
func IsRejection(err error) bool {
	return MapHTTPStatus(err) == http.StatusBadRequest
}
