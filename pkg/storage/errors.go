// Package storage keeps uploaded blobs on the local filesystem under
// slash-separated keys.
package storage

import "errors"

var (
	ErrNotFound         = errors.New("storage: key not found")
	ErrPermissionDenied = errors.New("storage: permission denied")
	// ErrInvalidKey rejects empty keys and keys that leave the storage root.
	ErrInvalidKey = errors.New("storage: invalid key")
)
