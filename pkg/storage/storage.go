package storage

import (
	"context"

	"github.com/JaimeStill/paginalab/pkg/lifecycle"
)

// System stores blobs by key. Every method returns ErrInvalidKey for a key
// that is empty or resolves outside the root.
type System interface {
	Start(lc *lifecycle.Coordinator) error

	// Store replaces any blob at key.
	Store(ctx context.Context, key string, data []byte) error
	Retrieve(ctx context.Context, key string) ([]byte, error)
	// Delete succeeds when key is already absent.
	Delete(ctx context.Context, key string) error
	Validate(ctx context.Context, key string) (bool, error)
	// Path is the on-disk location of key, for serving with http.ServeFile.
	Path(ctx context.Context, key string) (string, error)
}
