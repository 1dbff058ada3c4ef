package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/paginalab/pkg/lifecycle"
	"github.com/JaimeStill/paginalab/pkg/logging"
	"github.com/JaimeStill/paginalab/pkg/storage"
)

func newStorage(t *testing.T) (storage.System, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")

	sys, err := storage.New(&storage.Config{BasePath: dir}, logging.Discard())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := sys.Start(lifecycle.New()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return sys, dir
}

func TestNew_EmptyBasePath(t *testing.T) {
	if _, err := storage.New(&storage.Config{}, logging.Discard()); err == nil {
		t.Fatal("New() succeeded with empty BasePath, want error")
	}
}

func TestStart_CreatesDirectory(t *testing.T) {
	_, dir := newStorage(t)

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("base directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("base path is not a directory")
	}
}

func TestStoreRetrieveDelete(t *testing.T) {
	sys, dir := newStorage(t)
	ctx := context.Background()
	key := "experimentos/experimento-1-2.png"

	if err := sys.Store(ctx, key, []byte("png")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "experimentos"))
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "experimento-1-2.png" {
		t.Errorf("directory holds %v, want only the stored file", entries)
	}

	data, err := sys.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("data = %q, want %q", data, "png")
	}

	exists, err := sys.Validate(ctx, key)
	if err != nil || !exists {
		t.Errorf("Validate() = %v, %v; want true, nil", exists, err)
	}

	if err := sys.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, err := sys.Retrieve(ctx, key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() after delete error = %v, want ErrNotFound", err)
	}

	if err := sys.Delete(ctx, key); err != nil {
		t.Errorf("second Delete() = %v, want nil", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "experimentos")); err != nil {
		t.Errorf("upload subdirectory should be kept: %v", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	sys, _ := newStorage(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "../escape.png", "experimentos/../../escape.png", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			if err := sys.Store(ctx, key, []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) error = %v, want ErrInvalidKey", key, err)
			}
			if _, err := sys.Path(ctx, key); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Path(%q) error = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}
