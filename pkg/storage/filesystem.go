package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/paginalab/pkg/lifecycle"
)

type filesystem struct {
	root   string
	logger *slog.Logger
}

// New creates filesystem storage rooted at the absolute form of
// cfg.BasePath. Start creates the directory.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if cfg.BasePath == "" {
		return nil, errors.New("base_path required")
	}

	root, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	return &filesystem{
		root:   root,
		logger: logger.With("system", "storage"),
	}, nil
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	if err := os.MkdirAll(f.root, 0755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}
	f.logger.Info("storage ready", "root", f.root)
	return nil
}

// Store writes to a unique temp file beside the target and renames it into
// place, so readers never observe a partial file.
func (f *filesystem) Store(ctx context.Context, key string, data []byte) error {
	path, err := f.resolve(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return mapError(err, "create temp file")
	}

	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return mapError(err, "write file")
	}

	return nil
}

func (f *filesystem) Retrieve(ctx context.Context, key string) ([]byte, error) {
	path, err := f.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mapError(err, "read file")
	}
	return data, nil
}

// Delete removes the file at key and keeps its directory.
func (f *filesystem) Delete(ctx context.Context, key string) error {
	path, err := f.resolve(key)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return mapError(err, "remove file")
}

func (f *filesystem) Validate(ctx context.Context, key string) (bool, error) {
	path, err := f.resolve(key)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, mapError(err, "stat file")
	default:
		return info.Mode().IsRegular(), nil
	}
}

func (f *filesystem) Path(ctx context.Context, key string) (string, error) {
	return f.resolve(key)
}

// resolve maps a slash-separated key under the root. Empty, absolute and
// escaping keys are ErrInvalidKey.
func (f *filesystem) resolve(key string) (string, error) {
	if key == "" || !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", ErrInvalidKey
	}

	path := filepath.Join(f.root, filepath.FromSlash(key))
	if !strings.HasPrefix(path, f.root+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return path, nil
}

func mapError(err error, op string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
