package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	DefaultBasePath      = "uploads"
	DefaultMaxUploadSize = "5MiB"
)

// Config locates the storage root and bounds accepted uploads.
type Config struct {
	BasePath string `toml:"base_path"`
	// MaxUploadSize accepts go-units sizes such as "5MiB" or "512KiB".
	MaxUploadSize string `toml:"max_upload_size"`

	maxUploadBytes int64
}

// Env names the environment variables read by Finalize.
type Env struct {
	BasePath      string
	MaxUploadSize string
}

// MaxUploadSizeBytes is the parsed limit; zero before Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadBytes
}

// Finalize fills defaults, applies env overrides and parses the size limit.
func (c *Config) Finalize(env *Env) error {
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = DefaultMaxUploadSize
	}

	if env != nil {
		override(&c.BasePath, env.BasePath)
		override(&c.MaxUploadSize, env.MaxUploadSize)
	}

	return c.validate()
}

// Merge copies the overlay's non-empty fields.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return errors.New("base_path required")
	}

	size, err := units.RAMInBytes(c.MaxUploadSize)
	switch {
	case err != nil:
		return fmt.Errorf("invalid max_upload_size %q: %w", c.MaxUploadSize, err)
	case size <= 0:
		return fmt.Errorf("max_upload_size must be positive, got %q", c.MaxUploadSize)
	}

	c.maxUploadBytes = size
	return nil
}

func override(field *string, name string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*field = v
	}
}
