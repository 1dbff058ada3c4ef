package logging

import (
	"os"
	"strconv"
	"strings"
)

// Env names the environment variables read by Finalize.
type Env struct {
	Level     string
	Format    string
	AddSource string
}

// Config selects the logger's level and encoding.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
	// AddSource annotates records with the calling file and line.
	AddSource bool `toml:"add_source"`
}

// Finalize fills defaults (info, text), applies env overrides and validates.
func (c *Config) Finalize(env *Env) error {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
	if env != nil {
		c.loadEnv(env)
	}

	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}

// Merge copies the overlay's set fields. AddSource can only be switched on.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	c.AddSource = c.AddSource || overlay.AddSource
}

func (c *Config) loadEnv(env *Env) {
	if v := lookup(env.Level); v != "" {
		c.Level = Level(strings.ToLower(v))
	}
	if v := lookup(env.Format); v != "" {
		c.Format = Format(strings.ToLower(v))
	}
	if v := lookup(env.AddSource); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AddSource = b
		}
	}
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
