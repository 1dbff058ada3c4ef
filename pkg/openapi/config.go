package openapi

import "os"

const (
	DefaultTitle       = "paginalab API"
	DefaultDescription = "Laboratory blog content service: experiment posts with images and general items."
)

// Config holds the document metadata published in the info block.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	Title       string
	Description string
}

// Finalize fills the default title and description, then applies env
// overrides. It never fails.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.Title = firstNonEmpty(c.Title, DefaultTitle)
	c.Description = firstNonEmpty(c.Description, DefaultDescription)

	if env != nil {
		c.Title = firstNonEmpty(os.Getenv(env.Title), c.Title)
		c.Description = firstNonEmpty(os.Getenv(env.Description), c.Description)
	}
	return nil
}

// Merge copies the overlay's non-empty fields.
func (c *Config) Merge(overlay *Config) {
	c.Title = firstNonEmpty(overlay.Title, c.Title)
	c.Description = firstNonEmpty(overlay.Description, c.Description)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
