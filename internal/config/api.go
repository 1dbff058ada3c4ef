package config

import (
	"cmp"
	"fmt"
	"os"

	"github.com/JaimeStill/paginalab/pkg/middleware"
	"github.com/JaimeStill/paginalab/pkg/openapi"
)

// APIConfig configures the REST surface.
type APIConfig struct {
	BasePath string                `toml:"base_path"`
	CORS     middleware.CORSConfig `toml:"cors"`
	OpenAPI  openapi.Config        `toml:"openapi"`
}

// Finalize fills defaults and finalizes the nested sections. CORS is open
// to every origin unless origins are configured.
func (c *APIConfig) Finalize() error {
	c.BasePath = cmp.Or(os.Getenv("API_BASE_PATH"), c.BasePath, "/api")
	if len(c.CORS.Origins) == 0 {
		c.CORS.Enabled = true
		c.CORS.Origins = []string{"*"}
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	c.BasePath = cmp.Or(overlay.BasePath, c.BasePath)
	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}
