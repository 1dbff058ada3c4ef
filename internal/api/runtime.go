package api

import (
	"github.com/JaimeStill/paginalab/internal/config"
	"github.com/JaimeStill/paginalab/internal/infrastructure"
	"github.com/JaimeStill/paginalab/internal/uploads"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Uploads uploads.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Uploads: uploads.Config{
			Field:   "imagen",
			Dir:     "experimentos",
			Prefix:  "experimento",
			MaxSize: cfg.Storage.MaxUploadSizeBytes(),
		},
	}
}
