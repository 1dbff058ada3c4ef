// Package api assembles the REST surface: the experiment and item endpoints,
// stored image serving and the liveness root, wrapped in the API middleware.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/paginalab/internal/config"
	"github.com/JaimeStill/paginalab/internal/infrastructure"
	"github.com/JaimeStill/paginalab/pkg/middleware"
	"github.com/JaimeStill/paginalab/pkg/openapi"
)

// NewHandler builds the API handler. Systems are created immediately; stores
// resolve their database handles per request, so infra may be started later.
// The OpenAPI document for the mounted routes is served at {base}/openapi.json.
func NewHandler(cfg *config.Config, infra *infrastructure.Infrastructure) (http.Handler, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.Info.Description = cfg.API.OpenAPI.Description

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg.API.BasePath)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi: %w", err)
	}
	mux.HandleFunc("GET "+cfg.API.BasePath+"/openapi.json", openapi.ServeSpec(specBytes))

	mw := middleware.New()
	mw.Use(middleware.Logger(runtime.Logger))
	mw.Use(middleware.CORS(&cfg.API.CORS))
	mw.Use(middleware.TrimSlash())

	return mw.Apply(mux), nil
}
