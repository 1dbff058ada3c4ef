package main

import (
	"context"
	"net/http"
	"time"

	"github.com/JaimeStill/paginalab/internal/api"
	"github.com/JaimeStill/paginalab/internal/config"
	"github.com/JaimeStill/paginalab/internal/infrastructure"
	"github.com/JaimeStill/paginalab/pkg/middleware"
	"github.com/JaimeStill/paginalab/web/app"
)

const appPath = "/app"

// buildRouter mounts health probes, the client under /app and the API on
// every remaining path.
func buildRouter(cfg *config.Config, infra *infrastructure.Infrastructure) (http.Handler, error) {
	apiHandler, err := api.NewHandler(cfg, infra)
	if err != nil {
		return nil, err
	}

	appHandler, err := app.NewHandler(appPath, app.Settings{
		API:           cfg.API.BasePath,
		Uploads:       "/uploads/experimentos",
		MaxUploadSize: cfg.Storage.MaxUploadSizeBytes(),
	})
	if err != nil {
		return nil, err
	}

	client := middleware.New()
	client.Use(middleware.Logger(infra.Logger.With("module", "app")))
	client.Use(middleware.AddSlash())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(infra))
	mux.Handle("GET "+appPath, client.Apply(http.NotFoundHandler()))
	mux.Handle(appPath+"/", client.Apply(http.StripPrefix(appPath, appHandler)))
	mux.Handle("/", apiHandler)

	return mux, nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReady(infra *infrastructure.Infrastructure) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := infra.Ready(ctx); err != nil {
			infra.Logger.Warn("readiness check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}
