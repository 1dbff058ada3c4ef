package api

import (
	"net/http"

	"github.com/JaimeStill/paginalab/internal/experiments"
	"github.com/JaimeStill/paginalab/internal/items"
	"github.com/JaimeStill/paginalab/pkg/handlers"
	"github.com/JaimeStill/paginalab/pkg/openapi"
	"github.com/JaimeStill/paginalab/pkg/routes"
)

// RootMessage is the liveness body served at GET /.
const RootMessage = "paginalab backend running"

// NotFoundMessage answers any request no route matches, including a known
// path with an unrouted method.
const NotFoundMessage = "route not found"

func registerRoutes(mux *http.ServeMux, spec *openapi.Spec, runtime *Runtime, domain *Domain, basePath string) {
	experimentHandler := experiments.NewHandler(domain.Experiments, domain.Images, runtime.Logger)
	itemHandler := items.NewHandler(domain.Items, runtime.Logger)

	api := routes.Group{
		Prefix: basePath,
		Children: []routes.Group{
			itemHandler.Routes(),
			experimentHandler.Routes(),
		},
	}
	api.AddToSpec("", spec)

	routes.Register(
		mux,
		routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{$}", Handler: handleRoot},
				{Pattern: "/", Handler: handleNotFound},
			},
		},
		api,
		domain.Images.Routes(),
	)
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	handlers.RespondMessage(w, http.StatusOK, RootMessage)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	handlers.RespondMessage(w, http.StatusNotFound, NotFoundMessage)
}
