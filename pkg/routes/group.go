// Package routes describes HTTP routes as data and registers them on a ServeMux.
package routes

import (
	"net/http"

	"github.com/JaimeStill/paginalab/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// Route represents an HTTP route with method, pattern, and handler.
// An empty pattern registers the group prefix itself.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Register adds every route in groups to mux using method patterns,
// e.g. "GET /api/items/{id}".
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		register(mux, "", group)
	}
}

func register(mux *http.ServeMux, parentPrefix string, group Group) {
	prefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		register(mux, prefix, child)
	}
}

// AddToSpec documents the group and its children in spec. Routes without an
// operation are skipped; operations without tags inherit the nearest group tags.
func (g Group) AddToSpec(parentPrefix string, spec *openapi.Spec) {
	g.addToSpec(parentPrefix, nil, spec)
}

func (g Group) addToSpec(parentPrefix string, inherited []string, spec *openapi.Spec) {
	prefix := parentPrefix + g.Prefix
	tags := g.Tags
	if len(tags) == 0 {
		tags = inherited
	}

	if len(g.Schemas) > 0 {
		if spec.Components == nil {
			spec.Components = &openapi.Components{}
		}
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}
		op := *route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}
		spec.AddOperation(prefix+route.Pattern, route.Method, &op)
	}

	for _, child := range g.Children {
		child.addToSpec(prefix, tags, spec)
	}
}
