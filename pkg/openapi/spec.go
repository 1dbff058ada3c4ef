package openapi

import (
	"encoding/json"
	"maps"
	"net/http"
)

// Version is the OpenAPI document version emitted by NewSpec.
const Version = "3.1.0"

// NewSpec creates an empty document with an info block and component maps.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI: Version,
		Info: &Info{
			Title:   title,
			Version: version,
		},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

// NewComponents creates components with the shared error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Message": {
				Type: "object",
				Properties: map[string]*Schema{
					"message": {Type: "string"},
				},
			},
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"message": {Type: "string"},
					"error":   {Type: "string", Description: "Underlying error, present on 500"},
					"fields": {
						Type:        "object",
						Description: "Per-field validation messages, present on 400",
					},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": ResponseJSON("Invalid request", "Error"),
			"NotFound":   ResponseJSON("Resource not found", "Error"),
			"Internal":   ResponseJSON("Unexpected server error", "Error"),
		},
	}
}

// AddSchemas merges schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	if c.Schemas == nil {
		c.Schemas = make(map[string]*Schema, len(schemas))
	}
	maps.Copy(c.Schemas, schemas)
}

// AddOperation registers op under path for method.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}
	item.Set(method, op)
}

// MarshalJSON renders spec as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec returns a handler that writes a pre-rendered document.
func ServeSpec(data []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}
