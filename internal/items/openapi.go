package items

import "github.com/JaimeStill/paginalab/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all item endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List items",
		Description: "Returns every active item, newest first",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Active items", "Item"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find item by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Item identifier"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Item", "Item"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create item",
		RequestBody: openapi.RequestBodyJSON("CreateItemCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Item created", "Item"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Update: &openapi.Operation{
		Summary: "Update item",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Item identifier"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateItemCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Item updated", "Item"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete item",
		Description: "Marks the item inactive",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Item identifier"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Item deleted", "Message"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the item domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Item": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"_id":                {Type: "string"},
				"titulo":             {Type: "string"},
				"descripcion":        {Type: "string"},
				"categoria":          {Type: "string"},
				"activo":             {Type: "boolean"},
				"fechaCreacion":      {Type: "string", Format: "date-time"},
				"fechaActualizacion": {Type: "string", Format: "date-time"},
			},
		},
		"CreateItemCommand": {
			Type:     "object",
			Required: []string{"titulo", "descripcion"},
			Properties: map[string]*openapi.Schema{
				"titulo":      {Type: "string", Example: "Microscopio"},
				"descripcion": {Type: "string"},
				"categoria":   {Type: "string", Example: DefaultCategory},
			},
		},
		"UpdateItemCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"titulo":      {Type: "string"},
				"descripcion": {Type: "string"},
				"categoria":   {Type: "string"},
				"activo":      {Type: "boolean"},
			},
		},
	}
}
