package experiments

import (
	"github.com/samber/lo"

	"github.com/JaimeStill/paginalab/pkg/openapi"
)

type spec struct {
	List           *openapi.Operation
	ListByCategory *openapi.Operation
	Find           *openapi.Operation
	Create         *openapi.Operation
	Update         *openapi.Operation
	Delete         *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all experiment endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List experiments",
		Description: "Returns every active experiment, newest first",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Active experiments", "Experiment"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	ListByCategory: &openapi.Operation{
		Summary:     "List experiments by category",
		Description: "Returns active experiments whose category matches exactly. Unknown categories yield an empty list",
		Parameters: []*openapi.Parameter{
			{
				Name:     "categoria",
				In:       "path",
				Required: true,
				Schema:   categorySchema(),
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Matching experiments", "Experiment"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find experiment by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Experiment identifier"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Experiment", "Experiment"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create experiment",
		Description: "Accepts multipart form data with an optional imagen file, or a JSON body without image",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {Schema: openapi.SchemaRef("ExperimentForm")},
				"application/json":    {Schema: openapi.SchemaRef("CreateExperimentCommand")},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Experiment created", "ExperimentMutation"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update experiment",
		Description: "Applies the supplied fields. A new imagen replaces the stored image",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Experiment identifier"),
		},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {Schema: openapi.SchemaRef("ExperimentForm")},
				"application/json":    {Schema: openapi.SchemaRef("UpdateExperimentCommand")},
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Experiment updated", "ExperimentMutation"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete experiment",
		Description: "Marks the experiment inactive. The stored image is kept",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Experiment identifier"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Experiment deleted", "Message"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the experiment domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Experiment": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"_id":                {Type: "string"},
				"titulo":             {Type: "string"},
				"subtitulo":          {Type: "string"},
				"descripcion":        {Type: "string"},
				"imagen":             {Type: "string", Nullable: true, Description: "Stored file name under /uploads/experimentos"},
				"categoria":          categorySchema(),
				"activo":             {Type: "boolean"},
				"fechaCreacion":      {Type: "string", Format: "date-time"},
				"fechaActualizacion": {Type: "string", Format: "date-time"},
			},
		},
		"ExperimentMutation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message":     {Type: "string"},
				"experimento": openapi.SchemaRef("Experiment"),
			},
		},
		"CreateExperimentCommand": {
			Type:     "object",
			Required: []string{"titulo", "subtitulo", "descripcion"},
			Properties: map[string]*openapi.Schema{
				"titulo":      {Type: "string", Description: "At most 100 characters", Example: "Péndulo simple"},
				"subtitulo":   {Type: "string", Description: "At most 150 characters"},
				"descripcion": {Type: "string", Description: "At least 10 characters"},
				"categoria":   categorySchema(),
			},
		},
		"UpdateExperimentCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"titulo":      {Type: "string"},
				"subtitulo":   {Type: "string"},
				"descripcion": {Type: "string"},
				"categoria":   categorySchema(),
				"activo":      {Type: "boolean"},
			},
		},
		"ExperimentForm": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"titulo":      {Type: "string"},
				"subtitulo":   {Type: "string"},
				"descripcion": {Type: "string"},
				"categoria":   categorySchema(),
				"activo":      {Type: "string", Description: "Boolean text, update only"},
				"imagen":      {Type: "string", Format: "binary", Description: "JPEG, PNG, GIF or WEBP image"},
			},
		},
	}
}

func categorySchema() *openapi.Schema {
	enum := lo.Map(Categories, func(c Category, _ int) string { return string(c) })
	return &openapi.Schema{Type: "string", Enum: enum, Example: string(CategoryOther)}
}
