// Package experiments manages laboratory experiment posts: validated records
// with an optional image, listed newest first and removed by soft delete.
package experiments

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/JaimeStill/paginalab/internal/uploads"
	"github.com/JaimeStill/paginalab/pkg/validation"
)

// Category classifies an experiment by discipline.
type Category string

const (
	CategoryPhysics     Category = "fisica"
	CategoryChemistry   Category = "quimica"
	CategoryBiology     Category = "biologia"
	CategoryMathematics Category = "matematicas"
	CategoryTechnology  Category = "tecnologia"
	CategoryOther       Category = "otros"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryPhysics,
	CategoryChemistry,
	CategoryBiology,
	CategoryMathematics,
	CategoryTechnology,
	CategoryOther,
}

var categoryTag = "oneof=" + strings.Join(lo.Map(Categories, func(c Category, _ int) string {
	return string(c)
}), " ")

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Experiment is a published experiment post.
type Experiment struct {
	ID          string    `json:"_id"`
	Title       string    `json:"titulo"`
	Subtitle    string    `json:"subtitulo"`
	Description string    `json:"descripcion"`
	Image       *string   `json:"imagen"`
	Category    Category  `json:"categoria"`
	Active      bool      `json:"activo"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	UpdatedAt   time.Time `json:"fechaActualizacion"`
}

// CreateCommand holds the fields of a new experiment. Image, when set, is an
// upload owned by the create operation.
type CreateCommand struct {
	Title       string        `json:"titulo" validate:"required,max=100"`
	Subtitle    string        `json:"subtitulo" validate:"required,max=150"`
	Description string        `json:"descripcion" validate:"required,min=10"`
	Category    Category      `json:"categoria" validate:"-"`
	Image       *uploads.File `json:"-" validate:"-"`
}

// Normalize trims text fields and applies the default category.
func (c *CreateCommand) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Subtitle = strings.TrimSpace(c.Subtitle)
	c.Description = strings.TrimSpace(c.Description)
	c.Category = Category(strings.TrimSpace(string(c.Category)))
	if c.Category == "" {
		c.Category = CategoryOther
	}
}

// Validate checks a normalized command.
func (c CreateCommand) Validate() error {
	return validation.Join(
		validation.Struct(c),
		validation.Var("categoria", string(c.Category), categoryTag),
	)
}

// UpdateCommand holds a partial update. Nil fields are left unchanged.
type UpdateCommand struct {
	Title       *string       `json:"titulo"`
	Subtitle    *string       `json:"subtitulo"`
	Description *string       `json:"descripcion"`
	Category    *Category     `json:"categoria"`
	Active      *bool         `json:"activo"`
	Image       *uploads.File `json:"-"`
}

// Normalize trims supplied text fields. A supplied empty category stays
// empty and fails validation; the default applies only on create.
func (c *UpdateCommand) Normalize() {
	trim(c.Title)
	trim(c.Subtitle)
	trim(c.Description)
	if c.Category != nil {
		*c.Category = Category(strings.TrimSpace(string(*c.Category)))
	}
}

// Validate checks only the supplied fields.
func (c UpdateCommand) Validate() error {
	var errs []error
	if c.Title != nil {
		errs = append(errs, validation.Var("titulo", *c.Title, "required,max=100"))
	}
	if c.Subtitle != nil {
		errs = append(errs, validation.Var("subtitulo", *c.Subtitle, "required,max=150"))
	}
	if c.Description != nil {
		errs = append(errs, validation.Var("descripcion", *c.Description, "required,min=10"))
	}
	if c.Category != nil {
		errs = append(errs, validation.Var("categoria", string(*c.Category), categoryTag))
	}
	return validation.Join(errs...)
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
