// Package items manages generic lab items: short titled notes grouped by a
// free-text category.
package items

import (
	"strings"
	"time"

	"github.com/JaimeStill/paginalab/pkg/validation"
)

// DefaultCategory is assigned when none is given.
const DefaultCategory = "general"

type Item struct {
	ID          string    `json:"_id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descripcion"`
	Category    string    `json:"categoria"`
	Active      bool      `json:"activo"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	UpdatedAt   time.Time `json:"fechaActualizacion"`
}

type CreateCommand struct {
	Title       string `json:"titulo" validate:"required"`
	Description string `json:"descripcion" validate:"required"`
	Category    string `json:"categoria"`
}

func (c *CreateCommand) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	c.Category = category(c.Category)
}

func (c CreateCommand) Validate() error {
	return validation.Struct(c)
}

// UpdateCommand holds a partial update. Nil fields are left unchanged.
type UpdateCommand struct {
	Title       *string `json:"titulo"`
	Description *string `json:"descripcion"`
	Category    *string `json:"categoria"`
	Active      *bool   `json:"activo"`
}

func (c *UpdateCommand) Normalize() {
	if c.Title != nil {
		*c.Title = strings.TrimSpace(*c.Title)
	}
	if c.Description != nil {
		*c.Description = strings.TrimSpace(*c.Description)
	}
	if c.Category != nil {
		*c.Category = category(*c.Category)
	}
}

// Validate checks only the supplied fields.
func (c UpdateCommand) Validate() error {
	var errs []error
	if c.Title != nil {
		errs = append(errs, validation.Var("titulo", *c.Title, "required"))
	}
	if c.Description != nil {
		errs = append(errs, validation.Var("descripcion", *c.Description, "required"))
	}
	return validation.Join(errs...)
}

func category(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return DefaultCategory
	}
	return s
}
