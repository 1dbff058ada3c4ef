package experiments

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/JaimeStill/paginalab/pkg/query"
	"github.com/JaimeStill/paginalab/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "experimentos", "e").
	Project("id", "ID").
	Project("titulo", "Title").
	Project("subtitulo", "Subtitle").
	Project("descripcion", "Description").
	Project("imagen", "Image").
	Project("categoria", "Category").
	Project("activo", "Active").
	Project("fecha_creacion", "CreatedAt").
	Project("fecha_actualizacion", "UpdatedAt")

const defaultSort = "CreatedAt"

func scanExperiment(s repository.Scanner) (Experiment, error) {
	var (
		e     Experiment
		id    uuid.UUID
		image sql.NullString
	)

	err := s.Scan(
		&id,
		&e.Title,
		&e.Subtitle,
		&e.Description,
		&image,
		&e.Category,
		&e.Active,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}

	e.ID = id.String()
	if image.Valid {
		e.Image = &image.String
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}
