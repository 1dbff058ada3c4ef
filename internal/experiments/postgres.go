package experiments

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/paginalab/pkg/query"
	"github.com/JaimeStill/paginalab/pkg/repository"
)

type postgresStore struct {
	db *sql.DB
}

func newPostgresStore(db *sql.DB) *postgresStore {
	return &postgresStore{db: db}
}

func (s *postgresStore) List(ctx context.Context, filters Filters) ([]Experiment, error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("Active", true).
		OrderBy("", true)

	if filters.Category != nil {
		qb.WhereEquals("Category", string(*filters.Category))
	}

	q, args := qb.Build()
	result, err := repository.QueryMany(ctx, s.db, q, args, scanExperiment)
	if err != nil {
		return nil, fmt.Errorf("query experiments: %w", err)
	}
	return result, nil
}

func (s *postgresStore) Find(ctx context.Context, id string) (*Experiment, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", uid)

	e, err := repository.QueryOne(ctx, s.db, q, args, scanExperiment)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (s *postgresStore) Insert(ctx context.Context, e *Experiment) error {
	q := fmt.Sprintf(`
		INSERT INTO experimentos (id, titulo, subtitulo, descripcion, imagen, categoria, activo, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, projection.Returning())

	args := []any{
		uuid.New(),
		e.Title,
		e.Subtitle,
		e.Description,
		e.Image,
		string(e.Category),
		e.Active,
		e.CreatedAt,
		e.UpdatedAt,
	}

	created, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Experiment, error) {
		return repository.QueryOne(ctx, tx, q, args, scanExperiment)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	*e = created
	return nil
}

func (s *postgresStore) Update(ctx context.Context, id string, c Changes) (*Experiment, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	u := query.NewUpdate(projection)
	query.SetIf(u, "Title", c.Title)
	query.SetIf(u, "Subtitle", c.Subtitle)
	query.SetIf(u, "Description", c.Description)
	if c.Category != nil {
		u.Set("Category", string(*c.Category))
	}
	query.SetIf(u, "Active", c.Active)
	query.SetIf(u, "Image", c.Image)
	u.SetExpr("UpdatedAt", "GREATEST(fecha_actualizacion, $%d)", c.UpdatedAt)

	q, args := u.Build("ID", uid)

	updated, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Experiment, error) {
		return repository.QueryOne(ctx, tx, q, args, scanExperiment)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &updated, nil
}

func (s *postgresStore) Deactivate(ctx context.Context, id string, at time.Time) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	_, err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx,
			"UPDATE experimentos SET activo = FALSE, fecha_actualizacion = GREATEST(fecha_actualizacion, $1) WHERE id = $2",
			at, uid,
		)
		return struct{}{}, err
	})
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
