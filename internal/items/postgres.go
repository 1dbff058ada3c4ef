package items

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/paginalab/pkg/query"
	"github.com/JaimeStill/paginalab/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "items", "i").
	Project("id", "ID").
	Project("titulo", "Title").
	Project("descripcion", "Description").
	Project("categoria", "Category").
	Project("activo", "Active").
	Project("fecha_creacion", "CreatedAt").
	Project("fecha_actualizacion", "UpdatedAt")

func scanItem(s repository.Scanner) (Item, error) {
	var (
		item Item
		id   uuid.UUID
	)

	err := s.Scan(&id, &item.Title, &item.Description, &item.Category, &item.Active, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return item, err
	}

	item.ID = id.String()
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()
	return item, nil
}

type postgresStore struct {
	db *sql.DB
}

func (s *postgresStore) List(ctx context.Context) ([]Item, error) {
	q, args := query.
		NewBuilder(projection, "CreatedAt").
		WhereEquals("Active", true).
		OrderBy("", true).
		Build()

	result, err := repository.QueryMany(ctx, s.db, q, args, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return result, nil
}

func (s *postgresStore) Find(ctx context.Context, id string) (*Item, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	q, args := query.NewBuilder(projection, "CreatedAt").BuildSingle("ID", uid)

	item, err := repository.QueryOne(ctx, s.db, q, args, scanItem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &item, nil
}

func (s *postgresStore) Insert(ctx context.Context, item *Item) error {
	q := fmt.Sprintf(`
		INSERT INTO items (id, titulo, descripcion, categoria, activo, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, projection.Returning())

	created, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Item, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			uuid.New(), item.Title, item.Description, item.Category, item.Active, item.CreatedAt, item.UpdatedAt,
		}, scanItem)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	*item = created
	return nil
}

func (s *postgresStore) Update(ctx context.Context, id string, c Changes) (*Item, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	u := query.NewUpdate(projection)
	query.SetIf(u, "Title", c.Title)
	query.SetIf(u, "Description", c.Description)
	query.SetIf(u, "Category", c.Category)
	query.SetIf(u, "Active", c.Active)
	u.SetExpr("UpdatedAt", "GREATEST(fecha_actualizacion, $%d)", c.UpdatedAt)

	q, args := u.Build("ID", uid)

	updated, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Item, error) {
		return repository.QueryOne(ctx, tx, q, args, scanItem)
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

	err = repository.ExecExpectOne(ctx, s.db,
		"UPDATE items SET activo = FALSE, fecha_actualizacion = GREATEST(fecha_actualizacion, $1) WHERE id = $2",
		at, uid,
	)
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
