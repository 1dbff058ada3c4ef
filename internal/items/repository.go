package items

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type repo struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) System {
	return &repo{
		store:  store,
		logger: logger.With("system", "item"),
	}
}

func (r *repo) List(ctx context.Context) ([]Item, error) {
	result, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Item, error) {
	item, err := r.store.Find(ctx, id)
	if err != nil {
		return nil, wrap("find item", err)
	}
	if !item.Active {
		return nil, ErrNotFound
	}
	return item, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Item, error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	item := &Item{
		Title:       cmd.Title,
		Description: cmd.Description,
		Category:    cmd.Category,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.store.Insert(ctx, item); err != nil {
		return nil, wrap("insert item", err)
	}

	r.logger.Info("item created", "id", item.ID)
	return item, nil
}

func (r *repo) Update(ctx context.Context, id string, cmd UpdateCommand) (*Item, error) {
	if _, err := r.store.Find(ctx, id); err != nil {
		return nil, wrap("find item", err)
	}

	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	item, err := r.store.Update(ctx, id, Changes{
		Title:       cmd.Title,
		Description: cmd.Description,
		Category:    cmd.Category,
		Active:      cmd.Active,
		UpdatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		return nil, wrap("update item", err)
	}

	r.logger.Info("item updated", "id", id)
	return item, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Deactivate(ctx, id, time.Now().UTC().Truncate(time.Millisecond)); err != nil {
		return wrap("deactivate item", err)
	}

	r.logger.Info("item deleted", "id", id)
	return nil
}

func wrap(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
