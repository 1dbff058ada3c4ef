package experiments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/JaimeStill/paginalab/internal/uploads"
)

type repo struct {
	store  Store
	images ImageStore
	logger *slog.Logger
}

// New creates the experiment System over store. Replaced images are removed
// through images.
func New(store Store, images ImageStore, logger *slog.Logger) System {
	return &repo{
		store:  store,
		images: images,
		logger: logger.With("system", "experiment"),
	}
}

func (r *repo) List(ctx context.Context) ([]Experiment, error) {
	result, err := r.store.List(ctx, Filters{})
	if err != nil {
		return nil, fmt.Errorf("list experiments: %w", err)
	}
	return result, nil
}

func (r *repo) ListByCategory(ctx context.Context, category Category) ([]Experiment, error) {
	result, err := r.store.List(ctx, Filters{Category: &category})
	if err != nil {
		return nil, fmt.Errorf("list experiments by category: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Experiment, error) {
	e, err := r.store.Find(ctx, id)
	if err != nil {
		return nil, wrap("find experiment", err)
	}
	if !e.Active {
		return nil, ErrNotFound
	}
	return e, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (_ *Experiment, err error) {
	defer releaseOnError(ctx, cmd.Image, &err)

	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := timestamp()
	e := &Experiment{
		Title:       cmd.Title,
		Subtitle:    cmd.Subtitle,
		Description: cmd.Description,
		Category:    cmd.Category,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if cmd.Image != nil {
		e.Image = lo.ToPtr(cmd.Image.Name)
	}

	if err := r.store.Insert(ctx, e); err != nil {
		return nil, wrap("insert experiment", err)
	}

	r.logger.Info("experiment created", "id", e.ID, "title", e.Title)
	return e, nil
}

func (r *repo) Update(ctx context.Context, id string, cmd UpdateCommand) (_ *Experiment, err error) {
	defer releaseOnError(ctx, cmd.Image, &err)

	current, err := r.store.Find(ctx, id)
	if err != nil {
		return nil, wrap("find experiment", err)
	}

	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	changes := Changes{
		Title:       cmd.Title,
		Subtitle:    cmd.Subtitle,
		Description: cmd.Description,
		Category:    cmd.Category,
		Active:      cmd.Active,
		UpdatedAt:   timestamp(),
	}
	if cmd.Image != nil {
		changes.Image = lo.ToPtr(cmd.Image.Name)
	}

	updated, err := r.store.Update(ctx, id, changes)
	if err != nil {
		return nil, wrap("update experiment", err)
	}

	if cmd.Image != nil && current.Image != nil && *current.Image != cmd.Image.Name {
		r.removeImage(ctx, *current.Image)
	}

	r.logger.Info("experiment updated", "id", id)
	return updated, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Deactivate(ctx, id, timestamp()); err != nil {
		return wrap("deactivate experiment", err)
	}

	r.logger.Info("experiment deleted", "id", id)
	return nil
}

func (r *repo) removeImage(ctx context.Context, name string) {
	if err := r.images.Remove(context.WithoutCancel(ctx), name); err != nil {
		r.logger.Error("failed to remove replaced image", "name", name, "error", err)
		return
	}
	r.logger.Info("replaced image removed", "name", name)
}

// releaseOnError discards an upload when the operation owning it fails.
func releaseOnError(ctx context.Context, file *uploads.File, err *error) {
	if *err != nil {
		file.Discard(ctx)
	}
}

// timestamp is truncated to milliseconds so every store round-trips it exactly.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func wrap(op string, err error) error {
	if err == ErrNotFound {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
