package experiments

import "context"

// System defines the experiment operations exposed to handlers.
type System interface {
	// List returns active experiments, newest first.
	List(ctx context.Context) ([]Experiment, error)
	// ListByCategory returns active experiments in category, newest first.
	ListByCategory(ctx context.Context, category Category) ([]Experiment, error)
	// Find returns an active experiment or ErrNotFound.
	Find(ctx context.Context, id string) (*Experiment, error)
	Create(ctx context.Context, cmd CreateCommand) (*Experiment, error)
	// Update applies supplied fields whether or not the record is active.
	Update(ctx context.Context, id string, cmd UpdateCommand) (*Experiment, error)
	// Delete marks the experiment inactive. Its image file is kept.
	Delete(ctx context.Context, id string) error
}

// ImageStore removes stored image files by name.
type ImageStore interface {
	Remove(ctx context.Context, name string) error
}
