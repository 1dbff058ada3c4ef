package items

import "context"

// System defines the item operations exposed to handlers.
type System interface {
	List(ctx context.Context) ([]Item, error)
	// Find returns an active item or ErrNotFound.
	Find(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, cmd CreateCommand) (*Item, error)
	// Update applies supplied fields whether or not the item is active.
	Update(ctx context.Context, id string, cmd UpdateCommand) (*Item, error)
	Delete(ctx context.Context, id string) error
}
