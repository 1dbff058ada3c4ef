package items

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/paginalab/pkg/database"
)

const collection = "items"

// Changes is a partial write. UpdatedAt only moves forward.
type Changes struct {
	Title       *string
	Description *string
	Category    *string
	Active      *bool
	UpdatedAt   time.Time
}

// Store persists items. List returns active items newest first; Find and
// Update ignore the active flag.
type Store interface {
	List(ctx context.Context) ([]Item, error)
	Find(ctx context.Context, id string) (*Item, error)
	Insert(ctx context.Context, item *Item) error
	Update(ctx context.Context, id string, changes Changes) (*Item, error)
	Deactivate(ctx context.Context, id string, at time.Time) error
}

// NewStore returns the Store for the configured database driver.
func NewStore(db database.System) (Store, error) {
	switch db.Driver() {
	case database.DriverMongo:
		return &mongoStore{db: db}, nil
	case database.DriverPostgres:
		return &postgresStore{db: db.Connection()}, nil
	case database.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("items: unsupported driver %q", db.Driver())
	}
}
