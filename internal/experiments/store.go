package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/paginalab/pkg/database"
)

const collection = "experimentos"

// Filters narrows List results. Only active records are ever listed.
type Filters struct {
	Category *Category
}

// Changes is a partial write. UpdatedAt only moves forward.
type Changes struct {
	Title       *string
	Subtitle    *string
	Description *string
	Category    *Category
	Active      *bool
	Image       *string
	UpdatedAt   time.Time
}

// Store persists experiments. Find and Update see records regardless of the
// active flag; a malformed or unknown id is ErrNotFound.
type Store interface {
	List(ctx context.Context, filters Filters) ([]Experiment, error)
	Find(ctx context.Context, id string) (*Experiment, error)
	Insert(ctx context.Context, e *Experiment) error
	Update(ctx context.Context, id string, changes Changes) (*Experiment, error)
	Deactivate(ctx context.Context, id string, at time.Time) error
}

// NewStore returns the Store for the configured database driver.
func NewStore(db database.System) (Store, error) {
	switch db.Driver() {
	case database.DriverMongo:
		return newMongoStore(db), nil
	case database.DriverPostgres:
		return newPostgresStore(db.Connection()), nil
	case database.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("experiments: unsupported driver %q", db.Driver())
	}
}
