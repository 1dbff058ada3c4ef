// Package infrastructure wires the systems every module shares: the lifecycle
// coordinator, the logger, the configured database driver and blob storage.
package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/paginalab/internal/config"
	"github.com/JaimeStill/paginalab/internal/migrations"
	"github.com/JaimeStill/paginalab/pkg/database"
	"github.com/JaimeStill/paginalab/pkg/lifecycle"
	"github.com/JaimeStill/paginalab/pkg/logging"
	"github.com/JaimeStill/paginalab/pkg/storage"
)

// ErrStarting is reported by Ready until every startup hook has finished.
var ErrStarting = errors.New("service starting")

// Infrastructure holds the shared systems. Nothing connects until Start.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New builds the shared systems from cfg. The database receives the embedded
// schema: SQL migrations for postgres, the index set for mongo.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging, os.Stdout)

	db, err := database.New(&cfg.Database, logger, migrations.Options())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	blobs, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   blobs,
	}, nil
}

// Start connects the database, then provisions the upload directory. The
// first failure stops startup.
func (i *Infrastructure) Start() error {
	steps := []struct {
		name  string
		start func(*lifecycle.Coordinator) error
	}{
		{"database", i.Database.Start},
		{"storage", i.Storage.Start},
	}

	for _, step := range steps {
		if err := step.start(i.Lifecycle); err != nil {
			return fmt.Errorf("%s start: %w", step.name, err)
		}
	}
	return nil
}

// Ready reports nil once startup completed and the database answers a ping.
func (i *Infrastructure) Ready(ctx context.Context) error {
	if !i.Lifecycle.Ready() {
		return ErrStarting
	}
	if err := i.Database.Ping(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}
