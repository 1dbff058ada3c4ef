// Package database owns the connection to the configured store driver and its
// lifecycle. Domain stores pick the handle that matches Driver().
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/JaimeStill/paginalab/pkg/lifecycle"
)

// Index describes a MongoDB index created when the mongo driver starts.
type Index struct {
	Collection string
	Keys       bson.D
}

// Options carries driver-specific schema setup.
type Options struct {
	// Migrations holds golang-migrate SQL files applied by the postgres driver.
	Migrations fs.FS
	// Indexes are ensured by the mongo driver.
	Indexes []Index
}

// System exposes the active driver's handle and lifecycle.
type System interface {
	Driver() Driver
	// Mongo returns the database handle for the mongo driver, nil otherwise.
	Mongo() *mongo.Database
	// Connection returns the pool for the postgres driver, nil otherwise.
	Connection() *sql.DB
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
	// Start connects, prepares the schema and registers shutdown.
	Start(lc *lifecycle.Coordinator) error
}

// New creates the System for cfg.Driver without connecting.
func New(cfg *Config, logger *slog.Logger, opts Options) (System, error) {
	logger = logger.With("system", "database", "driver", cfg.Driver)

	switch cfg.Driver {
	case DriverMongo:
		return newMongo(cfg, logger, opts.Indexes), nil
	case DriverPostgres:
		return newPostgres(cfg, logger, opts.Migrations)
	case DriverMemory:
		return &memory{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

type memory struct {
	logger *slog.Logger
}

func (m *memory) Driver() Driver                 { return DriverMemory }
func (m *memory) Mongo() *mongo.Database         { return nil }
func (m *memory) Connection() *sql.DB            { return nil }
func (m *memory) Ping(ctx context.Context) error { return nil }

func (m *memory) Start(lc *lifecycle.Coordinator) error {
	m.logger.Warn("using in-memory store, data is lost on restart")
	return nil
}
