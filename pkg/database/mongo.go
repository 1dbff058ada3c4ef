package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/JaimeStill/paginalab/pkg/lifecycle"
)

type mongoSystem struct {
	cfg     *Config
	logger  *slog.Logger
	indexes []Index

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

func newMongo(cfg *Config, logger *slog.Logger, indexes []Index) *mongoSystem {
	return &mongoSystem{
		cfg:     cfg,
		logger:  logger,
		indexes: indexes,
	}
}

func (m *mongoSystem) Driver() Driver      { return DriverMongo }
func (m *mongoSystem) Connection() *sql.DB { return nil }

func (m *mongoSystem) Mongo() *mongo.Database {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

func (m *mongoSystem) Ping(ctx context.Context) error {
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()

	if client == nil {
		return ErrNotReady
	}
	return client.Ping(ctx, readpref.Primary())
}

func (m *mongoSystem) Start(lc *lifecycle.Coordinator) error {
	m.logger.Info("connecting to database", "name", m.cfg.Name)

	ctx, cancel := context.WithTimeout(lc.Context(), m.cfg.ConnTimeoutDuration())
	defer cancel()

	opts := options.Client().
		ApplyURI(m.cfg.URI).
		SetMaxPoolSize(uint64(m.cfg.MaxOpenConns)).
		SetMaxConnIdleTime(m.cfg.ConnMaxLifetimeDuration()).
		SetConnectTimeout(m.cfg.ConnTimeoutDuration())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return fmt.Errorf("ping: %w", err)
	}

	db := client.Database(m.cfg.Name)

	for _, idx := range m.indexes {
		model := mongo.IndexModel{Keys: idx.Keys}
		if _, err := db.Collection(idx.Collection).Indexes().CreateOne(ctx, model); err != nil {
			client.Disconnect(context.Background())
			return fmt.Errorf("create index on %s: %w", idx.Collection, err)
		}
	}

	m.mu.Lock()
	m.client = client
	m.db = db
	m.mu.Unlock()

	m.logger.Info("database connected")

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		m.logger.Info("closing database connection")

		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ConnTimeoutDuration())
		defer cancel()

		if err := client.Disconnect(ctx); err != nil {
			m.logger.Error("database disconnect failed", "error", err)
			return
		}
		m.logger.Info("database connection closed")
	})

	return nil
}
