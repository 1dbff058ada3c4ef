package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/JaimeStill/paginalab/pkg/lifecycle"
)

type postgresSystem struct {
	cfg        *Config
	conn       *sql.DB
	logger     *slog.Logger
	migrations fs.FS
}

func newPostgres(cfg *Config, logger *slog.Logger, migrations fs.FS) (*postgresSystem, error) {
	conn, err := sql.Open("pgx", cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &postgresSystem{
		cfg:        cfg,
		conn:       conn,
		logger:     logger,
		migrations: migrations,
	}, nil
}

func (p *postgresSystem) Driver() Driver         { return DriverPostgres }
func (p *postgresSystem) Mongo() *mongo.Database { return nil }
func (p *postgresSystem) Connection() *sql.DB    { return p.conn }

func (p *postgresSystem) Ping(ctx context.Context) error {
	return p.conn.PingContext(ctx)
}

func (p *postgresSystem) Start(lc *lifecycle.Coordinator) error {
	p.logger.Info("connecting to database", "name", p.cfg.Name)

	ctx, cancel := context.WithTimeout(lc.Context(), p.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := p.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	if p.migrations != nil {
		if err := p.migrate(); err != nil {
			return err
		}
	}

	p.logger.Info("database connected")

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		p.logger.Info("closing database connection")

		if err := p.conn.Close(); err != nil {
			p.logger.Error("database close failed", "error", err)
			return
		}
		p.logger.Info("database connection closed")
	})

	return nil
}

func (p *postgresSystem) migrate() error {
	src, err := iofs.New(p.migrations, ".")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrationURL(p.cfg.URI))
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	p.logger.Info("migrations applied", "version", version, "dirty", dirty)
	return nil
}

// migrationURL rewrites a postgres URI to the pgx5 scheme golang-migrate
// registers for its pgx driver.
func migrationURL(uri string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(uri, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return uri
}
