package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/finboard/finboard/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens a Postgres connection pool with search_path set to the configured schema.
func Open(ctx context.Context, cfg config.Database) (*pgxpool.Pool, error) {
	// Escape single quotes in password for PostgreSQL connection string
	escapedPassword := strings.ReplaceAll(cfg.Pass, "'", "\\'")

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password='%s' dbname=%s sslmode=disable options='-c search_path=%s'", cfg.Host,
		cfg.Port, cfg.User, escapedPassword, cfg.Name, cfg.Schema)
	poolConfig, err := pgxpool.ParseConfig(psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the configured schema when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, schema string) error {
	_, err := pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize())
	if err != nil {
		return fmt.Errorf("failed to create schema %s: %w", schema, err)
	}
	return nil
}

// Migrate applies the embedded migrations to the configured database.
func Migrate(cfg config.Database) error {
	escapedPassword := url.QueryEscape(cfg.Pass)

	dbUrl := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s", cfg.User, escapedPassword, cfg.Host, cfg.Port, cfg.Name, cfg.Schema)

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dbUrl)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, _, _ := m.Version()
	log.Infof("Database schema at version %d", version)
	return nil
}

// Setup opens the pool, creates the schema and migrates it.
func Setup(ctx context.Context, cfg config.Database) (*pgxpool.Pool, error) {
	pool, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(ctx, pool, cfg.Schema); err != nil {
		pool.Close()
		return nil, err
	}
	if err := Migrate(cfg); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
