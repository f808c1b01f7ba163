package test_utils

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// SkipEnv disables the container backed tests when set to any value.
const SkipEnv = "FINBOARD_SKIP_DB_TESTS"

const (
	dbName     = "finboard"
	dbUser     = "test_finboard"
	dbPassword = "test_finboard"
	dbSchema   = "finboard"
)

var (
	once      sync.Once
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	startErr  error
)

func startPostgres() (err error) {
	// testcontainers panics instead of failing on some hosts without a docker socket
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	ctx := context.Background()
	container, err = postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return err
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   dbUser,
		Pass:   dbPassword,
		Name:   dbName,
		Schema: dbSchema,
	}
	pool, err = database.Setup(ctx, cfg)
	return err
}

// Postgres returns a pool to a migrated database running in a shared container.
// The container is started on first use; the test is skipped when docker is not available.
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv(SkipEnv) != "" {
		t.Skipf("%s is set", SkipEnv)
	}
	once.Do(func() {
		startErr = startPostgres()
	})
	if startErr != nil {
		t.Skipf("postgres not available: %v", startErr)
	}
	return pool
}

// Truncate empties the given tables so every test starts from a clean store.
func Truncate(t *testing.T, db *pgxpool.Pool, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := db.Exec(context.Background(), "TRUNCATE TABLE "+pgx.Identifier{table}.Sanitize())
		if err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// StopPostgres terminates the shared container, if one was started. Call it from TestMain.
func StopPostgres() {
	if pool != nil {
		pool.Close()
	}
	if container != nil {
		if err := container.Terminate(context.Background()); err != nil {
			log.Errorf("failed to terminate postgres container: %v", err)
		}
	}
}
