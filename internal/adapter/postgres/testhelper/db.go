// Package testhelper provides a migrated PostgreSQL for integration tests.
package testhelper

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/nivara-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nivara-backend/internal/config"
)

// DSNEnv points the tests at an already running database instead of a
// container. The database must be disposable: migrations run against it.
const DSNEnv = "NIVARA_TEST_DATABASE_DSN"

const (
	image    = "postgres:17-alpine"
	dbName   = "nivara"
	dbUser   = "nivara"
	dbSecret = "nivara"
)

var (
	prepare   sync.Once
	sharedDSN string
	prepErr   error
)

// SetupTestDB returns a pool on a database migrated with the service's own
// migrations. The container starts once per test binary and is left for the
// reaper; each pool is closed with the test.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}

	prepare.Do(func() {
		sharedDSN, prepErr = prepareDatabase()
	})
	if prepErr != nil {
		t.Fatalf("testhelper: %v", prepErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, poolConfig(sharedDSN))
	if err != nil {
		t.Fatalf("testhelper: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func poolConfig(dsn string) config.PostgresConfig {
	return config.PostgresConfig{
		DSN:             dsn,
		MaxConns:        4,
		MinConns:        0,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	}
}

// prepareDatabase resolves the DSN and brings the schema up to date.
func prepareDatabase() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		var err error
		if dsn, err = startContainer(ctx); err != nil {
			return "", err
		}
	}

	pool, err := postgres.NewPool(ctx, poolConfig(dsn))
	if err != nil {
		return "", err
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		return "", fmt.Errorf("migrate test database: %w", err)
	}
	return dsn, nil
}

func startContainer(ctx context.Context) (string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       dbName,
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbSecret,
			},
			// The entrypoint restarts the server once after initdb.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		dbUser, dbSecret, net.JoinHostPort(host, port.Port()), dbName), nil
}
