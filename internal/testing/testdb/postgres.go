package testdb

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/yigit/eduadmin/internal/app/migrations"
	"github.com/yigit/eduadmin/internal/db"
	"github.com/yigit/eduadmin/internal/testing/containers"
)

var (
	sharedContainer *PostgresContainer
	sharedOnce      sync.Once
)

// AllTables lists every application table, children first.
var AllTables = []string{
	"refresh_tokens",
	"result_answers",
	"results",
	"answers",
	"questions",
	"tests",
	"subjects",
	"students",
	"groups",
	"teachers",
	"admins",
	"images",
}

// PostgresContainer wraps the postgres testcontainer
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DB        *db.PostgresDB
	DSN       string
}

// SetupSharedPostgres starts one migrated PostgreSQL container per test binary.
// The test is skipped when no container runtime is reachable.
//
// Tests using the shared container must not run in parallel.
//
// Usage:
//
//	func TestGroupRepository(t *testing.T) {
//	    pg := testdb.SetupSharedPostgres(t)
//
//	    t.Run("Create", func(t *testing.T) {
//	        testdb.CleanupTables(t, pg.DB.Pool, testdb.AllTables...)
//	        // ... test
//	    })
//	}
func SetupSharedPostgres(t *testing.T) *PostgresContainer {
	t.Helper()

	containers.SkipIfUnavailable(t)

	sharedOnce.Do(func() {
		ctx := context.Background()
		pgContainer, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
			),
		)
		require.NoError(t, err)

		connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)

		pool, err := pgxpool.New(ctx, connStr)
		require.NoError(t, err)
		require.NoError(t, pool.Ping(ctx))

		require.NoError(t, migrations.NewMigrator(pool).Migrate(ctx))

		sharedContainer = &PostgresContainer{
			Container: pgContainer,
			DB:        db.NewFromPool(pool),
			DSN:       connStr,
		}
	})

	if sharedContainer == nil {
		t.Fatal("shared postgres container failed to start")
	}
	return sharedContainer
}

func (pc *PostgresContainer) Cleanup(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if pc.DB != nil {
		pc.DB.Close()
	}

	if pc.Container != nil {
		if err := pc.Container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
}

func CleanupTables(t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()

	ctx := context.Background()

	for _, table := range tables {
		_, err := pool.Exec(ctx, "TRUNCATE "+table+" RESTART IDENTITY CASCADE")
		require.NoError(t, err, "failed to truncate table: %s", table)
	}
}
