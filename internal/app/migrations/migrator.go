package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/yigit/eduadmin/internal/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// VersionTable is where tern keeps the applied schema version.
const VersionTable = "schema_version"

// Migrator applies the embedded SQL migrations
type Migrator struct {
	db *pgxpool.Pool
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool) *Migrator {
	return &Migrator{
		db: db,
	}
}

// Migrate brings the schema up to the latest embedded version.
func (m *Migrator) Migrate(ctx context.Context) error {
	conn, err := m.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for migrations: %w", err)
	}
	defer conn.Release()

	return migrateConn(ctx, conn.Conn())
}

func migrateConn(ctx context.Context, conn *pgx.Conn) error {
	migrator, err := tern.NewMigrator(ctx, conn, VersionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := migrator.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := migrator.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("applying database migrations: %w", err)
	}

	latest := int32(len(migrator.Migrations))
	if from == latest {
		logger.Info().Int32("version", latest).Msg("Database schema up to date")
	} else {
		logger.Info().Int32("from", from).Int32("to", latest).Msg("Migrated database schema")
	}
	return nil
}
