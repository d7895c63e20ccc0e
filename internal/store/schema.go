package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/migrate"

	"github.com/abhisek/stemarcade/internal/store/migrations"
)

// eventTables lists every table cleared by Reset.
var eventTables = []string{"progress_summaries", "answer_events", "session_events", "celebration_events"}

// applyMigrations brings the schema up to date. Applied migrations are
// tracked in bun_migrations, so reopening a database is a no-op.
func applyMigrations(ctx context.Context, db *sql.DB) error {
	// The bun.DB shares db and is not closed here; Store.Close owns it.
	bdb := bun.NewDB(db, sqlitedialect.New())
	migrator := migrate.NewMigrator(bdb, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if !group.IsZero() {
		slog.Debug("applied migrations", "group", group.ID, "migrations", len(group.Migrations))
	}
	return nil
}
