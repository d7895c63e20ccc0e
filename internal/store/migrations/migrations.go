// Package migrations holds the SQLite schema migrations applied by
// store.Open. Each file registers one migration; bun derives the name and
// order from the file name.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
