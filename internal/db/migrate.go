package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS estimate_runs (
		id            TEXT PRIMARY KEY,
		source_path   TEXT NOT NULL,
		markdown_path TEXT NOT NULL,
		pdf_path      TEXT NOT NULL DEFAULT '',
		total_hours   REAL,
		node_count    INTEGER NOT NULL DEFAULT 0,
		leaf_count    INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL
	)`,
	`ALTER TABLE estimate_runs ADD COLUMN rendered INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_estimate_runs_source ON estimate_runs(source_path)`,
	`CREATE INDEX IF NOT EXISTS idx_estimate_runs_created ON estimate_runs(created_at)`,
}
