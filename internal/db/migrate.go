package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		uid         TEXT NOT NULL DEFAULT '',
		summary     TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT '',
		dtstart     TEXT,
		duration    TEXT,
		due         TEXT,
		completed   TEXT,
		created     TEXT,
		raw         TEXT NOT NULL DEFAULT '',
		imported_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_uid ON tasks(uid)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due)`,

	// Track which file each task came from so re-imports replace it.
	`ALTER TABLE tasks ADD COLUMN source TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_source ON tasks(source)`,

	// IANA zone names for each instant. RFC 3339 text only keeps the offset,
	// and calendar-day durations must be added in the original zone.
	`ALTER TABLE tasks ADD COLUMN dtstart_tz TEXT`,
	`ALTER TABLE tasks ADD COLUMN due_tz TEXT`,
	`ALTER TABLE tasks ADD COLUMN completed_tz TEXT`,
	`ALTER TABLE tasks ADD COLUMN created_tz TEXT`,
}
