package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full list is replayed on each start.
func Migrate(db *sql.DB, dialect Dialect) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate re-adding columns since the migration list is replayed.
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %d (%s): %w", i, dialect, err)
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column name") || strings.Contains(msg, "already exists")
}

// The DDL below is the common subset of SQLite and PostgreSQL.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS peulot (
		id                     TEXT PRIMARY KEY,
		title                  TEXT NOT NULL,
		topic                  TEXT NOT NULL,
		age_group              TEXT NOT NULL,
		duration               TEXT NOT NULL,
		group_size             TEXT NOT NULL,
		goals                  TEXT NOT NULL,
		available_materials    TEXT NOT NULL DEFAULT '[]',
		special_considerations TEXT,
		content                TEXT NOT NULL,
		version                INTEGER NOT NULL DEFAULT 1,
		created_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_peulot_created ON peulot(created_at)`,

	`CREATE TABLE IF NOT EXISTS feedback (
		id              TEXT PRIMARY KEY,
		peula_id        TEXT NOT NULL REFERENCES peulot(id) ON DELETE CASCADE,
		component_index INTEGER NOT NULL CHECK(component_index >= 0 AND component_index <= 8),
		comment         TEXT NOT NULL,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_feedback_peula ON feedback(peula_id)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_component ON feedback(component_index)`,

	`CREATE TABLE IF NOT EXISTS training_examples (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		notes      TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tzofim_anchors (
		id            TEXT PRIMARY KEY,
		text          TEXT NOT NULL,
		category      TEXT NOT NULL,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_anchors_order ON tzofim_anchors(display_order)`,
}
