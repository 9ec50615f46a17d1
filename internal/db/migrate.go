package db

import (
	"context"
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
	if err := migrateBackfillDurations(db); err != nil {
		return fmt.Errorf("backfilling phase durations: %w", err)
	}
	return nil
}

// migrateBackfillDurations fills duration_days for phases written before the
// column existed, using the inclusive day count of their date range.
func migrateBackfillDurations(db *sql.DB) error {
	ctx := context.Background()
	_, err := db.ExecContext(ctx, `UPDATE project_phases
		SET duration_days = CAST(julianday(end_date) - julianday(start_date) AS INTEGER) + 1
		WHERE duration_days = 0 AND end_date >= start_date`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id           TEXT PRIMARY KEY,
		short_id     TEXT NOT NULL DEFAULT '',
		name         TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'active'
		             CHECK(status IN ('active','on_hold','completed','cancelled')),
		color        TEXT NOT NULL DEFAULT '',
		organization TEXT NOT NULL DEFAULT '',
		manager      TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS project_phases (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		type        TEXT NOT NULL
		            CHECK(type IN ('planning','pre_production','filming','production','editing','review')),
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		is_movable  INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		CHECK(end_date >= start_date)
	)`,
	`ALTER TABLE project_phases ADD COLUMN duration_days INTEGER NOT NULL DEFAULT 0`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,
	`CREATE INDEX IF NOT EXISTS idx_phases_project ON project_phases(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_range ON project_phases(start_date, end_date)`,
}
