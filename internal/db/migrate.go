package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicate-column errors from re-runs are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_categories (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '',
		icon       TEXT NOT NULL DEFAULT '',
		is_active  INTEGER NOT NULL DEFAULT 1,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_categories_user ON work_categories(user_id)`,

	`CREATE TABLE IF NOT EXISTS work_types (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL,
		category_id       TEXT REFERENCES work_categories(id),
		name              TEXT NOT NULL,
		color             TEXT NOT NULL DEFAULT '',
		icon              TEXT NOT NULL DEFAULT '',
		hourly_rate       INTEGER,
		daily_rate        INTEGER,
		notification_time TEXT NOT NULL DEFAULT '',
		is_active         INTEGER NOT NULL DEFAULT 1,
		sort_order        INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_types_user ON work_types(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_types_category ON work_types(category_id)`,

	`CREATE TABLE IF NOT EXISTS checklist_templates (
		id           TEXT PRIMARY KEY,
		work_type_id TEXT NOT NULL REFERENCES work_types(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		version      INTEGER NOT NULL DEFAULT 1,
		is_active    INTEGER NOT NULL DEFAULT 1,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_checklist_templates_worktype ON checklist_templates(work_type_id)`,

	`CREATE TABLE IF NOT EXISTS checklist_items (
		id            TEXT PRIMARY KEY,
		template_id   TEXT NOT NULL REFERENCES checklist_templates(id) ON DELETE CASCADE,
		time_hint     TEXT NOT NULL DEFAULT '',
		task          TEXT NOT NULL,
		mandatory     INTEGER NOT NULL DEFAULT 0,
		category      TEXT NOT NULL DEFAULT ''
		              CHECK(category IN ('','safety','preparation','execution','cleanup')),
		estimated_min INTEGER NOT NULL CHECK(estimated_min > 0),
		order_index   INTEGER NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		UNIQUE(template_id, order_index)
	)`,

	`CREATE TABLE IF NOT EXISTS work_sessions (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		work_type_id     TEXT NOT NULL REFERENCES work_types(id),
		template_id      TEXT NOT NULL DEFAULT '',
		template_version INTEGER NOT NULL DEFAULT 0,
		started_at       TEXT NOT NULL,
		ended_at         TEXT,
		status           TEXT NOT NULL DEFAULT 'active'
		                 CHECK(status IN ('active','paused','completed','cancelled')),
		notes            TEXT NOT NULL DEFAULT '',
		cancel_reason    TEXT NOT NULL DEFAULT '',
		paused_at        TEXT,
		paused_sec       INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_sessions_user_started ON work_sessions(user_id, started_at)`,
	// Storage-side backstop for the one-open-session rule; the engine is
	// the authoritative enforcer and reports ErrConflict first.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_sessions_one_open
		ON work_sessions(user_id) WHERE status IN ('active','paused')`,

	// Checklist snapshot plus progress, one row per snapshot item. The
	// snapshot columns are written once at session creation and never
	// resynced to template edits.
	`CREATE TABLE IF NOT EXISTS session_items (
		session_id    TEXT NOT NULL REFERENCES work_sessions(id) ON DELETE CASCADE,
		item_id       TEXT NOT NULL,
		time_hint     TEXT NOT NULL DEFAULT '',
		task          TEXT NOT NULL,
		mandatory     INTEGER NOT NULL DEFAULT 0,
		category      TEXT NOT NULL DEFAULT '',
		estimated_min INTEGER NOT NULL,
		order_index   INTEGER NOT NULL,
		status        TEXT NOT NULL DEFAULT 'pending'
		              CHECK(status IN ('pending','completed','skipped')),
		completed_at  TEXT,
		notes         TEXT NOT NULL DEFAULT '',
		entry_updated TEXT NOT NULL DEFAULT '',
		PRIMARY KEY(session_id, item_id)
	)`,

	`CREATE TABLE IF NOT EXISTS session_issues (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL REFERENCES work_sessions(id) ON DELETE CASCADE,
		occurred_at TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT 'other'
		            CHECK(type IN ('safety','equipment','delay','other')),
		severity    TEXT NOT NULL DEFAULT 'low'
		            CHECK(severity IN ('low','medium','high','critical')),
		description TEXT NOT NULL,
		resolved    INTEGER NOT NULL DEFAULT 0,
		resolved_at TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS salaries (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		period_type  TEXT NOT NULL CHECK(period_type IN ('daily','weekly','monthly')),
		period_start TEXT NOT NULL,
		period_end   TEXT NOT NULL,
		total_amount INTEGER NOT NULL DEFAULT 0,
		work_days    INTEGER NOT NULL DEFAULT 0,
		total_hours  REAL NOT NULL DEFAULT 0,
		base_pay     INTEGER NOT NULL DEFAULT 0,
		overtime_pay INTEGER NOT NULL DEFAULT 0,
		deductions   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		UNIQUE(user_id, period_type, period_start)
	)`,

	`CREATE TABLE IF NOT EXISTS emergency_contacts (
		id           TEXT PRIMARY KEY,
		work_type_id TEXT NOT NULL REFERENCES work_types(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		phone        TEXT NOT NULL,
		role         TEXT NOT NULL DEFAULT '',
		email        TEXT NOT NULL DEFAULT '',
		notes        TEXT NOT NULL DEFAULT '',
		is_primary   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_settings (
		user_id           TEXT PRIMARY KEY,
		timezone          TEXT NOT NULL DEFAULT '',
		default_work_type TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,
}
