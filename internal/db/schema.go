package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Dates are persisted as ISO-8601 text on purpose: range filters rely on the
// lexicographic ordering of ISO-8601 strings, and rows with malformed dates
// are skipped at scan time instead of failing a whole query.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS account (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS account_username_unique
		ON account (LOWER(username));`,

	`CREATE TABLE IF NOT EXISTS profile (
		id SERIAL PRIMARY KEY,
		account_id INTEGER NOT NULL UNIQUE REFERENCES account (id),
		name TEXT NOT NULL,
		student_id TEXT,
		age INTEGER,
		height_cm REAL,
		weight_kg REAL,
		fitness_level TEXT NOT NULL DEFAULT 'beginner',
		preferred_exercises TEXT NOT NULL DEFAULT ''
	);`,

	`CREATE TABLE IF NOT EXISTS fitness_record (
		id SERIAL PRIMARY KEY,
		account_id INTEGER NOT NULL REFERENCES account (id),
		date TEXT NOT NULL,
		exercise_type TEXT NOT NULL,
		duration_minutes REAL NOT NULL,
		distance_km REAL,
		calories INTEGER,
		is_official BOOLEAN NOT NULL DEFAULT FALSE,
		is_checkin BOOLEAN NOT NULL DEFAULT FALSE,
		intensity REAL,
		recovery_quality REAL,
		notes TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS fitness_record_account_date
		ON fitness_record (account_id, date DESC);`,

	`CREATE TABLE IF NOT EXISTS fitness_goal (
		id SERIAL PRIMARY KEY,
		account_id INTEGER NOT NULL REFERENCES account (id),
		goal_type TEXT NOT NULL,
		target_value REAL NOT NULL,
		current_value REAL NOT NULL DEFAULT 0,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE INDEX IF NOT EXISTS fitness_goal_account_end
		ON fitness_goal (account_id, end_date);`,
}

// Migrate applies the schema on startup. All statements are idempotent, so
// running it on every boot is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback migration: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	for _, stmt := range schemaStatements {
		if _, err = tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}

	log.Debugf("schema migration done, %d statements applied", len(schemaStatements))
	return nil
}
