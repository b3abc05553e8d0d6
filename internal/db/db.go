// Package db provides PostgreSQL-backed implementations of the store
// interfaces.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the journal tables if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS worklog_entries (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			user_id TEXT NOT NULL DEFAULT '',
			ts TIMESTAMPTZ NOT NULL,
			extracted_skills TEXT[] NOT NULL DEFAULT '{}',
			metadata JSONB
		)`,
		`CREATE INDEX IF NOT EXISTS idx_worklog_entries_user_ts
			ON worklog_entries (user_id, ts DESC)`,
		`CREATE TABLE IF NOT EXISTS skill_records (
			name TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			occurrence_count INT NOT NULL,
			source_refs TEXT[] NOT NULL DEFAULT '{}',
			last_used_at TIMESTAMPTZ NOT NULL,
			context_score DOUBLE PRECISION NOT NULL,
			proficiency_score DOUBLE PRECISION NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_skill_records_category
			ON skill_records (category)`,
		`CREATE TABLE IF NOT EXISTS resume_records (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			format TEXT NOT NULL,
			job_description TEXT NOT NULL,
			target_role TEXT NOT NULL DEFAULT '',
			required_skills TEXT[] NOT NULL DEFAULT '{}',
			source_log_ids TEXT[] NOT NULL DEFAULT '{}',
			session_id TEXT NOT NULL DEFAULT '',
			generated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resume_records_generated_at
			ON resume_records (generated_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// WorkLogs returns the work log store backed by this database.
func (db *DB) WorkLogs() *WorkLogStore {
	return &WorkLogStore{db: db}
}

// Skills returns the skill store backed by this database.
func (db *DB) Skills() *SkillStore {
	return &SkillStore{db: db}
}

// Resumes returns the resume history store backed by this database.
func (db *DB) Resumes() *ResumeStore {
	return &ResumeStore{db: db}
}
