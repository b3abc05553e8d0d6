package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tonypottakkal/verba-resume-journal/internal/store"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// SkillStore is a PostgreSQL-backed store.SkillStore. Update runs inside a
// transaction with the row locked, which serializes concurrent updates to the
// same skill across processes.
type SkillStore struct {
	db *DB
}

const skillColumns = `name, category, occurrence_count, source_refs, last_used_at, context_score, proficiency_score`

// Get retrieves a skill record by canonical name
func (s *SkillStore) Get(ctx context.Context, name string) (*types.SkillRecord, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT `+skillColumns+` FROM skill_records WHERE name = $1`, name)

	record, err := scanSkill(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &store.NotFoundError{Resource: "skill", Key: name}
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	return record, nil
}

// List retrieves all skill records sorted by name
func (s *SkillStore) List(ctx context.Context) ([]types.SkillRecord, error) {
	return s.query(ctx,
		`SELECT `+skillColumns+` FROM skill_records ORDER BY name ASC`)
}

// ListByCategory retrieves skill records in the given category
func (s *SkillStore) ListByCategory(ctx context.Context, category types.SkillCategory) ([]types.SkillRecord, error) {
	return s.query(ctx,
		`SELECT `+skillColumns+` FROM skill_records WHERE category = $1 ORDER BY name ASC`,
		string(category))
}

// ListByLastUsed retrieves skill records with last_used_at in [since, until].
// A zero time disables that bound.
func (s *SkillStore) ListByLastUsed(ctx context.Context, since, until time.Time) ([]types.SkillRecord, error) {
	query := `SELECT ` + skillColumns + ` FROM skill_records WHERE 1=1`
	args := []any{}
	argNum := 1

	if !since.IsZero() {
		query += fmt.Sprintf(" AND last_used_at >= $%d", argNum)
		args = append(args, since)
		argNum++
	}
	if !until.IsZero() {
		query += fmt.Sprintf(" AND last_used_at <= $%d", argNum)
		args = append(args, until)
	}
	query += " ORDER BY name ASC"

	return s.query(ctx, query, args...)
}

// Update applies fn to the current record for name under a row lock. fn
// receives nil when no record exists; returning nil deletes the row.
func (s *SkillStore) Update(ctx context.Context, name string, fn store.UpdateFunc) (*types.SkillRecord, error) {
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin skill update: %w", err)
	}
	defer tx.Rollback(ctx)

	var current *types.SkillRecord
	row := tx.QueryRow(ctx,
		`SELECT `+skillColumns+` FROM skill_records WHERE name = $1 FOR UPDATE`, name)
	current, err = scanSkill(row)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to load skill for update: %w", err)
	}
	if err == pgx.ErrNoRows {
		current = nil
	}

	updated, err := fn(current)
	if err != nil {
		return nil, err
	}

	if updated == nil {
		if _, err := tx.Exec(ctx, `DELETE FROM skill_records WHERE name = $1`, name); err != nil {
			return nil, fmt.Errorf("failed to delete skill: %w", err)
		}
	} else {
		_, err = tx.Exec(ctx,
			`INSERT INTO skill_records (name, category, occurrence_count, source_refs, last_used_at, context_score, proficiency_score)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (name) DO UPDATE SET
				category = $2, occurrence_count = $3, source_refs = $4,
				last_used_at = $5, context_score = $6, proficiency_score = $7`,
			updated.Name, string(updated.Category), updated.OccurrenceCount,
			stringArray(updated.SourceRefs), updated.LastUsedAt,
			updated.ContextScore, updated.ProficiencyScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to save skill: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit skill update: %w", err)
	}
	return updated, nil
}

// Delete removes a skill record
func (s *SkillStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.pool.Exec(ctx, `DELETE FROM skill_records WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &store.NotFoundError{Resource: "skill", Key: name}
	}
	return nil
}

func (s *SkillStore) query(ctx context.Context, query string, args ...any) ([]types.SkillRecord, error) {
	rows, err := s.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	records := []types.SkillRecord{}
	for rows.Next() {
		record, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanSkill(row pgx.Row) (*types.SkillRecord, error) {
	var record types.SkillRecord
	var category string

	err := row.Scan(&record.Name, &category, &record.OccurrenceCount,
		&record.SourceRefs, &record.LastUsedAt, &record.ContextScore,
		&record.ProficiencyScore)
	if err != nil {
		return nil, err
	}
	record.Category = types.SkillCategory(category)
	return &record, nil
}

var _ store.SkillStore = (*SkillStore)(nil)
