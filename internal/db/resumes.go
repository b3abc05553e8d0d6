package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tonypottakkal/verba-resume-journal/internal/store"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// ResumeStore is a PostgreSQL-backed store.ResumeStore.
type ResumeStore struct {
	db *DB
}

const resumeColumns = `id, content, format, job_description, target_role, required_skills, source_log_ids, session_id, generated_at`

// Create stores a generated resume record
func (s *ResumeStore) Create(ctx context.Context, record *types.ResumeRecord) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO resume_records (id, content, format, job_description, target_role, required_skills, source_log_ids, session_id, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.Content, record.Format, record.JobDescription,
		record.TargetRole, stringArray(record.RequiredSkills),
		stringArray(record.SourceLogIDs), record.SessionID, record.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create resume record: %w", err)
	}
	return nil
}

// Get retrieves a resume record by id
func (s *ResumeStore) Get(ctx context.Context, id string) (*types.ResumeRecord, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resume_records WHERE id = $1`, id)

	record, err := scanResume(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &store.NotFoundError{Resource: "resume", Key: id}
		}
		return nil, fmt.Errorf("failed to get resume record: %w", err)
	}
	return record, nil
}

// List retrieves resume records matching the filter, newest first
func (s *ResumeStore) List(ctx context.Context, filter store.ResumeFilter) ([]types.ResumeRecord, error) {
	query := `SELECT ` + resumeColumns + ` FROM resume_records WHERE 1=1`
	args := []any{}
	argNum := 1

	if filter.TargetRole != "" {
		query += fmt.Sprintf(" AND target_role = $%d", argNum)
		args = append(args, filter.TargetRole)
		argNum++
	}
	if filter.Since != nil {
		query += fmt.Sprintf(" AND generated_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}
	if filter.Until != nil {
		query += fmt.Sprintf(" AND generated_at <= $%d", argNum)
		args = append(args, *filter.Until)
		argNum++
	}

	query += " ORDER BY generated_at DESC, id ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filter.Limit)
		argNum++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filter.Offset)
	}

	rows, err := s.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume records: %w", err)
	}
	defer rows.Close()

	records := []types.ResumeRecord{}
	for rows.Next() {
		record, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume record: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// Delete removes a resume record
func (s *ResumeStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.pool.Exec(ctx, `DELETE FROM resume_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &store.NotFoundError{Resource: "resume", Key: id}
	}
	return nil
}

func scanResume(row pgx.Row) (*types.ResumeRecord, error) {
	var record types.ResumeRecord
	err := row.Scan(&record.ID, &record.Content, &record.Format,
		&record.JobDescription, &record.TargetRole, &record.RequiredSkills,
		&record.SourceLogIDs, &record.SessionID, &record.GeneratedAt)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

var _ store.ResumeStore = (*ResumeStore)(nil)
