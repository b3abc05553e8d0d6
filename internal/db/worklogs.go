package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tonypottakkal/verba-resume-journal/internal/store"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// WorkLogStore is a PostgreSQL-backed store.WorkLogStore.
type WorkLogStore struct {
	db *DB
}

const worklogColumns = `id, content, user_id, ts, extracted_skills, metadata`

// Create stores a new entry
func (s *WorkLogStore) Create(ctx context.Context, entry *types.WorkLogEntry) error {
	metadata, err := marshalMetadata(entry.Metadata)
	if err != nil {
		return err
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO worklog_entries (id, content, user_id, ts, extracted_skills, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Content, entry.UserID, entry.Timestamp,
		stringArray(entry.ExtractedSkills), metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to create work log entry: %w", err)
	}
	return nil
}

// Get retrieves an entry by id
func (s *WorkLogStore) Get(ctx context.Context, id string) (*types.WorkLogEntry, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT `+worklogColumns+` FROM worklog_entries WHERE id = $1`, id)

	entry, err := scanWorkLog(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &store.NotFoundError{Resource: "work log entry", Key: id}
		}
		return nil, fmt.Errorf("failed to get work log entry: %w", err)
	}
	return entry, nil
}

// List retrieves entries matching the filter, newest first
func (s *WorkLogStore) List(ctx context.Context, filter store.WorkLogFilter) ([]types.WorkLogEntry, error) {
	query := `SELECT ` + worklogColumns + ` FROM worklog_entries WHERE 1=1`
	args := []any{}
	argNum := 1

	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argNum)
		args = append(args, filter.UserID)
		argNum++
	}
	if filter.Since != nil {
		query += fmt.Sprintf(" AND ts >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}
	if filter.Until != nil {
		query += fmt.Sprintf(" AND ts <= $%d", argNum)
		args = append(args, *filter.Until)
		argNum++
	}

	query += " ORDER BY ts DESC, id ASC"

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
		return nil, fmt.Errorf("failed to list work log entries: %w", err)
	}
	defer rows.Close()

	entries := []types.WorkLogEntry{}
	for rows.Next() {
		entry, err := scanWorkLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work log entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Update replaces an existing entry
func (s *WorkLogStore) Update(ctx context.Context, entry *types.WorkLogEntry) error {
	metadata, err := marshalMetadata(entry.Metadata)
	if err != nil {
		return err
	}

	result, err := s.db.pool.Exec(ctx,
		`UPDATE worklog_entries
		 SET content = $2, user_id = $3, ts = $4, extracted_skills = $5, metadata = $6
		 WHERE id = $1`,
		entry.ID, entry.Content, entry.UserID, entry.Timestamp,
		stringArray(entry.ExtractedSkills), metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to update work log entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &store.NotFoundError{Resource: "work log entry", Key: entry.ID}
	}
	return nil
}

// Delete removes an entry
func (s *WorkLogStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.pool.Exec(ctx, `DELETE FROM worklog_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work log entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &store.NotFoundError{Resource: "work log entry", Key: id}
	}
	return nil
}

// Count returns the number of entries, optionally filtered by user
func (s *WorkLogStore) Count(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM worklog_entries`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}

	var count int
	if err := s.db.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count work log entries: %w", err)
	}
	return count, nil
}

func scanWorkLog(row pgx.Row) (*types.WorkLogEntry, error) {
	var entry types.WorkLogEntry
	var metadata []byte

	err := row.Scan(&entry.ID, &entry.Content, &entry.UserID, &entry.Timestamp,
		&entry.ExtractedSkills, &metadata)
	if err != nil {
		return nil, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode entry metadata: %w", err)
		}
	}
	return &entry, nil
}

func marshalMetadata(metadata map[string]string) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry metadata: %w", err)
	}
	return encoded, nil
}

// stringArray never passes a nil slice to the driver so that TEXT[] columns
// receive an empty array instead of NULL.
func stringArray(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

var _ store.WorkLogStore = (*WorkLogStore)(nil)
