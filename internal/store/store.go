// Package store defines the persistence contracts for skill records, work
// log entries, and resume history, plus an in-memory implementation used by
// tests and by deployments without a database.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// NotFoundError indicates that a referenced record does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// UpdateFunc transforms the current skill record for a canonical name.
// A nil argument means no record exists yet. Returning a nil record deletes
// the key. The store invokes it under per-key serialization so that
// concurrent detections of the same skill cannot interleave.
type UpdateFunc func(existing *types.SkillRecord) (*types.SkillRecord, error)

// SkillStore persists skill records keyed by canonical skill name.
type SkillStore interface {
	Get(ctx context.Context, name string) (*types.SkillRecord, error)
	List(ctx context.Context) ([]types.SkillRecord, error)
	ListByCategory(ctx context.Context, category types.SkillCategory) ([]types.SkillRecord, error)
	ListByLastUsed(ctx context.Context, since, until time.Time) ([]types.SkillRecord, error)
	Update(ctx context.Context, name string, fn UpdateFunc) (*types.SkillRecord, error)
	Delete(ctx context.Context, name string) error
}

// WorkLogFilter narrows a work log listing.
type WorkLogFilter struct {
	UserID string
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}

// WorkLogStore persists work log entries.
type WorkLogStore interface {
	Create(ctx context.Context, entry *types.WorkLogEntry) error
	Get(ctx context.Context, id string) (*types.WorkLogEntry, error)
	List(ctx context.Context, filter WorkLogFilter) ([]types.WorkLogEntry, error)
	Update(ctx context.Context, entry *types.WorkLogEntry) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, userID string) (int, error)
}

// ResumeFilter narrows a resume history listing.
type ResumeFilter struct {
	TargetRole string
	Since      *time.Time
	Until      *time.Time
	Limit      int
	Offset     int
}

// ResumeStore persists generated resume records.
type ResumeStore interface {
	Create(ctx context.Context, record *types.ResumeRecord) error
	Get(ctx context.Context, id string) (*types.ResumeRecord, error)
	List(ctx context.Context, filter ResumeFilter) ([]types.ResumeRecord, error)
	Delete(ctx context.Context, id string) error
}
