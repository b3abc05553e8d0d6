// Package worklog coordinates work log entries: persistence, skill
// extraction, skill record upkeep, and search indexing.
package worklog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tonypottakkal/verba-resume-journal/internal/extraction"
	"github.com/tonypottakkal/verba-resume-journal/internal/skills"
	"github.com/tonypottakkal/verba-resume-journal/internal/store"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// SkillExtractor identifies skills in free-form text.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, content string) ([]extraction.DetectedSkill, error)
}

// Indexer maintains the full-text index over work log entries.
type Indexer interface {
	IndexEntry(ctx context.Context, entry *types.WorkLogEntry) error
	Delete(ctx context.Context, id string) error
}

// Manager owns the lifecycle of work log entries. Creating, updating, and
// deleting an entry keeps the skill records and the search index consistent
// with the stored entries.
type Manager struct {
	logs      store.WorkLogStore
	extractor SkillExtractor
	recorder  *skills.Recorder
	index     Indexer
	log       *zap.SugaredLogger
	now       func() time.Time
}

// NewManager creates a Manager. A nil logger disables logging.
func NewManager(logs store.WorkLogStore, extractor SkillExtractor, recorder *skills.Recorder, index Indexer, logger *zap.SugaredLogger) *Manager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Manager{
		logs:      logs,
		extractor: extractor,
		recorder:  recorder,
		index:     index,
		log:       logger,
		now:       time.Now,
	}
}

// WithClock overrides the manager's clock. Intended for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Create journals a new entry. Skills are extracted from the content and
// recorded against the new entry's id. Extraction failure does not block the
// entry; it is stored with an empty skill list and can be re-extracted later
// via Update.
func (m *Manager) Create(ctx context.Context, content, userID string, metadata map[string]string) (*types.WorkLogEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("work log content is empty")
	}

	entry := &types.WorkLogEntry{
		ID:              uuid.NewString(),
		Content:         content,
		UserID:          userID,
		Timestamp:       m.now().UTC(),
		ExtractedSkills: []string{},
		Metadata:        metadata,
	}

	if err := m.logs.Create(ctx, entry); err != nil {
		return nil, err
	}

	detected, err := m.extractor.ExtractSkills(ctx, content)
	if err != nil {
		m.log.Warnw("skill extraction failed, entry stored without skills",
			"entry_id", entry.ID, "error", err)
	} else {
		entry.ExtractedSkills = m.recordDetections(ctx, detected, entry.ID, entry.Timestamp)
		if err := m.logs.Update(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err := m.index.IndexEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("entry stored but indexing failed: %w", err)
	}

	m.log.Infow("work log entry created",
		"entry_id", entry.ID, "skills", len(entry.ExtractedSkills))
	return entry, nil
}

// Get returns a single entry.
func (m *Manager) Get(ctx context.Context, id string) (*types.WorkLogEntry, error) {
	return m.logs.Get(ctx, id)
}

// List returns entries matching the filter.
func (m *Manager) List(ctx context.Context, filter store.WorkLogFilter) ([]types.WorkLogEntry, error) {
	return m.logs.List(ctx, filter)
}

// Count returns the number of stored entries, optionally for one user.
func (m *Manager) Count(ctx context.Context, userID string) (int, error) {
	return m.logs.Count(ctx, userID)
}

// Update replaces an entry's content and metadata, re-extracts its skills,
// and reconciles the skill records: newly detected skills gain this entry as
// a source, skills no longer detected lose it.
func (m *Manager) Update(ctx context.Context, id, content string, metadata map[string]string) (*types.WorkLogEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("work log content is empty")
	}

	entry, err := m.logs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := entry.ExtractedSkills
	entry.Content = content
	if metadata != nil {
		entry.Metadata = metadata
	}

	detected, err := m.extractor.ExtractSkills(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("skill extraction failed: %w", err)
	}
	entry.ExtractedSkills = m.recordDetections(ctx, detected, entry.ID, entry.Timestamp)

	m.removeStaleSkills(ctx, previous, entry.ExtractedSkills, entry.ID)

	if err := m.logs.Update(ctx, entry); err != nil {
		return nil, err
	}
	if err := m.index.IndexEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("entry updated but indexing failed: %w", err)
	}

	m.log.Infow("work log entry updated",
		"entry_id", entry.ID, "skills", len(entry.ExtractedSkills))
	return entry, nil
}

// Delete removes an entry and withdraws it as a source from every skill it
// contributed to. Skill records left without sources are deleted by the
// recorder.
func (m *Manager) Delete(ctx context.Context, id string) error {
	entry, err := m.logs.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, name := range entry.ExtractedSkills {
		if _, err := m.recorder.RemoveSource(ctx, name, id); err != nil {
			if store.IsNotFound(err) {
				// Skill record already gone or never referenced this entry.
				m.log.Warnw("skill reference missing during entry delete",
					"entry_id", id, "skill", name)
				continue
			}
			return err
		}
	}

	if err := m.logs.Delete(ctx, id); err != nil {
		return err
	}
	if err := m.index.Delete(ctx, id); err != nil {
		return fmt.Errorf("entry deleted but index cleanup failed: %w", err)
	}

	m.log.Infow("work log entry deleted", "entry_id", id)
	return nil
}

// recordDetections records each detected skill against sourceID and returns
// the sorted set of canonical names that were recorded. Individual failures
// are logged and skipped so one bad detection does not lose the rest.
func (m *Manager) recordDetections(ctx context.Context, detected []extraction.DetectedSkill, sourceID string, detectedAt time.Time) []string {
	seen := make(map[string]bool, len(detected))
	names := make([]string, 0, len(detected))

	for _, d := range detected {
		canonical := skills.Normalize(d.Name)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true

		if _, err := m.recorder.RecordDetection(ctx, d.Name, d.Category, sourceID, detectedAt, d.ContextScore); err != nil {
			m.log.Warnw("failed to record skill detection",
				"skill", d.Name, "source_id", sourceID, "error", err)
			continue
		}
		names = append(names, canonical)
	}

	sort.Strings(names)
	return names
}

// removeStaleSkills withdraws sourceID from skills in previous that are not
// in current.
func (m *Manager) removeStaleSkills(ctx context.Context, previous, current []string, sourceID string) {
	kept := make(map[string]bool, len(current))
	for _, name := range current {
		kept[name] = true
	}
	for _, name := range previous {
		if kept[name] {
			continue
		}
		if _, err := m.recorder.RemoveSource(ctx, name, sourceID); err != nil && !store.IsNotFound(err) {
			m.log.Warnw("failed to withdraw skill source",
				"skill", name, "source_id", sourceID, "error", err)
		}
	}
}

// SourceTimestamps adapts a WorkLogStore to the recorder's timestamp lookup.
type SourceTimestamps struct {
	Logs store.WorkLogStore
}

// SourceTimestamp returns the timestamp of the entry with the given id.
func (s SourceTimestamps) SourceTimestamp(ctx context.Context, sourceID string) (time.Time, error) {
	entry, err := s.Logs.Get(ctx, sourceID)
	if err != nil {
		return time.Time{}, err
	}
	return entry.Timestamp, nil
}

var _ skills.SourceTimestamps = SourceTimestamps{}
