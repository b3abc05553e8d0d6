package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// MemorySkillStore is an in-memory SkillStore. Update runs the mutation
// callback under the store lock, which serializes concurrent updates to the
// same key.
type MemorySkillStore struct {
	mu      sync.Mutex
	records map[string]types.SkillRecord
}

// NewMemorySkillStore creates an empty in-memory skill store.
func NewMemorySkillStore() *MemorySkillStore {
	return &MemorySkillStore{records: make(map[string]types.SkillRecord)}
}

// Get returns a copy of the record for name.
func (s *MemorySkillStore) Get(_ context.Context, name string) (*types.SkillRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[name]
	if !ok {
		return nil, &NotFoundError{Resource: "skill", Key: name}
	}
	copied := cloneSkill(record)
	return &copied, nil
}

// List returns all records sorted by name.
func (s *MemorySkillStore) List(_ context.Context) ([]types.SkillRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(types.SkillRecord) bool { return true }), nil
}

// ListByCategory returns all records in the given category.
func (s *MemorySkillStore) ListByCategory(_ context.Context, category types.SkillCategory) ([]types.SkillRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(r types.SkillRecord) bool { return r.Category == category }), nil
}

// ListByLastUsed returns records with LastUsedAt in [since, until].
func (s *MemorySkillStore) ListByLastUsed(_ context.Context, since, until time.Time) ([]types.SkillRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(r types.SkillRecord) bool {
		if !since.IsZero() && r.LastUsedAt.Before(since) {
			return false
		}
		if !until.IsZero() && r.LastUsedAt.After(until) {
			return false
		}
		return true
	}), nil
}

// Update applies fn to the current record for name. fn receives nil when no
// record exists; returning nil deletes the key.
func (s *MemorySkillStore) Update(_ context.Context, name string, fn UpdateFunc) (*types.SkillRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current *types.SkillRecord
	if record, ok := s.records[name]; ok {
		copied := cloneSkill(record)
		current = &copied
	}

	updated, err := fn(current)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		delete(s.records, name)
		return nil, nil
	}
	s.records[name] = cloneSkill(*updated)
	return updated, nil
}

// Delete removes the record for name.
func (s *MemorySkillStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[name]; !ok {
		return &NotFoundError{Resource: "skill", Key: name}
	}
	delete(s.records, name)
	return nil
}

func (s *MemorySkillStore) collect(keep func(types.SkillRecord) bool) []types.SkillRecord {
	out := make([]types.SkillRecord, 0, len(s.records))
	for _, record := range s.records {
		if keep(record) {
			out = append(out, cloneSkill(record))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func cloneSkill(r types.SkillRecord) types.SkillRecord {
	refs := make([]string, len(r.SourceRefs))
	copy(refs, r.SourceRefs)
	r.SourceRefs = refs
	return r
}

// MemoryWorkLogStore is an in-memory WorkLogStore.
type MemoryWorkLogStore struct {
	mu      sync.Mutex
	entries map[string]types.WorkLogEntry
}

// NewMemoryWorkLogStore creates an empty in-memory work log store.
func NewMemoryWorkLogStore() *MemoryWorkLogStore {
	return &MemoryWorkLogStore{entries: make(map[string]types.WorkLogEntry)}
}

// Create stores a new entry.
func (s *MemoryWorkLogStore) Create(_ context.Context, entry *types.WorkLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = cloneEntry(*entry)
	return nil
}

// Get returns the entry with the given id.
func (s *MemoryWorkLogStore) Get(_ context.Context, id string) (*types.WorkLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, &NotFoundError{Resource: "work log entry", Key: id}
	}
	copied := cloneEntry(entry)
	return &copied, nil
}

// List returns entries matching the filter, newest first.
func (s *MemoryWorkLogStore) List(_ context.Context, filter WorkLogFilter) ([]types.WorkLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.WorkLogEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if filter.UserID != "" && entry.UserID != filter.UserID {
			continue
		}
		if filter.Since != nil && entry.Timestamp.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && entry.Timestamp.After(*filter.Until) {
			continue
		}
		out = append(out, cloneEntry(entry))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, filter.Offset, filter.Limit), nil
}

// Update replaces an existing entry.
func (s *MemoryWorkLogStore) Update(_ context.Context, entry *types.WorkLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ID]; !ok {
		return &NotFoundError{Resource: "work log entry", Key: entry.ID}
	}
	s.entries[entry.ID] = cloneEntry(*entry)
	return nil
}

// Delete removes an entry.
func (s *MemoryWorkLogStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return &NotFoundError{Resource: "work log entry", Key: id}
	}
	delete(s.entries, id)
	return nil
}

// Count returns the number of entries, optionally filtered by user.
func (s *MemoryWorkLogStore) Count(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID == "" {
		return len(s.entries), nil
	}
	count := 0
	for _, entry := range s.entries {
		if entry.UserID == userID {
			count++
		}
	}
	return count, nil
}

func cloneEntry(e types.WorkLogEntry) types.WorkLogEntry {
	skills := make([]string, len(e.ExtractedSkills))
	copy(skills, e.ExtractedSkills)
	e.ExtractedSkills = skills
	if e.Metadata != nil {
		meta := make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			meta[k] = v
		}
		e.Metadata = meta
	}
	return e
}

// MemoryResumeStore is an in-memory ResumeStore.
type MemoryResumeStore struct {
	mu      sync.Mutex
	records map[string]types.ResumeRecord
}

// NewMemoryResumeStore creates an empty in-memory resume store.
func NewMemoryResumeStore() *MemoryResumeStore {
	return &MemoryResumeStore{records: make(map[string]types.ResumeRecord)}
}

// Create stores a new resume record.
func (s *MemoryResumeStore) Create(_ context.Context, record *types.ResumeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = *record
	return nil
}

// Get returns the record with the given id.
func (s *MemoryResumeStore) Get(_ context.Context, id string) (*types.ResumeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "resume", Key: id}
	}
	return &record, nil
}

// List returns records matching the filter, newest first.
func (s *MemoryResumeStore) List(_ context.Context, filter ResumeFilter) ([]types.ResumeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.ResumeRecord, 0, len(s.records))
	for _, record := range s.records {
		if filter.TargetRole != "" && record.TargetRole != filter.TargetRole {
			continue
		}
		if filter.Since != nil && record.GeneratedAt.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && record.GeneratedAt.After(*filter.Until) {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GeneratedAt.Equal(out[j].GeneratedAt) {
			return out[i].GeneratedAt.After(out[j].GeneratedAt)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, filter.Offset, filter.Limit), nil
}

// Delete removes a record.
func (s *MemoryResumeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return &NotFoundError{Resource: "resume", Key: id}
	}
	delete(s.records, id)
	return nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

var (
	_ SkillStore   = (*MemorySkillStore)(nil)
	_ WorkLogStore = (*MemoryWorkLogStore)(nil)
	_ ResumeStore  = (*MemoryResumeStore)(nil)
)
