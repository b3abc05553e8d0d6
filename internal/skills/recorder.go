package skills

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tonypottakkal/verba-resume-journal/internal/store"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// SourceTimestamps resolves the timestamp of a source (work log entry or
// document). RemoveSource needs it to recompute LastUsedAt from the
// remaining references.
type SourceTimestamps interface {
	SourceTimestamp(ctx context.Context, sourceID string) (time.Time, error)
}

// Recorder applies skill detections to the skill store, maintaining the
// invariant that a record's occurrence count equals the size of its source
// reference set. Per-skill serialization is delegated to the store's atomic
// Update.
type Recorder struct {
	store   store.SkillStore
	sources SourceTimestamps
	weights ProficiencyWeights
	now     func() time.Time
	log     *zap.SugaredLogger
}

// NewRecorder creates a Recorder. sources may be nil when RemoveSource will
// never be called (e.g. append-only ingestion). A nil logger disables
// logging.
func NewRecorder(skillStore store.SkillStore, sources SourceTimestamps, weights ProficiencyWeights, logger *zap.SugaredLogger) (*Recorder, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Recorder{
		store:   skillStore,
		sources: sources,
		weights: weights,
		now:     time.Now,
		log:     logger,
	}, nil
}

// WithClock overrides the recorder's clock. Intended for tests.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// RecordDetection registers that the skill was detected in the given source.
// The raw name is normalized first. Re-detection in an already-referenced
// source never increments the occurrence count; it may only advance
// LastUsedAt. The category is fixed at first detection and not overwritten
// afterwards. contextScore may be nil when the extractor supplied no
// usage-depth assessment.
func (r *Recorder) RecordDetection(ctx context.Context, rawName string, category types.SkillCategory, sourceID string, detectedAt time.Time, contextScore *float64) (*types.SkillRecord, error) {
	name := Normalize(rawName)
	if name == "" {
		return nil, fmt.Errorf("skill name is empty after normalization: %q", rawName)
	}
	if !ValidCategory(category) {
		category = Categorize(name)
	}

	return r.store.Update(ctx, name, func(existing *types.SkillRecord) (*types.SkillRecord, error) {
		record := existing
		if record == nil {
			record = &types.SkillRecord{
				Name:         name,
				Category:     category,
				SourceRefs:   []string{},
				LastUsedAt:   detectedAt,
				ContextScore: NeutralContextScore,
			}
		}

		// Re-detection in an already-referenced source may only advance
		// LastUsedAt; count and context score stay as they are.
		newSource := !record.HasSource(sourceID)
		if newSource {
			record.SourceRefs = append(record.SourceRefs, sourceID)
			if contextScore != nil {
				record.ContextScore = *contextScore
			}
		}
		record.OccurrenceCount = len(record.SourceRefs)
		if detectedAt.After(record.LastUsedAt) {
			record.LastUsedAt = detectedAt
		}

		proficiency, err := ComputeProficiency(record.OccurrenceCount, record.LastUsedAt, record.ContextScore, r.now(), r.weights)
		if err != nil {
			return nil, err
		}
		record.ProficiencyScore = proficiency
		return record, nil
	})
}

// RemoveSource removes sourceID from the record's reference set. The record
// is deleted once its reference set is empty; otherwise LastUsedAt is
// recomputed from the remaining sources and the proficiency re-scored.
// Returns (nil, nil) when the record was deleted.
func (r *Recorder) RemoveSource(ctx context.Context, rawName, sourceID string) (*types.SkillRecord, error) {
	name := Normalize(rawName)

	return r.store.Update(ctx, name, func(existing *types.SkillRecord) (*types.SkillRecord, error) {
		if existing == nil {
			return nil, &store.NotFoundError{Resource: "skill", Key: name}
		}

		refs := existing.SourceRefs[:0]
		removed := false
		for _, ref := range existing.SourceRefs {
			if ref == sourceID && !removed {
				removed = true
				continue
			}
			refs = append(refs, ref)
		}
		if !removed {
			return nil, &store.NotFoundError{Resource: "skill source reference", Key: sourceID}
		}
		if len(refs) == 0 {
			// Last reference gone: the record must not outlive its evidence.
			return nil, nil
		}

		existing.SourceRefs = refs
		existing.OccurrenceCount = len(refs)

		lastUsed, err := r.latestSourceTimestamp(ctx, refs)
		if err != nil {
			return nil, err
		}
		existing.LastUsedAt = lastUsed

		proficiency, err := ComputeProficiency(existing.OccurrenceCount, existing.LastUsedAt, existing.ContextScore, r.now(), r.weights)
		if err != nil {
			return nil, err
		}
		existing.ProficiencyScore = proficiency
		return existing, nil
	})
}

func (r *Recorder) latestSourceTimestamp(ctx context.Context, refs []string) (time.Time, error) {
	if r.sources == nil {
		return time.Time{}, fmt.Errorf("no source timestamp resolver configured")
	}
	var latest time.Time
	for _, ref := range refs {
		ts, err := r.sources.SourceTimestamp(ctx, ref)
		if err != nil {
			if store.IsNotFound(err) {
				// Source deleted concurrently; skip it rather than fail.
				r.log.Warnw("source missing while recomputing last-used", "source_id", ref)
				continue
			}
			return time.Time{}, err
		}
		if ts.After(latest) {
			latest = ts
		}
	}
	return latest, nil
}
