package skills

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonypottakkal/verba-resume-journal/internal/store"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

type fakeSources struct {
	times map[string]time.Time
}

func (f *fakeSources) SourceTimestamp(_ context.Context, id string) (time.Time, error) {
	ts, ok := f.times[id]
	if !ok {
		return time.Time{}, &store.NotFoundError{Resource: "work log entry", Key: id}
	}
	return ts, nil
}

func newTestRecorder(t *testing.T, sources *fakeSources) (*Recorder, *store.MemorySkillStore) {
	t.Helper()
	skillStore := store.NewMemorySkillStore()
	recorder, err := NewRecorder(skillStore, sources, DefaultProficiencyWeights(), nil)
	require.NoError(t, err)
	return recorder, skillStore
}

func TestRecordDetection_AliasesMergeToOneRecord(t *testing.T) {
	ctx := context.Background()
	recorder, skillStore := newTestRecorder(t, nil)

	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.AddDate(0, 1, 0)

	_, err := recorder.RecordDetection(ctx, "JS", types.CategoryProgrammingLanguages, "doc1", t0, nil)
	require.NoError(t, err)
	record, err := recorder.RecordDetection(ctx, "JavaScript", types.CategoryProgrammingLanguages, "doc2", t1, nil)
	require.NoError(t, err)

	assert.Equal(t, "JavaScript", record.Name)
	assert.Equal(t, 2, record.OccurrenceCount)
	assert.ElementsMatch(t, []string{"doc1", "doc2"}, record.SourceRefs)
	assert.True(t, record.LastUsedAt.Equal(t1))

	all, err := skillStore.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecordDetection_NoDoubleCounting(t *testing.T) {
	ctx := context.Background()
	recorder, _ := newTestRecorder(t, nil)

	t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	first, err := recorder.RecordDetection(ctx, "Docker", types.CategoryDevOpsTools, "log1", t0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.OccurrenceCount)

	// Same source again: count unchanged, newer timestamp advances LastUsedAt.
	again, err := recorder.RecordDetection(ctx, "Docker", types.CategoryDevOpsTools, "log1", t0.AddDate(0, 0, 7), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, again.OccurrenceCount)
	assert.Equal(t, []string{"log1"}, again.SourceRefs)
	assert.True(t, again.LastUsedAt.Equal(t0.AddDate(0, 0, 7)))

	// An older re-detection does not move LastUsedAt backwards.
	older, err := recorder.RecordDetection(ctx, "Docker", types.CategoryDevOpsTools, "log1", t0.AddDate(0, 0, -30), nil)
	require.NoError(t, err)
	assert.True(t, older.LastUsedAt.Equal(t0.AddDate(0, 0, 7)))
}

func TestRecordDetection_SameSourceKeepsContextScore(t *testing.T) {
	ctx := context.Background()
	recorder, _ := newTestRecorder(t, nil)

	t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	high := 0.9
	low := 0.2

	first, err := recorder.RecordDetection(ctx, "Kafka", types.CategoryTools, "log1", t0, &high)
	require.NoError(t, err)
	assert.Equal(t, high, first.ContextScore)

	// Re-detection in the same source only advances LastUsedAt.
	again, err := recorder.RecordDetection(ctx, "Kafka", types.CategoryTools, "log1", t0.AddDate(0, 0, 1), &low)
	require.NoError(t, err)
	assert.Equal(t, high, again.ContextScore)
	assert.True(t, again.LastUsedAt.Equal(t0.AddDate(0, 0, 1)))

	// A new source may update the score.
	other, err := recorder.RecordDetection(ctx, "Kafka", types.CategoryTools, "log2", t0.AddDate(0, 0, 2), &low)
	require.NoError(t, err)
	assert.Equal(t, low, other.ContextScore)
}

func TestRecordDetection_CategoryFirstWriteWins(t *testing.T) {
	ctx := context.Background()
	recorder, _ := newTestRecorder(t, nil)

	t0 := time.Now()
	first, err := recorder.RecordDetection(ctx, "Terraform", types.CategoryDevOpsTools, "a", t0, nil)
	require.NoError(t, err)
	assert.Equal(t, types.CategoryDevOpsTools, first.Category)

	second, err := recorder.RecordDetection(ctx, "Terraform", types.CategoryTools, "b", t0, nil)
	require.NoError(t, err)
	assert.Equal(t, types.CategoryDevOpsTools, second.Category)
}

func TestRecordDetection_InvalidCategoryFallsBack(t *testing.T) {
	ctx := context.Background()
	recorder, _ := newTestRecorder(t, nil)

	record, err := recorder.RecordDetection(ctx, "Python", "languages i like", "a", time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, types.CategoryProgrammingLanguages, record.Category)
}

func TestCountInvariant_AfterMixedOperations(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	sources := &fakeSources{times: map[string]time.Time{
		"s1": t0,
		"s2": t0.AddDate(0, 0, 10),
		"s3": t0.AddDate(0, 0, 20),
	}}
	recorder, skillStore := newTestRecorder(t, sources)

	for _, src := range []string{"s1", "s2", "s3"} {
		_, err := recorder.RecordDetection(ctx, "Go", types.CategoryProgrammingLanguages, src, sources.times[src], nil)
		require.NoError(t, err)
	}
	_, err := recorder.RemoveSource(ctx, "Go", "s3")
	require.NoError(t, err)

	records, err := skillStore.List(ctx)
	require.NoError(t, err)
	for _, record := range records {
		assert.Equal(t, record.OccurrenceCount, len(record.SourceRefs))
	}
}

func TestRemoveSource_RecomputesLastUsed(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	sources := &fakeSources{times: map[string]time.Time{
		"old": t0,
		"new": t0.AddDate(0, 2, 0),
	}}
	recorder, _ := newTestRecorder(t, sources)

	_, err := recorder.RecordDetection(ctx, "Redis", types.CategoryDatabases, "old", sources.times["old"], nil)
	require.NoError(t, err)
	_, err = recorder.RecordDetection(ctx, "Redis", types.CategoryDatabases, "new", sources.times["new"], nil)
	require.NoError(t, err)

	record, err := recorder.RemoveSource(ctx, "Redis", "new")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 1, record.OccurrenceCount)
	assert.True(t, record.LastUsedAt.Equal(t0))
}

func TestRemoveSource_DeletesOnEmptySet(t *testing.T) {
	ctx := context.Background()
	t0 := time.Now()
	sources := &fakeSources{times: map[string]time.Time{"only": t0}}
	recorder, skillStore := newTestRecorder(t, sources)

	_, err := recorder.RecordDetection(ctx, "Jenkins", types.CategoryDevOpsTools, "only", t0, nil)
	require.NoError(t, err)

	record, err := recorder.RemoveSource(ctx, "Jenkins", "only")
	require.NoError(t, err)
	assert.Nil(t, record)

	_, err = skillStore.Get(ctx, "Jenkins")
	assert.True(t, store.IsNotFound(err))

	// A second removal reports the record as missing.
	_, err = recorder.RemoveSource(ctx, "Jenkins", "only")
	assert.True(t, store.IsNotFound(err))
}

func TestRemoveSource_UnknownRecord(t *testing.T) {
	recorder, _ := newTestRecorder(t, nil)
	_, err := recorder.RemoveSource(context.Background(), "Nonexistent", "src")
	assert.True(t, store.IsNotFound(err))
}

func TestRecordDetection_ContextScoreAffectsProficiency(t *testing.T) {
	ctx := context.Background()
	recorder, _ := newTestRecorder(t, nil)
	now := time.Now()

	deep := 1.0
	withContext, err := recorder.RecordDetection(ctx, "Kafka", types.CategoryTools, "a", now, &deep)
	require.NoError(t, err)

	neutral, err := recorder.RecordDetection(ctx, "Spark", types.CategoryTools, "a", now, nil)
	require.NoError(t, err)

	assert.Greater(t, withContext.ProficiencyScore, neutral.ProficiencyScore)
	assert.Equal(t, NeutralContextScore, neutral.ContextScore)
}
