package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ix.Close() })
	return ix
}

func TestIndexAndSearch(t *testing.T) {
	ix := newTestIndex(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []*types.WorkLogEntry{
		{
			ID:              "log-1",
			Content:         "Migrated the payment service to Kubernetes",
			ExtractedSkills: []string{"Kubernetes", "Go"},
			UserID:          "user-1",
			Timestamp:       now,
		},
		{
			ID:              "log-2",
			Content:         "Wrote a data pipeline in Python",
			ExtractedSkills: []string{"Python"},
			UserID:          "user-1",
			Timestamp:       now.AddDate(0, 0, -10),
		},
	}
	for _, entry := range entries {
		require.NoError(t, ix.IndexEntry(ctx, entry))
	}

	hits, err := ix.Search(ctx, "Kubernetes", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "log-1", hits[0].ID)
	assert.Contains(t, hits[0].Content, "Kubernetes")
	assert.Contains(t, hits[0].Skills, "Kubernetes")
	assert.Equal(t, "worklog", hits[0].Source)
	assert.Equal(t, now, hits[0].Timestamp.UTC())
}

func TestSearch_ScoresNormalized(t *testing.T) {
	ix := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.IndexEntry(ctx, &types.WorkLogEntry{
		ID:      "log-1",
		Content: "Kubernetes Kubernetes Kubernetes cluster work",
	}))
	require.NoError(t, ix.IndexEntry(ctx, &types.WorkLogEntry{
		ID:      "log-2",
		Content: "Briefly touched Kubernetes and many other unrelated things today",
	}))

	hits, err := ix.Search(ctx, "Kubernetes", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, 1.0, hits[0].BaseRelevance, "top hit gets relevance 1.0")
	for _, hit := range hits {
		assert.GreaterOrEqual(t, hit.BaseRelevance, 0.0)
		assert.LessOrEqual(t, hit.BaseRelevance, 1.0)
	}
}

func TestSearch_NoResults(t *testing.T) {
	ix := newTestIndex(t)

	hits, err := ix.Search(context.Background(), "nonexistent", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndexEntry_ReplaceAndDelete(t *testing.T) {
	ix := newTestIndex(t)
	ctx := context.Background()

	entry := &types.WorkLogEntry{ID: "log-1", Content: "Worked with Terraform"}
	require.NoError(t, ix.IndexEntry(ctx, entry))

	entry.Content = "Worked with Ansible"
	require.NoError(t, ix.IndexEntry(ctx, entry))

	hits, err := ix.Search(ctx, "Terraform", 10)
	require.NoError(t, err)
	assert.Empty(t, hits, "re-indexing replaces the previous document")

	hits, err = ix.Search(ctx, "Ansible", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	require.NoError(t, ix.Delete(ctx, "log-1"))
	hits, err = ix.Search(ctx, "Ansible", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_LimitRespected(t *testing.T) {
	ix := newTestIndex(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, ix.IndexEntry(ctx, &types.WorkLogEntry{
			ID:      string(rune('a' + i)),
			Content: "Debugging Go services",
		}))
	}

	hits, err := ix.Search(ctx, "Go", 3)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}
