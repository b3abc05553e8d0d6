package ranking

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

var rankNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func baseOnlyParams() Params {
	p := DefaultParams()
	p.WeightSkill = 0
	p.WeightRecency = 0
	p.WeightQuality = 0
	p.BoostRecent = false
	return p
}

func TestRank_OrdersByScoreWithDeterministicTieBreak(t *testing.T) {
	older := rankNow.AddDate(0, 0, -20)
	newer := rankNow.AddDate(0, 0, -10)
	candidates := []types.Candidate{
		{ID: "c", BaseRelevance: 0.5, Timestamp: older},
		{ID: "a", BaseRelevance: 0.9, Timestamp: older},
		{ID: "b", BaseRelevance: 0.5, Timestamp: newer},
	}

	result, err := Rank(candidates, types.JobRequirements{}, baseOnlyParams(), rankNow)
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)

	// Highest base first, then the 0.5 tie broken by newer timestamp.
	assert.Equal(t, "a", result.Entries[0].Candidate.ID)
	assert.Equal(t, "b", result.Entries[1].Candidate.ID)
	assert.Equal(t, "c", result.Entries[2].Candidate.ID)
}

func TestRank_TieBreakByIDWhenTimestampsEqual(t *testing.T) {
	ts := rankNow.AddDate(0, 0, -5)
	candidates := []types.Candidate{
		{ID: "zeta", BaseRelevance: 0.5, Timestamp: ts},
		{ID: "alpha", BaseRelevance: 0.5, Timestamp: ts},
	}

	result, err := Rank(candidates, types.JobRequirements{}, baseOnlyParams(), rankNow)
	require.NoError(t, err)
	assert.Equal(t, "alpha", result.Entries[0].Candidate.ID)
	assert.Equal(t, "zeta", result.Entries[1].Candidate.ID)
}

func TestRank_Deterministic(t *testing.T) {
	candidates := []types.Candidate{
		{ID: "a", BaseRelevance: 0.4, Timestamp: rankNow.AddDate(0, 0, -40), Skills: []string{"Go", "Docker"}},
		{ID: "b", BaseRelevance: 0.4, Timestamp: rankNow.AddDate(0, 0, -40), Skills: []string{"Python"}},
		{ID: "c", BaseRelevance: 0.7, Timestamp: rankNow.AddDate(0, 0, -200)},
	}
	requirements := types.JobRequirements{RequiredSkills: []string{"go", "python", "aws"}}

	first, err := Rank(candidates, requirements, DefaultParams(), rankNow)
	require.NoError(t, err)
	second, err := Rank(candidates, requirements, DefaultParams(), rankNow)
	require.NoError(t, err)
	assert.Equal(t, first.Entries, second.Entries)
}

func TestRank_Monotonicity(t *testing.T) {
	candidates := []types.Candidate{
		{ID: "a", BaseRelevance: 0.3, Timestamp: rankNow.AddDate(0, 0, -10)},
		{ID: "b", BaseRelevance: 0.5, Timestamp: rankNow.AddDate(0, 0, -10)},
	}

	before, err := Rank(candidates, types.JobRequirements{}, baseOnlyParams(), rankNow)
	require.NoError(t, err)
	assert.Equal(t, "b", before.Entries[0].Candidate.ID)

	// Raising a's base relevance never lowers its position.
	candidates[0].BaseRelevance = 0.9
	after, err := Rank(candidates, types.JobRequirements{}, baseOnlyParams(), rankNow)
	require.NoError(t, err)
	assert.Equal(t, "a", after.Entries[0].Candidate.ID)
}

func TestRank_DateFilterIsHardExclusion(t *testing.T) {
	params := DefaultParams()
	params.DateRangeDays = 365

	candidates := []types.Candidate{
		{ID: "old", BaseRelevance: 0.99, Timestamp: rankNow.AddDate(0, 0, -400)},
	}

	result, err := Rank(candidates, types.JobRequirements{}, params, rankNow)
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestRank_DateRangeZeroExcludesEverythingOlderThanNow(t *testing.T) {
	params := DefaultParams()
	params.DateRangeDays = 0

	candidates := []types.Candidate{
		{ID: "a", BaseRelevance: 0.9, Timestamp: rankNow.AddDate(0, 0, -1)},
	}

	result, err := Rank(candidates, types.JobRequirements{}, params, rankNow)
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestRank_EmptyPool(t *testing.T) {
	result, err := Rank(nil, types.JobRequirements{}, DefaultParams(), rankNow)
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestRank_ClampsDirtyBaseScores(t *testing.T) {
	candidates := []types.Candidate{
		{ID: "nan", BaseRelevance: math.NaN(), Timestamp: rankNow},
		{ID: "neg", BaseRelevance: -3, Timestamp: rankNow},
		{ID: "big", BaseRelevance: 42, Timestamp: rankNow},
		{ID: "ok", BaseRelevance: 0.5, Timestamp: rankNow},
	}

	result, err := Rank(candidates, types.JobRequirements{}, baseOnlyParams(), rankNow)
	require.NoError(t, err)
	require.Len(t, result.Entries, 4)
	assert.Equal(t, 3, result.ClampedBaseScores)

	for _, entry := range result.Entries {
		assert.False(t, math.IsNaN(entry.Score))
		assert.GreaterOrEqual(t, entry.BaseScore, 0.0)
		assert.LessOrEqual(t, entry.BaseScore, 1.0)
	}
	// The clamped-to-1 candidate outranks the legitimate 0.5.
	assert.Equal(t, "big", result.Entries[0].Candidate.ID)
}

func TestRank_CapsToLimit(t *testing.T) {
	params := baseOnlyParams()
	params.Limit = MinLimit

	candidates := make([]types.Candidate, 12)
	for i := range candidates {
		candidates[i] = types.Candidate{
			ID:            string(rune('a' + i)),
			BaseRelevance: float64(i) / 12,
			Timestamp:     rankNow,
		}
	}

	result, err := Rank(candidates, types.JobRequirements{}, params, rankNow)
	require.NoError(t, err)
	assert.Len(t, result.Entries, MinLimit)
}

func TestRank_RejectsInvalidLimit(t *testing.T) {
	params := DefaultParams()
	params.Limit = 3

	_, err := Rank(nil, types.JobRequirements{}, params, rankNow)
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)

	params.Limit = 100
	_, err = Rank(nil, types.JobRequirements{}, params, rankNow)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRank_SkillBonusContributes(t *testing.T) {
	params := DefaultParams()
	params.BoostRecent = false
	params.WeightQuality = 0

	content := strings.TrimSpace(strings.Repeat("shipped features ", 30))
	candidates := []types.Candidate{
		{ID: "match", BaseRelevance: 0.5, Timestamp: rankNow, Skills: []string{"Go", "Kubernetes"}, Content: content},
		{ID: "nomatch", BaseRelevance: 0.5, Timestamp: rankNow, Skills: []string{"Excel"}, Content: content},
	}
	requirements := types.JobRequirements{RequiredSkills: []string{"go", "k8s"}}

	result, err := Rank(candidates, requirements, params, rankNow)
	require.NoError(t, err)
	assert.Equal(t, "match", result.Entries[0].Candidate.ID)
	assert.InDelta(t, 1.0, result.Entries[0].SkillBonus, 0.0001)
	assert.Equal(t, []string{"Go", "Kubernetes"}, result.Entries[0].MatchedSkills)
	assert.Greater(t, result.Entries[0].Score, result.Entries[1].Score)
}
