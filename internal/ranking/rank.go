package ranking

import (
	"math"
	"sort"
	"time"

	"github.com/tonypottakkal/verba-resume-journal/internal/scoring"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// Ranked pairs a candidate with its composite score and the per-component
// sub-scores for observability.
type Ranked struct {
	Candidate     types.Candidate `json:"candidate"`
	Score         float64         `json:"score"`
	BaseScore     float64         `json:"base_score"`
	SkillBonus    float64         `json:"skill_bonus"`
	RecencyBoost  float64         `json:"recency_boost"`
	QualityScore  float64         `json:"quality_score"`
	MatchedSkills []string        `json:"matched_skills,omitempty"`
}

// Result is the outcome of a ranking call. ClampedBaseScores counts
// candidates whose base relevance had to be clamped; repeated clamping
// points at a data-quality problem in the search provider.
type Result struct {
	Entries           []Ranked
	ClampedBaseScores int
}

// Rank filters, scores, sorts, and caps the candidate pool against the job
// requirements. It is a pure function over its inputs: no I/O, always
// terminates, and identical inputs produce identical output including
// tie-break order. An empty pool yields an empty result, not an error.
func Rank(candidates []types.Candidate, requirements types.JobRequirements, params Params, now time.Time) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Entries: make([]Ranked, 0, len(candidates))}

	for _, candidate := range candidates {
		if params.DateRangeDays >= 0 {
			cutoff := now.AddDate(0, 0, -params.DateRangeDays)
			if candidate.Timestamp.Before(cutoff) {
				continue
			}
		}

		base := candidate.BaseRelevance
		if math.IsNaN(base) || math.IsInf(base, 0) || base < 0 || base > 1 {
			base = scoring.Clamp01(base)
			result.ClampedBaseScores++
		}

		ageDays := scoring.DaysBetween(now, candidate.Timestamp)
		bonus, matched := skillBonus(candidate.Skills, requirements.RequiredSkills)
		boost := recencyBoost(ageDays, params.BoostRecent)
		quality := qualityScore(candidate.Content)

		score := base*params.WeightBase +
			bonus*params.WeightSkill +
			boost*params.WeightRecency +
			quality*params.WeightQuality

		result.Entries = append(result.Entries, Ranked{
			Candidate:     candidate,
			Score:         score,
			BaseScore:     base,
			SkillBonus:    bonus,
			RecencyBoost:  boost,
			QualityScore:  quality,
			MatchedSkills: matched,
		})
	}

	sort.Slice(result.Entries, func(i, j int) bool {
		a, b := result.Entries[i], result.Entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Candidate.Timestamp.Equal(b.Candidate.Timestamp) {
			return a.Candidate.Timestamp.After(b.Candidate.Timestamp)
		}
		return a.Candidate.ID < b.Candidate.ID
	})

	if limit := params.effectiveLimit(); len(result.Entries) > limit {
		result.Entries = result.Entries[:limit]
	}

	return result, nil
}
