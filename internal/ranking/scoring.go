package ranking

import (
	"sort"

	"github.com/tonypottakkal/verba-resume-journal/internal/scoring"
	"github.com/tonypottakkal/verba-resume-journal/internal/skills"
)

// Quality score shape for long content: linear decay from 1.0 at 500 words,
// reaching 0.5 at 1000 words on the same slope, floored at 0.2 (hit at 1300
// words).
const (
	qualityFullMin   = 50
	qualityFullMax   = 500
	qualityDecaySpan = 1000.0
	qualityFloor     = 0.2
)

// Recency boost steps over candidate age in days.
var recencySteps = []struct {
	maxAgeDays float64
	boost      float64
}{
	{30, 1.0},
	{90, 0.8},
	{180, 0.6},
	{365, 0.4},
}

const recencyFloorBoost = 0.2

// skillBonus returns the fraction of required skills the candidate's skills
// cover, matched case-insensitively through the canonical skill form, plus
// the matched canonical names sorted for determinism. An empty requirement
// set yields zero, not a division by zero.
func skillBonus(candidateSkills, requiredSkills []string) (float64, []string) {
	if len(requiredSkills) == 0 || len(candidateSkills) == 0 {
		return 0, nil
	}

	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		if canonical := skills.Normalize(s); canonical != "" {
			have[canonical] = struct{}{}
		}
	}

	required := make(map[string]struct{}, len(requiredSkills))
	for _, s := range requiredSkills {
		if canonical := skills.Normalize(s); canonical != "" {
			required[canonical] = struct{}{}
		}
	}

	matched := make([]string, 0, len(required))
	for name := range required {
		if _, ok := have[name]; ok {
			matched = append(matched, name)
		}
	}
	sort.Strings(matched)

	denominator := len(required)
	if denominator < 1 {
		denominator = 1
	}
	return float64(len(matched)) / float64(denominator), matched
}

// recencyBoost maps candidate age to a step boost. Disabled boosting removes
// the component entirely rather than neutralizing it to 1.
func recencyBoost(ageDays float64, enabled bool) float64 {
	if !enabled {
		return 0
	}
	for _, step := range recencySteps {
		if ageDays <= step.maxAgeDays {
			return step.boost
		}
	}
	return recencyFloorBoost
}

// qualityScore rates content length: too-short entries ramp up to 1.0 at 50
// words, 50-500 words score 1.0, and longer entries decay linearly (0.5 at
// 1000 words, floor 0.2).
func qualityScore(content string) float64 {
	words := float64(scoring.WordCount(content))
	switch {
	case words < qualityFullMin:
		return words / qualityFullMin
	case words <= qualityFullMax:
		return 1.0
	default:
		score := 1.0 - (words-qualityFullMax)/qualityDecaySpan
		if score < qualityFloor {
			return qualityFloor
		}
		return score
	}
}
