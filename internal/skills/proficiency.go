package skills

import (
	"fmt"
	"math"
	"time"

	"github.com/tonypottakkal/verba-resume-journal/internal/scoring"
)

const (
	// frequencySaturation is the occurrence count at which the frequency
	// component reaches its maximum.
	frequencySaturation = 50.0
	// recencyDecayDays is the e-folding time of the recency component.
	recencyDecayDays = 180.0
	// NeutralContextScore is used when the extractor supplied no usage-depth
	// assessment, so unassessed skills are not penalized.
	NeutralContextScore = 0.5

	weightEpsilon = 1e-6
)

// ProficiencyWeights are the relative weights of the proficiency components.
// They must sum to 1.0 within a small epsilon.
type ProficiencyWeights struct {
	Frequency float64 `json:"frequency"`
	Recency   float64 `json:"recency"`
	Context   float64 `json:"context"`
}

// DefaultProficiencyWeights returns the standard weighting.
func DefaultProficiencyWeights() ProficiencyWeights {
	return ProficiencyWeights{Frequency: 0.6, Recency: 0.3, Context: 0.1}
}

// Validate rejects weight configurations that do not sum to 1.0.
func (w ProficiencyWeights) Validate() error {
	sum := w.Frequency + w.Recency + w.Context
	if math.IsNaN(sum) || math.Abs(sum-1.0) > weightEpsilon {
		return &ConfigurationError{
			Message: fmt.Sprintf("proficiency weights must sum to 1.0, got %g", sum),
		}
	}
	if w.Frequency < 0 || w.Recency < 0 || w.Context < 0 {
		return &ConfigurationError{Message: "proficiency weights must be non-negative"}
	}
	return nil
}

// ComputeProficiency derives a [0, 1] proficiency estimate from how often a
// skill was seen, how recently it was used, and how deeply the extractor
// judged its usage (contextScore, also [0, 1]).
func ComputeProficiency(occurrenceCount int, lastUsedAt time.Time, contextScore float64, now time.Time, weights ProficiencyWeights) (float64, error) {
	if err := weights.Validate(); err != nil {
		return 0, err
	}

	frequencyScore := math.Min(float64(occurrenceCount)/frequencySaturation, 1.0)
	recencyScore := scoring.ExpDecay(scoring.DaysBetween(now, lastUsedAt), recencyDecayDays)
	contextScore = scoring.Clamp01(contextScore)

	proficiency := frequencyScore*weights.Frequency +
		recencyScore*weights.Recency +
		contextScore*weights.Context

	return scoring.Clamp01(proficiency), nil
}
