// Package ranking scores and orders work experience candidates against job
// requirements, selecting the evidence used as resume generation context.
package ranking

import (
	"fmt"
	"math"
)

// Limit bounds enforced on Params.Limit.
const (
	MinLimit     = 5
	MaxLimit     = 50
	DefaultLimit = 20
)

// Params configures a ranking call. The component weights are additive bonus
// weights applied to sub-scores in [0, 1]; the final score is not bounded
// to [0, 1].
type Params struct {
	WeightBase    float64 `json:"weight_base"`
	WeightSkill   float64 `json:"weight_skill"`
	WeightRecency float64 `json:"weight_recency"`
	WeightQuality float64 `json:"weight_quality"`

	// BoostRecent toggles the recency component. When false the component
	// contributes zero for every candidate, not a neutral 1.
	BoostRecent bool `json:"boost_recent"`

	// DateRangeDays excludes candidates older than this many days before
	// ranking. Negative disables the filter; zero excludes everything older
	// than "now".
	DateRangeDays int `json:"date_range_days"`

	// Limit caps the returned list. Zero selects DefaultLimit; values
	// outside [MinLimit, MaxLimit] are rejected.
	Limit int `json:"limit"`
}

// DefaultParams returns the standard ranking configuration.
func DefaultParams() Params {
	return Params{
		WeightBase:    1.0,
		WeightSkill:   0.3,
		WeightRecency: 0.2,
		WeightQuality: 0.1,
		BoostRecent:   true,
		DateRangeDays: -1,
		Limit:         DefaultLimit,
	}
}

// Validate rejects configurations that would produce meaningless rankings.
func (p Params) Validate() error {
	for name, w := range map[string]float64{
		"weight_base":    p.WeightBase,
		"weight_skill":   p.WeightSkill,
		"weight_recency": p.WeightRecency,
		"weight_quality": p.WeightQuality,
	} {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return &ConfigurationError{Message: fmt.Sprintf("%s must be a non-negative finite number, got %g", name, w)}
		}
	}
	if p.Limit != 0 && (p.Limit < MinLimit || p.Limit > MaxLimit) {
		return &ConfigurationError{
			Message: fmt.Sprintf("limit must be between %d and %d, got %d", MinLimit, MaxLimit, p.Limit),
		}
	}
	return nil
}

// effectiveLimit resolves the zero-value limit to the default.
func (p Params) effectiveLimit() int {
	if p.Limit == 0 {
		return DefaultLimit
	}
	return p.Limit
}
