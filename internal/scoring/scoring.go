// Package scoring provides the small pure helpers shared by the skills and
// ranking packages.
package scoring

import (
	"math"
	"strings"
	"time"
)

// Clamp01 clamps v into [0, 1]. NaN maps to 0 so that dirty upstream scores
// never propagate through a scoring formula.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// DaysBetween returns the number of days from then to now, floored at zero.
// Timestamps in the future count as zero days old.
func DaysBetween(now, then time.Time) float64 {
	days := now.Sub(then).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// ExpDecay returns exp(-days/scale), a recency score in (0, 1] that halves
// roughly every scale*ln(2) days.
func ExpDecay(days, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	return math.Exp(-days / scale)
}

// WordCount counts whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
