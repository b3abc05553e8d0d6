package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(1.5))
	assert.Equal(t, 0.42, Clamp01(0.42))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
	assert.Equal(t, 1.0, Clamp01(math.Inf(1)))
	assert.Equal(t, 0.0, Clamp01(math.Inf(-1)))
}

func TestDaysBetween(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.InDelta(t, 10.0, DaysBetween(now, now.AddDate(0, 0, -10)), 0.001)
	assert.Equal(t, 0.0, DaysBetween(now, now))

	// Future timestamps are not negative ages.
	assert.Equal(t, 0.0, DaysBetween(now, now.AddDate(0, 0, 5)))
}

func TestExpDecay(t *testing.T) {
	assert.InDelta(t, 1.0, ExpDecay(0, 180), 0.0001)
	assert.InDelta(t, math.Exp(-1), ExpDecay(180, 180), 0.0001)
	assert.Equal(t, 0.0, ExpDecay(10, 0))

	// Monotonically decreasing with age.
	assert.Greater(t, ExpDecay(30, 180), ExpDecay(90, 180))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t"))
	assert.Equal(t, 3, WordCount("built the pipeline"))
	assert.Equal(t, 2, WordCount("  spaced   out  "))
}
