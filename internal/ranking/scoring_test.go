package ranking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillBonus_CaseInsensitiveMatch(t *testing.T) {
	// One of two required skills matched, case difference ignored.
	bonus, matched := skillBonus([]string{"Python", "Docker"}, []string{"python", "aws"})
	assert.InDelta(t, 0.5, bonus, 0.0001)
	assert.Equal(t, []string{"Python"}, matched)
}

func TestSkillBonus_AliasMatch(t *testing.T) {
	// "JS" and "JavaScript" share a canonical form.
	bonus, matched := skillBonus([]string{"JS"}, []string{"JavaScript"})
	assert.InDelta(t, 1.0, bonus, 0.0001)
	assert.Equal(t, []string{"JavaScript"}, matched)
}

func TestSkillBonus_EmptyRequirements(t *testing.T) {
	bonus, matched := skillBonus([]string{"Go"}, nil)
	assert.Equal(t, 0.0, bonus)
	assert.Empty(t, matched)
}

func TestSkillBonus_NoCandidateSkills(t *testing.T) {
	bonus, _ := skillBonus(nil, []string{"Go"})
	assert.Equal(t, 0.0, bonus)
}

func TestRecencyBoost_Steps(t *testing.T) {
	tests := []struct {
		ageDays float64
		want    float64
	}{
		{0, 1.0},
		{30, 1.0},
		{31, 0.8},
		{90, 0.8},
		{180, 0.6},
		{365, 0.4},
		{366, 0.2},
		{2000, 0.2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, recencyBoost(tt.ageDays, true), "age %v", tt.ageDays)
	}
}

func TestRecencyBoost_Disabled(t *testing.T) {
	// Disabling removes the component entirely, it is not neutralized to 1.
	assert.Equal(t, 0.0, recencyBoost(0, false))
	assert.Equal(t, 0.0, recencyBoost(500, false))
}

func TestQualityScore(t *testing.T) {
	words := func(n int) string { return strings.TrimSpace(strings.Repeat("word ", n)) }

	assert.Equal(t, 0.0, qualityScore(""))
	assert.InDelta(t, 0.5, qualityScore(words(25)), 0.0001)
	assert.Equal(t, 1.0, qualityScore(words(50)))
	assert.Equal(t, 1.0, qualityScore(words(500)))
	assert.InDelta(t, 0.75, qualityScore(words(750)), 0.0001)
	assert.InDelta(t, 0.5, qualityScore(words(1000)), 0.0001)
	assert.Equal(t, 0.2, qualityScore(words(2000)))
}
