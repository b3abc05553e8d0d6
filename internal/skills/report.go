package skills

import (
	"sort"
	"time"

	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// Report summarizes the skill records: grouped by category, the strongest
// skills overall, and the most recently used ones.
type Report struct {
	ByCategory   map[types.SkillCategory][]types.SkillRecord `json:"skills_by_category"`
	TotalSkills  int                                         `json:"total_skills"`
	TopSkills    []types.SkillRecord                         `json:"top_skills"`
	RecentSkills []types.SkillRecord                         `json:"recent_skills"`
	GeneratedAt  time.Time                                   `json:"generated_at"`
}

// BuildReport assembles a Report from the given records. topN caps both the
// top-skills and recent-skills lists; values <= 0 default to 10.
func BuildReport(records []types.SkillRecord, topN int, now time.Time) *Report {
	if topN <= 0 {
		topN = 10
	}

	byCategory := make(map[types.SkillCategory][]types.SkillRecord)
	for _, record := range records {
		byCategory[record.Category] = append(byCategory[record.Category], record)
	}
	for category := range byCategory {
		sortByProficiency(byCategory[category])
	}

	top := make([]types.SkillRecord, len(records))
	copy(top, records)
	sortByProficiency(top)
	if len(top) > topN {
		top = top[:topN]
	}

	recent := make([]types.SkillRecord, len(records))
	copy(recent, records)
	sort.Slice(recent, func(i, j int) bool {
		if !recent[i].LastUsedAt.Equal(recent[j].LastUsedAt) {
			return recent[i].LastUsedAt.After(recent[j].LastUsedAt)
		}
		return recent[i].Name < recent[j].Name
	})
	if len(recent) > topN {
		recent = recent[:topN]
	}

	return &Report{
		ByCategory:   byCategory,
		TotalSkills:  len(records),
		TopSkills:    top,
		RecentSkills: recent,
		GeneratedAt:  now,
	}
}

func sortByProficiency(records []types.SkillRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].ProficiencyScore != records[j].ProficiencyScore {
			return records[i].ProficiencyScore > records[j].ProficiencyScore
		}
		return records[i].Name < records[j].Name
	})
}
