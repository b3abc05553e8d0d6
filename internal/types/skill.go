package types

import "time"

// SkillCategory is one of the fixed category labels a skill can carry.
type SkillCategory string

// Skill categories. CategoryOther is the fallback for skills that match
// no known category.
const (
	CategoryProgrammingLanguages SkillCategory = "programming_languages"
	CategoryFrameworks           SkillCategory = "frameworks"
	CategoryDatabases            SkillCategory = "databases"
	CategoryCloudPlatforms       SkillCategory = "cloud_platforms"
	CategoryDevOpsTools          SkillCategory = "devops_tools"
	CategoryDataScience          SkillCategory = "data_science"
	CategorySoftSkills           SkillCategory = "soft_skills"
	CategoryTools                SkillCategory = "tools"
	CategoryOther                SkillCategory = "other"
)

// AllCategories lists every valid skill category.
var AllCategories = []SkillCategory{
	CategoryProgrammingLanguages,
	CategoryFrameworks,
	CategoryDatabases,
	CategoryCloudPlatforms,
	CategoryDevOpsTools,
	CategoryDataScience,
	CategorySoftSkills,
	CategoryTools,
	CategoryOther,
}

// SkillRecord is the persisted, canonical record of a detected skill.
//
// Invariants maintained by the skills package: OccurrenceCount always equals
// len(SourceRefs), SourceRefs contains no duplicates, and a record with an
// empty SourceRefs set is deleted rather than stored.
type SkillRecord struct {
	Name             string        `json:"name"`
	Category         SkillCategory `json:"category"`
	OccurrenceCount  int           `json:"occurrence_count"`
	SourceRefs       []string      `json:"source_refs"`
	LastUsedAt       time.Time     `json:"last_used_at"`
	ContextScore     float64       `json:"context_score"`
	ProficiencyScore float64       `json:"proficiency_score"`
}

// HasSource reports whether the record already references sourceID.
func (r *SkillRecord) HasSource(sourceID string) bool {
	for _, ref := range r.SourceRefs {
		if ref == sourceID {
			return true
		}
	}
	return false
}
