package types

// JobRequirements holds the structured requirements extracted from a job
// description. Only RequiredSkills participates in ranking; the remaining
// fields feed the search query and the resume-writing prompt.
type JobRequirements struct {
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	ExperienceLevel  string   `json:"experience_level"`
	RoleDescription  string   `json:"role_description"`
	Responsibilities []string `json:"responsibilities"`
	Qualifications   []string `json:"qualifications"`
}
