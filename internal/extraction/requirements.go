package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tonypottakkal/verba-resume-journal/internal/llm"
	"github.com/tonypottakkal/verba-resume-journal/internal/schemas"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

type requirementsPayload struct {
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	ExperienceLevel  string   `json:"experience_level"`
	RoleDescription  string   `json:"role_description"`
	Responsibilities []string `json:"responsibilities"`
	Qualifications   []string `json:"qualifications"`
}

// ExtractJobRequirements parses a free-form job description into structured
// requirements. An empty description is rejected before any model call.
func (e *Extractor) ExtractJobRequirements(ctx context.Context, jobDescription string) (*types.JobRequirements, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return nil, fmt.Errorf("job description is empty")
	}
	jobDescription = truncate(jobDescription, maxInputChars)

	prompt := buildRequirementsPrompt(jobDescription)
	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierExtract)
	if err != nil {
		return nil, fmt.Errorf("job requirements request failed: %w", err)
	}

	if err := schemas.ValidateJSONString(jobRequirementsSchema, raw); err != nil {
		return nil, &ParseError{Message: "job requirements failed schema validation", Cause: err}
	}

	var payload requirementsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &ParseError{Message: "job requirements are not valid JSON", Cause: err}
	}

	req := &types.JobRequirements{
		RequiredSkills:   cleanList(payload.RequiredSkills),
		PreferredSkills:  cleanList(payload.PreferredSkills),
		ExperienceLevel:  strings.TrimSpace(payload.ExperienceLevel),
		RoleDescription:  strings.TrimSpace(payload.RoleDescription),
		Responsibilities: cleanList(payload.Responsibilities),
		Qualifications:   cleanList(payload.Qualifications),
	}

	e.log.Debugw("extracted job requirements",
		"required", len(req.RequiredSkills),
		"preferred", len(req.PreferredSkills))
	return req, nil
}

func buildRequirementsPrompt(jobDescription string) string {
	return fmt.Sprintf(`Analyze the following job description and extract structured requirements.

Return JSON with:
- "required_skills": skills explicitly required for the role
- "preferred_skills": skills listed as nice-to-have
- "experience_level": e.g. "junior", "mid", "senior", "staff", or "" if unclear
- "role_description": one sentence summarizing the role
- "responsibilities": key responsibilities as short phrases
- "qualifications": required qualifications as short phrases

Job description:
%s`, jobDescription)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
