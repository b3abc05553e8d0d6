// Package extraction turns free-form text into structured skills and job
// requirements using a language model, with schema validation on the output.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/tonypottakkal/verba-resume-journal/internal/llm"
	"github.com/tonypottakkal/verba-resume-journal/internal/schemas"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// maxInputChars bounds the text sent to the model per request.
const maxInputChars = 10000

// DetectedSkill is a single skill mention found in a piece of text.
type DetectedSkill struct {
	Name         string
	Category     types.SkillCategory
	Confidence   float64
	ContextScore *float64
}

// Extractor runs model-backed extraction over work log content.
type Extractor struct {
	client llm.Client
	log    *zap.SugaredLogger
}

// NewExtractor creates an Extractor. A nil logger disables logging.
func NewExtractor(client llm.Client, log *zap.SugaredLogger) *Extractor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Extractor{client: client, log: log}
}

type skillPayload struct {
	Skills []struct {
		Name         string   `json:"name"`
		Category     string   `json:"category"`
		Confidence   float64  `json:"confidence"`
		ContextScore *float64 `json:"context_score"`
	} `json:"skills"`
}

// ExtractSkills identifies technical and professional skills mentioned in
// content. Empty or whitespace-only content yields no skills without calling
// the model. Model output that fails schema validation returns a *ParseError.
func (e *Extractor) ExtractSkills(ctx context.Context, content string) ([]DetectedSkill, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}
	content = truncate(content, maxInputChars)

	prompt := buildSkillPrompt(content)
	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierExtract)
	if err != nil {
		return nil, fmt.Errorf("skill extraction request failed: %w", err)
	}

	if err := schemas.ValidateJSONString(skillListSchema, raw); err != nil {
		return nil, &ParseError{Message: "skill list failed schema validation", Cause: err}
	}

	var payload skillPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &ParseError{Message: "skill list is not valid JSON", Cause: err}
	}

	detected := make([]DetectedSkill, 0, len(payload.Skills))
	for _, s := range payload.Skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		detected = append(detected, DetectedSkill{
			Name:         name,
			Category:     types.SkillCategory(s.Category),
			Confidence:   s.Confidence,
			ContextScore: s.ContextScore,
		})
	}

	e.log.Debugw("extracted skills", "count", len(detected))
	return detected, nil
}

func buildSkillPrompt(content string) string {
	categories := make([]string, 0, len(types.AllCategories))
	for _, c := range types.AllCategories {
		categories = append(categories, string(c))
	}

	return fmt.Sprintf(`Analyze the following work log entry and extract all technical and professional skills mentioned or clearly implied.

For each skill, return:
- "name": the skill as commonly written (e.g. "Python", "Kubernetes")
- "category": one of: %s
- "confidence": 0.0 to 1.0, how certain the skill is actually used in the text
- "context_score": 0.0 to 1.0, how substantively the skill is applied (optional)

Only include skills with clear evidence in the text. Do not invent skills.
Return JSON: {"skills": [{"name": ..., "category": ..., "confidence": ..., "context_score": ...}]}
Return {"skills": []} if no skills are present.

Work log entry:
%s`, strings.Join(categories, ", "), content)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Back off to a rune boundary so the cut never produces invalid UTF-8.
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
