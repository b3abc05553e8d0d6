package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonypottakkal/verba-resume-journal/internal/llm"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// fakeClient returns canned responses and records the prompts it receives.
type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestExtractSkills(t *testing.T) {
	client := &fakeClient{response: `{"skills": [
		{"name": "Python", "category": "programming_languages", "confidence": 0.9, "context_score": 0.8},
		{"name": "Docker", "category": "devops_tools", "confidence": 0.7}
	]}`}
	e := NewExtractor(client, nil)

	skills, err := e.ExtractSkills(context.Background(), "Deployed a Python service with Docker")
	require.NoError(t, err)
	require.Len(t, skills, 2)

	assert.Equal(t, "Python", skills[0].Name)
	assert.Equal(t, types.SkillCategory("programming_languages"), skills[0].Category)
	assert.Equal(t, 0.9, skills[0].Confidence)
	require.NotNil(t, skills[0].ContextScore)
	assert.Equal(t, 0.8, *skills[0].ContextScore)

	assert.Equal(t, "Docker", skills[1].Name)
	assert.Nil(t, skills[1].ContextScore)
}

func TestExtractSkills_EmptyContentSkipsModel(t *testing.T) {
	client := &fakeClient{response: `{"skills": []}`}
	e := NewExtractor(client, nil)

	skills, err := e.ExtractSkills(context.Background(), "   \n\t")
	require.NoError(t, err)
	assert.Empty(t, skills)
	assert.Empty(t, client.prompts, "model should not be called for empty content")
}

func TestExtractSkills_EmptyResult(t *testing.T) {
	client := &fakeClient{response: `{"skills": []}`}
	e := NewExtractor(client, nil)

	skills, err := e.ExtractSkills(context.Background(), "Attended a meeting")
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestExtractSkills_TruncatesLongInput(t *testing.T) {
	client := &fakeClient{response: `{"skills": []}`}
	e := NewExtractor(client, nil)

	long := strings.Repeat("a", maxInputChars+5000)
	_, err := e.ExtractSkills(context.Background(), long)
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Less(t, len(client.prompts[0]), maxInputChars+2000)
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// "é" is two bytes; a limit landing mid-rune must back off to the
	// boundary instead of emitting a partial byte.
	s := strings.Repeat("é", 8)
	got := truncate(s, 7)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 3), got)

	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abc", 2))
}

func TestExtractSkills_InvalidSchema(t *testing.T) {
	client := &fakeClient{response: `{"skills": [{"category": "tools"}]}`}
	e := NewExtractor(client, nil)

	_, err := e.ExtractSkills(context.Background(), "some content")
	require.Error(t, err)

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestExtractSkills_ModelError(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	e := NewExtractor(client, nil)

	_, err := e.ExtractSkills(context.Background(), "some content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestExtractSkills_BlankNamesDropped(t *testing.T) {
	client := &fakeClient{response: `{"skills": [
		{"name": "  ", "category": "other", "confidence": 0.5},
		{"name": "Go", "category": "programming_languages", "confidence": 0.9}
	]}`}
	e := NewExtractor(client, nil)

	skills, err := e.ExtractSkills(context.Background(), "wrote Go")
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)
}

func TestExtractJobRequirements(t *testing.T) {
	client := &fakeClient{response: `{
		"required_skills": ["Go", "PostgreSQL"],
		"preferred_skills": ["Kubernetes"],
		"experience_level": "senior",
		"role_description": "Backend engineer on the platform team.",
		"responsibilities": ["Design APIs", " "],
		"qualifications": ["5+ years backend experience"]
	}`}
	e := NewExtractor(client, nil)

	req, err := e.ExtractJobRequirements(context.Background(), "Senior Backend Engineer...")
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "PostgreSQL"}, req.RequiredSkills)
	assert.Equal(t, []string{"Kubernetes"}, req.PreferredSkills)
	assert.Equal(t, "senior", req.ExperienceLevel)
	assert.Equal(t, []string{"Design APIs"}, req.Responsibilities)
	assert.Equal(t, []string{"5+ years backend experience"}, req.Qualifications)
}

func TestExtractJobRequirements_EmptyDescription(t *testing.T) {
	client := &fakeClient{}
	e := NewExtractor(client, nil)

	_, err := e.ExtractJobRequirements(context.Background(), "")
	require.Error(t, err)
	assert.Empty(t, client.prompts)
}

func TestExtractJobRequirements_MissingRequiredField(t *testing.T) {
	client := &fakeClient{response: `{"preferred_skills": ["Go"]}`}
	e := NewExtractor(client, nil)

	_, err := e.ExtractJobRequirements(context.Background(), "some job")
	require.Error(t, err)

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}
