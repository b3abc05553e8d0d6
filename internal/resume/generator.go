// Package resume generates tailored resumes from ranked work log evidence
// and keeps the generation history.
package resume

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tonypottakkal/verba-resume-journal/internal/conversation"
	"github.com/tonypottakkal/verba-resume-journal/internal/llm"
	"github.com/tonypottakkal/verba-resume-journal/internal/ranking"
	"github.com/tonypottakkal/verba-resume-journal/internal/store"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// candidatePoolSize is how many search hits are fetched before ranking. It
// exceeds the ranking limit cap so the ranker sees the full relevant pool.
const candidatePoolSize = 100

// RequirementsExtractor parses a job description into structured
// requirements.
type RequirementsExtractor interface {
	ExtractJobRequirements(ctx context.Context, jobDescription string) (*types.JobRequirements, error)
}

// Searcher returns work experience candidates for a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.Candidate, error)
}

// NoEvidenceError indicates that search found no work experiences at all for
// the job description. The journal is empty or unrelated to the role.
type NoEvidenceError struct {
	Message string
}

func (e *NoEvidenceError) Error() string {
	return fmt.Sprintf("no evidence: %s", e.Message)
}

// Request describes one resume generation call.
type Request struct {
	JobDescription string
	TargetRole     string
	SessionID      string
	// Feedback carries user guidance when regenerating a previous resume.
	Feedback string
	// Params overrides the generator's ranking parameters when non-nil.
	Params *ranking.Params
}

// Generator produces resumes: extract requirements, search the journal,
// rank the evidence, and write the resume with the generation-tier model.
type Generator struct {
	extractor     RequirementsExtractor
	searcher      Searcher
	client        llm.Client
	history       store.ResumeStore
	conversations *conversation.Manager
	params        ranking.Params
	log           *zap.SugaredLogger
	now           func() time.Time
}

// NewGenerator creates a Generator. params is validated up front so that a
// bad configuration fails at startup rather than on the first request.
func NewGenerator(extractor RequirementsExtractor, searcher Searcher, client llm.Client, history store.ResumeStore, params ranking.Params, logger *zap.SugaredLogger) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Generator{
		extractor:     extractor,
		searcher:      searcher,
		client:        client,
		history:       history,
		conversations: conversation.NewManager(conversation.DefaultMaxExchanges, logger),
		params:        params,
		log:           logger,
		now:           time.Now,
	}, nil
}

// Conversations exposes the generator's refinement sessions for the API
// layer.
func (g *Generator) Conversations() *conversation.Manager {
	return g.conversations
}

// WithClock overrides the generator's clock. Intended for tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a resume tailored to the job description in req and
// stores it in the generation history.
func (g *Generator) Generate(ctx context.Context, req Request) (*types.ResumeRecord, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, fmt.Errorf("job description is empty")
	}

	requirements, err := g.extractor.ExtractJobRequirements(ctx, req.JobDescription)
	if err != nil {
		return nil, err
	}

	candidates, err := g.searcher.Search(ctx, buildSearchQuery(requirements), candidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("evidence search failed: %w", err)
	}
	if len(candidates) == 0 {
		return nil, &NoEvidenceError{Message: "no work experiences matched the job description"}
	}

	params := g.params
	if req.Params != nil {
		params = *req.Params
	}

	ranked, err := ranking.Rank(candidates, *requirements, params, g.now())
	if err != nil {
		return nil, err
	}
	if ranked.ClampedBaseScores > 0 {
		g.log.Warnw("search returned out-of-range relevance scores",
			"clamped", ranked.ClampedBaseScores)
	}
	if len(ranked.Entries) == 0 {
		return nil, &ranking.InsufficientDataError{
			Message: fmt.Sprintf("all %d candidates were filtered out, widen the date range", len(candidates)),
		}
	}

	var priorExchanges []conversation.Message
	if req.SessionID != "" {
		priorExchanges = g.conversations.History(req.SessionID)
	}

	prompt := resumePrompt(requirements, ranked.Entries, req.TargetRole, req.Feedback, priorExchanges)
	content, err := g.client.GenerateContent(ctx, prompt, llm.TierGenerate)
	if err != nil {
		return nil, fmt.Errorf("resume generation failed: %w", err)
	}

	if req.SessionID != "" {
		g.recordExchange(req, content)
	}

	record := &types.ResumeRecord{
		ID:             uuid.NewString(),
		Content:        content,
		Format:         "markdown",
		JobDescription: req.JobDescription,
		TargetRole:     req.TargetRole,
		RequiredSkills: requirements.RequiredSkills,
		SourceLogIDs:   sourceIDs(ranked.Entries),
		SessionID:      req.SessionID,
		GeneratedAt:    g.now().UTC(),
	}
	if err := g.history.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save resume to history: %w", err)
	}

	g.log.Infow("resume generated",
		"resume_id", record.ID,
		"evidence", len(record.SourceLogIDs),
		"required_skills", len(record.RequiredSkills))
	return record, nil
}

// Regenerate produces a new resume for the same job description as a
// previous one, applying the given feedback. The new record shares the
// original's session id so related generations can be listed together.
func (g *Generator) Regenerate(ctx context.Context, resumeID, feedback string) (*types.ResumeRecord, error) {
	previous, err := g.history.Get(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	sessionID := previous.SessionID
	if sessionID == "" {
		sessionID = previous.ID
	}

	return g.Generate(ctx, Request{
		JobDescription: previous.JobDescription,
		TargetRole:     previous.TargetRole,
		SessionID:      sessionID,
		Feedback:       feedback,
	})
}

// recordExchange stores the request and the generated draft in the session
// so later regenerations see what was asked for and produced before. The
// user turn is the feedback when refining, otherwise the job description.
func (g *Generator) recordExchange(req Request, content string) {
	g.conversations.Create(req.SessionID)

	userTurn := req.Feedback
	if userTurn == "" {
		userTurn = req.JobDescription
	}
	if err := g.conversations.Append(req.SessionID, conversation.RoleUser, userTurn); err != nil {
		g.log.Warnw("failed to record user turn", "session_id", req.SessionID, "error", err)
	}
	if err := g.conversations.Append(req.SessionID, conversation.RoleAssistant, content); err != nil {
		g.log.Warnw("failed to record assistant turn", "session_id", req.SessionID, "error", err)
	}
}

func sourceIDs(entries []ranking.Ranked) []string {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.Candidate.ID)
	}
	return ids
}
