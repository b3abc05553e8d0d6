package server

import (
	"net/http"
	"time"

	"github.com/tonypottakkal/verba-resume-journal/internal/skills"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
	"github.com/tonypottakkal/verba-resume-journal/internal/worklog"
)

type extractRequest struct {
	Content string `json:"content" validate:"required"`
}

type extractDocumentsRequest struct {
	Documents []extractDocument `json:"documents" validate:"required,min=1,dive"`
}

type extractDocument struct {
	ID        string     `json:"id" validate:"required"`
	Content   string     `json:"content" validate:"required"`
	Timestamp *time.Time `json:"timestamp"`
}

// handleListSkills lists skill records, optionally by category
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !skills.ValidCategory(types.SkillCategory(category)) {
		s.errorResponse(w, http.StatusBadRequest, "unknown skill category: "+category)
		return
	}

	var (
		records []types.SkillRecord
		err     error
	)
	if category != "" {
		records, err = s.skills.ListByCategory(r.Context(), types.SkillCategory(category))
	} else {
		records, err = s.skills.List(r.Context())
	}
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"skills": records,
		"total":  len(records),
	})
}

// handleSkillReport summarizes the skill inventory by category
func (s *Server) handleSkillReport(w http.ResponseWriter, r *http.Request) {
	records, err := s.skills.List(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	topN := parseQueryInt(r, "top_n", s.reportTopN, 50)
	report := skills.BuildReport(records, topN, time.Now())
	s.jsonResponse(w, http.StatusOK, report)
}

// handleExtractSkills runs skill extraction over arbitrary text without
// recording the detections
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	detected, err := s.extractor.ExtractSkills(r.Context(), req.Content)
	if err != nil {
		s.handleError(w, err)
		return
	}

	type detection struct {
		Name         string   `json:"name"`
		Category     string   `json:"category"`
		Confidence   float64  `json:"confidence"`
		ContextScore *float64 `json:"context_score,omitempty"`
	}
	out := make([]detection, 0, len(detected))
	for _, d := range detected {
		out = append(out, detection{
			Name:         skills.Normalize(d.Name),
			Category:     string(d.Category),
			Confidence:   d.Confidence,
			ContextScore: d.ContextScore,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"skills": out})
}

// handleExtractFromDocuments extracts and records skills from external
// documents
func (s *Server) handleExtractFromDocuments(w http.ResponseWriter, r *http.Request) {
	var req extractDocumentsRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	documents := make([]worklog.Document, 0, len(req.Documents))
	for _, d := range req.Documents {
		doc := worklog.Document{ID: d.ID, Content: d.Content}
		if d.Timestamp != nil {
			doc.Timestamp = *d.Timestamp
		}
		documents = append(documents, doc)
	}

	results, err := s.worklogs.BatchExtract(r.Context(), documents)
	if err != nil {
		s.handleError(w, err)
		return
	}

	type docResult struct {
		DocumentID string   `json:"document_id"`
		Skills     []string `json:"skills"`
		Error      string   `json:"error,omitempty"`
	}
	out := make([]docResult, 0, len(results))
	for _, res := range results {
		dr := docResult{DocumentID: res.DocumentID, Skills: res.Skills}
		if res.Err != nil {
			dr.Error = res.Err.Error()
		}
		out = append(out, dr)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"results": out})
}
