package server

import (
	"fmt"
	"net/http"

	"github.com/tonypottakkal/verba-resume-journal/internal/export"
	"github.com/tonypottakkal/verba-resume-journal/internal/ranking"
	"github.com/tonypottakkal/verba-resume-journal/internal/resume"
	"github.com/tonypottakkal/verba-resume-journal/internal/store"
)

type generateResumeRequest struct {
	JobDescription string          `json:"job_description" validate:"required"`
	TargetRole     string          `json:"target_role"`
	SessionID      string          `json:"session_id"`
	Ranking        *ranking.Params `json:"ranking"`
}

type regenerateResumeRequest struct {
	Feedback string `json:"feedback"`
}

// handleGenerateResume produces a resume tailored to a job description
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	var req generateResumeRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	record, err := s.generator.Generate(r.Context(), resume.Request{
		JobDescription: req.JobDescription,
		TargetRole:     req.TargetRole,
		SessionID:      req.SessionID,
		Params:         req.Ranking,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, record)
}

// handleRegenerateResume re-runs a previous generation with feedback
func (s *Server) handleRegenerateResume(w http.ResponseWriter, r *http.Request) {
	var req regenerateResumeRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	record, err := s.generator.Regenerate(r.Context(), r.PathValue("id"), req.Feedback)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, record)
}

// handleListResumes lists the generation history
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	filter := store.ResumeFilter{
		TargetRole: r.URL.Query().Get("target_role"),
		Limit:      parseQueryInt(r, "limit", 50, 200),
		Offset:     parseQueryInt(r, "offset", 0, 0),
	}

	records, err := s.generator.History(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": records,
		"total":   len(records),
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// handleGetResume retrieves one resume from history
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	record, err := s.generator.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleDeleteResume removes a resume from history
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if err := s.generator.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportResume downloads a resume in the requested format
func (s *Server) handleExportResume(w http.ResponseWriter, r *http.Request) {
	record, err := s.generator.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, err)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.handleError(w, err)
		return
	}

	result, err := export.Export(record.Content, format)
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "resume-"+record.ID+"."+result.Extension))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		s.log.Errorw("failed to write export", "resume_id", record.ID, "error", err)
	}
}
