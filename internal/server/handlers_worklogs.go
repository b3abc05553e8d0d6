package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tonypottakkal/verba-resume-journal/internal/store"
)

type createWorkLogRequest struct {
	Content  string            `json:"content" validate:"required"`
	UserID   string            `json:"user_id"`
	Metadata map[string]string `json:"metadata"`
}

type updateWorkLogRequest struct {
	Content  string            `json:"content" validate:"required"`
	Metadata map[string]string `json:"metadata"`
}

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// parseQueryTime parses an RFC 3339 query parameter, nil when absent.
func parseQueryTime(r *http.Request, key string) (*time.Time, error) {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, valStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// handleCreateWorkLog journals a new entry and extracts its skills
func (s *Server) handleCreateWorkLog(w http.ResponseWriter, r *http.Request) {
	var req createWorkLogRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	entry, err := s.worklogs.Create(r.Context(), req.Content, req.UserID, req.Metadata)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, entry)
}

// handleListWorkLogs lists entries with optional filters
func (s *Server) handleListWorkLogs(w http.ResponseWriter, r *http.Request) {
	since, err := parseQueryTime(r, "since")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid 'since', expected RFC 3339")
		return
	}
	until, err := parseQueryTime(r, "until")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid 'until', expected RFC 3339")
		return
	}

	filter := store.WorkLogFilter{
		UserID: r.URL.Query().Get("user_id"),
		Since:  since,
		Until:  until,
		Limit:  parseQueryInt(r, "limit", 50, 200),
		Offset: parseQueryInt(r, "offset", 0, 0),
	}

	entries, err := s.worklogs.List(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	total, err := s.worklogs.Count(r.Context(), filter.UserID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   total,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// handleGetWorkLog retrieves one entry
func (s *Server) handleGetWorkLog(w http.ResponseWriter, r *http.Request) {
	entry, err := s.worklogs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleUpdateWorkLog replaces an entry's content and re-extracts skills
func (s *Server) handleUpdateWorkLog(w http.ResponseWriter, r *http.Request) {
	var req updateWorkLogRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	entry, err := s.worklogs.Update(r.Context(), r.PathValue("id"), req.Content, req.Metadata)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleDeleteWorkLog removes an entry and its skill references
func (s *Server) handleDeleteWorkLog(w http.ResponseWriter, r *http.Request) {
	if err := s.worklogs.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
