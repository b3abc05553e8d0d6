package server

import (
	"net/http"
)

type createSessionRequest struct {
	SessionID string `json:"session_id"`
}

// handleCreateSession opens a refinement session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	id := s.generator.Conversations().Create(req.SessionID)
	s.jsonResponse(w, http.StatusCreated, map[string]string{"session_id": id})
}

// handleGetSession returns a session with its exchange history
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.generator.Conversations().Get(r.PathValue("id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, session)
}

// handleResetSession clears a session's history
func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	if err := s.generator.Conversations().Reset(r.PathValue("id")); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteSession removes a session entirely
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.generator.Conversations().Delete(r.PathValue("id")); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
