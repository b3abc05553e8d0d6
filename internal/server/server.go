// Package server provides the HTTP REST API for the resume journal.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tonypottakkal/verba-resume-journal/internal/resume"
	"github.com/tonypottakkal/verba-resume-journal/internal/server/middleware"
	"github.com/tonypottakkal/verba-resume-journal/internal/store"
	"github.com/tonypottakkal/verba-resume-journal/internal/worklog"
)

// Config holds server configuration
type Config struct {
	Port int
	// AuthSecret enables JWT bearer authentication when non-empty.
	AuthSecret string
	// ReportTopN is the number of top skills in the skill report.
	ReportTopN int
}

// Deps are the services the API exposes.
type Deps struct {
	WorkLogs   *worklog.Manager
	Generator  *resume.Generator
	Skills     store.SkillStore
	Extractor  worklog.SkillExtractor
	Log        *zap.SugaredLogger
	OnShutdown func()
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	worklogs   *worklog.Manager
	generator  *resume.Generator
	skills     store.SkillStore
	extractor  worklog.SkillExtractor
	reportTopN int
	validate   *validator.Validate
	log        *zap.SugaredLogger
	onShutdown func()
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = zap.NewNop().Sugar()
	}

	s := &Server{
		worklogs:   deps.WorkLogs,
		generator:  deps.Generator,
		skills:     deps.Skills,
		extractor:  deps.Extractor,
		reportTopN: cfg.ReportTopN,
		validate:   validator.New(),
		log:        deps.Log,
		onShutdown: deps.OnShutdown,
	}

	mux := http.NewServeMux()

	// Work log endpoints
	mux.HandleFunc("POST /api/worklogs", s.handleCreateWorkLog)
	mux.HandleFunc("GET /api/worklogs", s.handleListWorkLogs)
	mux.HandleFunc("GET /api/worklogs/{id}", s.handleGetWorkLog)
	mux.HandleFunc("PUT /api/worklogs/{id}", s.handleUpdateWorkLog)
	mux.HandleFunc("DELETE /api/worklogs/{id}", s.handleDeleteWorkLog)

	// Skill endpoints
	mux.HandleFunc("GET /api/skills", s.handleListSkills)
	mux.HandleFunc("GET /api/skills/report", s.handleSkillReport)
	mux.HandleFunc("POST /api/skills/extract", s.handleExtractSkills)
	mux.HandleFunc("POST /api/skills/extract-from-documents", s.handleExtractFromDocuments)

	// Resume endpoints
	mux.HandleFunc("POST /api/resumes/generate", s.handleGenerateResume)
	mux.HandleFunc("POST /api/resumes/{id}/regenerate", s.handleRegenerateResume)
	mux.HandleFunc("GET /api/resumes", s.handleListResumes)
	mux.HandleFunc("GET /api/resumes/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /api/resumes/{id}", s.handleDeleteResume)
	mux.HandleFunc("GET /api/resumes/{id}/export", s.handleExportResume)

	// Refinement session endpoints
	mux.HandleFunc("POST /api/conversations/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/conversations/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/conversations/sessions/{id}/reset", s.handleResetSession)
	mux.HandleFunc("DELETE /api/conversations/sessions/{id}", s.handleDeleteSession)

	mux.HandleFunc("GET /health", s.handleHealth)

	var handler http.Handler = mux
	if cfg.AuthSecret != "" {
		handler = middleware.Auth([]byte(cfg.AuthSecret), []string{"/health"})(handler)
	}
	handler = s.withLogging(s.withCORS(handler))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Generation calls can run long
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the full middleware-wrapped handler. Intended for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Infow("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatalw("server error", "error", err)
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.onShutdown != nil {
		s.onShutdown()
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Infow("request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorw("error encoding JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps a service error to its HTTP status
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Errorw("request failed", "error", err)
	}
	s.errorResponse(w, status, err.Error())
}

// decodeBody decodes and validates a JSON request body
func (s *Server) decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrMalformedBody{Cause: err}
	}
	if err := s.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}
