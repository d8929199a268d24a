// Package server exposes walkthrough sessions over a JSON HTTP API.
//
// Each session owns an independent cursor over the same lesson:
//
//	POST   /api/sessions                   create, returns the first frame
//	GET    /api/sessions/{id}              current frame
//	POST   /api/sessions/{id}/{action}     advance, retreat or reset
//	DELETE /api/sessions/{id}              drop the session
//	GET    /api/lesson                     static lesson content
//	GET    /api/outline                    algorithm steps from the source
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Iron-Ham/stepthrough/internal/errors"
	"github.com/Iron-Ham/stepthrough/internal/lesson"
	"github.com/Iron-Ham/stepthrough/internal/logging"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Addr        string
	MaxSessions int
	Logger      *logging.Logger
}

// Server serves one lesson to many sessions.
type Server struct {
	content  *walkthrough.Content
	registry *Registry
	addr     string
	logger   *logging.Logger
	mux      *http.ServeMux
}

// SessionResponse is returned by every session endpoint except DELETE.
type SessionResponse struct {
	ID    string            `json:"id"`
	Moved *bool             `json:"moved,omitempty"`
	Frame walkthrough.Frame `json:"frame"`
}

// LessonResponse is the static part of the lesson.
type LessonResponse struct {
	Title           string                 `json:"title"`
	Request         string                 `json:"request,omitempty"`
	Source          []string               `json:"source"`
	Plan            []walkthrough.PlanStep `json:"plan"`
	TotalTraceSteps int                    `json:"total_trace_steps"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// New creates a server over content, which must already be valid.
func New(content *walkthrough.Content, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	s := &Server{
		content:  content,
		registry: NewRegistry(content, opts.MaxSessions, logger),
		addr:     opts.Addr,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/sessions", s.handleCreate)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleGet)
	s.mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDelete)
	s.mux.HandleFunc("POST /api/sessions/{id}/{action}", s.handleAction)
	s.mux.HandleFunc("GET /api/lesson", s.handleLesson)
	s.mux.HandleFunc("GET /api/outline", s.handleOutline)
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Registry returns the server's session registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown")
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, frame, err := s.registry.Create()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{ID: id, Frame: frame})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	frame, err := s.registry.Frame(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{ID: id, Frame: frame})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Delete(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	action, err := ParseAction(r.PathValue("action"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	id := r.PathValue("id")
	frame, moved, err := s.registry.Apply(id, action)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{ID: id, Moved: &moved, Frame: frame})
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LessonResponse{
		Title:           s.content.Title,
		Request:         s.content.Request,
		Source:          s.content.Source,
		Plan:            s.content.Plan,
		TotalTraceSteps: len(s.content.Trace),
	})
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lesson.Outline(s.content.Source))
}

// writeError maps domain errors onto status codes. Messages of errors that
// are not user facing are replaced before they reach the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	if errors.GetSeverity(err) >= errors.SeverityError {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.logger.Debug("request rejected", "status", status, "error", err)
	}

	msg := err.Error()
	if !errors.IsUserFacing(err) {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
