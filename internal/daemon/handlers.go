package daemon

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/highlight"
	"github.com/felixgeelhaar/codelearn/internal/lint"
	"github.com/felixgeelhaar/codelearn/internal/runner"
	"github.com/felixgeelhaar/codelearn/internal/session"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

// maxBodyBytes bounds request bodies; buffers are small source files
const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessionService.List(r.Context())
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "failed to list sessions", err)
		return
	}
	stats := s.exercises.Stats()

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "running",
		"version":   Version,
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"sessions":  len(sessions),
		"exercises": stats.ExerciseCount,
		"tutorials": len(s.tutorials.List()),
		"storage":   s.cfg.Storage.Driver,
		"notify":    s.cfg.Notify.Backend,
		"tracing":   s.telemetry.Enabled(),
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	// AMQPURL is excluded from JSON
	s.jsonResponse(w, http.StatusOK, s.cfg)
}

// annotation is the editor's view of a buffer
type annotation struct {
	Diagnostics []domain.Diagnostic `json:"diagnostics"`
	Markers     []lint.Marker       `json:"markers"`
	Summary     string              `json:"summary"`
	Errors      int                 `json:"errors"`
	Warnings    int                 `json:"warnings"`
	Markup      string              `json:"markup"`
	Spans       []highlight.Span    `json:"spans,omitempty"`
}

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code  string `json:"code"`
		Spans bool   `json:"spans,omitempty"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	editor := s.composer.Editor(req.Code, false)
	errs, warns := lint.Count(editor.Diagnostics)
	resp := annotation{
		Diagnostics: editor.Diagnostics,
		Markers:     editor.Markers,
		Summary:     editor.Summary,
		Errors:      errs,
		Warnings:    warns,
		Markup:      editor.Markup,
	}
	if req.Spans {
		resp.Spans = highlight.Tokenize(req.Code)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// Content handlers

func filterFromQuery(r *http.Request) (domain.ExerciseFilter, error) {
	q := r.URL.Query()
	f := domain.ExerciseFilter{
		Difficulty: domain.Difficulty(q.Get("difficulty")),
		Topic:      q.Get("topic"),
	}
	if f.Difficulty != "" && f.Difficulty != domain.FilterAll && !f.Difficulty.Valid() {
		return f, domain.ErrInvalidInput
	}
	return f, nil
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid difficulty", err)
		return
	}

	exercises := s.exercises.ListExercises(filter)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"pack":      s.exercises.Pack(),
		"filter":    filter,
		"exercises": exercises,
		"count":     len(exercises),
	})
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"topics": s.exercises.Topics(),
	})
}

func (s *Server) handleRandomExercise(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid difficulty", err)
		return
	}

	ex, err := s.exercises.Random(filter)
	if err != nil {
		s.writeError(w, "no exercise available", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ex)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	ex, err := s.exercises.GetExercise(r.PathValue("id"))
	if err != nil {
		s.writeError(w, "exercise not found", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ex)
}

func (s *Server) handleListTutorials(w http.ResponseWriter, r *http.Request) {
	tutorials := s.tutorials.List()
	result := make([]map[string]any, 0, len(tutorials))
	for _, t := range tutorials {
		result = append(result, map[string]any{
			"id":          t.ID,
			"title":       t.Title,
			"description": t.Description,
			"steps":       t.Len(),
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"tutorials": result,
	})
}

func (s *Server) handleGetTutorial(w http.ResponseWriter, r *http.Request) {
	t, err := s.tutorials.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, "tutorial not found", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, t)
}

// Session handlers

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessionService.List(r.Context())
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "failed to list sessions", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sessions": sessions,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionService.Create(r.Context())
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "failed to create session", err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, "session not found", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessionService.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, "failed to delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetScreen(w http.ResponseWriter, r *http.Request) {
	screen, err := s.sessionService.Screen(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, "session not found", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, screen)
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var action workbench.Action
	if !s.decode(w, r, &action) {
		return
	}

	sess, err := s.sessionService.Dispatch(r.Context(), r.PathValue("id"), action)
	if err != nil {
		s.writeError(w, "action failed", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}

func (s *Server) handleSelectRandom(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionService.SelectRandom(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, "random selection failed", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.startRun(r, r.PathValue("id"))
	if err != nil {
		s.writeError(w, "run not started", err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]any{
		"run_id":     run.ID,
		"session_id": run.SessionID,
		"started_at": run.StartedAt,
	})
}

// errRateLimited is returned when a session starts runs too quickly
var errRateLimited = errors.New("too many runs")

// startRun runs the session's current buffer in the background
func (s *Server) startRun(r *http.Request, id string) (runner.Run, error) {
	ctx := r.Context()
	sess, err := s.sessionService.Get(ctx, id)
	if err != nil {
		return runner.Run{}, err
	}
	if !s.runLimiter.Allow(ctx, id) {
		return runner.Run{}, errRateLimited
	}

	ctx, span := s.telemetry.Tracer().Start(ctx, "runner.start")
	defer span.End()

	return s.runner.Start(ctx, id, sess.State.ExerciseID, sess.State.Code)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	recent, err := s.profileService.Recent(r.Context(), 20)
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "failed to read activity", err)
		return
	}
	overview, err := s.profileService.Overview(r.Context())
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "failed to read activity", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"recent":   recent,
		"overview": overview,
	})
}

// Helper methods

// decode reads a JSON body into v, writing a 400 on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	return true
}

// errorStatus maps service errors to HTTP statuses
func errorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, domain.ErrExerciseNotFound),
		errors.Is(err, domain.ErrTutorialNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownAction),
		errors.Is(err, domain.ErrUnknownView),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, runner.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, err error) {
	s.jsonError(w, errorStatus(err), message, err)
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]any{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	s.jsonResponse(w, status, response)
}
