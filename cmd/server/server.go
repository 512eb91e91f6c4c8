package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"

	"github.com/p-n-ai/mentai/internal/classifier"
	"github.com/p-n-ai/mentai/internal/course"
	"github.com/p-n-ai/mentai/internal/execution"
	"github.com/p-n-ai/mentai/internal/mentor"
	"github.com/p-n-ai/mentai/internal/progress"
	"github.com/p-n-ai/mentai/internal/registry"
)

const (
	serviceName  = "MentAI Backend"
	maxBodyBytes = 1 << 20
	checkTimeout = 2 * time.Second
)

// readinessCheck pings one backing service.
type readinessCheck struct {
	name  string
	check func(ctx context.Context) error
}

// server holds the handlers' dependencies.
type server struct {
	courses      *course.Service
	runner       *execution.Runner
	progress     progress.Store
	events       progress.EventLogger
	mentor       *mentor.Mentor
	aiConfigured bool
	models       []string
	checks       []readinessCheck
	wsOptions    *websocket.AcceptOptions
}

// handler builds the router wrapped in the request middleware.
func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("POST /api/v1/courses", s.handleGenerateCourse)
	mux.HandleFunc("DELETE /api/v1/courses/cache", s.handleClearCache)
	mux.HandleFunc("GET /api/v1/courses/export", s.handleExportCourse)
	mux.HandleFunc("POST /api/v1/courses/quiz/grade", s.handleGradeQuiz)
	mux.HandleFunc("GET /api/v1/classify", s.handleClassify)
	mux.HandleFunc("GET /api/v1/languages", s.handleLanguages)
	mux.HandleFunc("POST /api/v1/execute", s.handleExecute)
	mux.HandleFunc("POST /api/v1/progress", s.handleUpdateProgress)
	mux.HandleFunc("GET /api/v1/dashboard", s.handleDashboard)
	mux.HandleFunc("POST /api/v1/ask", s.handleAsk)
	mux.HandleFunc("POST /api/v1/ask/sessions", s.handleCreateSession)
	mux.HandleFunc("DELETE /api/v1/ask/sessions/{id}", s.handleEndSession)
	mux.HandleFunc("GET /api/v1/ask/ws", s.mentor.WebSocketHandler(s.wsOptions))

	return withRequestID(accessLog(recoverPanics(mux)))
}

func (s *server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	models := s.models
	if models == nil {
		models = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                "ok",
		"service":               serviceName,
		"gemini_api_configured": s.aiConfigured,
		"models":                models,
	})
}

func (s *server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	failed := map[string]string{}
	for _, c := range s.checks {
		if err := c.check(ctx); err != nil {
			failed[c.name] = err.Error()
		}
	}
	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "checks": failed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *server) handleGenerateCourse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic any `json:"topic"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Topic == nil {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	topic, ok := req.Topic.(string)
	if !ok || strings.TrimSpace(topic) == "" {
		writeError(w, http.StatusBadRequest, "topic must be a non-empty string")
		return
	}

	c, err := s.courses.Generate(r.Context(), topic)
	if err != nil {
		if errors.Is(err, course.ErrEmptyTopic) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("course generation failed", "topic", topic, "error", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred while generating the course")
		return
	}

	s.logEvent(r.Context(), r.Header.Get("X-User-Id"), progress.EventCourseGenerated, map[string]any{
		"topic":   c.Topic,
		"slug":    c.Metadata.CanonicalSlug,
		"pending": c.Metadata.IsPending,
	})
	writeJSON(w, http.StatusCreated, c)
}

func (s *server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	if err := s.courses.ClearCache(r.Context()); err != nil {
		slog.Error("clearing course cache", "error", err)
		writeError(w, http.StatusInternalServerError, "could not clear the course cache")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleExportCourse(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	c, err := s.courses.Generate(r.Context(), topic)
	if err != nil {
		if errors.Is(err, course.ErrEmptyTopic) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "course export failed")
		return
	}

	filename := strings.ReplaceAll(strings.ToLower(c.Topic), " ", "-") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := course.WriteWorkbook(w, c); err != nil {
		slog.Error("writing workbook", "topic", c.Topic, "error", err)
	}
}

func (s *server) handleGradeQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User    string            `json:"user"`
		Topic   string            `json:"topic"`
		Module  int               `json:"module"`
		Answers map[string]string `json:"answers"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.courses.GradeQuiz(r.Context(), req.Topic, req.Module, req.Answers)
	switch {
	case errors.Is(err, course.ErrEmptyTopic):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, course.ErrModuleNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "quiz grading failed")
		return
	}

	s.logEvent(r.Context(), req.User, progress.EventQuizGraded, map[string]any{
		"topic":  req.Topic,
		"module": req.Module,
		"score":  res.ScorePercentage,
	})
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleClassify(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if strings.TrimSpace(topic) == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	writeJSON(w, http.StatusOK, classifier.Classify(topic))
}

func (s *server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"languages": registry.All()})
}

func (s *server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User  string `json:"user"`
		Code  string `json:"code"`
		Topic string `json:"topic"`
		Stdin string `json:"stdin"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	out, err := s.runner.Run(r.Context(), req.Topic, req.Code, req.Stdin)
	if err != nil {
		var upstream *execution.UpstreamError
		switch {
		case errors.Is(err, execution.ErrEmptyCode),
			errors.Is(err, execution.ErrExecutionDisabled),
			errors.Is(err, execution.ErrUnsupportedLanguage):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, execution.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		case errors.As(err, &upstream):
			writeErrorDetails(w, http.StatusBadGateway, "judge0 error", upstream.Body)
		default:
			slog.Warn("code execution failed", "topic", req.Topic, "error", err)
			writeErrorDetails(w, http.StatusBadGateway, "error connecting to judge0", err.Error())
		}
		return
	}

	s.logEvent(r.Context(), req.User, progress.EventCodeExecuted, map[string]any{
		"topic":  req.Topic,
		"status": out.Status.Description,
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var u progress.Update
	if err := decodeBody(w, r, &u); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := u.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.progress.Update(r.Context(), u); err != nil {
		slog.Error("progress update failed", "user", u.UserID, "topic_slug", u.TopicSlug, "error", err)
		writeError(w, http.StatusInternalServerError, "progress update failed")
		return
	}

	if u.IsCompleted && u.ModuleID > 0 {
		s.logEvent(r.Context(), u.UserID, progress.EventModuleCompleted, map[string]any{
			"topic_slug": u.TopicSlug,
			"module":     u.ModuleID,
		})
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}

	records, err := s.progress.List(r.Context(), user)
	if err != nil {
		slog.Error("dashboard lookup failed", "user", user, "error", err)
		writeError(w, http.StatusInternalServerError, "dashboard unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": progress.Dashboard(records)})
}

func (s *server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User      string `json:"user"`
		SessionID string `json:"session_id"`
		Query     string `json:"query"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := s.mentor.Ask(r.Context(), req.SessionID, req.Query)
	switch {
	case errors.Is(err, mentor.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, mentor.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(err, mentor.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, mentor.ErrBudgetExceeded):
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	case err != nil:
		slog.Warn("mentor ask failed", "error", err)
		writeError(w, http.StatusBadGateway, "MentAI could not answer right now")
		return
	}

	s.logEvent(r.Context(), req.User, progress.EventMentorAsked, map[string]any{"query_length": len(req.Query)})
	writeJSON(w, http.StatusOK, map[string]string{
		"response":  answer,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleCreateSession starts a mentor session whose history later asks
// with the returned session_id build on.
func (s *server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User string `json:"user"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.mentor.NewSession(req.User)
	if err != nil {
		slog.Error("creating mentor session failed", "user", req.User, "error", err)
		writeError(w, http.StatusInternalServerError, "could not start a session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

func (s *server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := s.mentor.EndSession(r.PathValue("id")); err != nil {
		if errors.Is(err, mentor.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		slog.Error("ending mentor session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not end the session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// logEvent records an analytics event. Failures are logged, never returned.
func (s *server) logEvent(ctx context.Context, userID, eventType string, data map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.LogEvent(ctx, progress.Event{UserID: userID, EventType: eventType, Data: data}); err != nil {
		slog.Warn("failed to log event", "event_type", eventType, "error", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeErrorDetails(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, map[string]string{"error": msg, "details": details})
}
