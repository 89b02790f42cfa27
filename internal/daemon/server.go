// Package daemon serves the CodeLearn workbench over HTTP: a JSON API under
// /v1 and server-rendered pages under /ui.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/felixgeelhaar/fortify/ratelimit"

	"github.com/felixgeelhaar/codelearn/internal/config"
	"github.com/felixgeelhaar/codelearn/internal/content"
	"github.com/felixgeelhaar/codelearn/internal/exercise"
	"github.com/felixgeelhaar/codelearn/internal/lint"
	"github.com/felixgeelhaar/codelearn/internal/profile"
	"github.com/felixgeelhaar/codelearn/internal/queue"
	"github.com/felixgeelhaar/codelearn/internal/runner"
	"github.com/felixgeelhaar/codelearn/internal/session"
	"github.com/felixgeelhaar/codelearn/internal/storage/sqlite"
	"github.com/felixgeelhaar/codelearn/internal/telemetry"
	"github.com/felixgeelhaar/codelearn/internal/tutorial"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

// Version is the daemon release reported by /v1/status
const Version = "0.1.0"

// Server represents the CodeLearn daemon HTTP server
type Server struct {
	cfg     *config.LocalConfig
	server  *http.Server
	router  *http.ServeMux
	pages   *template.Template
	started time.Time

	// Services
	exercises      *exercise.Registry
	tutorials      *tutorial.Registry
	composer       *workbench.Composer
	sessionService session.SessionService
	profileService *profile.Service
	runner         *runner.Runner
	runLimiter     ratelimit.RateLimiter
	telemetry      *telemetry.Provider

	closers []func() error
}

// ServerConfig holds configuration for creating a new server
type ServerConfig struct {
	Config *config.LocalConfig

	// DataPath overrides ~/.codelearn/data for the file and sqlite stores
	DataPath string

	// Telemetry wraps the handler with server spans. Nil disables tracing.
	Telemetry *telemetry.Provider

	// Notifier overrides the configured run notifier
	Notifier runner.Notifier
}

// NewServer creates a new daemon server
func NewServer(ctx context.Context, cfg ServerConfig) (*Server, error) {
	s := &Server{
		cfg:       cfg.Config,
		router:    http.NewServeMux(),
		telemetry: cfg.Telemetry,
		started:   time.Now(),
	}

	if err := s.loadContent(); err != nil {
		return nil, err
	}

	s.composer = workbench.NewComposer(s.exercises, s.tutorials,
		workbench.WithLanguage(s.cfg.Editor.Language),
		workbench.WithGeometry(lint.Geometry{
			LineHeight: s.cfg.Editor.LineHeight,
			Offset:     s.cfg.Editor.MarkerOffset,
		}),
	)
	reducer := workbench.NewReducer(s.exercises, s.tutorials)

	sessionStore, activityStore, err := s.openStores(ctx, cfg.DataPath)
	if err != nil {
		s.close()
		return nil, err
	}

	s.profileService = profile.NewService(activityStore, s.exercises, s.tutorials)

	sessionService := session.NewService(sessionStore, reducer, s.composer, s.exercises, session.Options{
		InitialCode: s.cfg.Editor.InitialCode,
		TutorialID:  s.cfg.Editor.TutorialID,
		Settings:    SettingsFromConfig(s.cfg),
	})
	sessionService.SetProfileService(s.profileService)
	s.sessionService = sessionService

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = s.setupNotifier()
	}
	s.runner = runner.New(notifier,
		runner.WithDelay(s.cfg.Editor.RunDelay()),
		runner.WithCompletion(func(ctx context.Context, run runner.Run) {
			if err := s.sessionService.RecordRun(ctx, run.SessionID); err != nil {
				slog.Warn("failed to record run", "session_id", run.SessionID, "error", err)
			}
		}),
	)
	sessionService.SetRunState(s.runner)

	s.runLimiter = ratelimit.New(&ratelimit.Config{
		Rate:     2,
		Burst:    5,
		Interval: time.Second,
	})
	s.closers = append(s.closers, s.runLimiter.Close)

	pages, err := parsePages()
	if err != nil {
		s.close()
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.pages = pages

	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.cfg.Daemon.Bind, s.cfg.Daemon.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Handler returns the router wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = recoveryMiddleware(h)
	h = loggingMiddleware(h)
	h = correlationIDMiddleware(h)
	if s.telemetry != nil {
		h = s.telemetry.Handler(h, "codelearnd")
	}
	return h
}

// loadContent reads exercises and tutorials from the configured
// directories, or from the embedded fixtures when none are set
func (s *Server) loadContent() error {
	c, err := content.Load(s.cfg.Content)
	if err != nil {
		return err
	}
	s.exercises = c.Exercises
	s.tutorials = c.Tutorials

	stats := s.exercises.Stats()
	slog.Info("content loaded",
		"exercises", stats.ExerciseCount,
		"topics", stats.TopicCount,
		"tutorials", len(s.tutorials.List()),
	)
	return nil
}

// openStores builds the session and activity stores for the configured driver
func (s *Server) openStores(ctx context.Context, dataPath string) (session.SessionStore, profile.ActivityStore, error) {
	driver := s.cfg.Storage.Driver
	if driver == config.StorageMemory || driver == "" {
		return session.NewMemoryStore(), profile.NewMemoryStore(), nil
	}

	if dataPath == "" {
		dataPath = s.cfg.Storage.Path
	}
	if dataPath == "" {
		dir, err := config.EnsureDir()
		if err != nil {
			return nil, nil, err
		}
		dataPath = filepath.Join(dir, "data")
	}

	switch driver {
	case config.StorageFile:
		sessions, err := session.NewFileStore(dataPath)
		if err != nil {
			return nil, nil, fmt.Errorf("create session store: %w", err)
		}
		activity, err := profile.NewFileStore(dataPath)
		if err != nil {
			return nil, nil, fmt.Errorf("create activity store: %w", err)
		}
		slog.Info("using file storage", "path", dataPath)
		return sessions, activity, nil

	case config.StorageSQLite:
		if err := os.MkdirAll(dataPath, 0755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		dbPath := filepath.Join(dataPath, "codelearn.db")
		db, err := sqlite.OpenAndMigrate(ctx, dbPath)
		if err != nil {
			return nil, nil, err
		}
		s.closers = append(s.closers, db.Close)
		slog.Info("using sqlite storage", "path", dbPath)
		return sqlite.NewSessionStore(db), sqlite.NewActivityStore(db), nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
}

// setupNotifier connects to RabbitMQ when the amqp backend is configured,
// falling back to logging when the broker is unreachable
func (s *Server) setupNotifier() runner.Notifier {
	logNotifier := runner.LogNotifier{Logger: slog.Default()}
	if s.cfg.Notify.Backend != config.NotifyAMQP {
		return logNotifier
	}

	conn, err := queue.NewConnection(s.cfg.Notify.AMQPURL)
	if err != nil {
		slog.Warn("RabbitMQ not available, logging runs instead", "error", err)
		return logNotifier
	}
	s.closers = append(s.closers, conn.Close)

	amqpNotifier := queue.NewNotifier(queue.NewProducer(conn), queue.DefaultNotifierConfig())
	return runner.MultiNotifier{logNotifier, amqpNotifier}
}

// SettingsFromConfig lists the effective configuration shown on the
// settings screen
func SettingsFromConfig(cfg *config.LocalConfig) []workbench.Setting {
	tracing := "disabled"
	if cfg.Telemetry.OTLPEndpoint != "" {
		tracing = cfg.Telemetry.OTLPEndpoint
	}
	return []workbench.Setting{
		{Key: "Daemon address", Value: fmt.Sprintf("%s:%d", cfg.Daemon.Bind, cfg.Daemon.Port)},
		{Key: "Log level", Value: cfg.Daemon.LogLevel},
		{Key: "Editor language", Value: cfg.Editor.Language},
		{Key: "Run delay", Value: cfg.Editor.RunDelay().String()},
		{Key: "Line height", Value: strconv.Itoa(cfg.Editor.LineHeight) + "px"},
		{Key: "Storage", Value: cfg.Storage.Driver},
		{Key: "Run notifications", Value: cfg.Notify.Backend},
		{Key: "Tracing", Value: tracing},
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health & status
	s.router.HandleFunc("GET /v1/health", s.handleHealth)
	s.router.HandleFunc("GET /v1/status", s.handleStatus)
	s.router.HandleFunc("GET /v1/config", s.handleGetConfig)

	// Annotator
	s.router.HandleFunc("POST /v1/annotate", s.handleAnnotate)

	// Content
	s.router.HandleFunc("GET /v1/exercises", s.handleListExercises)
	s.router.HandleFunc("GET /v1/exercises/topics", s.handleListTopics)
	s.router.HandleFunc("GET /v1/exercises/random", s.handleRandomExercise)
	s.router.HandleFunc("GET /v1/exercises/{id}", s.handleGetExercise)
	s.router.HandleFunc("GET /v1/tutorials", s.handleListTutorials)
	s.router.HandleFunc("GET /v1/tutorials/{id}", s.handleGetTutorial)

	// Sessions
	s.router.HandleFunc("GET /v1/sessions", s.handleListSessions)
	s.router.HandleFunc("POST /v1/sessions", s.handleCreateSession)
	s.router.HandleFunc("GET /v1/sessions/{id}", s.handleGetSession)
	s.router.HandleFunc("DELETE /v1/sessions/{id}", s.handleDeleteSession)
	s.router.HandleFunc("GET /v1/sessions/{id}/screen", s.handleGetScreen)
	s.router.HandleFunc("POST /v1/sessions/{id}/actions", s.handleDispatch)
	s.router.HandleFunc("POST /v1/sessions/{id}/random", s.handleSelectRandom)
	s.router.HandleFunc("POST /v1/sessions/{id}/runs", s.handleCreateRun)

	// Activity
	s.router.HandleFunc("GET /v1/activity", s.handleActivity)

	// Browser UI
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("GET /ui/{id}", s.handlePage)
	s.router.HandleFunc("POST /ui/{id}/action", s.handlePageAction)
	s.router.HandleFunc("POST /ui/{id}/random", s.handlePageRandom)
	s.router.HandleFunc("POST /ui/{id}/run", s.handlePageRun)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	slog.Info("starting codelearn daemon",
		"addr", s.server.Addr,
		"storage", s.cfg.Storage.Driver,
		"notify", s.cfg.Notify.Backend,
	)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight runs and
// releases storage and broker connections
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down daemon...")

	err := s.server.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.runner.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		slog.Warn("shutdown deadline reached with runs in flight")
	}

	s.close()
	return err
}

func (s *Server) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			slog.Warn("failed to close resource", "error", err)
		}
	}
	s.closers = nil
}
