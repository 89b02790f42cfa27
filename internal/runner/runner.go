// Package runner simulates running the learner's code. A run waits a fixed
// delay, then notifies a collaborator. Nothing is executed.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDelay is how long a simulated run takes
const DefaultDelay = time.Second

// ErrBusy is returned when a session already has a run in flight
var ErrBusy = errors.New("run already in progress")

// Run describes one simulated run
type Run struct {
	ID         uuid.UUID `json:"id"`
	SessionID  string    `json:"session_id"`
	ExerciseID string    `json:"exercise_id,omitempty"`
	Code       string    `json:"code"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

// Lines returns the number of lines in the submitted code
func (r Run) Lines() int {
	return strings.Count(r.Code, "\n") + 1
}

// Notifier is told about every completed run. Notification is fire and
// forget: errors are logged, never surfaced to the caller.
type Notifier interface {
	NotifyRun(ctx context.Context, run Run) error
}

// LogNotifier logs runs through slog
type LogNotifier struct {
	Logger *slog.Logger
}

// NotifyRun logs the run
func (n LogNotifier) NotifyRun(ctx context.Context, run Run) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "running code",
		"run_id", run.ID,
		"session_id", run.SessionID,
		"exercise_id", run.ExerciseID,
		"lines", run.Lines(),
	)
	return nil
}

// CompletionFunc is called after a run finishes and its notifier returned
type CompletionFunc func(ctx context.Context, run Run)

// Runner tracks one busy flag per session
type Runner struct {
	delay      time.Duration
	notifier   Notifier
	onComplete CompletionFunc

	mu   sync.Mutex
	busy map[string]uuid.UUID
	wg   sync.WaitGroup
}

// Option configures a Runner
type Option func(*Runner)

// WithDelay sets the simulated run duration
func WithDelay(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.delay = d
		}
	}
}

// WithCompletion registers a callback for finished runs
func WithCompletion(fn CompletionFunc) Option {
	return func(r *Runner) { r.onComplete = fn }
}

// New creates a runner. A nil notifier logs runs.
func New(notifier Notifier, opts ...Option) *Runner {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	r := &Runner{
		delay:    DefaultDelay,
		notifier: notifier,
		busy:     make(map[string]uuid.UUID),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsRunning reports whether sessionID has a run in flight
func (r *Runner) IsRunning(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.busy[sessionID]
	return ok
}

func (r *Runner) acquire(sessionID, exerciseID, code string) (Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.busy[sessionID]; ok {
		return Run{}, fmt.Errorf("session %s: %w", sessionID, ErrBusy)
	}
	run := Run{
		ID:         uuid.New(),
		SessionID:  sessionID,
		ExerciseID: exerciseID,
		Code:       code,
		StartedAt:  time.Now(),
	}
	r.busy[sessionID] = run.ID
	return run, nil
}

func (r *Runner) release(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.busy, sessionID)
}

// Run performs a run synchronously. It returns ErrBusy if the session is
// already running and ctx.Err() if ctx ends during the wait, in which case
// no notification is sent.
func (r *Runner) Run(ctx context.Context, sessionID, exerciseID, code string) (Run, error) {
	run, err := r.acquire(sessionID, exerciseID, code)
	if err != nil {
		return Run{}, err
	}
	r.wg.Add(1)
	return r.finish(ctx, run)
}

// Start begins a run in the background and returns immediately. The run is
// detached from ctx cancellation but keeps its values.
func (r *Runner) Start(ctx context.Context, sessionID, exerciseID, code string) (Run, error) {
	run, err := r.acquire(sessionID, exerciseID, code)
	if err != nil {
		return Run{}, err
	}
	r.wg.Add(1)
	go func() {
		_, _ = r.finish(context.WithoutCancel(ctx), run)
	}()
	return run, nil
}

func (r *Runner) finish(ctx context.Context, run Run) (Run, error) {
	defer r.wg.Done()

	timer := time.NewTimer(r.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		r.release(run.SessionID)
		slog.Debug("run cancelled", "run_id", run.ID, "session_id", run.SessionID)
		return Run{}, ctx.Err()
	case <-timer.C:
	}

	run.FinishedAt = time.Now()
	r.release(run.SessionID)

	if err := r.notifier.NotifyRun(ctx, run); err != nil {
		slog.Warn("run notification failed", "run_id", run.ID, "session_id", run.SessionID, "error", err)
	}
	if r.onComplete != nil {
		r.onComplete(ctx, run)
	}
	return run, nil
}

// Wait blocks until every in-flight run has finished
func (r *Runner) Wait() {
	r.wg.Wait()
}

// MultiNotifier fans a run out to several notifiers. All are called; the
// first error is returned.
type MultiNotifier []Notifier

// NotifyRun notifies every member
func (m MultiNotifier) NotifyRun(ctx context.Context, run Run) error {
	var first error
	for _, n := range m {
		if err := n.NotifyRun(ctx, run); err != nil && first == nil {
			first = err
		}
	}
	return first
}
