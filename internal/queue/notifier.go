package queue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"

	"github.com/felixgeelhaar/codelearn/internal/runner"
)

// NotifierConfig tunes publish resilience
type NotifierConfig struct {
	// MaxAttempts per notification (default: 3)
	MaxAttempts int

	// InitialDelay between attempts (default: 200ms)
	InitialDelay time.Duration

	// FailureThreshold of consecutive failures before the breaker opens (default: 5)
	FailureThreshold int

	// OpenTimeout before a half-open probe (default: 30s)
	OpenTimeout time.Duration

	Logger *slog.Logger
}

// DefaultNotifierConfig returns the defaults used by the daemon
func DefaultNotifierConfig() NotifierConfig {
	return NotifierConfig{
		MaxAttempts:      3,
		InitialDelay:     200 * time.Millisecond,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// Notifier publishes completed runs through a retrier and a circuit breaker
type Notifier struct {
	producer       *Producer
	circuitBreaker circuitbreaker.CircuitBreaker[struct{}]
	retrier        retry.Retry[struct{}]
	logger         *slog.Logger
}

var _ runner.Notifier = (*Notifier)(nil)

// NewNotifier wraps producer with resilience
func NewNotifier(producer *Producer, cfg NotifierConfig) *Notifier {
	def := DefaultNotifierConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = def.InitialDelay
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	n := &Notifier{producer: producer, logger: logger}

	n.circuitBreaker = circuitbreaker.New[struct{}](circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.FailureThreshold
		},
		OnStateChange: func(from, to circuitbreaker.State) {
			logger.Warn("run notifier circuit breaker state change",
				"from", from.String(),
				"to", to.String())
		},
	})

	n.retrier = retry.New[struct{}](retry.Config{
		MaxAttempts:   cfg.MaxAttempts,
		InitialDelay:  cfg.InitialDelay,
		MaxDelay:      5 * time.Second,
		Multiplier:    2.0,
		BackoffPolicy: retry.BackoffExponential,
		Jitter:        true,
		IsRetryable: func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
	})

	return n
}

// NotifyRun publishes run to the run queue
func (n *Notifier) NotifyRun(ctx context.Context, run runner.Run) error {
	event := NewRunEvent(run)
	_, err := n.circuitBreaker.Execute(ctx, func(ctx context.Context) (struct{}, error) {
		return n.retrier.Do(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, n.producer.PublishRun(ctx, event)
		})
	})
	if err != nil {
		n.logger.Warn("run notification not delivered", "run_id", run.ID, "error", err)
	}
	return err
}
