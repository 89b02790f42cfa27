package queue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codelearn/internal/runner"
)

// Producer publishes run events
type Producer struct {
	pub Publisher
}

// NewProducer creates a producer on top of pub, usually a *Connection
func NewProducer(pub Publisher) *Producer {
	return &Producer{pub: pub}
}

// PublishRun publishes a run event, filling in ID and timestamps if unset
func (p *Producer) PublishRun(ctx context.Context, event *RunEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.FinishedAt.IsZero() {
		event.FinishedAt = time.Now()
	}
	if event.StartedAt.IsZero() {
		event.StartedAt = event.FinishedAt
	}

	if err := p.pub.PublishJSON(ctx, RunQueueName, event); err != nil {
		return fmt.Errorf("failed to publish run event: %w", err)
	}

	slog.Info("published run event",
		"run_id", event.ID,
		"session_id", event.SessionID,
		"exercise_id", event.ExerciseID,
	)
	return nil
}

// NewRunEvent converts a finished run into its wire form
func NewRunEvent(run runner.Run) *RunEvent {
	return &RunEvent{
		ID:         run.ID,
		SessionID:  run.SessionID,
		ExerciseID: run.ExerciseID,
		Lines:      strings.Count(run.Code, "\n") + 1,
		Code:       run.Code,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
}
