package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventHandler processes one run event
type EventHandler func(ctx context.Context, event *RunEvent) error

// Consumer reads run events with a pool of workers
type Consumer struct {
	conn       *Connection
	handler    EventHandler
	workers    int
	prefetch   int
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// ConsumerConfig holds consumer configuration
type ConsumerConfig struct {
	Workers  int // Number of concurrent workers
	Prefetch int // Unacked deliveries per channel
}

// DefaultConsumerConfig returns the defaults used by the CLI watcher
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Workers:  1,
		Prefetch: 1,
	}
}

func (cfg ConsumerConfig) withDefaults() ConsumerConfig {
	def := DefaultConsumerConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = def.Prefetch
	}
	return cfg
}

// NewConsumer creates a new queue consumer
func NewConsumer(conn *Connection, handler EventHandler, cfg ConsumerConfig) *Consumer {
	cfg = cfg.withDefaults()
	return &Consumer{
		conn:     conn,
		handler:  handler,
		workers:  cfg.Workers,
		prefetch: cfg.Prefetch,
	}
}

// Start begins consuming messages
func (c *Consumer) Start(ctx context.Context) error {
	ctx, c.cancelFunc = context.WithCancel(ctx)

	ch := c.conn.Channel()
	if ch == nil {
		return ErrNotConnected
	}

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		RunQueueName,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	slog.Info("starting run event consumer", "workers", c.workers, "prefetch", c.prefetch)

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(ctx, i, msgs)
	}
	return nil
}

func (c *Consumer) worker(ctx context.Context, id int, msgs <-chan amqp.Delivery) {
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				slog.Info("message channel closed", "worker_id", id)
				return
			}
			handleDelivery(ctx, c.handler, id, msg)
		}
	}
}

// acknowledger is the subset of amqp.Delivery a handler outcome needs
type acknowledger interface {
	Ack(multiple bool) error
	Reject(requeue bool) error
}

type delivery struct {
	body []byte
	ack  acknowledger
}

func handleDelivery(ctx context.Context, handler EventHandler, workerID int, msg amqp.Delivery) {
	process(ctx, handler, workerID, delivery{body: msg.Body, ack: &msg})
}

// process decodes one message, runs handler and settles the delivery.
// Malformed and failed messages are rejected without requeue.
func process(ctx context.Context, handler EventHandler, workerID int, d delivery) {
	var event RunEvent
	if err := json.Unmarshal(d.body, &event); err != nil {
		slog.Error("failed to unmarshal run event", "worker_id", workerID, "error", err)
		_ = d.ack.Reject(false)
		return
	}

	if err := handler(ctx, &event); err != nil {
		slog.Error("run event handler failed",
			"worker_id", workerID,
			"run_id", event.ID,
			"error", err,
		)
		_ = d.ack.Reject(false)
		return
	}

	if err := d.ack.Ack(false); err != nil {
		slog.Error("failed to ack message", "worker_id", workerID, "run_id", event.ID, "error", err)
	}
}

// Stop cancels the workers and waits for them
func (c *Consumer) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
	slog.Info("consumer stopped")
}
