package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/codelearn/internal/config"
	"github.com/felixgeelhaar/codelearn/internal/queue"
)

// cmdRuns follows run notifications published by the daemon
func cmdRuns(args []string) error {
	if len(args) < 1 || args[0] != "watch" {
		fmt.Println(`Run commands:

  codelearn runs watch [--workers n]  Print run notifications from RabbitMQ`)
		return nil
	}

	consumerCfg, err := runsFlags(args[1:])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Notify.AMQPURL == "" {
		return fmt.Errorf("no broker configured (set notify.amqp_url or CODELEARN_AMQP_URL)")
	}

	conn, err := queue.NewConnection(cfg.Notify.AMQPURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := queue.NewConsumer(conn, func(ctx context.Context, event *queue.RunEvent) error {
		printRunEvent(os.Stdout, event)
		return nil
	}, consumerCfg)
	if err := consumer.Start(ctx); err != nil {
		return err
	}

	fmt.Println(dimColor.Sprint("Watching " + queue.RunQueueName + " (Ctrl+C to stop)"))
	<-ctx.Done()
	consumer.Stop()
	return nil
}

func runsFlags(args []string) (queue.ConsumerConfig, error) {
	cfg := queue.DefaultConsumerConfig()
	fs := newFlagSet("runs watch")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of consumer workers")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return cfg, err
	}
	if len(positional) > 0 {
		return cfg, fmt.Errorf("runs watch: unexpected argument %q", positional[0])
	}
	if cfg.Workers < 1 {
		return cfg, fmt.Errorf("runs watch: --workers must be at least 1, got %d", cfg.Workers)
	}
	return cfg, nil
}

func printRunEvent(w io.Writer, e *queue.RunEvent) {
	exercise := "free editing"
	if e.ExerciseID != "" {
		exercise = "exercise " + e.ExerciseID
	}
	fmt.Fprintf(w, "%s %s session=%s %s, %d lines, %s\n",
		dimColor.Sprint(e.FinishedAt.Format("15:04:05")),
		okColor.Sprint("run"),
		e.SessionID,
		exercise,
		e.Lines,
		e.FinishedAt.Sub(e.StartedAt).Round(10*time.Millisecond),
	)
}
