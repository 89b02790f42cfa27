package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/codelearn/internal/config"
	"github.com/felixgeelhaar/codelearn/internal/content"
	mcpserver "github.com/felixgeelhaar/codelearn/internal/mcp"
)

// cmdMCP serves the MCP tools on stdio
func cmdMCP() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout carries the protocol
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	c, err := content.Load(cfg.Content)
	if err != nil {
		return err
	}

	srv := mcpserver.NewServer(mcpserver.Config{
		Exercises: c.Exercises,
		Tutorials: c.Tutorials,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.ServeStdio(ctx)
}
