package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/codelearn/internal/config"
	"github.com/felixgeelhaar/codelearn/internal/content"
	"github.com/felixgeelhaar/codelearn/internal/daemon"
	"github.com/felixgeelhaar/codelearn/internal/lint"
	"github.com/felixgeelhaar/codelearn/internal/profile"
	"github.com/felixgeelhaar/codelearn/internal/runner"
	"github.com/felixgeelhaar/codelearn/internal/session"
	"github.com/felixgeelhaar/codelearn/internal/tui"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

// cmdTUI runs an in-process workbench in the terminal
func cmdTUI() error {
	dir, err := config.EnsureDir()
	if err != nil {
		return fmt.Errorf("setup codelearn directory: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the UI; logs go to a file
	logFile, err := os.OpenFile(filepath.Join(dir, "logs", "codelearn-tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, r, err := localWorkbench(cfg)
	if err != nil {
		return err
	}
	defer r.Wait()

	sess, err := svc.Create(ctx)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	m, err := tui.New(ctx, svc, r, sess.ID)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// localWorkbench wires an in-memory session service and runner
func localWorkbench(cfg *config.LocalConfig) (*session.Service, *runner.Runner, error) {
	c, err := content.Load(cfg.Content)
	if err != nil {
		return nil, nil, err
	}

	composer := workbench.NewComposer(c.Exercises, c.Tutorials,
		workbench.WithLanguage(cfg.Editor.Language),
		workbench.WithGeometry(lint.Geometry{
			LineHeight: cfg.Editor.LineHeight,
			Offset:     cfg.Editor.MarkerOffset,
		}),
	)
	svc := session.NewService(session.NewMemoryStore(), workbench.NewReducer(c.Exercises, c.Tutorials), composer, c.Exercises, session.Options{
		InitialCode: cfg.Editor.InitialCode,
		TutorialID:  cfg.Editor.TutorialID,
		Settings:    daemon.SettingsFromConfig(cfg),
	})
	svc.SetProfileService(profile.NewService(profile.NewMemoryStore(), c.Exercises, c.Tutorials))

	r := runner.New(runner.LogNotifier{Logger: slog.Default()},
		runner.WithDelay(cfg.Editor.RunDelay()),
		runner.WithCompletion(func(ctx context.Context, run runner.Run) {
			if err := svc.RecordRun(ctx, run.SessionID); err != nil {
				slog.Warn("failed to record run", "session_id", run.SessionID, "error", err)
			}
		}),
	)
	svc.SetRunState(r)
	return svc, r, nil
}
