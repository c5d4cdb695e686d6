package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"nultail/internal/config"
	"nultail/internal/logging"
	"nultail/internal/procwatch"
	"nultail/internal/state"
	"nultail/internal/tail"
)

func runFollow(cmdCtx context.Context, cfg *config.Config) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: os.Stderr,
	})
	if err != nil {
		return err
	}
	logger = logger.With(slog.String("run_id", uuid.NewString()))

	var store *state.Store
	if cfg.StateDB != "" {
		store, err = state.Open(cfg.StateDB)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		logger.Debug("cursor store opened", slog.String("path", store.Path()))
	}

	deps := tail.Deps{
		Logger: logger,
		Output: os.Stdout,
		Alive:  procwatch.Alive,
	}
	if store != nil {
		deps.Persist = func(path string, cursor int64, streaming bool) error {
			return store.Save(context.Background(), path, cursor, streaming)
		}
	}

	follower, err := tail.New(cfg, deps)
	if err != nil {
		return err
	}
	defer func() { _ = follower.Close() }()

	if store != nil {
		if err := restoreCursors(signalCtx, follower, store, cfg.Files, logger); err != nil {
			return err
		}
	}

	logger.Debug("follow starting",
		slog.Int("files", len(cfg.Files)),
		slog.Int("poll_interval", cfg.Follow.PollInterval),
		slog.Int("lines", cfg.Follow.Lines),
		slog.Bool("from_start", cfg.Follow.FromStart),
		slog.String("delimiter", config.FormatByte(cfg.DelimiterByte)),
		slog.String("end_marker", config.FormatByte(cfg.MarkerByte)),
		slog.Int("watch_pid", cfg.WatchPID))

	if cfg.Verbose {
		printStartupSummary(follower.Snapshot(), logger)
	}

	return follower.Run(signalCtx)
}

func restoreCursors(ctx context.Context, follower *tail.Follower, store *state.Store, files []string, logger *slog.Logger) error {
	for _, path := range files {
		cur, err := store.Lookup(ctx, path)
		if err != nil {
			return err
		}
		if cur == nil {
			continue
		}
		if err := follower.Restore(path, cur.Cursor, cur.Streaming); err != nil {
			return err
		}
		logger.Debug("cursor restored",
			slog.String("file", path),
			slog.Int64("cursor", cur.Cursor),
			slog.Bool("streaming", cur.Streaming))
	}
	return nil
}
