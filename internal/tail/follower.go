package tail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"nultail/internal/config"
	"nultail/internal/logging"
)

// Deps carries the follower's external collaborators. Only Output is
// required; the rest default to direct OS access or no-ops.
type Deps struct {
	Logger *slog.Logger
	Output io.Writer

	// Open obtains a handle for a followed path. Defaults to os.Open.
	Open func(path string) (*os.File, error)

	// Alive reports whether a watched pid still exists.
	Alive func(pid int) bool

	// Persist, when set, is invoked after each cycle that moved a file's
	// cursor or changed its phase.
	Persist func(path string, cursor int64, streaming bool) error
}

type flusher interface{ Flush() error }

// Follower drives the poll cycle over every tracked file.
type Follower struct {
	cfg     *config.Config
	logger  *slog.Logger
	out     io.Writer
	open    func(string) (*os.File, error)
	alive   func(int) bool
	persist func(string, int64, bool) error

	states      []*fileState
	lastPrinted int
	showHeaders bool
}

// FileStatus is a point-in-time view of one tracked file.
type FileStatus struct {
	Path   string
	Cursor int64
	Phase  Phase
}

// New builds a follower for cfg.Files and opens every file. If any open
// fails, files opened so far are closed and the error is returned; the caller
// maps that to the startup failure exit code.
func New(cfg *config.Config, deps Deps) (*Follower, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if len(cfg.Files) == 0 {
		return nil, config.ErrNoFiles
	}
	if deps.Output == nil {
		return nil, errors.New("output writer is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	open := deps.Open
	if open == nil {
		open = os.Open
	}
	alive := deps.Alive
	if alive == nil {
		alive = func(int) bool { return true }
	}

	f := &Follower{
		cfg:         cfg,
		logger:      logger,
		out:         deps.Output,
		open:        open,
		alive:       alive,
		persist:     deps.Persist,
		lastPrinted: -1,
		showHeaders: !cfg.Follow.Quiet && len(cfg.Files) > 1,
	}

	for _, path := range cfg.Files {
		st := &fileState{path: path, delim: cfg.DelimiterByte, phase: Filling}
		switch {
		case cfg.Follow.FromStart:
			st.buffer = NewUnboundedLineBuffer()
		case cfg.Follow.Lines == 0:
			// No catch-up requested: the live edge is wherever the first
			// marker turns out to be, so stream from the start.
			st.phase = Streaming
		default:
			st.buffer = NewLineBuffer(cfg.Follow.Lines)
		}
		f.states = append(f.states, st)
	}

	if err := f.openAll(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Follower) openAll() error {
	for i, st := range f.states {
		file, err := f.open(st.path)
		if err != nil {
			for j := 0; j < i; j++ {
				_ = f.states[j].file.Close()
				f.states[j].file = nil
			}
			return fmt.Errorf("open %s: %w", st.path, err)
		}
		st.file = file
	}
	return nil
}

// Restore seeds a tracked file with a previously saved cursor. Cursors beyond
// the current file size are ignored, leaving the fresh-start state: the file
// was re-created since the cursor was saved. Unknown paths are ignored.
func (f *Follower) Restore(path string, cursor int64, streaming bool) error {
	for _, st := range f.states {
		if st.path != path {
			continue
		}
		info, err := st.file.Stat()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if cursor < 0 || cursor > info.Size() {
			f.logger.Debug("saved cursor out of range, starting fresh",
				slog.String("file", path), slog.Int64("cursor", cursor), slog.Int64("size", info.Size()))
			return nil
		}
		st.cursor = cursor
		if streaming {
			st.phase = Streaming
			st.delim = f.cfg.MarkerByte
			st.buffer = nil
		}
		return nil
	}
	return nil
}

// Snapshot reports the current cursor and phase of every tracked file in
// configuration order.
func (f *Follower) Snapshot() []FileStatus {
	out := make([]FileStatus, 0, len(f.states))
	for _, st := range f.states {
		out = append(out, FileStatus{Path: st.path, Cursor: st.cursor, Phase: st.phase})
	}
	return out
}

// Close releases every open file handle.
func (f *Follower) Close() error {
	var firstErr error
	for _, st := range f.states {
		if st.file == nil {
			continue
		}
		if err := st.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		st.file = nil
	}
	return firstErr
}

// Run polls until the context is canceled or a stop condition is met.
// Cancellation interrupts the inter-cycle sleep immediately and is not an
// error; lines still held in catch-up buffers at that point are dropped.
func (f *Follower) Run(ctx context.Context) error {
	delay := time.Duration(f.cfg.Follow.PollInterval) * time.Second
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		stop, err := f.Poll(ctx)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}

		timer.Reset(delay)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// Poll performs one cycle: every tracked file is scanned in configuration
// order for new chunks, then the stop conditions are evaluated. It returns
// true when following should end.
func (f *Follower) Poll(ctx context.Context) (bool, error) {
	for i, st := range f.states {
		if ctx.Err() != nil {
			return true, nil
		}
		if st.file == nil {
			file, err := f.open(st.path)
			if err != nil {
				return false, fmt.Errorf("reopen %s: %w", st.path, err)
			}
			st.file = file
		}

		cursorBefore := st.cursor
		phaseBefore := st.phase
		if err := f.scanFile(ctx, i, st); err != nil {
			return false, err
		}

		if f.persist != nil && (st.cursor != cursorBefore || st.phase != phaseBefore) {
			if err := f.persist(st.path, st.cursor, st.phase == Streaming); err != nil {
				f.logger.Warn("persist cursor failed",
					slog.String("file", st.path), slog.Any("error", err))
			}
		}
	}

	if f.cfg.WatchPID != 0 && !f.alive(f.cfg.WatchPID) {
		f.logger.Debug("watched pid is gone, stopping", slog.Int("pid", f.cfg.WatchPID))
		return true, nil
	}
	return false, nil
}

// scanFile pulls chunks for one file until no new data remains or the padding
// boundary is hit. Read failures are transient: logged, and the file is left
// for the next cycle.
func (f *Follower) scanFile(ctx context.Context, index int, st *fileState) error {
	for ctx.Err() == nil {
		chunk, err := ReadChunk(st.file, st.cursor, st.delim)
		if err != nil {
			f.logger.Debug("chunk read failed, retrying next cycle",
				slog.String("file", st.path), slog.Int64("cursor", st.cursor), slog.Any("error", err))
			return nil
		}
		if len(chunk) == 0 {
			return nil
		}

		out, hitMarker := st.consume(chunk, f.cfg.MarkerByte)
		f.logger.Debug("chunk consumed",
			slog.String("file", st.path),
			slog.Int("bytes", len(chunk)),
			slog.Int64("cursor", st.cursor),
			slog.String("phase", st.phase.String()),
			slog.Bool("at_boundary", hitMarker))

		if len(out) > 0 {
			if err := f.emit(index, out); err != nil {
				return err
			}
		}
		if hitMarker {
			return nil
		}
	}
	return nil
}

// emit writes lines for one file, preceded by its section header when more
// than one file is tracked, headers are enabled, and the previous output
// belonged to a different file.
func (f *Follower) emit(index int, lines []string) error {
	if f.showHeaders && f.lastPrinted != index {
		if _, err := fmt.Fprintf(f.out, "\n==> %s <==\n", f.states[index].path); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	f.lastPrinted = index

	for _, line := range lines {
		if _, err := io.WriteString(f.out, line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if fl, ok := f.out.(flusher); ok {
		if err := fl.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}
	return nil
}
