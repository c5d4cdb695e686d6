package tail_test

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nultail/internal/tail"
	"nultail/internal/testsupport"
)

func newFollower(t *testing.T, out *bytes.Buffer, opts ...testsupport.ConfigOption) *tail.Follower {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	f, err := tail.New(cfg, tail.Deps{Output: out})
	if err != nil {
		t.Fatalf("new follower: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func poll(t *testing.T, f *tail.Follower) bool {
	t.Helper()
	stop, err := f.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	return stop
}

func TestCatchUpDrainsOnceAndStreams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 4096, 0, "hello\n")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path))

	poll(t, f)
	if out.String() != "hello\n" {
		t.Fatalf("catch-up output = %q, want %q", out.String(), "hello\n")
	}

	status := f.Snapshot()[0]
	if status.Phase != tail.Streaming {
		t.Fatalf("phase = %v, want streaming", status.Phase)
	}
	if status.Cursor != 6 {
		t.Fatalf("cursor = %d, want 6", status.Cursor)
	}

	testsupport.WriteAt(t, path, 6, "world\n")
	poll(t, f)
	if out.String() != "hello\nworld\n" {
		t.Fatalf("streamed output = %q", out.String())
	}
}

func TestIdleCyclesAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 1024, 0, "only\n")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path))

	poll(t, f)
	cursor := f.Snapshot()[0].Cursor
	written := out.Len()

	poll(t, f)
	poll(t, f)
	if out.Len() != written {
		t.Fatalf("idle cycles produced output: %q", out.String()[written:])
	}
	if got := f.Snapshot()[0].Cursor; got != cursor {
		t.Fatalf("idle cycle moved cursor from %d to %d", cursor, got)
	}
}

func TestCatchUpKeepsOnlyLastN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 1024, 0, "l1\nl2\nl3\nl4\nl5\n")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path), testsupport.WithLines(2))

	poll(t, f)
	if out.String() != "l4\nl5\n" {
		t.Fatalf("output = %q, want last two lines", out.String())
	}
}

func TestFromStartReplaysEverything(t *testing.T) {
	var content strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&content, "line%02d\n", i)
	}
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 2048, 0, content.String())

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path), testsupport.WithLines(2), testsupport.WithFromStart())

	poll(t, f)
	if out.String() != content.String() {
		t.Fatalf("from-start output lost lines: got %d bytes, want %d", out.Len(), content.Len())
	}
}

func TestZeroLinesStreamsImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 1024, 0, "a\nb\n")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path), testsupport.WithLines(0))

	poll(t, f)
	if out.String() != "a\nb\n" {
		t.Fatalf("output = %q, want %q", out.String(), "a\nb\n")
	}
	if got := f.Snapshot()[0].Phase; got != tail.Streaming {
		t.Fatalf("phase = %v, want streaming", got)
	}
}

func TestPaddingOnlyFileStaysSilent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	testsupport.CreatePadded(t, path, 512, 0, "")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path))

	poll(t, f)
	if out.Len() != 0 {
		t.Fatalf("padding-only file produced output: %q", out.String())
	}

	status := f.Snapshot()[0]
	if status.Phase != tail.Streaming {
		t.Fatalf("phase = %v, want streaming after locating the boundary", status.Phase)
	}
	if status.Cursor != 0 {
		t.Fatalf("cursor = %d, want 0 (rewound to first marker)", status.Cursor)
	}
}

func TestRewindStopsAtBoundary(t *testing.T) {
	// Unterminated final line: the cursor must end up right after "abc",
	// not at the end of the over-read padding.
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 64, 0, "abc")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path))

	poll(t, f)
	if out.String() != "abc" {
		t.Fatalf("output = %q, want %q", out.String(), "abc")
	}
	if got := f.Snapshot()[0].Cursor; got != 3 {
		t.Fatalf("cursor = %d, want 3", got)
	}
}

func TestPartialWritesArriveInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 256, 0, "hello\n")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path))
	poll(t, f)

	testsupport.WriteAt(t, path, 6, "wor")
	poll(t, f)
	testsupport.WriteAt(t, path, 9, "ld\n")
	poll(t, f)

	if out.String() != "hello\nworld\n" {
		t.Fatalf("output = %q, want %q", out.String(), "hello\nworld\n")
	}
}

func TestTransitionFiresExactlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 512, 0, "")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path))

	poll(t, f)
	if out.Len() != 0 {
		t.Fatalf("output before any write: %q", out.String())
	}

	testsupport.WriteAt(t, path, 0, "first\n")
	poll(t, f)
	if out.String() != "first\n" {
		t.Fatalf("output = %q, want %q", out.String(), "first\n")
	}

	poll(t, f)
	if out.String() != "first\n" {
		t.Fatalf("line printed more than once: %q", out.String())
	}
}

func TestHeadersPerFile(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.log")
	pathB := filepath.Join(dir, "b.log")
	testsupport.CreatePadded(t, pathA, 256, 0, "alpha\n")
	testsupport.CreatePadded(t, pathB, 256, 0, "")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(pathA, pathB))

	poll(t, f)
	want := fmt.Sprintf("\n==> %s <==\nalpha\n", pathA)
	if out.String() != want {
		t.Fatalf("first cycle output = %q, want %q", out.String(), want)
	}
	if strings.Contains(out.String(), pathB) {
		t.Fatalf("silent file got a header: %q", out.String())
	}

	testsupport.WriteAt(t, pathB, 0, "beta\n")
	out.Reset()
	poll(t, f)
	want = fmt.Sprintf("\n==> %s <==\nbeta\n", pathB)
	if out.String() != want {
		t.Fatalf("second cycle output = %q, want %q", out.String(), want)
	}
}

func TestHeaderNotRepeatedForSameFile(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.log")
	pathB := filepath.Join(dir, "b.log")
	testsupport.CreatePadded(t, pathA, 256, 0, "one\n")
	testsupport.CreatePadded(t, pathB, 256, 0, "")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(pathA, pathB))
	poll(t, f)

	testsupport.WriteAt(t, pathA, 4, "two\n")
	out.Reset()
	poll(t, f)
	if out.String() != "two\n" {
		t.Fatalf("expected no repeated header for a contiguous run, got %q", out.String())
	}
}

func TestQuietSuppressesHeaders(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.log")
	pathB := filepath.Join(dir, "b.log")
	testsupport.CreatePadded(t, pathA, 256, 0, "alpha\n")
	testsupport.CreatePadded(t, pathB, 256, 0, "beta\n")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(pathA, pathB), testsupport.WithQuiet())

	poll(t, f)
	if strings.Contains(out.String(), "==>") {
		t.Fatalf("quiet mode emitted headers: %q", out.String())
	}
}

func TestCustomDelimiterAndMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.log")
	testsupport.CreatePadded(t, path, 128, '#', "a|b|c|")

	var out bytes.Buffer
	cfg := testsupport.NewConfig(t,
		testsupport.WithFiles(path),
		testsupport.WithLines(2),
		testsupport.WithEndMarker("#"),
	)
	cfg.Follow.Delimiter = "|"
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	f, err := tail.New(cfg, tail.Deps{Output: &out})
	if err != nil {
		t.Fatalf("new follower: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	poll(t, f)
	if out.String() != "b|c|" {
		t.Fatalf("output = %q, want last two fields", out.String())
	}
}

func TestPidStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 256, 0, "tail me\n")

	var out bytes.Buffer
	cfg := testsupport.NewConfig(t, testsupport.WithFiles(path), testsupport.WithWatchPID(12345))

	alive := true
	f, err := tail.New(cfg, tail.Deps{Output: &out, Alive: func(pid int) bool { return alive }})
	if err != nil {
		t.Fatalf("new follower: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	if stop := poll(t, f); stop {
		t.Fatal("stopped while pid alive")
	}
	if out.String() != "tail me\n" {
		t.Fatalf("output = %q", out.String())
	}

	alive = false
	if stop := poll(t, f); !stop {
		t.Fatal("expected stop once pid is gone")
	}
}

func TestOpenFailureAtStartup(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFiles(filepath.Join(t.TempDir(), "missing.log")))
	if _, err := tail.New(cfg, tail.Deps{Output: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unreadable file")
	}
}

func TestRestoreSkipsReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 256, 0, "one\ntwo\n")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path))
	if err := f.Restore(path, 4, true); err != nil {
		t.Fatalf("restore: %v", err)
	}

	poll(t, f)
	if out.String() != "two\n" {
		t.Fatalf("restored output = %q, want %q", out.String(), "two\n")
	}
}

func TestRestoreClampsStaleCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 64, 0, "fresh\n")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path))
	if err := f.Restore(path, 9999, true); err != nil {
		t.Fatalf("restore: %v", err)
	}

	poll(t, f)
	if out.String() != "fresh\n" {
		t.Fatalf("output after stale cursor = %q, want full catch-up", out.String())
	}
}

func TestPersistCallbackSeesProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 256, 0, "hello\n")

	saved := make(map[string]int64)
	cfg := testsupport.NewConfig(t, testsupport.WithFiles(path))
	f, err := tail.New(cfg, tail.Deps{
		Output: &bytes.Buffer{},
		Persist: func(p string, cursor int64, streaming bool) error {
			saved[p] = cursor
			if !streaming {
				t.Errorf("persisted non-streaming state after transition")
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("new follower: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	poll(t, f)
	if saved[path] != 6 {
		t.Fatalf("persisted cursor = %d, want 6", saved[path])
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	testsupport.CreatePadded(t, path, 256, 0, "hello\n")

	var out bytes.Buffer
	f := newFollower(t, &out, testsupport.WithFiles(path))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error on cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
