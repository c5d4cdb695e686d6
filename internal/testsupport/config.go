package testsupport

import (
	"testing"

	"nultail/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a normalized, validated config with test-friendly
// defaults and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize test config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate test config: %v", err)
	}
	return &cfg
}

// WithFiles sets the followed file list.
func WithFiles(paths ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Files = paths
	}
}

// WithLines sets the catch-up depth.
func WithLines(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Follow.Lines = n
	}
}

// WithFromStart enables unbounded catch-up.
func WithFromStart() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Follow.FromStart = true
	}
}

// WithQuiet suppresses section headers.
func WithQuiet() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Follow.Quiet = true
	}
}

// WithWatchPID sets the watched pid.
func WithWatchPID(pid int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.WatchPID = pid
	}
}

// WithStateDB sets the cursor database path.
func WithStateDB(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.StateDB = path
	}
}

// WithEndMarker overrides the padding byte.
func WithEndMarker(marker string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Follow.EndMarker = marker
	}
}
