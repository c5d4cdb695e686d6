package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFollow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFollow() error {
	if c.Follow.Lines < 0 {
		return fmt.Errorf("follow.lines must be zero or positive, got %d", c.Follow.Lines)
	}
	if c.Follow.PollInterval < 1 {
		return fmt.Errorf("follow.poll_interval must be at least 1 second, got %d", c.Follow.PollInterval)
	}
	if c.DelimiterByte == c.MarkerByte {
		return fmt.Errorf("follow.delimiter and follow.end_marker must differ, both are %s", FormatByte(c.MarkerByte))
	}
	if c.WatchPID < 0 {
		return fmt.Errorf("watch pid must be zero or positive, got %d", c.WatchPID)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// ErrNoFiles indicates that neither positional paths nor a glob pattern
// produced anything to follow.
var ErrNoFiles = errors.New("no files to follow")

// ValidateFiles checks the resolved file list once the CLI layer has merged
// positional arguments and glob expansion results.
func (c *Config) ValidateFiles() error {
	if len(c.Files) == 0 {
		return ErrNoFiles
	}
	return nil
}
