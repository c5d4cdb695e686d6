package config

import (
	"fmt"
	"strings"
)

// Normalize trims and expands path fields and resolves the delimiter and end
// marker byte values. It must run before Validate.
func (c *Config) Normalize() error {
	if err := c.normalizeFollow(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeFollow() error {
	if c.Follow.Delimiter == "" {
		c.Follow.Delimiter = defaultDelimiter
	}
	if c.Follow.EndMarker == "" {
		c.Follow.EndMarker = defaultEndMarker
	}

	var err error
	if c.DelimiterByte, err = ParseByte(c.Follow.Delimiter); err != nil {
		return fmt.Errorf("follow.delimiter: %w", err)
	}
	if c.MarkerByte, err = ParseByte(c.Follow.EndMarker); err != nil {
		return fmt.Errorf("follow.end_marker: %w", err)
	}
	return nil
}

func (c *Config) normalizePaths() error {
	c.StateDB = strings.TrimSpace(c.StateDB)
	if c.StateDB == "" {
		return nil
	}
	expanded, err := expandPath(c.StateDB)
	if err != nil {
		return fmt.Errorf("state_db: %w", err)
	}
	c.StateDB = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
