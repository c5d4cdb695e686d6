// Package config loads, normalizes, and validates nultail configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and resolves the delimiter and end-marker
// escape forms into single bytes. The Config type centralizes every knob the
// follower needs: catch-up depth, poll interval, delimiter, end marker, quiet
// mode, watched pid, and the optional cursor-persistence database.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, resolved byte values, and clear validation errors.
package config
