// Package logging constructs the slog loggers used for nultail diagnostics.
//
// All diagnostic output is written to stderr so stdout remains a pure data
// channel for followed file content. The console format produces compact
// human-readable lines; the json format emits one structured object per
// record. The verbose CLI flag maps to the debug level rather than a global
// mutable switch, so verbosity travels with the logger handle.
package logging
