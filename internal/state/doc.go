// Package state persists per-file read cursors between nultail runs.
//
// The store is a small SQLite database keyed by file path, holding the byte
// cursor and whether the file had already reached the streaming phase. A
// restarted follow restores these so catch-up is not replayed. A flock next
// to the database enforces a single writer; two followers resuming from the
// same database would otherwise interleave cursor updates.
package state
