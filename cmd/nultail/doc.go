// Command nultail follows pre-allocated, end-marker-padded files and prints
// new text as it appears. Flag parsing, glob expansion, cursor persistence,
// and signal handling live here; the follow semantics live in internal/tail.
package main
