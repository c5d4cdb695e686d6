// Package tail follows pre-allocated files whose unwritten tail is padded
// with a fixed end-marker byte (NUL by default).
//
// Such files never change size, so size- and mtime-based follow tools cannot
// see new content. The follower instead keeps a per-file byte cursor and
// polls: each cycle reads delimiter-bounded chunks from the cursor, locates
// the boundary where written text meets the padding, and rewinds the cursor
// to that boundary so the next cycle re-checks it. Per file the follower
// first buffers the last N discovered lines (catch-up), then drains them and
// streams every new line as it appears.
//
// The package performs no flag parsing, glob expansion, or pid probing;
// callers inject those collaborators through Deps.
package tail
