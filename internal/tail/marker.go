package tail

import "bytes"

// FindMarker locates the first occurrence of marker within chunk[:limit].
// It reports the index and whether a marker byte was found.
//
// The follower uses it to compute the rewind distance when a chunk's final
// byte is the marker: a single read may straddle the boundary between fresh
// text and the original padding, and consuming the whole chunk would skip
// re-checking that boundary on the next poll.
func FindMarker(chunk []byte, marker byte, limit int) (int, bool) {
	if limit > len(chunk) {
		limit = len(chunk)
	}
	if limit <= 0 {
		return 0, false
	}
	idx := bytes.IndexByte(chunk[:limit], marker)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}
