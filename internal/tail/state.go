package tail

import "os"

// Phase describes how discovered lines for one file are handled.
type Phase int

const (
	// Filling buffers candidate tail lines because the live edge of written
	// content has not been located yet.
	Filling Phase = iota
	// Streaming prints every discovered line immediately. Terminal: a file
	// never leaves this phase.
	Streaming
)

func (p Phase) String() string {
	if p == Streaming {
		return "streaming"
	}
	return "filling"
}

// fileState tracks one followed path across poll cycles.
type fileState struct {
	path   string
	file   *os.File
	cursor int64
	phase  Phase
	delim  byte
	buffer *LineBuffer
}

// consume applies one chunk to the phase machine. It advances the cursor past
// the chunk, rewinding to the first marker byte when the chunk ends in the
// marker. The returned lines are ready for immediate output: the streamed
// chunk text, or the drained catch-up buffer on the Filling to Streaming
// transition. hitMarker tells the caller to stop reading this file until the
// next cycle.
func (s *fileState) consume(chunk []byte, marker byte) (out []string, hitMarker bool) {
	if len(chunk) == 0 {
		return nil, false
	}

	s.cursor += int64(len(chunk))

	endsInMarker := chunk[len(chunk)-1] == marker

	// Text up to the padding boundary. Chunks that do not touch the boundary
	// are delimiter-terminated and used whole.
	text := chunk
	markerIdx := len(chunk)
	if endsInMarker {
		markerIdx, _ = FindMarker(chunk, marker, len(chunk))
		text = chunk[:markerIdx]
	}

	if chunk[0] != marker {
		if s.phase == Filling {
			s.buffer.Enqueue(string(text))
		} else {
			out = []string{string(text)}
		}
	}

	if endsInMarker {
		if s.phase == Filling {
			out = s.buffer.Drain()
			s.phase = Streaming
			s.buffer = nil
		}
		// Reading up to the marker makes each subsequent read stop exactly
		// where new content ends and padding begins.
		s.delim = marker
		s.cursor -= int64(len(chunk) - markerIdx)
		return out, true
	}

	return out, false
}
