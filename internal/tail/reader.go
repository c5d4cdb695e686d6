package tail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// chunkBlockSize is the granularity of individual file reads.
const chunkBlockSize = 4096

// ReadChunk reads from r starting at offset up to and including the first
// occurrence of delim, or up to end of file when no delimiter remains. An
// empty chunk with a nil error means no new data past offset.
//
// TODO: bound chunk growth; a multi-GiB padded region with no delimiter is
// accumulated whole before the boundary rewind discards it.
func ReadChunk(r io.ReaderAt, offset int64, delim byte) ([]byte, error) {
	var chunk []byte
	block := make([]byte, chunkBlockSize)

	for {
		n, err := r.ReadAt(block, offset+int64(len(chunk)))
		if n > 0 {
			if idx := bytes.IndexByte(block[:n], delim); idx >= 0 {
				return append(chunk, block[:idx+1]...), nil
			}
			chunk = append(chunk, block[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return chunk, nil
			}
			return nil, fmt.Errorf("read at offset %d: %w", offset+int64(len(chunk)), err)
		}
	}
}
