package testsupport

import (
	"bytes"
	"os"
	"testing"
)

// CreatePadded writes a fixed-size file filled with the marker byte and the
// given content placed at offset 0, mimicking a freshly pre-allocated log.
func CreatePadded(t testing.TB, path string, size int, marker byte, content string) {
	t.Helper()

	if len(content) > size {
		t.Fatalf("content length %d exceeds file size %d", len(content), size)
	}
	data := bytes.Repeat([]byte{marker}, size)
	copy(data, content)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("create padded file %s: %v", path, err)
	}
}

// WriteAt overwrites data at offset without changing the file size, the way a
// writer fills a pre-allocated region.
func WriteAt(t testing.TB, path string, offset int64, data string) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open %s for writing: %v", path, err)
	}
	defer f.Close()

	if _, err := f.WriteAt([]byte(data), offset); err != nil {
		t.Fatalf("write at offset %d in %s: %v", offset, path, err)
	}
}
