// Package pathglob expands shell-style filename patterns into concrete path
// lists for the CLI layer. It exists as a seam: the follower core never
// touches host glob facilities, so its tests can supply fixed lists.
package pathglob

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// ErrNoMatches indicates the pattern expanded to nothing.
var ErrNoMatches = errors.New("no files match pattern")

// Expand resolves a glob pattern into a sorted list of matching paths.
func Expand(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatches, pattern)
	}
	sort.Strings(matches)
	return matches, nil
}
