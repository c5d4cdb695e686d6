// Package procwatch answers "is this pid still alive" for the follow-until-
// exit stop condition. It is a seam around the host kernel so follower tests
// can substitute a fixed answer.
package procwatch

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Alive reports whether a process with the given pid exists. Signal 0 probes
// existence without delivering anything; EPERM still proves the process is
// there, just owned by someone else.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, unix.EPERM)
}
