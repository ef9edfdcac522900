//go:build unix

package mosaic

import (
	"time"

	"golang.org/x/sys/unix"
)

// getTerminalSizeForReader returns the terminal dimensions for the
// EventReader.
func getTerminalSizeForReader(fd int) (width, height int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// selectWithTimeout performs a select() call on the given fd with timeout.
// Returns (true, nil) if the fd is ready for reading, (false, nil) on
// timeout, and (false, err) on error.
func selectWithTimeout(fd int, timeout time.Duration) (ready bool, err error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(fd)

	var tv *unix.Timeval
	if timeout >= 0 {
		tvVal := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &tvVal
	}
	// A nil timeval blocks indefinitely.

	n, err := unix.Select(fd+1, &readFds, nil, nil, tv)
	if err != nil {
		// Signals interrupt select; treat as a timeout.
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}

	return n > 0, nil
}
