package mosaic

import (
	"bytes"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// EventReader reads events from the terminal.
// It is designed for polling-based event loops.
type EventReader interface {
	// PollEvent reads the next event with a timeout.
	// Returns (event, true) if an event was read, or (nil, false) on
	// timeout. A timeout of 0 performs a non-blocking check; a negative
	// timeout blocks indefinitely.
	PollEvent(timeout time.Duration) (Event, bool)

	// Close releases resources. Must be called when done.
	Close() error
}

// stdinReader implements EventReader for a real terminal.
type stdinReader struct {
	fd         int            // stdin file descriptor
	buf        []byte         // Read buffer for escape sequences
	partialBuf []byte         // Buffer for incomplete trailing sequences
	pending    []Event        // Parsed events waiting to be returned
	sigCh      chan os.Signal // For SIGWINCH (resize) handling
}

// NewEventReader creates an EventReader for the given terminal input.
// The terminal should already be in raw mode.
func NewEventReader(in *os.File) (EventReader, error) {
	r := &stdinReader{
		fd:    int(in.Fd()),
		buf:   make([]byte, 4096),
		sigCh: make(chan os.Signal, 1),
	}

	signal.Notify(r.sigCh, syscall.SIGWINCH)

	return r, nil
}

// PollEvent reads the next event with a timeout.
func (r *stdinReader) PollEvent(timeout time.Duration) (Event, bool) {
	if len(r.pending) > 0 {
		ev := r.pending[0]
		r.pending = r.pending[1:]
		return ev, true
	}

	// Resize signals take priority over queued input.
	select {
	case <-r.sigCh:
		w, h := getTerminalSizeForReader(r.fd)
		return ResizeEvent{Width: w, Height: h}, true
	default:
	}

	ready, err := selectWithTimeout(r.fd, timeout)
	if err != nil || !ready {
		return nil, false
	}

	n, err := syscall.Read(r.fd, r.buf)
	if err != nil || n == 0 {
		return nil, false
	}

	data := r.buf[:n]
	if len(r.partialBuf) > 0 {
		data = append(r.partialBuf, data...)
		r.partialBuf = nil
	}

	events, remaining := parseInputWithRemainder(data)
	if len(remaining) > 0 {
		r.partialBuf = make([]byte, len(remaining))
		copy(r.partialBuf, remaining)
	}

	r.pending = events
	if len(r.pending) > 0 {
		ev := r.pending[0]
		r.pending = r.pending[1:]
		return ev, true
	}

	return nil, false
}

// Close releases resources.
func (r *stdinReader) Close() error {
	signal.Stop(r.sigCh)
	close(r.sigCh)
	return nil
}

// parseInputWithRemainder parses input and returns any incomplete
// trailing bytes: a partial UTF-8 sequence or an unterminated bracketed
// paste block.
func parseInputWithRemainder(data []byte) ([]Event, []byte) {
	if start := bytes.Index(data, pasteStart); start >= 0 {
		if !bytes.Contains(data[start:], pasteEnd) {
			remaining := data[start:]
			return parseInput(data[:start]), remaining
		}
	}

	remaining := findIncompleteUTF8Suffix(data)
	if len(remaining) > 0 {
		data = data[:len(data)-len(remaining)]
	}

	events := parseInput(data)
	return events, remaining
}

// findIncompleteUTF8Suffix finds any incomplete UTF-8 sequence at the end
// of data. Returns the incomplete bytes (if any).
func findIncompleteUTF8Suffix(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	// Check last 1-3 bytes for an incomplete multi-byte sequence.
	for i := 1; i <= 3 && i <= len(data); i++ {
		b := data[len(data)-i]

		if b >= 0xC0 {
			var expectedLen int
			switch {
			case b < 0xE0:
				expectedLen = 2
			case b < 0xF0:
				expectedLen = 3
			default:
				expectedLen = 4
			}
			if i < expectedLen {
				return data[len(data)-i:]
			}
			return nil
		}

		// Continuation byte; keep looking for the lead byte.
		if b >= 0x80 && b < 0xC0 {
			continue
		}

		// ASCII byte; no incomplete sequence.
		return nil
	}

	return nil
}
