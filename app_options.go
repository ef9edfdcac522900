package mosaic

import (
	"time"

	"github.com/pkg/errors"
)

// AppOption is a functional option for configuring an App.
type AppOption func(*App) error

// WithTerminal sets the terminal implementation. Default is an
// ANSITerminal on stdout/stdin. Use a MockTerminal in tests.
func WithTerminal(t Terminal) AppOption {
	return func(a *App) error {
		if t == nil {
			return errors.New("nil terminal")
		}
		a.terminal = t
		return nil
	}
}

// WithReader sets the event reader. Default reads from stdin.
func WithReader(r EventReader) AppOption {
	return func(a *App) error {
		if r == nil {
			return errors.New("nil event reader")
		}
		a.reader = r
		return nil
	}
}

// WithFrameRate sets the target frame rate for the render loop.
// Default is 60 fps. Valid range is 1-240 fps.
func WithFrameRate(fps int) AppOption {
	return func(a *App) error {
		if fps < 1 {
			return errors.New("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return errors.New("frame rate cannot exceed 240 fps")
		}
		a.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithInputLatency sets the polling timeout for the event reader.
// Default is 50ms. A value of 0 (busy polling) is not allowed.
func WithInputLatency(d time.Duration) AppOption {
	return func(a *App) error {
		if d == 0 {
			return errors.New("input latency of 0 (busy polling) is not allowed")
		}
		a.inputLatency = d
		return nil
	}
}

// WithEventQueueSize sets the capacity of the event queue buffer.
// Default is 256. Must be at least 1.
func WithEventQueueSize(size int) AppOption {
	return func(a *App) error {
		if size < 1 {
			return errors.New("event queue size must be at least 1")
		}
		a.eventQueueSize = size
		return nil
	}
}

// WithGlobalKeyHandler sets a handler that runs before router dispatch.
// If it returns true the event is consumed. Use for app-level bindings
// like quit.
func WithGlobalKeyHandler(fn func(KeyEvent) bool) AppOption {
	return func(a *App) error {
		a.globalKeyHandler = fn
		return nil
	}
}

// WithMouse enables or disables mouse reporting. Default is enabled.
func WithMouse(enabled bool) AppOption {
	return func(a *App) error {
		a.mouseEnabled = enabled
		return nil
	}
}

// WithRouterOptions forwards options to the input router, e.g.
// WithClickInterval and WithClickSlop.
func WithRouterOptions(opts ...RouterOption) AppOption {
	return func(a *App) error {
		a.routerOpts = append(a.routerOpts, opts...)
		return nil
	}
}
