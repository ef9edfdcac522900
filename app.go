package mosaic

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/mosaicui/mosaic/internal/debug"
)

// App owns the terminal, the retained tree, and the event loop.
// Construction sets up raw mode, the alternate screen, and mouse
// reporting; Close restores everything.
type App struct {
	terminal Terminal
	buffer   *Buffer
	reader   EventReader
	router   *Router
	runner   *Runner

	root Node

	frameDuration  time.Duration
	inputLatency   time.Duration
	eventQueueSize int
	mouseEnabled   bool

	globalKeyHandler func(KeyEvent) bool

	eventQueue chan func()
	stopCh     chan struct{}
	stopped    atomic.Bool
	cancel     context.CancelFunc

	needsFrame  atomic.Bool
	lastCursor  CursorShape
	watchers    []Watcher
	routerOpts  []RouterOption
	renderError error
}

// NewApp creates an application on the real terminal: raw mode, alternate
// screen, hidden cursor, mouse reporting.
func NewApp(opts ...AppOption) (*App, error) {
	a := &App{
		frameDuration:  time.Second / 60,
		inputLatency:   50 * time.Millisecond,
		eventQueueSize: 256,
		mouseEnabled:   true,
		stopCh:         make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.terminal == nil {
		a.terminal = NewANSITerminal(os.Stdout, os.Stdin)
	}

	if err := a.terminal.EnterRawMode(); err != nil {
		return nil, errors.Wrap(err, "entering raw mode")
	}
	a.terminal.EnterAltScreen()
	a.terminal.HideCursor()
	if a.mouseEnabled {
		a.terminal.EnableMouse()
	}

	width, height := a.terminal.Size()
	a.buffer = NewBuffer(width, height)

	if a.reader == nil {
		reader, err := NewEventReader(os.Stdin)
		if err != nil {
			a.restoreTerminal()
			return nil, errors.Wrap(err, "creating event reader")
		}
		a.reader = reader
	}

	a.eventQueue = make(chan func(), a.eventQueueSize)
	a.router = NewRouter(nil, a.routerOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.runner = NewRunner(ctx, a.eventQueue, a.stopCh)
	a.router.SetAsyncRunner(func(owner Node, fn func(ctx context.Context)) {
		a.runner.Submit(owner, nil, func(ctx context.Context) error {
			fn(ctx)
			return nil
		})
	})
	return a, nil
}

// Close restores the terminal to its original state.
// Must be called when the application exits.
func (a *App) Close() error {
	a.Stop()
	a.cancel()
	a.runner.Close()
	a.restoreTerminal()
	return a.reader.Close()
}

func (a *App) restoreTerminal() {
	if a.mouseEnabled {
		a.terminal.DisableMouse()
	}
	a.terminal.SetCursorShape(CursorBlock)
	a.terminal.ShowCursor()
	a.terminal.ExitAltScreen()
	a.terminal.ExitRawMode()
}

// SetRoot installs the tree: every node gets the invalidate callback,
// registered watchers start, and the focus ring is derived. The first
// focusable node receives focus.
func (a *App) SetRoot(root Node) {
	a.root = root
	WalkNodes(root, func(n Node) {
		if b, ok := n.(interface{ SetInvalidator(func()) }); ok {
			b.SetInvalidator(a.Invalidate)
		}
	})
	a.router.SetRoot(root)
	if ring := a.router.Ring(); ring.Focused() == nil && ring.Len() > 0 {
		ring.MoveFocus(ring.Nodes()[0])
	}
	for _, w := range a.watchers {
		w.Start(a.eventQueue, a.stopCh)
	}
	a.watchers = nil
	a.Invalidate()
}

// Root returns the current root node.
func (a *App) Root() Node {
	return a.root
}

// Router returns the input router.
func (a *App) Router() *Router {
	return a.router
}

// Terminal returns the underlying terminal.
func (a *App) Terminal() Terminal {
	return a.terminal
}

// Watch registers a watcher to start when the tree is installed, or
// immediately if SetRoot already ran.
func (a *App) Watch(w Watcher) {
	if a.root != nil {
		w.Start(a.eventQueue, a.stopCh)
		return
	}
	a.watchers = append(a.watchers, w)
}

// Invalidate schedules a frame. Safe from any goroutine.
func (a *App) Invalidate() {
	a.needsFrame.Store(true)
}

// QueueUpdate enqueues a function to run on the event loop.
// Safe to call from any goroutine.
func (a *App) QueueUpdate(fn func()) {
	select {
	case a.eventQueue <- fn:
	case <-a.stopCh:
	}
}

// Go submits background work owned by a node. The node's Loadable (if
// any) tracks the lifecycle; pass nil when the node has none.
func (a *App) Go(owner Node, load *Loadable, fn func(ctx context.Context) error) *Task {
	return a.runner.Submit(owner, load, fn)
}

// Run starts the event loop. Blocks until Stop is called, SIGINT
// arrives, or a render pass fails tree validation.
func (a *App) Run() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			a.Stop()
		case <-a.stopCh:
		}
		signal.Stop(sigCh)
	}()

	go a.readInputEvents()

	// Initial frame
	if err := a.renderFrame(); err != nil {
		return err
	}

	for !a.stopped.Load() {
		frameStart := time.Now()

		// Process queued updates for up to half the frame budget.
		eventDeadline := frameStart.Add(a.frameDuration / 2)
	drain:
		for time.Now().Before(eventDeadline) {
			select {
			case handler := <-a.eventQueue:
				handler()
			case <-a.stopCh:
				return a.renderError
			default:
				break drain
			}
		}

		if a.needsFrame.Swap(false) || AnyNeedsRender(a.root) {
			if err := a.renderFrame(); err != nil {
				a.Stop()
				return err
			}
		}

		elapsed := time.Since(frameStart)
		if elapsed < a.frameDuration {
			select {
			case <-time.After(a.frameDuration - elapsed):
			case <-a.stopCh:
				return a.renderError
			}
		}
	}

	return a.renderError
}

// Stop signals the Run loop to exit gracefully. Idempotent.
func (a *App) Stop() {
	if a.stopped.Swap(true) {
		return
	}
	close(a.stopCh)
}

// readInputEvents polls the reader and queues dispatch closures onto the
// event loop.
func (a *App) readInputEvents() {
	for !a.stopped.Load() {
		ev, ok := a.reader.PollEvent(a.inputLatency)
		if !ok {
			continue
		}
		event := ev
		select {
		case a.eventQueue <- func() { a.Dispatch(event) }:
		case <-a.stopCh:
			return
		}
	}
}

// Dispatch routes one event through the app: resizes resize the buffer,
// keys and mouse go through the router. Returns true if consumed.
func (a *App) Dispatch(event Event) bool {
	switch ev := event.(type) {
	case ResizeEvent:
		a.buffer.Resize(ev.Width, ev.Height)
		if a.root != nil {
			a.root.MarkDirty()
		}
		a.Invalidate()
		return true

	case KeyEvent:
		if a.globalKeyHandler != nil && a.globalKeyHandler(ev) {
			return true
		}
		return a.router.DispatchKey(ev)

	case MouseEvent:
		return a.router.DispatchMouse(ev)

	case PasteEvent:
		if focused := a.router.Ring().Focused(); focused != nil {
			return focused.HandleInput(ev)
		}
		return false
	}
	return false
}

// renderFrame runs the full pipeline: validate, measure, arrange, render,
// diff, flush, swap, clear dirty flags, apply the cursor hint.
func (a *App) renderFrame() error {
	if a.root == nil {
		return nil
	}

	if err := validateTree(a.root); err != nil {
		a.renderError = err
		return err
	}

	width, height := a.buffer.Width(), a.buffer.Height()
	size := NewSize(width, height)
	a.root.Measure(Tight(size))
	a.root.Arrange(NewRect(0, 0, width, height))

	a.buffer.Clear()
	a.root.Render(NewRenderContext(a.buffer))

	changes := a.buffer.Diff()
	if len(changes) > 0 {
		if sync, ok := a.terminal.(interface {
			BeginSyncUpdate()
			EndSyncUpdate()
		}); ok {
			sync.BeginSyncUpdate()
			a.terminal.Flush(changes)
			sync.EndSyncUpdate()
		} else {
			a.terminal.Flush(changes)
		}
		a.buffer.Swap()
	}

	ClearDirtyTree(a.root)
	a.applyCursor()

	debug.Log("frame rendered, %d cells changed", len(changes))
	return nil
}

// applyCursor applies the focused node's cursor hint.
func (a *App) applyCursor() {
	shape := CursorHidden
	var target Node
	if focused := a.router.Ring().Focused(); focused != nil {
		shape = focused.CursorShape()
		target = focused
	}

	if shape == CursorHidden {
		if a.lastCursor != CursorHidden {
			a.terminal.HideCursor()
			a.lastCursor = CursorHidden
		}
		return
	}

	bounds := target.Bounds()
	a.terminal.SetCursor(bounds.X, bounds.Y)
	if shape != a.lastCursor {
		a.terminal.SetCursorShape(shape)
		a.terminal.ShowCursor()
		a.lastCursor = shape
	}
}

// validateTree checks every node's structural invariants before layout.
func validateTree(root Node) error {
	var failed error
	WalkNodes(root, func(n Node) {
		if failed != nil {
			return
		}
		if v, ok := n.(Validator); ok {
			if err := v.Validate(); err != nil {
				failed = errors.Wrapf(err, "invalid %T", n)
			}
		}
	})
	return failed
}
