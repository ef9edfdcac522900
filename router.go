package mosaic

import (
	"context"
	"time"

	"github.com/mosaicui/mosaic/internal/debug"
)

const (
	// DefaultClickInterval is the maximum delay between presses that still
	// extends a multi-click gesture.
	DefaultClickInterval = 400 * time.Millisecond
	// DefaultClickSlop is the maximum distance in cells between presses
	// that still extends a multi-click gesture.
	DefaultClickSlop = 1
)

// Router delivers input events to the tree: key events to the focused
// node with sequence and bubbling semantics, mouse events to the node
// under the pointer with click and drag recognition.
//
// Router methods run on the event loop goroutine.
type Router struct {
	root Node
	ring *FocusRing

	clickInterval time.Duration
	clickSlop     int

	// now is swapped in tests to control click timing.
	now func() time.Time

	// async, when set, receives DoAsync binding bodies instead of running
	// them inline.
	async func(owner Node, fn func(ctx context.Context))

	// in-flight key sequence on the focused node
	pending       []KeyEvent
	pendingTarget Node

	// multi-click recognition state
	lastClickTime   time.Time
	lastClickPos    Point
	lastClickTarget Node
	lastClickButton MouseButton
	clickCount      int

	// in-flight drag gesture
	drag       DragHandler
	dragOrigin Point

	hovered Node
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithClickInterval sets the multi-click timing window.
func WithClickInterval(d time.Duration) RouterOption {
	return func(r *Router) {
		if d > 0 {
			r.clickInterval = d
		}
	}
}

// WithClickSlop sets the multi-click distance tolerance in cells.
func WithClickSlop(cells int) RouterOption {
	return func(r *Router) {
		if cells >= 0 {
			r.clickSlop = cells
		}
	}
}

// NewRouter creates a router over the tree rooted at root.
func NewRouter(root Node, opts ...RouterOption) *Router {
	r := &Router{
		root:          root,
		clickInterval: DefaultClickInterval,
		clickSlop:     DefaultClickSlop,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.ring = BuildFocusRing(root)
	return r
}

// SetRoot swaps the tree and rebuilds the focus ring.
func (r *Router) SetRoot(root Node) {
	r.root = root
	r.RefreshFocus()
}

// Ring returns the current focus ring snapshot.
func (r *Router) Ring() *FocusRing {
	return r.ring
}

// RefreshFocus rebuilds the focus ring after a structural change. If the
// focused node is no longer a ring member (e.g. its layer was occluded or
// removed), focus is cleared from it.
func (r *Router) RefreshFocus() {
	prev := r.ring.Focused()
	r.ring = BuildFocusRing(r.root)
	if prev != nil && !r.ring.Contains(prev) {
		prev.SetFocused(false)
		r.resetSequence()
	}
}

// SetAsyncRunner wires the callback that executes DoAsync binding bodies.
func (r *Router) SetAsyncRunner(run func(owner Node, fn func(ctx context.Context))) {
	r.async = run
}

// HitTest returns the topmost node whose Bounds contain (x, y), or nil.
// The tree is traversed in render order, so of two overlapping nodes the
// later (higher z) one wins.
func (r *Router) HitTest(x, y int) Node {
	var hit Node
	WalkNodes(r.root, func(n Node) {
		if n.Bounds().Contains(x, y) {
			hit = n
		}
	})
	return hit
}

// DispatchKey routes a key event. Order:
//
//  1. A focused capturing node gets the raw event before any bindings.
//  2. The focused node's binding table, with multi-step sequences: a key
//     that extends a pending sequence is held, a completing key fires the
//     first matching binding in registration order.
//  3. Unmatched single keys bubble from the focused node toward the root.
//  4. Tab and Shift+Tab move focus if nothing consumed them.
//
// Returns true if the event was consumed.
func (r *Router) DispatchKey(ev KeyEvent) bool {
	focused := r.ring.Focused()

	if focused != nil && focused.CapturesAllInput() {
		if focused.HandleInput(ev) {
			return true
		}
	}

	if focused != nil {
		if consumed := r.dispatchKeyTo(focused, ev); consumed {
			return true
		}
		// Bubble unmatched single events through the ancestors. A key that
		// broke a pending sequence has already been swallowed.
		for _, ancestor := range r.ancestorPath(focused) {
			if r.fireSingleKey(ancestor, ev) {
				return true
			}
		}
		if focused.HandleInput(ev) {
			return true
		}
	}

	switch {
	case ev.Key == KeyTab && ev.Mod == ModNone:
		r.ring.Next()
		return true
	case ev.Key == KeyTab && ev.Mod == ModShift:
		r.ring.Prev()
		return true
	}
	return false
}

// dispatchKeyTo feeds the event into the node's binding table with
// sequence state. Returns true when the event was consumed, either by
// firing a binding or by extending a pending sequence.
func (r *Router) dispatchKeyTo(node Node, ev KeyEvent) bool {
	if node != r.pendingTarget {
		r.resetSequence()
	}

	var table BindingTable
	node.Bindings(&table)
	if table.Len() == 0 {
		return false
	}

	b, res := table.matchKey(r.pending, ev)
	switch res {
	case matchComplete:
		r.resetSequence()
		r.fire(node, b, ev)
		return true
	case matchPartial:
		r.pending = append(r.pending, ev)
		r.pendingTarget = node
		return true
	default:
		// A key that breaks an in-flight sequence is swallowed with the
		// sequence rather than reinterpreted from scratch.
		broke := len(r.pending) > 0
		r.resetSequence()
		return broke
	}
}

// fireSingleKey fires the node's first matching single-step binding.
func (r *Router) fireSingleKey(node Node, ev KeyEvent) bool {
	var table BindingTable
	node.Bindings(&table)
	b, res := table.matchKey(nil, ev)
	if res == matchComplete && len(b.Steps) == 1 {
		r.fire(node, b, ev)
		return true
	}
	return false
}

// DispatchMouse routes a mouse event: drag gestures to their handler,
// presses through click recognition to the node under the pointer, motion
// to hover tracking. Events over empty space are dropped.
func (r *Router) DispatchMouse(ev MouseEvent) bool {
	switch ev.Action {
	case MouseDrag:
		if !r.drag.IsZero() {
			r.drag.Move(ev.X-r.dragOrigin.X, ev.Y-r.dragOrigin.Y)
			return true
		}
		return false

	case MouseRelease:
		if !r.drag.IsZero() {
			r.drag = DragHandler{}
			return true
		}
		return false

	case MouseMotion:
		r.updateHover(ev.X, ev.Y)
		return false
	}

	// Press
	target := r.HitTest(ev.X, ev.Y)
	if target == nil {
		debug.Log("mouse press at (%d,%d) hit nothing", ev.X, ev.Y)
		r.clickCount = 0
		return false
	}

	ev.Clicks = r.recognizeClick(target, ev)

	dragStarted := false
	if ds, ok := target.(DragSource); ok && ev.Button == MouseLeft {
		bounds := target.Bounds()
		if h := ds.DragStart(ev.X-bounds.X, ev.Y-bounds.Y); !h.IsZero() {
			r.drag = h
			r.dragOrigin = Point{X: ev.X, Y: ev.Y}
			dragStarted = true
		}
	}

	// Clicking a focusable node moves focus to it when it is reachable.
	if target.IsFocusable() && r.ring.Contains(target) {
		r.ring.MoveFocus(target)
	}

	if r.fireMouse(target, ev) {
		return true
	}
	for _, ancestor := range r.ancestorPath(target) {
		if r.fireMouse(ancestor, ev) {
			return true
		}
	}
	return target.HandleInput(ev) || dragStarted
}

// recognizeClick folds a press into the multi-click state and returns the
// recognized count, capped at 3. The count extends only when the press
// lands on the same target, with the same button, within the interval and
// slop of the previous press.
func (r *Router) recognizeClick(target Node, ev MouseEvent) int {
	if ev.Button != MouseLeft && ev.Button != MouseRight && ev.Button != MouseMiddle {
		return 0
	}
	now := r.now()
	pos := Point{X: ev.X, Y: ev.Y}

	sameRun := r.clickCount > 0 &&
		target == r.lastClickTarget &&
		ev.Button == r.lastClickButton &&
		now.Sub(r.lastClickTime) <= r.clickInterval &&
		abs(pos.X-r.lastClickPos.X) <= r.clickSlop &&
		abs(pos.Y-r.lastClickPos.Y) <= r.clickSlop

	if sameRun && r.clickCount < 3 {
		r.clickCount++
	} else {
		r.clickCount = 1
	}
	r.lastClickTime = now
	r.lastClickPos = pos
	r.lastClickTarget = target
	r.lastClickButton = ev.Button
	return r.clickCount
}

// fireMouse fires the node's first matching mouse binding.
func (r *Router) fireMouse(node Node, ev MouseEvent) bool {
	var table BindingTable
	node.Bindings(&table)
	if b, ok := table.matchMouse(ev); ok {
		r.fire(node, b, ev)
		return true
	}
	return false
}

// fire runs a binding's action: Do inline, DoAsync through the runner.
func (r *Router) fire(owner Node, b Binding, ev Event) {
	switch {
	case b.Do != nil:
		b.Do(ev)
	case b.DoAsync != nil && r.async != nil:
		r.async(owner, b.DoAsync)
	case b.DoAsync != nil:
		b.DoAsync(context.Background())
	}
}

// updateHover moves hover state to the node under the pointer.
func (r *Router) updateHover(x, y int) {
	target := r.HitTest(x, y)
	if target == r.hovered {
		return
	}
	if prev, ok := r.hovered.(interface{ SetHovered(bool) }); ok && r.hovered != nil {
		prev.SetHovered(false)
	}
	if next, ok := target.(interface{ SetHovered(bool) }); ok && target != nil {
		next.SetHovered(true)
	}
	r.hovered = target
}

// ancestorPath returns the chain from node's parent up to the root.
// Computed per dispatch; nodes hold no parent pointers.
func (r *Router) ancestorPath(node Node) []Node {
	var path []Node
	var walk func(n Node, trail []Node) bool
	walk = func(n Node, trail []Node) bool {
		if n == node {
			// trail is root-first; bubbling wants nearest-first.
			path = make([]Node, 0, len(trail))
			for i := len(trail) - 1; i >= 0; i-- {
				path = append(path, trail[i])
			}
			return true
		}
		for _, child := range n.Children() {
			if walk(child, append(trail, n)) {
				return true
			}
		}
		return false
	}
	if r.root != nil {
		walk(r.root, nil)
	}
	return path
}

func (r *Router) resetSequence() {
	r.pending = nil
	r.pendingTarget = nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
