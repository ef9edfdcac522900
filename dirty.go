package mosaic

import "sync/atomic"

// Base is the embeddable default implementation of the Node protocol.
// Concrete nodes embed it and override the hooks they care about,
// typically Measure, Arrange, Render, and Children.
//
// Bounds, the dirty flag, and focus state are owned by the node and
// mutated only by the layout/input pipeline or the node's own
// background-completion callback (which goes through BumpVersion).
type Base struct {
	bounds    Rect
	focusable bool
	focused   bool
	hovered   bool
	cursor    CursorShape

	dirty bool

	// Version counter for the async-content race: producers increment
	// version from their goroutine; the render pass records the version it
	// drew; ClearDirty refuses to clear while they disagree.
	version  atomic.Uint64
	rendered uint64

	// invalidate wakes the render driver. Wired by the driver when the
	// node enters the tree; nil until then.
	invalidate func()
}

// Measure returns the smallest size the constraints allow.
// Leaf widgets override this.
func (b *Base) Measure(c Constraints) Size {
	c = c.Normalize()
	return Size{Width: c.MinWidth, Height: c.MinHeight}
}

// Arrange stores the rect as the node's Bounds.
// Containers override this to also arrange children, calling
// SetBounds(rect) for the base behavior.
func (b *Base) Arrange(rect Rect) {
	b.bounds = rect
}

// SetBounds records the node's arranged rectangle without any recursion.
// For containers whose Arrange is overridden.
func (b *Base) SetBounds(rect Rect) {
	b.bounds = rect
}

// Bounds returns the rectangle set by the most recent Arrange.
func (b *Base) Bounds() Rect {
	return b.bounds
}

// Render draws nothing. Visible nodes override this.
func (b *Base) Render(rc RenderContext) {}

// Children returns no children. Containers override this.
func (b *Base) Children() []Node {
	return nil
}

// FocusableNodes yields nothing for an unfocusable leaf.
// The concrete node is not reachable from the embedded Base, so focusable
// leaves must override this to return themselves; see Leaf for the common
// case.
func (b *Base) FocusableNodes() []Node {
	return nil
}

// IsFocusable returns whether this node can receive focus.
func (b *Base) IsFocusable() bool {
	return b.focusable
}

// SetFocusable sets whether this node can receive focus.
func (b *Base) SetFocusable(focusable bool) {
	b.focusable = focusable
}

// IsFocused returns whether this node currently has focus.
func (b *Base) IsFocused() bool {
	return b.focused
}

// SetFocused updates focus state and marks the node dirty on change.
func (b *Base) SetFocused(focused bool) {
	if b.focused == focused {
		return
	}
	b.focused = focused
	b.MarkDirty()
}

// IsHovered returns whether the pointer is over this node.
func (b *Base) IsHovered() bool {
	return b.hovered
}

// SetHovered updates hover state and marks the node dirty on change.
func (b *Base) SetHovered(hovered bool) {
	if b.hovered == hovered {
		return
	}
	b.hovered = hovered
	b.MarkDirty()
}

// Bindings registers nothing by default.
func (b *Base) Bindings(table *BindingTable) {}

// HandleInput consumes nothing by default.
func (b *Base) HandleInput(ev Event) bool {
	return false
}

// ManagesChildFocus is false by default.
func (b *Base) ManagesChildFocus() bool {
	return false
}

// CapturesAllInput is false by default.
func (b *Base) CapturesAllInput() bool {
	return false
}

// CursorShape returns the node's cursor hint.
func (b *Base) CursorShape() CursorShape {
	return b.cursor
}

// SetCursorShape sets the cursor hint applied while focused.
func (b *Base) SetCursorShape(shape CursorShape) {
	b.cursor = shape
}

// --- Dirty tracking ---

// MarkDirty flags the node for repaint and wakes the render driver.
// Idempotent: marking an already-dirty node only re-signals the driver.
func (b *Base) MarkDirty() {
	b.dirty = true
	if b.invalidate != nil {
		b.invalidate()
	}
}

// NeedsRender reports whether the node must repaint on the next pass.
func (b *Base) NeedsRender() bool {
	return b.dirty
}

// ClearDirty clears the dirty flag, unless content arrived after the last
// render snapshot: if the version counter moved past the recorded
// rendered version, the flag stays set so another pass is scheduled and
// the update is not lost.
func (b *Base) ClearDirty() {
	if b.version.Load() != b.rendered {
		return
	}
	b.dirty = false
}

// BumpVersion is called by a background producer when new content arrives.
// Safe from any goroutine; marks the node dirty and wakes the driver.
func (b *Base) BumpVersion() {
	b.version.Add(1)
	b.MarkDirty()
}

// Version returns the current content version.
func (b *Base) Version() uint64 {
	return b.version.Load()
}

// MarkRendered records the version this render pass drew. Nodes fed by a
// background producer call it inside Render, after snapshotting the
// content they are about to draw.
func (b *Base) MarkRendered() {
	b.rendered = b.version.Load()
}

// SetInvalidator wires the driver wake-up callback.
// The driver calls this for every node when the tree is (re)attached.
func (b *Base) SetInvalidator(fn func()) {
	b.invalidate = fn
}

// --- Tree-wide dirty helpers ---

// ClearDirtyTree calls ClearDirty on the node and every descendant.
// Run by the driver after a completed render pass.
func ClearDirtyTree(n Node) {
	if n == nil {
		return
	}
	n.ClearDirty()
	for _, child := range n.Children() {
		ClearDirtyTree(child)
	}
}

// AnyNeedsRender reports whether the node or any descendant needs a
// repaint.
func AnyNeedsRender(n Node) bool {
	if n == nil {
		return false
	}
	if n.NeedsRender() {
		return true
	}
	for _, child := range n.Children() {
		if AnyNeedsRender(child) {
			return true
		}
	}
	return false
}

// WalkNodes calls fn for the node and every descendant in render order
// (parents before children, children in z-order).
func WalkNodes(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children() {
		WalkNodes(child, fn)
	}
}
