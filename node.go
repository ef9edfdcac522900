package mosaic

// CursorShape is the terminal cursor shape a focused text-input node
// prefers. The driver applies the focused node's hint after each render.
type CursorShape uint8

const (
	// CursorHidden hides the terminal cursor (default for non-text nodes).
	CursorHidden CursorShape = iota
	// CursorBlock shows a block cursor.
	CursorBlock
	// CursorBar shows a vertical bar cursor.
	CursorBar
	// CursorUnderline shows an underline cursor.
	CursorUnderline
)

// Measurable is implemented by nodes that participate in size negotiation.
// Measure must be deterministic for a given set of constraints, must not
// depend on previous Bounds, and must return a size the constraints accept:
// c.Constrain(size) == size.
type Measurable interface {
	Measure(c Constraints) Size
}

// Arrangeable is implemented by nodes that accept a final rectangle.
// Arrange stores the rect as the node's Bounds and recursively arranges
// every child the node intends to render.
type Arrangeable interface {
	Arrange(rect Rect)
}

// Renderable is implemented by nodes that draw themselves.
// Render writes only within the node's Bounds, through the context's
// active clip region.
type Renderable interface {
	Render(rc RenderContext)
}

// Focusable is the focus-state surface of a node.
// SetFocused on a pass-through composite cascades to its content child;
// the composite's own IsFocused stays false.
type Focusable interface {
	IsFocusable() bool
	IsFocused() bool
	SetFocused(bool)
}

// InputCapturing is implemented by nodes that consume raw input while
// focused (e.g. an embedded terminal session). When CapturesAllInput
// returns true the router forwards events to HandleInput before any
// binding table is consulted.
type InputCapturing interface {
	CapturesAllInput() bool
}

// DragSource is implemented by nodes that accept drag gestures.
// DragStart receives the press position local to the node's Bounds and
// returns the handler for the gesture, or a zero DragHandler to reject it
// (e.g. the press landed outside any draggable region).
type DragSource interface {
	DragStart(localX, localY int) DragHandler
}

// DragHandler is a short-lived callback bound to one press-to-release
// gesture. Move receives deltas relative to the gesture's initial press
// position, not to the previous move. The zero value rejects the gesture.
type DragHandler struct {
	Move func(deltaX, deltaY int)
}

// IsZero returns true if the handler rejects the gesture.
func (d DragHandler) IsZero() bool {
	return d.Move == nil
}

// Validator is implemented by nodes with structural invariants that must
// hold before layout (e.g. a grid whose rows must match its header).
// The driver validates the tree before measuring and propagates the error
// to the caller that triggered the pass.
type Validator interface {
	Validate() error
}

// Node is the unit of the retained tree: the full protocol every concrete
// widget implements, usually by embedding Base and overriding the layout
// and render hooks.
type Node interface {
	Measurable
	Arrangeable
	Renderable
	Focusable

	// Bounds returns the rectangle set by the most recent Arrange.
	Bounds() Rect

	// Children returns all children considered for input and z-order
	// traversal. The slice is a read-only view and may be lazily computed;
	// it need not mirror a backing field.
	Children() []Node

	// FocusableNodes returns this subtree's contribution to the focus
	// ring. Leaves yield themselves when focusable; pass-through wrappers
	// yield their content child's focusables; focus-managing containers
	// yield only the topmost layer that has any.
	FocusableNodes() []Node

	// Bindings registers the node's default keyboard/mouse bindings.
	Bindings(table *BindingTable)

	// HandleInput is the raw-event escape hatch for capturing nodes.
	// Returns true if the event was consumed.
	HandleInput(ev Event) bool

	// ManagesChildFocus reports whether this node privately controls which
	// descendant layer exposes focusables (see FocusableNodes).
	ManagesChildFocus() bool

	// CapturesAllInput reports whether raw events bypass binding dispatch
	// while this node is focused.
	CapturesAllInput() bool

	// MarkDirty flags the node for repaint. Idempotent.
	MarkDirty()

	// NeedsRender reports whether the node must repaint on the next pass.
	NeedsRender() bool

	// ClearDirty clears the flag after a render pass. Overridable: a node
	// fed by an asynchronous producer refuses to clear when content
	// arrived after its render snapshot (see Base.ClearDirty).
	ClearDirty()

	// CursorShape is the cursor hint applied while this node is focused.
	CursorShape() CursorShape
}

// Compile-time interface checks for the built-in node kinds.
var (
	_ Node = (*Base)(nil)
	_ Node = (*Linear)(nil)
	_ Node = (*Composite)(nil)
	_ Node = (*LayerStack)(nil)
	_ Node = (*Grid)(nil)
)
