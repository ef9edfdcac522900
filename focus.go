package mosaic

// FocusRing is the ordered list of nodes reachable with Tab, derived from
// the tree on demand via FocusableNodes. It is a snapshot: rebuild it
// after any structural change (layer pushed, child added) rather than
// mutating it in place.
type FocusRing struct {
	nodes []Node
}

// BuildFocusRing derives the ring from the tree rooted at root.
func BuildFocusRing(root Node) *FocusRing {
	if root == nil {
		return &FocusRing{}
	}
	return &FocusRing{nodes: root.FocusableNodes()}
}

// Nodes returns the ring members in traversal order.
func (f *FocusRing) Nodes() []Node {
	return f.nodes
}

// Len returns the number of focusable nodes in the ring.
func (f *FocusRing) Len() int {
	return len(f.nodes)
}

// Focused returns the currently focused member, or nil.
func (f *FocusRing) Focused() Node {
	if i := f.FocusedIndex(); i >= 0 {
		return f.nodes[i]
	}
	return nil
}

// FocusedIndex returns the index of the focused member, or -1. The index
// is found by scanning rather than stored, so a ring rebuilt after layers
// changed stays consistent with actual node state.
func (f *FocusRing) FocusedIndex() int {
	for i, n := range f.nodes {
		if n.IsFocused() {
			return i
		}
	}
	return -1
}

// Next moves focus to the next member, wrapping at the end. With no
// member focused, focuses the first. Returns the newly focused node, or
// nil if the ring is empty.
func (f *FocusRing) Next() Node {
	return f.move(1)
}

// Prev moves focus to the previous member, wrapping at the start. With no
// member focused, focuses the first. Returns the newly focused node, or
// nil if the ring is empty.
func (f *FocusRing) Prev() Node {
	return f.move(-1)
}

func (f *FocusRing) move(delta int) Node {
	if len(f.nodes) == 0 {
		return nil
	}
	cur := f.FocusedIndex()
	var next int
	if cur < 0 {
		next = 0
	} else {
		next = (cur + delta + len(f.nodes)) % len(f.nodes)
	}
	return f.MoveFocus(f.nodes[next])
}

// MoveFocus transfers focus to target in one step: the previously focused
// member is cleared and the target set before returning, so no observer
// ever sees two focused nodes. Focusing the already-focused node is a
// no-op. Targets outside the ring are rejected with a nil return and the
// current focus kept.
func (f *FocusRing) MoveFocus(target Node) Node {
	if target == nil || !f.Contains(target) {
		return nil
	}
	for _, n := range f.nodes {
		if n != target && n.IsFocused() {
			n.SetFocused(false)
		}
	}
	if !target.IsFocused() {
		target.SetFocused(true)
	}
	return target
}

// ClearFocus removes focus from every ring member.
func (f *FocusRing) ClearFocus() {
	for _, n := range f.nodes {
		if n.IsFocused() {
			n.SetFocused(false)
		}
	}
}

// Contains reports whether node is a ring member.
func (f *FocusRing) Contains(node Node) bool {
	for _, n := range f.nodes {
		if n == node {
			return true
		}
	}
	return false
}
