package mosaic

import (
	"testing"
	"time"
)

// bindNode is a minimal focusable node with a configurable binding table,
// used to exercise dispatch paths that Leaf does not cover.
type bindNode struct {
	Base

	bind    func(*BindingTable)
	capture bool
	raw     []Event
}

func (n *bindNode) Bindings(table *BindingTable) {
	if n.bind != nil {
		n.bind(table)
	}
}

func (n *bindNode) FocusableNodes() []Node {
	if n.IsFocusable() {
		return []Node{n}
	}
	return nil
}

func (n *bindNode) CapturesAllInput() bool {
	return n.capture
}

func (n *bindNode) HandleInput(ev Event) bool {
	n.raw = append(n.raw, ev)
	return n.capture
}

// dragNode accepts left-button drags and records the deltas it was moved
// by.
type dragNode struct {
	Base

	moves []Point
}

func (n *dragNode) DragStart(localX, localY int) DragHandler {
	return DragHandler{
		Move: func(dx, dy int) {
			n.moves = append(n.moves, Point{X: dx, Y: dy})
		},
	}
}

func newBindNode(bind func(*BindingTable)) *bindNode {
	n := &bindNode{bind: bind}
	n.SetFocusable(true)
	return n
}

func runeEvent(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

func press(x, y int) MouseEvent {
	return MouseEvent{Button: MouseLeft, Action: MousePress, X: x, Y: y}
}

func TestHitTestTopmost(t *testing.T) {
	under := NewLeaf("under")
	under.Arrange(NewRect(0, 0, 10, 10))
	over := NewLeaf("over")
	over.Arrange(NewRect(2, 2, 4, 4))

	stack := NewLayerStack(under, over)
	stack.SetBounds(NewRect(0, 0, 10, 10))
	r := NewRouter(stack)

	tests := map[string]struct {
		x, y int
		want Node
	}{
		"overlap picks topmost": {x: 3, y: 3, want: over},
		"only lower layer":      {x: 0, y: 0, want: under},
		"outside everything":    {x: 20, y: 20, want: nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := r.HitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDispatchKeyFiresFocusedBinding(t *testing.T) {
	var fired int
	node := newBindNode(func(t *BindingTable) {
		t.OnRune('q', func(Event) { fired++ })
	})
	r := NewRouter(node)
	r.Ring().Next()

	if !r.DispatchKey(runeEvent('q')) {
		t.Fatal("DispatchKey('q') = false, want consumed")
	}
	if fired != 1 {
		t.Errorf("binding fired %d times, want 1", fired)
	}
	if r.DispatchKey(runeEvent('z')) {
		t.Error("unbound key reported as consumed")
	}
}

func TestDispatchKeySequence(t *testing.T) {
	var fired int
	node := newBindNode(func(t *BindingTable) {
		t.OnSequence(func(Event) { fired++ }, RuneStep('g'), RuneStep('g'))
	})
	r := NewRouter(node)
	r.Ring().Next()

	if !r.DispatchKey(runeEvent('g')) {
		t.Fatal("first 'g' not held as a pending sequence")
	}
	if fired != 0 {
		t.Fatal("sequence fired before completion")
	}
	if !r.DispatchKey(runeEvent('g')) {
		t.Fatal("second 'g' not consumed")
	}
	if fired != 1 {
		t.Errorf("sequence fired %d times, want 1", fired)
	}
}

func TestDispatchKeySequenceBreaking(t *testing.T) {
	var ggFired, xFired int
	node := newBindNode(func(t *BindingTable) {
		t.OnSequence(func(Event) { ggFired++ }, RuneStep('g'), RuneStep('g'))
		t.OnRune('x', func(Event) { xFired++ })
	})
	r := NewRouter(node)
	r.Ring().Next()

	r.DispatchKey(runeEvent('g'))

	// The breaking key is swallowed with the sequence, not reinterpreted.
	if !r.DispatchKey(runeEvent('x')) {
		t.Fatal("sequence-breaking key not consumed")
	}
	if ggFired != 0 || xFired != 0 {
		t.Fatalf("ggFired = %d, xFired = %d, want 0 and 0", ggFired, xFired)
	}

	// With no sequence pending the same key fires its own binding.
	r.DispatchKey(runeEvent('x'))
	if xFired != 1 {
		t.Errorf("xFired = %d, want 1", xFired)
	}
}

func TestDispatchKeyFirstMatchWins(t *testing.T) {
	var first, second int
	node := newBindNode(func(t *BindingTable) {
		t.OnRune('a', func(Event) { first++ })
		t.OnRune('a', func(Event) { second++ })
	})
	r := NewRouter(node)
	r.Ring().Next()

	r.DispatchKey(runeEvent('a'))
	if first != 1 || second != 0 {
		t.Errorf("first = %d, second = %d, want 1 and 0", first, second)
	}
}

// containerNode is a single-child wrapper with its own binding table,
// giving the bubbling tests an ancestor to climb to.
type containerNode struct {
	Base

	inner Node
	bind  func(*BindingTable)
}

func (c *containerNode) Children() []Node {
	return []Node{c.inner}
}

func (c *containerNode) FocusableNodes() []Node {
	return c.inner.FocusableNodes()
}

func (c *containerNode) Bindings(table *BindingTable) {
	if c.bind != nil {
		c.bind(table)
	}
}

func TestDispatchKeyBubbles(t *testing.T) {
	var rootFired int
	child := focusableLeaf("child")
	col := NewColumn().Add(child, Content())
	root := &containerNode{inner: col, bind: func(t *BindingTable) {
		t.OnRune('r', func(Event) { rootFired++ })
	}}
	r := NewRouter(root)
	r.Ring().Next()

	if !child.IsFocused() {
		t.Fatal("child leaf not focused")
	}
	if !r.DispatchKey(runeEvent('r')) {
		t.Fatal("DispatchKey('r') = false, want consumed by ancestor")
	}
	if rootFired != 1 {
		t.Errorf("ancestor binding fired %d times, want 1", rootFired)
	}
}

func TestDispatchKeyCaptureBypassesBindings(t *testing.T) {
	var fired int
	node := newBindNode(func(t *BindingTable) {
		t.OnRune('q', func(Event) { fired++ })
	})
	node.capture = true
	r := NewRouter(node)
	r.Ring().Next()

	if !r.DispatchKey(runeEvent('q')) {
		t.Fatal("capturing node did not consume the event")
	}
	if fired != 0 {
		t.Error("binding fired despite capture")
	}
	if len(node.raw) != 1 {
		t.Errorf("node saw %d raw events, want 1", len(node.raw))
	}
}

func TestDispatchKeyTabMovesFocus(t *testing.T) {
	a := focusableLeaf("a")
	b := focusableLeaf("b")
	col := NewColumn().Add(a, Content()).Add(b, Content())
	r := NewRouter(col)
	r.Ring().Next()

	if !r.DispatchKey(KeyEvent{Key: KeyTab}) {
		t.Fatal("Tab not consumed")
	}
	if !b.IsFocused() {
		t.Error("Tab did not move focus forward")
	}

	if !r.DispatchKey(KeyEvent{Key: KeyTab, Mod: ModShift}) {
		t.Fatal("Shift+Tab not consumed")
	}
	if !a.IsFocused() {
		t.Error("Shift+Tab did not move focus back")
	}
}

func TestDispatchMouseClickBinding(t *testing.T) {
	var clicks int
	leaf := NewLeaf("button")
	leaf.OnClick = func(MouseEvent) { clicks++ }
	leaf.Arrange(NewRect(0, 0, 6, 1))
	r := NewRouter(leaf)

	if !r.DispatchMouse(press(2, 0)) {
		t.Fatal("press on the leaf not consumed")
	}
	if clicks != 1 {
		t.Errorf("OnClick fired %d times, want 1", clicks)
	}
	if r.DispatchMouse(press(9, 5)) {
		t.Error("press over empty space reported as consumed")
	}
}

func TestDispatchMousePressMovesFocus(t *testing.T) {
	a := focusableLeaf("a")
	b := focusableLeaf("b")
	col := NewColumn().Add(a, Content()).Add(b, Content())
	col.Arrange(NewRect(0, 0, 1, 2))
	r := NewRouter(col)
	r.Ring().Next()

	r.DispatchMouse(press(0, 1))
	if !b.IsFocused() {
		t.Error("press on a focusable node did not move focus to it")
	}
	if a.IsFocused() {
		t.Error("previous focus not cleared")
	}
}

func TestMultiClickRecognition(t *testing.T) {
	node := &bindNode{}
	node.Arrange(NewRect(0, 0, 10, 1))

	clock := time.Unix(0, 0)
	r := NewRouter(node)
	r.now = func() time.Time { return clock }

	count := func(ev MouseEvent) int { return r.recognizeClick(node, ev) }

	if got := count(press(1, 0)); got != 1 {
		t.Fatalf("first press = %d clicks, want 1", got)
	}
	clock = clock.Add(100 * time.Millisecond)
	if got := count(press(1, 0)); got != 2 {
		t.Fatalf("second press = %d clicks, want 2", got)
	}
	clock = clock.Add(100 * time.Millisecond)
	if got := count(press(2, 0)); got != 3 {
		t.Fatalf("third press within slop = %d clicks, want 3", got)
	}

	// A fourth rapid press starts a new run instead of counting past 3.
	clock = clock.Add(100 * time.Millisecond)
	if got := count(press(2, 0)); got != 1 {
		t.Errorf("fourth press = %d clicks, want a fresh single", got)
	}
}

func TestMultiClickBrokenByIntervalAndSlop(t *testing.T) {
	node := &bindNode{}
	node.Arrange(NewRect(0, 0, 40, 1))

	tests := map[string]struct {
		wait time.Duration
		x    int
	}{
		"too slow": {wait: DefaultClickInterval + time.Millisecond, x: 1},
		"too far":  {wait: 50 * time.Millisecond, x: 30},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			clock := time.Unix(0, 0)
			r := NewRouter(node)
			r.now = func() time.Time { return clock }

			r.recognizeClick(node, press(1, 0))
			clock = clock.Add(tt.wait)
			if got := r.recognizeClick(node, press(tt.x, 0)); got != 1 {
				t.Errorf("second press = %d clicks, want a fresh single", got)
			}
		})
	}
}

func TestDispatchMouseDrag(t *testing.T) {
	node := &dragNode{}
	node.Arrange(NewRect(5, 5, 10, 3))
	r := NewRouter(node)

	if !r.DispatchMouse(press(7, 6)) {
		t.Fatal("press on a drag source not consumed")
	}
	r.DispatchMouse(MouseEvent{Button: MouseLeft, Action: MouseDrag, X: 9, Y: 7})
	r.DispatchMouse(MouseEvent{Button: MouseLeft, Action: MouseDrag, X: 6, Y: 6})
	r.DispatchMouse(MouseEvent{Button: MouseLeft, Action: MouseRelease, X: 6, Y: 6})

	// Deltas are relative to the press origin, not to the previous event.
	want := []Point{{X: 2, Y: 1}, {X: -1, Y: 0}}
	if len(node.moves) != len(want) {
		t.Fatalf("recorded %d moves, want %d", len(node.moves), len(want))
	}
	for i := range want {
		if node.moves[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, node.moves[i], want[i])
		}
	}

	// The gesture ended at release; further drags are dropped.
	if r.DispatchMouse(MouseEvent{Button: MouseLeft, Action: MouseDrag, X: 0, Y: 0}) {
		t.Error("drag after release reported as consumed")
	}
}

func TestHover(t *testing.T) {
	a := NewLeaf("a")
	a.Arrange(NewRect(0, 0, 5, 1))
	b := NewLeaf("b")
	b.Arrange(NewRect(0, 1, 5, 1))
	col := NewColumn().Add(a, Content()).Add(b, Content())
	col.SetBounds(NewRect(0, 0, 5, 2))
	r := NewRouter(col)

	r.DispatchMouse(MouseEvent{Action: MouseMotion, X: 1, Y: 0})
	if !a.IsHovered() {
		t.Fatal("motion over a did not set hover")
	}
	r.DispatchMouse(MouseEvent{Action: MouseMotion, X: 1, Y: 1})
	if a.IsHovered() {
		t.Error("hover not cleared when the pointer left")
	}
	if !b.IsHovered() {
		t.Error("hover did not follow the pointer")
	}
}

func TestRefreshFocusDropsOccludedNode(t *testing.T) {
	base := focusableLeaf("base")
	stack := NewLayerStack(NewRow().Add(base, Fill(1)))
	r := NewRouter(stack)
	r.Ring().Next()

	if !base.IsFocused() {
		t.Fatal("base not focused")
	}

	modal := focusableLeaf("modal")
	stack.Push(NewRow().Add(modal, Fill(1)))
	r.RefreshFocus()

	if base.IsFocused() {
		t.Error("occluded node kept focus after refresh")
	}
	if got := r.Ring().Next(); got != modal {
		t.Errorf("Next() = %v, want the modal leaf", got)
	}
}
