package mosaic

import "strings"

// Leaf is the basic content node: one or more lines of text with a single
// style. It is the common concrete leaf; richer widgets embed Base
// directly and implement their own Measure and Render.
type Leaf struct {
	Base

	lines []string
	style Style

	// OnKey, when set, handles key events delivered to this node before
	// any registered bindings.
	OnKey func(ev KeyEvent) bool

	// OnClick, when set, is invoked for completed click gestures on this
	// node. Clicks carries the recognized count (1, 2, 3).
	OnClick func(ev MouseEvent)
}

// NewLeaf creates a text leaf. Text may contain newlines.
func NewLeaf(text string) *Leaf {
	l := &Leaf{}
	l.SetText(text)
	return l
}

// SetText replaces the leaf's content and marks it dirty.
func (l *Leaf) SetText(text string) {
	l.lines = strings.Split(text, "\n")
	l.MarkDirty()
}

// Text returns the leaf's content joined with newlines.
func (l *Leaf) Text() string {
	return strings.Join(l.lines, "\n")
}

// SetStyle sets the style applied to all of the leaf's text.
func (l *Leaf) SetStyle(style Style) {
	if l.style.Equal(style) {
		return
	}
	l.style = style
	l.MarkDirty()
}

// Style returns the leaf's text style.
func (l *Leaf) Style() Style {
	return l.style
}

// Measure returns the text's natural size clamped into the constraints:
// width of the widest line, height of the line count.
func (l *Leaf) Measure(c Constraints) Size {
	width := 0
	for _, line := range l.lines {
		if w := StringWidth(line); w > width {
			width = w
		}
	}
	return c.Constrain(NewSize(width, len(l.lines)))
}

// Render draws the text at the top-left of the node's Bounds, clipped to
// the active region. Focused leaves render with reverse video so the
// focus position is visible without a dedicated indicator.
func (l *Leaf) Render(rc RenderContext) {
	bounds := l.Bounds()
	if bounds.IsEmpty() {
		return
	}
	rc = rc.Push(bounds, Clip)
	style := l.style
	if l.IsFocused() {
		style = style.Reverse()
	}
	for i, line := range l.lines {
		if i >= bounds.Height {
			break
		}
		rc.WriteString(bounds.X, bounds.Y+i, line, style)
	}
}

// FocusableNodes returns the leaf itself when focusable.
// Base cannot do this: the embedded struct has no pointer back to the
// concrete node.
func (l *Leaf) FocusableNodes() []Node {
	if l.IsFocusable() {
		return []Node{l}
	}
	return nil
}

// Bindings registers a left-click binding when OnClick is set.
func (l *Leaf) Bindings(table *BindingTable) {
	if l.OnClick != nil {
		table.OnClick(MouseLeft, 0, func(ev Event) {
			if m, ok := ev.(MouseEvent); ok {
				l.OnClick(m)
			}
		})
	}
}

// HandleInput forwards key events to OnKey when set.
func (l *Leaf) HandleInput(ev Event) bool {
	if key, ok := ev.(KeyEvent); ok && l.OnKey != nil {
		return l.OnKey(key)
	}
	return false
}
