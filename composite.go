package mosaic

// Composite is a pass-through wrapper around a single content child. It
// adds chrome (padding, border, background) without entering the focus
// ring: its FocusableNodes are the child's, SetFocused cascades to the
// child, and its own IsFocused always reads false.
type Composite struct {
	Base

	child Node

	padding int
	border  BorderStyle
	style   Style
	bg      Color
	title   string
}

// NewComposite wraps the given content child.
func NewComposite(child Node) *Composite {
	return &Composite{child: child}
}

// SetChild replaces the content child.
func (c *Composite) SetChild(child Node) {
	c.child = child
	c.MarkDirty()
}

// Child returns the content child.
func (c *Composite) Child() Node {
	return c.child
}

// SetPadding sets the inner padding in cells on every edge.
func (c *Composite) SetPadding(n int) {
	if n < 0 {
		n = 0
	}
	c.padding = n
	c.MarkDirty()
}

// SetBorder sets the border style drawn around the content.
func (c *Composite) SetBorder(style BorderStyle) {
	c.border = style
	c.MarkDirty()
}

// SetBorderStyle sets the color and attributes used for the border.
func (c *Composite) SetBorderStyle(style Style) {
	c.style = style
	c.MarkDirty()
}

// SetTitle sets a title rendered inside the top border.
func (c *Composite) SetTitle(title string) {
	c.title = title
	c.MarkDirty()
}

// SetBackground fills the composite's bounds with the given color before
// the child renders.
func (c *Composite) SetBackground(bg Color) {
	c.bg = bg
	c.MarkDirty()
}

// inset is the total chrome on each edge.
func (c *Composite) inset() int {
	n := c.padding
	if c.border != BorderNone {
		n++
	}
	return n
}

// Children returns the single content child.
func (c *Composite) Children() []Node {
	if c.child == nil {
		return nil
	}
	return []Node{c.child}
}

// FocusableNodes delegates to the content child. The composite never
// yields itself.
func (c *Composite) FocusableNodes() []Node {
	if c.child == nil {
		return nil
	}
	return c.child.FocusableNodes()
}

// IsFocused always reads false; focus lives on the content child.
func (c *Composite) IsFocused() bool {
	return false
}

// SetFocused cascades to the content child.
func (c *Composite) SetFocused(focused bool) {
	if c.child != nil {
		c.child.SetFocused(focused)
	}
}

// Measure returns the child's size plus chrome, clamped into the
// constraints.
func (c *Composite) Measure(con Constraints) Size {
	con = con.Normalize()
	in := c.inset()

	var childSize Size
	if c.child != nil {
		childSize = c.child.Measure(con.Loosen().ShrinkBy(2*in, 2*in))
	}
	return con.Constrain(NewSize(childSize.Width+2*in, childSize.Height+2*in))
}

// Arrange stores the bounds and arranges the child into the inner rect.
func (c *Composite) Arrange(rect Rect) {
	c.SetBounds(rect)
	if c.child != nil {
		c.child.Arrange(rect.Inset(c.inset()))
	}
}

// Render draws the background and border, then the child clipped to the
// inner rect.
func (c *Composite) Render(rc RenderContext) {
	bounds := c.Bounds()
	if bounds.IsEmpty() {
		return
	}

	if !c.bg.IsDefault() {
		rc = rc.WithBackground(c.bg)
		rc.FillBackground(bounds)
	}
	if c.border != BorderNone {
		c.renderBorder(rc, bounds)
	}
	if c.child != nil {
		c.child.Render(rc.Push(bounds.Inset(c.inset()), Clip))
	}
}

func (c *Composite) renderBorder(rc RenderContext, bounds Rect) {
	chars := c.border.Chars()
	style := c.style
	right := bounds.Right() - 1
	bottom := bounds.Bottom() - 1

	rc.SetCell(bounds.X, bounds.Y, chars.TopLeft, style)
	rc.SetCell(right, bounds.Y, chars.TopRight, style)
	rc.SetCell(bounds.X, bottom, chars.BottomLeft, style)
	rc.SetCell(right, bottom, chars.BottomRight, style)

	for x := bounds.X + 1; x < right; x++ {
		rc.SetCell(x, bounds.Y, chars.Top, style)
		rc.SetCell(x, bottom, chars.Bottom, style)
	}
	for y := bounds.Y + 1; y < bottom; y++ {
		rc.SetCell(bounds.X, y, chars.Left, style)
		rc.SetCell(right, y, chars.Right, style)
	}

	if c.title != "" && bounds.Width > 4 {
		label := " " + c.title + " "
		if StringWidth(label) > bounds.Width-2 {
			label = truncateToWidth(label, bounds.Width-2)
		}
		rc.WriteString(bounds.X+1, bounds.Y, label, style)
	}
}

// truncateToWidth trims a string to at most width display cells without
// splitting a grapheme cluster.
func truncateToWidth(s string, width int) string {
	var out string
	used := 0
	GraphemeWidths(s, func(cluster string, w int) bool {
		if used+w > width {
			return false
		}
		out += cluster
		used += w
		return true
	})
	return out
}
