package mosaic

// RenderContext is the sink every node writes to during a render pass.
// It carries the active clip region and the ambient background color.
//
// RenderContext is an immutable value: pushing a region or changing the
// ambient background derives a new context for the nested scope, so
// sibling subtrees can never observe each other's clip state. The
// derived context is discarded when the scope returns, so there is no
// state to restore.
type RenderContext struct {
	buf    *Buffer
	region *Region
	bg     Color
}

// NewRenderContext creates the root context for one render pass, clipped
// to the buffer bounds.
func NewRenderContext(buf *Buffer) RenderContext {
	return RenderContext{
		buf:    buf,
		region: NewRegion(buf.Rect(), nil),
	}
}

// Push derives a context whose clip chain is extended by a region covering
// rect. Containers that scroll, float, or overlay call this before
// rendering children.
func (rc RenderContext) Push(rect Rect, mode ClipMode) RenderContext {
	region := NewRegion(rect, rc.region)
	region.Mode = mode
	rc.region = region
	return rc
}

// WithBackground derives a context with a new ambient background color.
func (rc RenderContext) WithBackground(bg Color) RenderContext {
	rc.bg = bg
	return rc
}

// Background returns the ambient background color for this scope.
func (rc RenderContext) Background() Color {
	return rc.bg
}

// Region returns the active clip region chain head.
func (rc RenderContext) Region() *Region {
	return rc.region
}

// Buffer returns the underlying cell grid.
// Prefer the clipped write primitives; direct buffer access bypasses the
// clip chain.
func (rc RenderContext) Buffer() *Buffer {
	return rc.buf
}

// ShouldRenderAt reports whether the cell (x, y) is visible under the
// active clip chain.
func (rc RenderContext) ShouldRenderAt(x, y int) bool {
	return rc.region.ShouldRenderAt(x, y)
}

// SetCell writes a single cell through the clip chain.
func (rc RenderContext) SetCell(x, y int, r rune, style Style) {
	if !rc.region.ShouldRenderAt(x, y) {
		return
	}
	rc.buf.SetRune(x, y, r, rc.resolve(style))
}

// WriteString writes a plain string with one style, clipped to the active
// chain. Wide glyphs straddling the clip edge are dropped, never split.
// Returns the display width rendered.
func (rc RenderContext) WriteString(x, y int, s string, style Style) int {
	visible := rc.region.Visible()
	if visible.IsEmpty() {
		return 0
	}
	return rc.buf.SetStringClipped(x, y, s, rc.resolve(style), visible)
}

// WriteStringUnclipped writes a plain string bounded only by the buffer.
// For overlay chrome that deliberately escapes its container.
func (rc RenderContext) WriteStringUnclipped(x, y int, s string, style Style) int {
	return rc.buf.SetString(x, y, s, rc.resolve(style))
}

// ClipString clips a raw ANSI-styled string against the active chain; see
// Region.ClipString. For widgets that feed pre-styled escape text to
// their own sink (e.g. an embedded terminal pane).
func (rc RenderContext) ClipString(x, y int, s string) (int, string) {
	return rc.region.ClipString(x, y, s)
}

// Fill fills rect with the given rune and style, clipped to the chain.
func (rc RenderContext) Fill(rect Rect, r rune, style Style) {
	visible := rect.Intersect(rc.region.Visible())
	if visible.IsEmpty() {
		return
	}
	rc.buf.Fill(visible, r, rc.resolve(style))
}

// FillBackground fills rect with spaces in the ambient background color.
func (rc RenderContext) FillBackground(rect Rect) {
	rc.Fill(rect, ' ', NewStyle().Background(rc.bg))
}

// resolve substitutes the ambient background for a default background so
// nested scopes inherit their container's fill.
func (rc RenderContext) resolve(style Style) Style {
	if style.Bg.IsDefault() && !rc.bg.IsDefault() {
		style.Bg = rc.bg
	}
	return style
}
