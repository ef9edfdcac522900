package mosaic

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
)

// ClipMode controls whether a region clips content to its rectangle.
type ClipMode uint8

const (
	// Clip restricts rendering to the region's rectangle (default).
	Clip ClipMode = iota
	// Overflow disables clipping at this level; ancestors still apply.
	Overflow
)

// Region is a clip provider: one link in the chain of nested viewports
// (scrollable panes, windows, overlays). Rect is in absolute screen
// coordinates, resolved from the owning node's Bounds each layout pass.
type Region struct {
	Rect   Rect
	Mode   ClipMode
	Parent *Region
}

// NewRegion creates a clipping Region covering rect, chained to parent.
// Parent may be nil for the root.
func NewRegion(rect Rect, parent *Region) *Region {
	return &Region{Rect: rect, Mode: Clip, Parent: parent}
}

// ShouldRenderAt reports whether the cell (x, y) is visible: inside this
// region's rectangle and every ancestor's rectangle along the chain,
// except at levels whose Mode is Overflow.
func (r *Region) ShouldRenderAt(x, y int) bool {
	for p := r; p != nil; p = p.Parent {
		if p.Mode == Overflow {
			continue
		}
		if !p.Rect.Contains(x, y) {
			return false
		}
	}
	return true
}

// Visible returns the effective visible rectangle: the intersection of
// every clipping level on the chain. A nil region is fully visible.
func (r *Region) Visible() Rect {
	visible := NewRect(0, 0, Unbounded, Unbounded)
	for p := r; p != nil; p = p.Parent {
		if p.Mode == Overflow {
			continue
		}
		visible = visible.Intersect(p.Rect)
		if visible.IsEmpty() {
			return Rect{}
		}
	}
	return visible
}

// ClipString clips a styled string that would start at column x on row y
// against this region chain. The returned string:
//
//   - never cuts an escape sequence mid-sequence,
//   - never splits a double-width glyph across the clip boundary (a
//     straddling glyph is dropped and its columns padded by the caller's
//     background),
//   - ends with a style reset if characters were trimmed from the end, so
//     attribute state cannot leak into cells beyond the string.
//
// Returns the adjusted start column and the clipped text (possibly empty).
// Applying ClipString twice with the same window yields the same result.
func (r *Region) ClipString(x, y int, text string) (int, string) {
	if text == "" {
		return x, ""
	}

	visible := r.Visible()
	if visible.IsEmpty() || y < visible.Y || y >= visible.Bottom() {
		return x, ""
	}

	width := ansi.StringWidth(text)
	keepLeft := max(0, visible.X-x)
	keepRight := min(width, visible.Right()-x)
	if keepRight <= keepLeft {
		return x, ""
	}
	if keepLeft == 0 && keepRight == width {
		return x, text
	}

	// Trim the tail first. Truncate drops a glyph straddling the right
	// edge rather than splitting it; width lost there must not move the
	// start column.
	clipped := text
	if keepRight < width {
		clipped = ansi.Truncate(clipped, keepRight, "")
	}

	start := x + keepLeft
	if keepLeft > 0 {
		remaining := ansi.StringWidth(clipped)
		clipped = ansi.TruncateLeft(clipped, keepLeft, "")
		if removed := remaining - ansi.StringWidth(clipped); removed < keepLeft {
			// A wide glyph straddles the left edge. TruncateLeft keeps
			// it whole, which would put its first column outside the
			// clip rect; drop the glyph and start past its right edge.
			clipped = ansi.TruncateLeft(clipped, 2, "")
			start++
		}
	}
	if clipped == "" {
		return start, ""
	}

	if keepRight < width && !strings.HasSuffix(clipped, ansi.ResetStyle) {
		clipped += ansi.ResetStyle
	}
	return start, clipped
}

// VisibleSpan returns the visible column range [start, end) on row y, or
// ok=false when the row is entirely clipped.
func (r *Region) VisibleSpan(y int) (start, end int, ok bool) {
	visible := r.Visible()
	if visible.IsEmpty() || y < visible.Y || y >= visible.Bottom() {
		return 0, 0, false
	}
	return visible.X, visible.Right(), true
}

// GraphemeWidths iterates the grapheme clusters of a plain string, calling
// fn with each cluster and its display width. Used by widgets that need to
// clip user-visible text without separating combining marks from their
// base character.
func GraphemeWidths(s string, fn func(cluster string, width int) bool) {
	state := -1
	var cluster string
	var width int
	for len(s) > 0 {
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if !fn(cluster, width) {
			return
		}
	}
}
