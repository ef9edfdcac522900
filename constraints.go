package mosaic

import "math"

// Unbounded is the sentinel maximum for a constraint axis with no upper
// limit, e.g. a scroll container measuring the true height of its content.
// Content-sized nodes must treat it as "no wrapping or scrolling needed"
// rather than a real dimension.
const Unbounded = math.MaxInt32

// Constraints is the min/max box passed top-down during measurement.
// All values are in cells. On each axis min <= max once resolved.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Tight returns constraints that force exactly the given size.
func Tight(size Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// Loose returns constraints with zero minimums and the given maximums.
func Loose(maxWidth, maxHeight int) Constraints {
	if maxWidth < 0 {
		maxWidth = 0
	}
	if maxHeight < 0 {
		maxHeight = 0
	}
	return Constraints{MaxWidth: maxWidth, MaxHeight: maxHeight}
}

// Unconstrained returns constraints with no minimum and unbounded maximums.
func Unconstrained() Constraints {
	return Constraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
}

// Normalize resolves any inverted axis so that min <= max, and clamps
// negative values to zero. Constraints requesting negative space degrade
// to zero rather than erroring.
func (c Constraints) Normalize() Constraints {
	if c.MinWidth < 0 {
		c.MinWidth = 0
	}
	if c.MinHeight < 0 {
		c.MinHeight = 0
	}
	if c.MaxWidth < c.MinWidth {
		c.MaxWidth = c.MinWidth
	}
	if c.MaxHeight < c.MinHeight {
		c.MaxHeight = c.MinHeight
	}
	return c
}

// Constrain clamps a proposed size into the constraint box.
// Constrain is idempotent: Constrain(Constrain(s)) == Constrain(s).
func (c Constraints) Constrain(size Size) Size {
	c = c.Normalize()
	return Size{
		Width:  clampInt(size.Width, c.MinWidth, c.MaxWidth),
		Height: clampInt(size.Height, c.MinHeight, c.MaxHeight),
	}
}

// IsSatisfiedBy returns true if the size already lies inside the box.
func (c Constraints) IsSatisfiedBy(size Size) bool {
	return c.Constrain(size) == size
}

// HasBoundedWidth returns true if the width axis has a real upper limit.
func (c Constraints) HasBoundedWidth() bool {
	return c.MaxWidth < Unbounded
}

// HasBoundedHeight returns true if the height axis has a real upper limit.
func (c Constraints) HasBoundedHeight() bool {
	return c.MaxHeight < Unbounded
}

// Loosen returns the constraints with minimums dropped to zero.
func (c Constraints) Loosen() Constraints {
	c.MinWidth = 0
	c.MinHeight = 0
	return c
}

// ShrinkBy reduces both maximums by the given amounts, keeping the box
// valid. Used by containers reserving gutters or borders before
// measuring children.
func (c Constraints) ShrinkBy(width, height int) Constraints {
	if c.MaxWidth < Unbounded {
		c.MaxWidth -= width
	}
	if c.MaxHeight < Unbounded {
		c.MaxHeight -= height
	}
	return c.Normalize()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
