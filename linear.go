package mosaic

// Axis is the main direction of a Linear container.
type Axis uint8

const (
	// Horizontal lays children out left to right.
	Horizontal Axis = iota
	// Vertical lays children out top to bottom.
	Vertical
)

// HintKind distinguishes the three ways a Linear child can claim space.
type HintKind uint8

const (
	// HintContent gives the child its measured size along the main axis.
	HintContent HintKind = iota
	// HintFixed gives the child exactly N cells along the main axis.
	HintFixed
	// HintFill divides leftover space among fill children by weight.
	HintFill
)

// SizeHint describes how a Linear child claims main-axis space.
type SizeHint struct {
	Kind   HintKind
	Cells  int // for HintFixed
	Weight int // for HintFill; 0 is treated as 1
}

// Fixed claims exactly n cells along the main axis.
func Fixed(n int) SizeHint {
	if n < 0 {
		n = 0
	}
	return SizeHint{Kind: HintFixed, Cells: n}
}

// Content claims the child's measured size along the main axis.
func Content() SizeHint {
	return SizeHint{Kind: HintContent}
}

// Fill claims a weighted share of the space left after fixed and content
// children are satisfied.
func Fill(weight int) SizeHint {
	if weight < 1 {
		weight = 1
	}
	return SizeHint{Kind: HintFill, Weight: weight}
}

type linearChild struct {
	node Node
	hint SizeHint

	// main-axis extent resolved during Measure/Arrange
	extent int
}

// Linear is the workhorse container: children along one axis, each sized
// by a SizeHint. Fixed and content children are satisfied first; fill
// children split what remains in proportion to their weights, with the
// rounding remainder going to the last fill child so the row always sums
// to the available extent.
type Linear struct {
	Base

	axis     Axis
	children []linearChild
	gap      int
}

// NewLinear creates an empty container along the given axis.
func NewLinear(axis Axis) *Linear {
	return &Linear{axis: axis}
}

// NewRow creates an empty horizontal container.
func NewRow() *Linear { return NewLinear(Horizontal) }

// NewColumn creates an empty vertical container.
func NewColumn() *Linear { return NewLinear(Vertical) }

// Add appends a child with the given size hint and returns the container
// for chaining.
func (l *Linear) Add(node Node, hint SizeHint) *Linear {
	l.children = append(l.children, linearChild{node: node, hint: hint})
	l.MarkDirty()
	return l
}

// SetGap sets the spacing in cells between consecutive children.
func (l *Linear) SetGap(gap int) {
	if gap < 0 {
		gap = 0
	}
	l.gap = gap
	l.MarkDirty()
}

// Axis returns the container's main axis.
func (l *Linear) Axis() Axis {
	return l.axis
}

// Children returns the child nodes in layout order.
func (l *Linear) Children() []Node {
	nodes := make([]Node, len(l.children))
	for i, c := range l.children {
		nodes[i] = c.node
	}
	return nodes
}

// FocusableNodes concatenates the focusables of every child in order.
func (l *Linear) FocusableNodes() []Node {
	var nodes []Node
	for _, c := range l.children {
		nodes = append(nodes, c.node.FocusableNodes()...)
	}
	return nodes
}

// Measure resolves every child's main-axis extent and returns the
// container's size clamped into the constraints. With an unbounded main
// axis, fill children degrade to their content size since there is no
// finite space to divide.
func (l *Linear) Measure(c Constraints) Size {
	c = c.Normalize()
	mainMax, crossMax := l.mainCross(c.MaxWidth, c.MaxHeight)

	totalMain := l.distribute(mainMax, crossMax)

	crossUsed := 0
	for i := range l.children {
		ch := &l.children[i]
		size := l.measureChild(ch, crossMax)
		_, cross := l.mainCross(size.Width, size.Height)
		if cross > crossUsed {
			crossUsed = cross
		}
	}

	w, h := l.fromMainCross(totalMain, crossUsed)
	return c.Constrain(NewSize(w, h))
}

// Arrange re-distributes the final extent among children and assigns each
// its slice of the rect, stacked along the main axis.
func (l *Linear) Arrange(rect Rect) {
	l.SetBounds(rect)

	mainMax, crossMax := l.mainCross(rect.Width, rect.Height)
	l.distribute(mainMax, crossMax)

	offset := 0
	for i := range l.children {
		ch := &l.children[i]
		var childRect Rect
		if l.axis == Horizontal {
			childRect = NewRect(rect.X+offset, rect.Y, ch.extent, rect.Height)
		} else {
			childRect = NewRect(rect.X, rect.Y+offset, rect.Width, ch.extent)
		}
		childRect = childRect.Intersect(rect)
		ch.node.Arrange(childRect)
		offset += ch.extent + l.gap
	}
}

// Render renders every child. The container itself draws nothing.
func (l *Linear) Render(rc RenderContext) {
	for _, c := range l.children {
		c.node.Render(rc)
	}
}

// distribute resolves each child's main-axis extent for a given available
// extent, returning the total consumed including gaps.
func (l *Linear) distribute(mainMax, crossMax int) int {
	gaps := 0
	if len(l.children) > 1 {
		gaps = l.gap * (len(l.children) - 1)
	}

	// Pass 1: fixed and content children claim their space.
	claimed := gaps
	fillWeight := 0
	for i := range l.children {
		ch := &l.children[i]
		switch ch.hint.Kind {
		case HintFixed:
			ch.extent = ch.hint.Cells
			claimed += ch.extent
		case HintContent:
			size := l.measureChild(ch, crossMax)
			main, _ := l.mainCross(size.Width, size.Height)
			ch.extent = main
			claimed += ch.extent
		case HintFill:
			fillWeight += ch.hint.Weight
		}
	}

	// Pass 2: fill children split the remainder by weight.
	if fillWeight > 0 {
		remaining := 0
		if mainMax < Unbounded && mainMax > claimed {
			remaining = mainMax - claimed
		}
		distributed := 0
		lastFill := -1
		for i := range l.children {
			ch := &l.children[i]
			if ch.hint.Kind != HintFill {
				continue
			}
			if mainMax >= Unbounded {
				// No finite space to divide; degrade to content size.
				size := l.measureChild(ch, crossMax)
				main, _ := l.mainCross(size.Width, size.Height)
				ch.extent = main
			} else {
				ch.extent = remaining * ch.hint.Weight / fillWeight
			}
			distributed += ch.extent
			lastFill = i
		}
		// Rounding remainder goes to the last fill child.
		if lastFill >= 0 && mainMax < Unbounded && distributed < remaining {
			l.children[lastFill].extent += remaining - distributed
		}
	}

	total := gaps
	for _, ch := range l.children {
		total += ch.extent
	}
	return total
}

// measureChild measures a child under loose constraints bounded by the
// cross axis; fixed children are measured tight on the main axis.
func (l *Linear) measureChild(ch *linearChild, crossMax int) Size {
	var c Constraints
	if l.axis == Horizontal {
		c = Constraints{MaxWidth: Unbounded, MaxHeight: crossMax}
		if ch.hint.Kind == HintFixed {
			c.MinWidth = ch.hint.Cells
			c.MaxWidth = ch.hint.Cells
		}
	} else {
		c = Constraints{MaxWidth: crossMax, MaxHeight: Unbounded}
		if ch.hint.Kind == HintFixed {
			c.MinHeight = ch.hint.Cells
			c.MaxHeight = ch.hint.Cells
		}
	}
	return ch.node.Measure(c)
}

func (l *Linear) mainCross(w, h int) (main, cross int) {
	if l.axis == Horizontal {
		return w, h
	}
	return h, w
}

func (l *Linear) fromMainCross(main, cross int) (w, h int) {
	if l.axis == Horizontal {
		return main, cross
	}
	return cross, main
}
