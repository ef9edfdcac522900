package mosaic

import "github.com/pkg/errors"

// Grid renders tabular data: a header row plus data rows, with columns
// sized to their widest cell. Every row must have exactly as many cells
// as the header; the mismatch is reported by Validate before layout runs
// rather than silently truncated or padded.
type Grid struct {
	Base

	header []string
	rows   [][]string

	headerStyle Style
	rowStyle    Style
	gap         int

	selected int
}

// NewGrid creates a grid with the given header columns.
func NewGrid(header ...string) *Grid {
	return &Grid{
		header:      header,
		headerStyle: NewStyle().Bold(),
		gap:         2,
		selected:    -1,
	}
}

// AddRow appends a data row. The column count is checked by Validate, not
// here, so callers can build rows incrementally and still get one error
// naming the offending row.
func (g *Grid) AddRow(cells ...string) *Grid {
	g.rows = append(g.rows, cells)
	g.MarkDirty()
	return g
}

// SetRows replaces all data rows.
func (g *Grid) SetRows(rows [][]string) {
	g.rows = rows
	if g.selected >= len(rows) {
		g.selected = len(rows) - 1
	}
	g.MarkDirty()
}

// Rows returns the data rows.
func (g *Grid) Rows() [][]string {
	return g.rows
}

// SetHeaderStyle sets the style of the header row.
func (g *Grid) SetHeaderStyle(style Style) {
	g.headerStyle = style
	g.MarkDirty()
}

// SetRowStyle sets the style of the data rows.
func (g *Grid) SetRowStyle(style Style) {
	g.rowStyle = style
	g.MarkDirty()
}

// SetColumnGap sets the spacing in cells between columns.
func (g *Grid) SetColumnGap(gap int) {
	if gap < 0 {
		gap = 0
	}
	g.gap = gap
	g.MarkDirty()
}

// Select highlights the given data row, or clears the highlight with -1.
// Out-of-range indexes clamp.
func (g *Grid) Select(row int) {
	if row < -1 {
		row = -1
	}
	if row >= len(g.rows) {
		row = len(g.rows) - 1
	}
	if g.selected == row {
		return
	}
	g.selected = row
	g.MarkDirty()
}

// Selected returns the highlighted data row index, or -1.
func (g *Grid) Selected() int {
	return g.selected
}

// Validate checks that every row matches the header's column count.
func (g *Grid) Validate() error {
	for i, row := range g.rows {
		if len(row) != len(g.header) {
			return errors.Errorf(
				"grid: header has %d columns, but row %d has %d columns",
				len(g.header), i, len(row),
			)
		}
	}
	return nil
}

// FocusableNodes returns the grid itself when focusable.
func (g *Grid) FocusableNodes() []Node {
	if g.IsFocusable() {
		return []Node{g}
	}
	return nil
}

// columnWidths returns the display width of each column's widest cell.
// Rows wider than the header contribute only to the columns that exist;
// Validate catches the mismatch before rendering.
func (g *Grid) columnWidths() []int {
	widths := make([]int, len(g.header))
	for i, h := range g.header {
		widths[i] = StringWidth(h)
	}
	for _, row := range g.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Measure returns the natural size of the table: column widths plus gaps
// wide, header plus rows tall.
func (g *Grid) Measure(c Constraints) Size {
	widths := g.columnWidths()
	width := 0
	for _, w := range widths {
		width += w
	}
	if len(widths) > 1 {
		width += g.gap * (len(widths) - 1)
	}
	return c.Constrain(NewSize(width, 1+len(g.rows)))
}

// Render draws the header and rows, clipped to the node's Bounds.
// Rows that do not fit vertically are dropped.
func (g *Grid) Render(rc RenderContext) {
	bounds := g.Bounds()
	if bounds.IsEmpty() {
		return
	}
	rc = rc.Push(bounds, Clip)

	widths := g.columnWidths()
	g.renderRow(rc, bounds.Y, g.header, widths, g.headerStyle)

	for i, row := range g.rows {
		y := bounds.Y + 1 + i
		if y >= bounds.Bottom() {
			break
		}
		style := g.rowStyle
		if i == g.selected {
			style = style.Reverse()
		}
		g.renderRow(rc, y, row, widths, style)
	}
}

func (g *Grid) renderRow(rc RenderContext, y int, cells []string, widths []int, style Style) {
	bounds := g.Bounds()
	x := bounds.X
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		rc.WriteString(x, y, cell, style)
		x += widths[i] + g.gap
	}
}

// Bindings registers arrow-key row selection for a focusable grid.
func (g *Grid) Bindings(table *BindingTable) {
	table.OnKey(KeyUp, func(Event) {
		if g.selected > 0 {
			g.Select(g.selected - 1)
		} else if g.selected < 0 && len(g.rows) > 0 {
			g.Select(len(g.rows) - 1)
		}
	})
	table.OnKey(KeyDown, func(Event) {
		if g.selected < len(g.rows)-1 {
			g.Select(g.selected + 1)
		}
	})
}
