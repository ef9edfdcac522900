package mosaic

import "strings"

// Buffer is a double-buffered 2D grid of cells.
// Writes go to the back buffer; Diff() compares against the front buffer
// and Swap() promotes the back buffer after flushing.
type Buffer struct {
	front  []Cell // Currently displayed state
	back   []Cell // State being built
	width  int
	height int
}

// CellChange represents a single cell that differs between front and back
// buffers.
type CellChange struct {
	X, Y int
	Cell Cell
}

// NewBuffer creates a double-buffered grid of the given dimensions.
// Both buffers start filled with spaces in the default style.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	size := width * height
	front := make([]Cell, size)
	back := make([]Cell, size)

	blank := NewCell(' ', NewStyle())
	for i := range front {
		front[i] = blank
		back[i] = blank
	}

	return &Buffer{front: front, back: back, width: width, height: height}
}

// Width returns the buffer width in columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in rows.
func (b *Buffer) Height() int { return b.height }

// Rect returns the buffer bounds as a Rect starting at (0, 0).
func (b *Buffer) Rect() Rect {
	return NewRect(0, 0, b.width, b.height)
}

// idx converts (x, y) coordinates to a flat index, or -1 if out of bounds.
func (b *Buffer) idx(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.width + x
}

// Cell returns the cell at (x, y) from the back buffer.
// Returns a zero Cell if the position is out of bounds.
func (b *Buffer) Cell(x, y int) Cell {
	i := b.idx(x, y)
	if i < 0 {
		return Cell{}
	}
	return b.back[i]
}

// SetCell sets the cell at (x, y) in the back buffer.
// Out-of-bounds positions are ignored.
func (b *Buffer) SetCell(x, y int, c Cell) {
	i := b.idx(x, y)
	if i < 0 {
		return
	}
	b.back[i] = c
}

// SetRune places a rune at (x, y) with the given style.
// Wide characters get a continuation cell; overlapped wide characters are
// cleared so no half glyphs remain.
func (b *Buffer) SetRune(x, y int, r rune, style Style) {
	if b.idx(x, y) < 0 {
		return
	}

	width := RuneWidth(r)
	current := b.Cell(x, y)

	// Writing into the middle of a wide char destroys the whole glyph.
	if current.IsContinuation() {
		b.clearWideCharAt(x, y)
	}
	if current.Width == 2 && x+1 < b.width {
		b.SetCell(x+1, y, NewCell(' ', NewStyle()))
	}

	if width == 2 && x+1 < b.width {
		next := b.Cell(x+1, y)
		if next.Width == 2 || next.IsContinuation() {
			b.clearWideCharAt(x+1, y)
		}
	}

	// A wide char at the last column cannot fit; pad with a space.
	if width == 2 && x+1 >= b.width {
		b.SetCell(x, y, NewCell(' ', style))
		return
	}

	b.SetCell(x, y, NewCellWithWidth(r, style, uint8(width)))
	if width == 2 {
		b.SetCell(x+1, y, NewCellWithWidth(0, style, 0))
	}
}

// clearWideCharAt clears the wide character occupying (x, y), whether the
// position is the primary cell or its continuation.
func (b *Buffer) clearWideCharAt(x, y int) {
	cell := b.Cell(x, y)
	blank := NewCell(' ', NewStyle())

	if cell.IsContinuation() {
		if x > 0 {
			b.SetCell(x-1, y, blank)
		}
		b.SetCell(x, y, blank)
	} else if cell.Width == 2 {
		b.SetCell(x, y, blank)
		if x+1 < b.width {
			b.SetCell(x+1, y, blank)
		}
	}
}

// SetString writes a string starting at (x, y) with the given style.
// Returns the display width consumed. Stops at the buffer edge without
// wrapping.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	if y < 0 || y >= b.height {
		return 0
	}

	total := 0
	curX := x
	for _, r := range s {
		if curX >= b.width {
			break
		}
		w := RuneWidth(r)
		if curX < 0 {
			curX += w
			continue
		}
		if w == 2 && curX+1 >= b.width {
			break
		}
		b.SetRune(curX, y, r, style)
		curX += w
		total += w
	}
	return total
}

// SetStringClipped writes a string clipped to a rectangle.
// Wide characters straddling the clip boundary are skipped, never split.
// Returns the display width of rendered characters.
func (b *Buffer) SetStringClipped(x, y int, s string, style Style, clip Rect) int {
	if y < clip.Y || y >= clip.Bottom() {
		return 0
	}

	total := 0
	curX := x
	for _, r := range s {
		w := RuneWidth(r)

		if curX+w <= clip.X {
			curX += w
			continue
		}
		if curX >= clip.Right() {
			break
		}
		if curX >= clip.X {
			if w == 2 && curX+1 >= clip.Right() {
				curX += w
				continue
			}
			b.SetRune(curX, y, r, style)
			total += w
		}
		curX += w
	}
	return total
}

// Fill fills a rectangle with the given rune and style.
func (b *Buffer) Fill(rect Rect, r rune, style Style) {
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() {
		return
	}

	w := RuneWidth(r)
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); {
			if w == 2 && x+1 >= rect.Right() {
				b.SetRune(x, y, ' ', style)
				x++
			} else {
				b.SetRune(x, y, r, style)
				x += w
			}
		}
	}
}

// Clear clears the entire back buffer to spaces with default style.
func (b *Buffer) Clear() {
	b.ClearRect(b.Rect())
}

// ClearRect clears a rectangular region to spaces with default style.
// Wide characters cut by the region edge are cleared entirely.
func (b *Buffer) ClearRect(rect Rect) {
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() {
		return
	}

	blank := NewCell(' ', NewStyle())
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			cell := b.Cell(x, y)
			if cell.IsContinuation() && x == rect.X && x > 0 {
				b.SetCell(x-1, y, blank)
			}
			if cell.Width == 2 && x+1 == rect.Right() && x+1 < b.width {
				b.SetCell(x+1, y, blank)
			}
			b.SetCell(x, y, blank)
		}
	}
}

// Diff returns all cells that changed between front and back buffers, in
// row-major order to minimize cursor moves when flushed.
func (b *Buffer) Diff() []CellChange {
	changes := make([]CellChange, 0, b.width)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			i := y*b.width + x
			if !b.back[i].Equal(b.front[i]) {
				changes = append(changes, CellChange{X: x, Y: y, Cell: b.back[i]})
			}
		}
	}
	return changes
}

// Swap copies the back buffer to the front buffer.
// Call after flushing changes to the terminal.
func (b *Buffer) Swap() {
	copy(b.front, b.back)
}

// String renders the back buffer to a string for debugging and tests.
// Continuation cells are skipped.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := b.back[y*b.width+x]
			if cell.IsContinuation() {
				continue
			}
			if cell.Rune == 0 {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(cell.Rune)
			}
		}
		if y < b.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Resize changes the buffer dimensions, preserving overlapping content.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == b.width && height == b.height {
		return
	}

	size := width * height
	front := make([]Cell, size)
	back := make([]Cell, size)
	blank := NewCell(' ', NewStyle())
	for i := range front {
		front[i] = blank
		back[i] = blank
	}

	copyW := min(width, b.width)
	copyH := min(height, b.height)
	for y := 0; y < copyH; y++ {
		for x := 0; x < copyW; x++ {
			front[y*width+x] = b.front[y*b.width+x]
			back[y*width+x] = b.back[y*b.width+x]
		}
	}

	b.front = front
	b.back = back
	b.width = width
	b.height = height
}
