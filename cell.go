package mosaic

import "github.com/mattn/go-runewidth"

// Cell represents a single character cell in the terminal grid.
// Wide characters (CJK, emoji) occupy two cells; the first cell holds the
// rune, the second is marked as a continuation.
type Cell struct {
	Rune  rune  // The character (0 for continuation cells)
	Style Style // Visual styling
	Width uint8 // Display width (1 or 2; 0 for continuation)
}

// NewCell creates a Cell with automatic width detection.
func NewCell(r rune, style Style) Cell {
	return Cell{
		Rune:  r,
		Style: style,
		Width: uint8(RuneWidth(r)),
	}
}

// NewCellWithWidth creates a Cell with an explicit width.
// Use width 0 for continuation cells.
func NewCellWithWidth(r rune, style Style, width uint8) Cell {
	return Cell{Rune: r, Style: style, Width: width}
}

// IsContinuation returns true if this cell is the second column of a wide
// character.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// Equal returns true if both cells are identical.
func (c Cell) Equal(other Cell) bool {
	return c.Rune == other.Rune && c.Style.Equal(other.Style) && c.Width == other.Width
}

// IsEmpty returns true if this cell represents a blank cell: a zero rune,
// or a space with default styling.
func (c Cell) IsEmpty() bool {
	if c.Rune == 0 {
		return true
	}
	return c.Rune == ' ' && c.Style.Equal(NewStyle())
}

// RuneWidth returns the display width of a rune in terminal cells.
// Control characters render as a single replacement cell.
func RuneWidth(r rune) int {
	if r < 32 {
		return 1
	}
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		// Zero-width runes still need a cell when placed on their own.
		return 1
	}
	return w
}

// StringWidth returns the display width of a plain (escape-free) string.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
