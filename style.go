package mosaic

// Attr represents text attributes as a bitfield.
type Attr uint8

const (
	// AttrNone represents no text attributes.
	AttrNone Attr = 0
	// AttrBold makes text bold/bright.
	AttrBold Attr = 1 << iota
	// AttrDim makes text dimmed/faint.
	AttrDim
	// AttrItalic makes text italic.
	AttrItalic
	// AttrUnderline underlines the text.
	AttrUnderline
	// AttrBlink makes text blink (rarely supported).
	AttrBlink
	// AttrReverse swaps foreground and background colors.
	AttrReverse
	// AttrStrikethrough draws a line through the text.
	AttrStrikethrough
)

// Style combines text attributes with foreground and background colors.
// The zero value is default styling: no attributes, terminal colors.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// NewStyle returns a Style with default colors and no attributes.
func NewStyle() Style {
	return Style{}
}

// Foreground returns a new Style with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns a new Style with the given background color.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// With returns a new Style with the given attribute bits set.
func (s Style) With(a Attr) Style {
	s.Attrs |= a
	return s
}

// Without returns a new Style with the given attribute bits cleared.
func (s Style) Without(a Attr) Style {
	s.Attrs &^= a
	return s
}

// Bold returns a new Style with the bold attribute set.
func (s Style) Bold() Style { return s.With(AttrBold) }

// Dim returns a new Style with the dim attribute set.
func (s Style) Dim() Style { return s.With(AttrDim) }

// Italic returns a new Style with the italic attribute set.
func (s Style) Italic() Style { return s.With(AttrItalic) }

// Underline returns a new Style with the underline attribute set.
func (s Style) Underline() Style { return s.With(AttrUnderline) }

// Blink returns a new Style with the blink attribute set.
func (s Style) Blink() Style { return s.With(AttrBlink) }

// Reverse returns a new Style with the reverse attribute set.
func (s Style) Reverse() Style { return s.With(AttrReverse) }

// Strikethrough returns a new Style with the strikethrough attribute set.
func (s Style) Strikethrough() Style { return s.With(AttrStrikethrough) }

// Equal returns true if both styles are identical.
func (s Style) Equal(other Style) bool {
	return s.Fg.Equal(other.Fg) && s.Bg.Equal(other.Bg) && s.Attrs == other.Attrs
}

// HasAttr returns true if the style has the given attribute(s) set.
func (s Style) HasAttr(a Attr) bool {
	return s.Attrs&a == a
}
