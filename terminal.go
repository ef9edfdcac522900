package mosaic

// Terminal abstracts terminal operations for rendering and input.
// Implementations cover real ANSI terminals and mocks for testing.
type Terminal interface {
	// Size returns the terminal dimensions (width, height) in cells.
	Size() (width, height int)

	// Flush writes the given cell changes to the terminal.
	// Changes are expected in row-major order to minimize cursor moves.
	Flush(changes []CellChange)

	// Clear clears the entire terminal screen.
	Clear()

	// SetCursor moves the cursor to the specified position (0-indexed).
	SetCursor(x, y int)

	// HideCursor makes the cursor invisible.
	HideCursor()

	// ShowCursor makes the cursor visible.
	ShowCursor()

	// SetCursorShape changes the cursor glyph (block, bar, underline).
	SetCursorShape(shape CursorShape)

	// EnterRawMode puts the terminal into raw mode for
	// character-by-character input.
	EnterRawMode() error

	// ExitRawMode restores the terminal to its previous mode.
	ExitRawMode() error

	// EnterAltScreen switches to the alternate screen buffer.
	EnterAltScreen()

	// ExitAltScreen switches back to the main screen buffer.
	ExitAltScreen()

	// EnableMouse turns on mouse reporting (SGR-1006 extended mode).
	EnableMouse()

	// DisableMouse turns off mouse reporting.
	DisableMouse()
}

// Compile-time interface checks for the built-in terminals.
var (
	_ Terminal = (*ANSITerminal)(nil)
	_ Terminal = (*MockTerminal)(nil)
)
