package mosaic

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ANSITerminal implements Terminal using ANSI escape sequences.
// It works with any terminal emulator that supports ANSI codes.
type ANSITerminal struct {
	out       io.Writer   // Output destination (usually os.Stdout)
	in        io.Reader   // Input source (usually os.Stdin)
	lastStyle Style       // Last emitted style (for optimization)
	esc       *escBuilder // Escape sequence builder
	inFd      uintptr     // File descriptor for input (needed for raw mode)
	outFd     uintptr     // File descriptor for output (needed for size query)
	rawState  *term.State // Saved state for raw mode restore
}

// NewANSITerminal creates a new ANSI terminal.
// The output writer is typically os.Stdout and the input reader os.Stdin.
func NewANSITerminal(out io.Writer, in io.Reader) *ANSITerminal {
	t := &ANSITerminal{
		out: out,
		in:  in,
		esc: newEscBuilder(4096),
	}

	if f, ok := out.(*os.File); ok {
		t.outFd = f.Fd()
	}
	if f, ok := in.(*os.File); ok {
		t.inFd = f.Fd()
	}

	return t
}

// Size returns the terminal dimensions.
// Returns a default of 80x24 if the size cannot be determined.
func (t *ANSITerminal) Size() (width, height int) {
	w, h, err := term.GetSize(int(t.outFd))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// Flush writes the given cell changes to the terminal.
// It elides cursor moves for sequential cells and style codes for
// consecutive cells sharing a style.
func (t *ANSITerminal) Flush(changes []CellChange) {
	if len(changes) == 0 {
		return
	}

	t.esc.Reset()
	lastX, lastY := -1, -1

	for _, ch := range changes {
		// Continuation cells are the second column of a wide character,
		// already produced by the primary cell.
		if ch.Cell.IsContinuation() {
			continue
		}

		if ch.Y != lastY || ch.X != lastX+1 {
			t.esc.MoveTo(ch.X, ch.Y)
		}

		if !ch.Cell.Style.Equal(t.lastStyle) {
			t.esc.SetStyle(ch.Cell.Style)
			t.lastStyle = ch.Cell.Style
		}

		if ch.Cell.Rune != 0 {
			t.esc.WriteRune(ch.Cell.Rune)
		} else {
			t.esc.WriteRune(' ')
		}

		lastX = ch.X
		if ch.Cell.Width > 1 {
			lastX = ch.X + int(ch.Cell.Width) - 1
		}
		lastY = ch.Y
	}

	t.out.Write(t.esc.Bytes())
}

// Clear clears the entire terminal screen and scrollback.
func (t *ANSITerminal) Clear() {
	t.esc.Reset()
	t.esc.ResetStyle()
	t.esc.MoveTo(0, 0)
	t.esc.ClearScreen()
	t.esc.ClearScrollback()
	t.esc.MoveTo(0, 0)
	t.out.Write(t.esc.Bytes())
	t.lastStyle = NewStyle()
}

// SetCursor moves the cursor to the specified position (0-indexed).
func (t *ANSITerminal) SetCursor(x, y int) {
	t.esc.Reset()
	t.esc.MoveTo(x, y)
	t.out.Write(t.esc.Bytes())
}

// HideCursor makes the cursor invisible.
func (t *ANSITerminal) HideCursor() {
	t.esc.Reset()
	t.esc.HideCursor()
	t.out.Write(t.esc.Bytes())
}

// ShowCursor makes the cursor visible.
func (t *ANSITerminal) ShowCursor() {
	t.esc.Reset()
	t.esc.ShowCursor()
	t.out.Write(t.esc.Bytes())
}

// SetCursorShape changes the cursor glyph.
func (t *ANSITerminal) SetCursorShape(shape CursorShape) {
	t.esc.Reset()
	t.esc.SetCursorShape(shape)
	t.out.Write(t.esc.Bytes())
}

// EnterRawMode puts the terminal into raw mode.
func (t *ANSITerminal) EnterRawMode() error {
	state, err := term.MakeRaw(int(t.inFd))
	if err != nil {
		return err
	}
	t.rawState = state
	return nil
}

// ExitRawMode restores the terminal to its previous mode.
func (t *ANSITerminal) ExitRawMode() error {
	if t.rawState == nil {
		return nil
	}
	err := term.Restore(int(t.inFd), t.rawState)
	t.rawState = nil
	return err
}

// EnterAltScreen switches to the alternate screen buffer.
func (t *ANSITerminal) EnterAltScreen() {
	t.esc.Reset()
	t.esc.EnterAltScreen()
	t.out.Write(t.esc.Bytes())
}

// ExitAltScreen switches back to the main screen buffer.
func (t *ANSITerminal) ExitAltScreen() {
	t.esc.Reset()
	t.esc.ExitAltScreen()
	t.out.Write(t.esc.Bytes())
}

// EnableMouse turns on mouse reporting.
func (t *ANSITerminal) EnableMouse() {
	t.esc.Reset()
	t.esc.EnableMouse()
	t.out.Write(t.esc.Bytes())
}

// DisableMouse turns off mouse reporting.
func (t *ANSITerminal) DisableMouse() {
	t.esc.Reset()
	t.esc.DisableMouse()
	t.out.Write(t.esc.Bytes())
}

// BeginSyncUpdate starts a synchronized update block.
// Output is buffered until EndSyncUpdate, then displayed atomically.
func (t *ANSITerminal) BeginSyncUpdate() {
	t.esc.Reset()
	t.esc.BeginSyncUpdate()
	t.out.Write(t.esc.Bytes())
}

// EndSyncUpdate ends a synchronized update block.
func (t *ANSITerminal) EndSyncUpdate() {
	t.esc.Reset()
	t.esc.EndSyncUpdate()
	t.out.Write(t.esc.Bytes())
}

// ResetStyle resets the style tracking, forcing the next Flush to emit
// style codes.
func (t *ANSITerminal) ResetStyle() {
	t.lastStyle = Style{Fg: RGBColor(255, 255, 255)}
}

// WriteDirect writes raw bytes directly to the terminal output.
// For escape sequences or content that bypasses the cell grid.
func (t *ANSITerminal) WriteDirect(b []byte) (int, error) {
	return t.out.Write(b)
}
