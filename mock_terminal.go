package mosaic

import (
	"strings"
	"time"
)

// MockTerminal is a Terminal for testing. It captures all operations and
// maintains an internal cell grid for verification.
type MockTerminal struct {
	width, height int
	cells         []Cell
	cursorX       int
	cursorY       int
	cursorHidden  bool
	cursorShape   CursorShape
	inRawMode     bool
	inAltScreen   bool
	mouseEnabled  bool

	flushCount int
}

// NewMockTerminal creates a mock terminal with the given dimensions.
func NewMockTerminal(width, height int) *MockTerminal {
	size := width * height
	cells := make([]Cell, size)

	blank := NewCell(' ', NewStyle())
	for i := range cells {
		cells[i] = blank
	}

	return &MockTerminal{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Size returns the terminal dimensions.
func (m *MockTerminal) Size() (width, height int) {
	return m.width, m.height
}

// SetSize resizes the mock, clearing its grid. For resize tests.
func (m *MockTerminal) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.cells = make([]Cell, width*height)
	blank := NewCell(' ', NewStyle())
	for i := range m.cells {
		m.cells[i] = blank
	}
}

// Flush applies the given cell changes to the mock's grid.
func (m *MockTerminal) Flush(changes []CellChange) {
	m.flushCount++
	for _, ch := range changes {
		if ch.X >= 0 && ch.X < m.width && ch.Y >= 0 && ch.Y < m.height {
			m.cells[ch.Y*m.width+ch.X] = ch.Cell
		}
	}
}

// FlushCount returns how many times Flush has been called.
func (m *MockTerminal) FlushCount() int {
	return m.flushCount
}

// Clear clears the grid to spaces with default style.
func (m *MockTerminal) Clear() {
	blank := NewCell(' ', NewStyle())
	for i := range m.cells {
		m.cells[i] = blank
	}
	m.cursorX = 0
	m.cursorY = 0
}

// SetCursor moves the cursor to the specified position.
func (m *MockTerminal) SetCursor(x, y int) {
	m.cursorX = x
	m.cursorY = y
}

// Cursor returns the cursor position.
func (m *MockTerminal) Cursor() (x, y int) {
	return m.cursorX, m.cursorY
}

// HideCursor makes the cursor invisible.
func (m *MockTerminal) HideCursor() {
	m.cursorHidden = true
}

// ShowCursor makes the cursor visible.
func (m *MockTerminal) ShowCursor() {
	m.cursorHidden = false
}

// CursorHidden reports whether the cursor is hidden.
func (m *MockTerminal) CursorHidden() bool {
	return m.cursorHidden
}

// SetCursorShape records the requested shape.
func (m *MockTerminal) SetCursorShape(shape CursorShape) {
	m.cursorShape = shape
}

// CursorShape returns the last requested shape.
func (m *MockTerminal) CursorShape() CursorShape {
	return m.cursorShape
}

// EnterRawMode simulates entering raw mode.
func (m *MockTerminal) EnterRawMode() error {
	m.inRawMode = true
	return nil
}

// ExitRawMode simulates exiting raw mode.
func (m *MockTerminal) ExitRawMode() error {
	m.inRawMode = false
	return nil
}

// InRawMode reports whether the mock is in raw mode.
func (m *MockTerminal) InRawMode() bool {
	return m.inRawMode
}

// EnterAltScreen simulates entering the alternate screen buffer.
func (m *MockTerminal) EnterAltScreen() {
	m.inAltScreen = true
}

// ExitAltScreen simulates exiting the alternate screen buffer.
func (m *MockTerminal) ExitAltScreen() {
	m.inAltScreen = false
}

// InAltScreen reports whether the mock is on the alternate screen.
func (m *MockTerminal) InAltScreen() bool {
	return m.inAltScreen
}

// EnableMouse simulates enabling mouse reporting.
func (m *MockTerminal) EnableMouse() {
	m.mouseEnabled = true
}

// DisableMouse simulates disabling mouse reporting.
func (m *MockTerminal) DisableMouse() {
	m.mouseEnabled = false
}

// MouseEnabled reports whether mouse reporting is on.
func (m *MockTerminal) MouseEnabled() bool {
	return m.mouseEnabled
}

// CellAt returns the cell at (x, y), or a zero Cell out of bounds.
func (m *MockTerminal) CellAt(x, y int) Cell {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Cell{}
	}
	return m.cells[y*m.width+x]
}

// String renders the grid as text for assertions. Continuation cells are
// skipped.
func (m *MockTerminal) String() string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			cell := m.cells[y*m.width+x]
			if cell.IsContinuation() {
				continue
			}
			if cell.Rune == 0 {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(cell.Rune)
			}
		}
		if y < m.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// MockEventReader is an EventReader for testing. Events are returned in
// order by successive calls to PollEvent.
type MockEventReader struct {
	events []Event
	index  int
}

var _ EventReader = (*MockEventReader)(nil)

// NewMockEventReader creates a MockEventReader with the given events.
func NewMockEventReader(events ...Event) *MockEventReader {
	return &MockEventReader{events: events}
}

// PollEvent returns the next queued event, ignoring the timeout.
// Returns (nil, false) when all events have been consumed.
func (m *MockEventReader) PollEvent(timeout time.Duration) (Event, bool) {
	if m.index >= len(m.events) {
		return nil, false
	}
	ev := m.events[m.index]
	m.index++
	return ev, true
}

// Close is a no-op for the mock reader.
func (m *MockEventReader) Close() error {
	return nil
}

// AddEvents adds more events to the queue.
func (m *MockEventReader) AddEvents(events ...Event) {
	m.events = append(m.events, events...)
}

// Remaining returns the number of events yet to be returned.
func (m *MockEventReader) Remaining() int {
	return len(m.events) - m.index
}
