package mosaic

import "fmt"

// Event is a unit of terminal input delivered to the router.
type Event interface {
	isEvent()
}

// KeyEvent represents a key press.
type KeyEvent struct {
	Key  Key
	Rune rune // set when Key == KeyRune
	Mod  Modifier
}

func (KeyEvent) isEvent() {}

// String returns a human-readable representation of the key event.
func (e KeyEvent) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	if e.Mod != ModNone {
		return e.Mod.String() + "+" + name
	}
	return name
}

// MouseButton identifies which button generated a mouse event.
type MouseButton uint8

const (
	// MouseNone indicates a motion event with no button held.
	MouseNone MouseButton = iota
	// MouseLeft is the primary button.
	MouseLeft
	// MouseMiddle is the middle button or wheel press.
	MouseMiddle
	// MouseRight is the secondary button.
	MouseRight
	// MouseWheelUp is a wheel scroll toward the top.
	MouseWheelUp
	// MouseWheelDown is a wheel scroll toward the bottom.
	MouseWheelDown
)

// MouseAction is the phase of a mouse event.
type MouseAction uint8

const (
	// MousePress is a button going down (or a wheel tick).
	MousePress MouseAction = iota
	// MouseRelease is a button coming up.
	MouseRelease
	// MouseDrag is motion with a button held.
	MouseDrag
	// MouseMotion is motion with no button held.
	MouseMotion
)

// MouseEvent represents a mouse press, release, drag, or motion at an
// absolute screen position.
type MouseEvent struct {
	Button MouseButton
	Action MouseAction
	X, Y   int
	Mod    Modifier

	// Clicks is the recognized click count for press events routed
	// through the gesture recognizer: 1 for single, 2 for double, 3 for
	// triple. Zero for raw events that bypassed recognition.
	Clicks int
}

func (MouseEvent) isEvent() {}

// String returns a human-readable representation of the mouse event.
func (e MouseEvent) String() string {
	return fmt.Sprintf("mouse(btn=%d action=%d x=%d y=%d clicks=%d)",
		e.Button, e.Action, e.X, e.Y, e.Clicks)
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) isEvent() {}

// PasteEvent carries bracketed-paste text as one unit, bypassing per-rune
// key dispatch.
type PasteEvent struct {
	Text string
}

func (PasteEvent) isEvent() {}
