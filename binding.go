package mosaic

import (
	"context"
	"strings"
)

// KeyStep is one key in a binding's sequence.
type KeyStep struct {
	Key     Key
	Rune    rune // set when Key == KeyRune
	AnyRune bool // match any printable character
	Mod     Modifier
}

// Matches reports whether the step matches a key event. Modifiers must
// match exactly; a step declared without modifiers only fires on an
// unmodified key.
func (s KeyStep) Matches(ev KeyEvent) bool {
	if s.Mod != ev.Mod {
		return false
	}
	if s.AnyRune {
		return ev.Key == KeyRune
	}
	if s.Key == KeyRune {
		return ev.Key == KeyRune && ev.Rune == s.Rune
	}
	return ev.Key == s.Key
}

// String renders the step for help text, e.g. "Ctrl+X" or "g".
func (s KeyStep) String() string {
	var name string
	switch {
	case s.AnyRune:
		name = "<any>"
	case s.Key == KeyRune:
		name = string(s.Rune)
	default:
		name = s.Key.String()
	}
	if s.Mod != ModNone {
		return s.Mod.String() + "+" + name
	}
	return name
}

// Step builds a KeyStep for a named key.
func Step(key Key) KeyStep {
	return KeyStep{Key: key}
}

// RuneStep builds a KeyStep for a printable character.
func RuneStep(r rune) KeyStep {
	return KeyStep{Key: KeyRune, Rune: r}
}

// MousePattern identifies which mouse press events match a binding.
type MousePattern struct {
	Button MouseButton
	// Clicks is the required click count: 1 single, 2 double, 3 triple.
	// Zero matches any count.
	Clicks int
}

// Matches reports whether the pattern matches a recognized press event.
func (p MousePattern) Matches(ev MouseEvent) bool {
	if ev.Action != MousePress || ev.Button != p.Button {
		return false
	}
	return p.Clicks == 0 || p.Clicks == ev.Clicks
}

// Binding associates a key sequence or mouse pattern with an action.
// Exactly one of Steps and Mouse is set.
type Binding struct {
	Steps []KeyStep
	Mouse *MousePattern

	// Do runs on the event loop when the binding fires.
	Do func(ev Event)

	// DoAsync, when set instead of Do, is submitted to the app's task
	// runner with its lifecycle context.
	DoAsync func(ctx context.Context)

	// Description is shown in help surfaces.
	Description string
}

// BindingTable is an ordered list of bindings. Dispatch walks the table
// in registration order and fires the first binding whose pattern matches;
// later bindings for the same pattern never see the event.
type BindingTable struct {
	bindings []Binding
}

// Add appends a binding.
func (t *BindingTable) Add(b Binding) *BindingTable {
	t.bindings = append(t.bindings, b)
	return t
}

// OnKey appends a single-step binding for a named key.
func (t *BindingTable) OnKey(key Key, do func(Event)) *BindingTable {
	return t.Add(Binding{Steps: []KeyStep{Step(key)}, Do: do})
}

// OnRune appends a single-step binding for a printable character.
func (t *BindingTable) OnRune(r rune, do func(Event)) *BindingTable {
	return t.Add(Binding{Steps: []KeyStep{RuneStep(r)}, Do: do})
}

// OnSequence appends a multi-step binding, e.g. g then g.
func (t *BindingTable) OnSequence(do func(Event), steps ...KeyStep) *BindingTable {
	return t.Add(Binding{Steps: steps, Do: do})
}

// OnClick appends a mouse binding. clicks follows MousePattern.Clicks.
func (t *BindingTable) OnClick(button MouseButton, clicks int, do func(Event)) *BindingTable {
	return t.Add(Binding{Mouse: &MousePattern{Button: button, Clicks: clicks}, Do: do})
}

// Bindings returns the table contents in registration order.
func (t *BindingTable) Bindings() []Binding {
	return t.bindings
}

// Len returns the number of registered bindings.
func (t *BindingTable) Len() int {
	return len(t.bindings)
}

// matchResult distinguishes the three outcomes of feeding a key into a
// sequence match.
type matchResult uint8

const (
	matchNone matchResult = iota
	matchPartial
	matchComplete
)

// matchKey checks a key event against the table given the steps already
// consumed by an in-flight sequence. Returns the first complete binding,
// or partial when at least one binding still needs more steps.
func (t *BindingTable) matchKey(prefix []KeyEvent, ev KeyEvent) (Binding, matchResult) {
	partial := false
	for _, b := range t.bindings {
		if len(b.Steps) == 0 {
			continue
		}
		if !sequenceMatches(b.Steps, prefix, ev) {
			continue
		}
		if len(b.Steps) == len(prefix)+1 {
			return b, matchComplete
		}
		partial = true
	}
	if partial {
		return Binding{}, matchPartial
	}
	return Binding{}, matchNone
}

// matchMouse returns the first binding whose mouse pattern matches.
func (t *BindingTable) matchMouse(ev MouseEvent) (Binding, bool) {
	for _, b := range t.bindings {
		if b.Mouse != nil && b.Mouse.Matches(ev) {
			return b, true
		}
	}
	return Binding{}, false
}

// sequenceMatches reports whether steps begins with prefix followed by ev.
func sequenceMatches(steps []KeyStep, prefix []KeyEvent, ev KeyEvent) bool {
	if len(steps) < len(prefix)+1 {
		return false
	}
	for i, p := range prefix {
		if !steps[i].Matches(p) {
			return false
		}
	}
	return steps[len(prefix)].Matches(ev)
}

// DescribeSteps renders a binding's sequence for help text.
func DescribeSteps(steps []KeyStep) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
