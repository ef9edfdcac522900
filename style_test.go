package mosaic

import "testing"

func TestStyleBuilders(t *testing.T) {
	s := NewStyle().Bold().Underline()

	if !s.HasAttr(AttrBold) || !s.HasAttr(AttrUnderline) {
		t.Errorf("Attrs = %b, want bold and underline set", s.Attrs)
	}
	if s.HasAttr(AttrReverse) {
		t.Errorf("Attrs = %b, reverse should not be set", s.Attrs)
	}
	if !s.Bold().Equal(s) {
		t.Error("setting an attribute twice should be idempotent")
	}
}

func TestStyleWithWithout(t *testing.T) {
	s := NewStyle().With(AttrBold | AttrBlink)

	if !s.Equal(NewStyle().Bold().Blink()) {
		t.Errorf("With(bold|blink) = %b, want same as Bold().Blink()", s.Attrs)
	}

	s = s.Without(AttrBlink)
	if s.HasAttr(AttrBlink) {
		t.Errorf("Attrs = %b, blink should be cleared", s.Attrs)
	}
	if !s.HasAttr(AttrBold) {
		t.Errorf("Attrs = %b, bold must survive clearing blink", s.Attrs)
	}
}

func TestStyleZeroValueIsDefault(t *testing.T) {
	var s Style

	if !s.Equal(NewStyle()) {
		t.Error("zero value should equal NewStyle()")
	}
	if !s.Fg.Equal(DefaultColor()) || !s.Bg.Equal(DefaultColor()) {
		t.Error("zero value colors should be the terminal defaults")
	}
}
