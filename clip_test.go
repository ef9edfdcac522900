package mosaic

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestShouldRenderAt(t *testing.T) {
	outer := NewRegion(NewRect(0, 0, 10, 10), nil)
	inner := NewRegion(NewRect(2, 2, 5, 5), outer)

	type tc struct {
		x, y int
		want bool
	}

	tests := map[string]tc{
		"inside both":           {x: 3, y: 3, want: true},
		"inside outer only":     {x: 8, y: 8, want: false},
		"outside both":          {x: 20, y: 20, want: false},
		"inner top-left corner": {x: 2, y: 2, want: true},
		"inner right edge":      {x: 7, y: 3, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := inner.ShouldRenderAt(tt.x, tt.y); got != tt.want {
				t.Errorf("ShouldRenderAt(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// A cell visible under a nested region must be visible under every
// ancestor on the chain.
func TestNestedVisibilityImpliesAncestorVisibility(t *testing.T) {
	root := NewRegion(NewRect(0, 0, 20, 20), nil)
	mid := NewRegion(NewRect(5, 5, 10, 10), root)
	leaf := NewRegion(NewRect(8, 2, 10, 10), mid)

	for y := 0; y < 25; y++ {
		for x := 0; x < 25; x++ {
			if leaf.ShouldRenderAt(x, y) {
				if !mid.ShouldRenderAt(x, y) || !root.ShouldRenderAt(x, y) {
					t.Fatalf("cell (%d, %d) visible in leaf but clipped by an ancestor", x, y)
				}
			}
		}
	}
}

func TestOverflowSkipsOneLevel(t *testing.T) {
	root := NewRegion(NewRect(0, 0, 20, 20), nil)
	pane := NewRegion(NewRect(5, 5, 5, 5), root)
	pane.Mode = Overflow

	// The pane's own rect no longer clips, but the root still does.
	if !pane.ShouldRenderAt(15, 15) {
		t.Error("overflow region should not clip its own rect")
	}
	if pane.ShouldRenderAt(25, 25) {
		t.Error("ancestors must still clip beyond an overflow region")
	}
}

func TestRegionVisible(t *testing.T) {
	root := NewRegion(NewRect(0, 0, 10, 10), nil)
	inner := NewRegion(NewRect(5, 5, 10, 10), root)

	got := inner.Visible()
	want := NewRect(5, 5, 5, 5)
	if got != want {
		t.Errorf("Visible() = %v, want %v", got, want)
	}

	disjoint := NewRegion(NewRect(50, 50, 5, 5), root)
	if v := disjoint.Visible(); !v.IsEmpty() {
		t.Errorf("Visible() of disjoint region = %v, want empty", v)
	}
}

func TestClipStringPlain(t *testing.T) {
	region := NewRegion(NewRect(0, 0, 5, 1), nil)

	start, got := region.ClipString(0, 0, "hello world")
	if start != 0 {
		t.Errorf("start = %d, want 0", start)
	}
	if !strings.HasPrefix(got, "hello") {
		t.Errorf("ClipString() = %q, want prefix %q", got, "hello")
	}
	// Trimming the tail must append a reset so attributes cannot leak.
	if !strings.HasSuffix(got, ansi.ResetStyle) {
		t.Errorf("ClipString() = %q, want reset suffix", got)
	}
}

func TestClipStringFullyVisibleUnchanged(t *testing.T) {
	region := NewRegion(NewRect(0, 0, 20, 1), nil)
	styled := "\x1b[31mred\x1b[0m text"

	start, got := region.ClipString(0, 0, styled)
	if start != 0 || got != styled {
		t.Errorf("ClipString() = (%d, %q), want (0, %q)", start, got, styled)
	}
}

func TestClipStringIdempotent(t *testing.T) {
	region := NewRegion(NewRect(0, 0, 5, 1), nil)
	inputs := []string{
		"hello world",
		"\x1b[1;32mgreen bold text\x1b[0m",
		"世界平和",
		"short",
	}

	for _, input := range inputs {
		start1, once := region.ClipString(0, 0, input)
		start2, twice := region.ClipString(start1, 0, once)
		if once != twice || start1 != start2 {
			t.Errorf("ClipString(%q) not idempotent: (%d, %q) then (%d, %q)",
				input, start1, once, start2, twice)
		}
	}
}

func TestClipStringNeverSplitsEscape(t *testing.T) {
	region := NewRegion(NewRect(0, 0, 4, 1), nil)
	styled := "\x1b[38;2;255;100;0mabcdefgh\x1b[0m"

	_, got := region.ClipString(0, 0, styled)

	// Every ESC in the output must begin a complete SGR sequence.
	for i := 0; i < len(got); i++ {
		if got[i] != 0x1b {
			continue
		}
		rest := got[i:]
		if len(rest) < 3 || rest[1] != '[' {
			t.Fatalf("truncated escape at byte %d in %q", i, got)
		}
		if !strings.ContainsRune(rest[2:], 'm') {
			t.Fatalf("unterminated SGR sequence at byte %d in %q", i, got)
		}
	}
}

func TestClipStringWideGlyphNotSplit(t *testing.T) {
	region := NewRegion(NewRect(0, 0, 3, 1), nil)

	// 世 is 2 cells wide; the second glyph straddles the right boundary
	// and must be dropped entirely, without moving the surviving head.
	start, got := region.ClipString(0, 0, "世世")
	if start != 0 {
		t.Errorf("start = %d, want 0", start)
	}
	if got != "世"+ansi.ResetStyle {
		t.Errorf("ClipString() = %q, want %q", got, "世"+ansi.ResetStyle)
	}
	if w := ansi.StringWidth(got); w > 3 {
		t.Errorf("clipped width = %d, want <= 3", w)
	}
}

func TestClipStringWideGlyphBoundaries(t *testing.T) {
	type tc struct {
		clip      Rect
		x         int
		text      string
		wantStart int
		wantText  string
	}

	tests := map[string]tc{
		// Dropping 世 at the tail leaves "a" exactly where it was.
		"right straddle keeps start": {
			clip: NewRect(0, 0, 2, 1), x: 0, text: "a世",
			wantStart: 0, wantText: "a" + ansi.ResetStyle,
		},
		// 世 covers columns 0-1 and crosses the clip edge at 1; it must
		// be dropped, leaving "ab" on its true columns 2-3.
		"left straddle drops glyph": {
			clip: NewRect(1, 0, 5, 1), x: 0, text: "世ab",
			wantStart: 2, wantText: "ab",
		},
		"both edges straddled": {
			clip: NewRect(1, 0, 2, 1), x: 0, text: "世a世",
			wantStart: 2, wantText: "a" + ansi.ResetStyle,
		},
		// A wide glyph starting exactly on the clip edge is kept whole.
		"wide glyph flush with left edge": {
			clip: NewRect(2, 0, 4, 1), x: 1, text: "a世b",
			wantStart: 2, wantText: "世b",
		},
		"window inside a single wide glyph": {
			clip: NewRect(1, 0, 1, 1), x: 0, text: "世",
			wantStart: 2, wantText: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			region := NewRegion(tt.clip, nil)
			start, got := region.ClipString(tt.x, 0, tt.text)
			if start != tt.wantStart || got != tt.wantText {
				t.Errorf("ClipString(%d, 0, %q) = (%d, %q), want (%d, %q)",
					tt.x, tt.text, start, got, tt.wantStart, tt.wantText)
			}

			// Every cell of the result must lie inside the clip rect.
			if w := ansi.StringWidth(got); w > 0 {
				if start < tt.clip.X || start+w > tt.clip.Right() {
					t.Errorf("result spans [%d, %d), clip rect is [%d, %d)",
						start, start+w, tt.clip.X, tt.clip.Right())
				}
			}

			// Reapplying with the adjusted start must change nothing.
			again, twice := region.ClipString(start, 0, got)
			if again != start || twice != got {
				t.Errorf("ClipString not stable: (%d, %q) then (%d, %q)",
					start, got, again, twice)
			}
		})
	}
}

func TestClipStringRowClipped(t *testing.T) {
	region := NewRegion(NewRect(0, 0, 10, 2), nil)

	if _, got := region.ClipString(0, 5, "hidden"); got != "" {
		t.Errorf("ClipString on clipped row = %q, want empty", got)
	}
}

func TestVisibleSpan(t *testing.T) {
	root := NewRegion(NewRect(0, 0, 10, 10), nil)
	inner := NewRegion(NewRect(3, 3, 4, 4), root)

	start, end, ok := inner.VisibleSpan(4)
	if !ok || start != 3 || end != 7 {
		t.Errorf("VisibleSpan(4) = (%d, %d, %v), want (3, 7, true)", start, end, ok)
	}

	if _, _, ok := inner.VisibleSpan(0); ok {
		t.Error("VisibleSpan(0) ok = true, want false")
	}
}

func TestGraphemeWidths(t *testing.T) {
	var clusters []string
	var total int
	GraphemeWidths("a世b", func(cluster string, width int) bool {
		clusters = append(clusters, cluster)
		total += width
		return true
	})

	if len(clusters) != 3 {
		t.Fatalf("len(clusters) = %d, want 3", len(clusters))
	}
	if total != 4 {
		t.Errorf("total width = %d, want 4", total)
	}
}
