package mosaic

import "testing"

func TestCompositeFocusPassThrough(t *testing.T) {
	leaf := NewLeaf("content")
	leaf.SetFocusable(true)
	wrapper := NewComposite(leaf)

	nodes := wrapper.FocusableNodes()
	if len(nodes) != 1 || nodes[0] != leaf {
		t.Fatalf("FocusableNodes() = %v, want the content leaf", nodes)
	}

	wrapper.SetFocused(true)
	if !leaf.IsFocused() {
		t.Error("SetFocused(true) should cascade to the content child")
	}
	if wrapper.IsFocused() {
		t.Error("wrapper IsFocused() = true, want false; focus lives on the child")
	}

	wrapper.SetFocused(false)
	if leaf.IsFocused() {
		t.Error("SetFocused(false) should cascade to the content child")
	}
}

func TestCompositeMeasureAddsChrome(t *testing.T) {
	leaf := NewLeaf("abc")
	wrapper := NewComposite(leaf)
	wrapper.SetBorder(BorderSingle)
	wrapper.SetPadding(1)

	size := wrapper.Measure(Loose(40, 40))
	// 3x1 content + 2 cells of chrome (border + padding) per edge.
	want := Size{Width: 7, Height: 5}
	if size != want {
		t.Errorf("Measure() = %v, want %v", size, want)
	}
}

func TestCompositeArrangeInsetsChild(t *testing.T) {
	leaf := NewLeaf("x")
	wrapper := NewComposite(leaf)
	wrapper.SetBorder(BorderSingle)

	wrapper.Arrange(NewRect(0, 0, 10, 5))
	want := NewRect(1, 1, 8, 3)
	if got := leaf.Bounds(); got != want {
		t.Errorf("child Bounds() = %v, want %v", got, want)
	}
}

func TestCompositeRenderBorder(t *testing.T) {
	wrapper := NewComposite(NewLeaf("hi"))
	wrapper.SetBorder(BorderSingle)
	wrapper.Arrange(NewRect(0, 0, 6, 3))

	buf := NewBuffer(6, 3)
	wrapper.Render(NewRenderContext(buf))

	want := "┌────┐\n│hi  │\n└────┘"
	if got := buf.String(); got != want {
		t.Errorf("rendered:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompositeTitleTruncated(t *testing.T) {
	wrapper := NewComposite(NewLeaf(""))
	wrapper.SetBorder(BorderSingle)
	wrapper.SetTitle("a very long title")
	wrapper.Arrange(NewRect(0, 0, 8, 3))

	buf := NewBuffer(8, 3)
	wrapper.Render(NewRenderContext(buf))

	// The title must stay inside the top border run.
	row := []rune{}
	for x := 0; x < 8; x++ {
		row = append(row, buf.Cell(x, 0).Rune)
	}
	if row[0] != '┌' || row[7] != '┐' {
		t.Errorf("corners overwritten by title: %q", string(row))
	}
}

func TestCompositeClipsChild(t *testing.T) {
	leaf := NewLeaf("overflowing content")
	wrapper := NewComposite(leaf)
	wrapper.SetBorder(BorderSingle)
	wrapper.Arrange(NewRect(0, 0, 8, 3))

	buf := NewBuffer(20, 3)
	wrapper.Render(NewRenderContext(buf))

	// Nothing from the child may land beyond the wrapper's right border.
	for x := 8; x < 20; x++ {
		if got := buf.Cell(x, 1).Rune; got != ' ' && got != 0 {
			t.Errorf("Cell(%d, 1).Rune = %q, want blank", x, got)
		}
	}
}
