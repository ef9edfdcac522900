package mosaic

import "testing"

func focusColumn(n int) (*Linear, []*Leaf) {
	col := NewColumn()
	leaves := make([]*Leaf, n)
	for i := range leaves {
		leaves[i] = focusableLeaf("item")
		col.Add(leaves[i], Content())
	}
	return col, leaves
}

func TestFocusRingNextWraps(t *testing.T) {
	col, leaves := focusColumn(3)
	ring := BuildFocusRing(col)

	if got := ring.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	// No focus yet: Next lands on the first member.
	if got := ring.Next(); got != leaves[0] {
		t.Fatalf("Next() from empty = %v, want first leaf", got)
	}

	want := []*Leaf{leaves[1], leaves[2], leaves[0]}
	for i, w := range want {
		if got := ring.Next(); got != w {
			t.Errorf("Next() step %d = %v, want leaf %d", i, got, i)
		}
	}
}

func TestFocusRingPrevWraps(t *testing.T) {
	col, leaves := focusColumn(3)
	ring := BuildFocusRing(col)

	if got := ring.Prev(); got != leaves[0] {
		t.Fatalf("Prev() from empty = %v, want first leaf", got)
	}
	if got := ring.Prev(); got != leaves[2] {
		t.Errorf("Prev() = %v, want last leaf", got)
	}
}

func TestFocusRingSingleFocusInvariant(t *testing.T) {
	col, leaves := focusColumn(4)
	ring := BuildFocusRing(col)

	ring.Next()
	ring.MoveFocus(leaves[2])

	focused := 0
	for _, l := range leaves {
		if l.IsFocused() {
			focused++
		}
	}
	if focused != 1 {
		t.Fatalf("%d nodes focused, want exactly 1", focused)
	}
	if !leaves[2].IsFocused() {
		t.Error("MoveFocus target is not focused")
	}
	if got := ring.FocusedIndex(); got != 2 {
		t.Errorf("FocusedIndex() = %d, want 2", got)
	}
}

func TestFocusRingMoveFocusOutsideRing(t *testing.T) {
	col, leaves := focusColumn(2)
	ring := BuildFocusRing(col)
	ring.Next()

	stranger := focusableLeaf("elsewhere")
	if got := ring.MoveFocus(stranger); got != nil {
		t.Errorf("MoveFocus(outside) = %v, want nil", got)
	}
	if !leaves[0].IsFocused() {
		t.Error("failed MoveFocus should leave existing focus alone")
	}
}

func TestFocusRingClearFocus(t *testing.T) {
	col, _ := focusColumn(2)
	ring := BuildFocusRing(col)
	ring.Next()

	ring.ClearFocus()
	if got := ring.Focused(); got != nil {
		t.Errorf("Focused() after ClearFocus = %v, want nil", got)
	}
}

// A ring rebuilt after the tree changes picks up focus state from the
// nodes themselves, so navigation continues from the right place.
func TestFocusRingSurvivesRebuild(t *testing.T) {
	col, leaves := focusColumn(2)
	ring := BuildFocusRing(col)
	ring.MoveFocus(leaves[1])

	extra := focusableLeaf("late arrival")
	col.Add(extra, Content())

	ring = BuildFocusRing(col)
	if got := ring.FocusedIndex(); got != 1 {
		t.Fatalf("FocusedIndex() after rebuild = %d, want 1", got)
	}
	if got := ring.Next(); got != extra {
		t.Errorf("Next() after rebuild = %v, want the new leaf", got)
	}
}

func TestFocusRingEmpty(t *testing.T) {
	ring := BuildFocusRing(NewColumn())
	if got := ring.Next(); got != nil {
		t.Errorf("Next() on empty ring = %v, want nil", got)
	}
	if got := ring.FocusedIndex(); got != -1 {
		t.Errorf("FocusedIndex() = %d, want -1", got)
	}
}

func TestFocusRingThroughLayerStack(t *testing.T) {
	base := focusableLeaf("base")
	modal := focusableLeaf("modal")
	stack := NewLayerStack(
		NewRow().Add(base, Fill(1)),
		NewRow().Add(modal, Fill(1)),
	)
	base.SetFocused(true)

	ring := BuildFocusRing(stack)
	if ring.Contains(base) {
		t.Error("occluded node should not be tab-reachable")
	}
	if got := ring.Next(); got != modal {
		t.Errorf("Next() = %v, want the modal leaf", got)
	}
}
