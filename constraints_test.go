package mosaic

import "testing"

func TestConstrain(t *testing.T) {
	type tc struct {
		c    Constraints
		in   Size
		want Size
	}

	tests := map[string]tc{
		"inside box unchanged": {
			c:    Constraints{MinWidth: 1, MaxWidth: 10, MinHeight: 1, MaxHeight: 10},
			in:   Size{Width: 5, Height: 5},
			want: Size{Width: 5, Height: 5},
		},
		"clamped to max": {
			c:    Constraints{MaxWidth: 10, MaxHeight: 4},
			in:   Size{Width: 20, Height: 20},
			want: Size{Width: 10, Height: 4},
		},
		"clamped to min": {
			c:    Constraints{MinWidth: 8, MaxWidth: 10, MinHeight: 3, MaxHeight: 10},
			in:   Size{Width: 1, Height: 1},
			want: Size{Width: 8, Height: 3},
		},
		"tight forces exact size": {
			c:    Tight(Size{Width: 7, Height: 2}),
			in:   Size{Width: 100, Height: 0},
			want: Size{Width: 7, Height: 2},
		},
		"unbounded axis passes through": {
			c:    Unconstrained(),
			in:   Size{Width: 5000, Height: 5000},
			want: Size{Width: 5000, Height: 5000},
		},
		"inverted axis resolves to min": {
			c:    Constraints{MinWidth: 10, MaxWidth: 4, MinHeight: 0, MaxHeight: 5},
			in:   Size{Width: 7, Height: 2},
			want: Size{Width: 10, Height: 2},
		},
		"negative mins degrade to zero": {
			c:    Constraints{MinWidth: -5, MaxWidth: 10, MinHeight: -5, MaxHeight: 10},
			in:   Size{Width: 0, Height: 0},
			want: Size{Width: 0, Height: 0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.c.Constrain(tt.in)
			if got != tt.want {
				t.Errorf("Constrain(%v) = %v, want %v", tt.in, got, tt.want)
			}

			// Clamping twice must give the same answer as clamping once.
			again := tt.c.Constrain(got)
			if again != got {
				t.Errorf("Constrain not idempotent: %v then %v", got, again)
			}

			if !tt.c.IsSatisfiedBy(got) {
				t.Errorf("IsSatisfiedBy(%v) = false after Constrain", got)
			}
		})
	}
}

func TestConstraintsBoundedness(t *testing.T) {
	c := Loose(10, Unbounded)
	if !c.HasBoundedWidth() {
		t.Error("HasBoundedWidth() = false, want true")
	}
	if c.HasBoundedHeight() {
		t.Error("HasBoundedHeight() = true, want false")
	}
}

func TestShrinkBy(t *testing.T) {
	c := Constraints{MinWidth: 2, MaxWidth: 10, MinHeight: 2, MaxHeight: Unbounded}
	got := c.ShrinkBy(4, 4)

	if got.MaxWidth != 6 {
		t.Errorf("MaxWidth = %d, want 6", got.MaxWidth)
	}
	// An unbounded axis stays unbounded no matter what is reserved.
	if got.MaxHeight != Unbounded {
		t.Errorf("MaxHeight = %d, want Unbounded", got.MaxHeight)
	}
}

func TestLoosen(t *testing.T) {
	c := Tight(Size{Width: 5, Height: 5}).Loosen()
	if c.MinWidth != 0 || c.MinHeight != 0 {
		t.Errorf("Loosen() mins = (%d, %d), want (0, 0)", c.MinWidth, c.MinHeight)
	}
	if c.MaxWidth != 5 || c.MaxHeight != 5 {
		t.Errorf("Loosen() maxes = (%d, %d), want (5, 5)", c.MaxWidth, c.MaxHeight)
	}
}
