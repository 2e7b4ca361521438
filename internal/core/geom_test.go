package core

import "testing"

func TestFRectCorners(t *testing.T) {
	r := NewFRect(W(10, 10), 1, 1)

	tests := []struct {
		name     string
		got      World
		expected World
	}{
		{"top-left", r.TopLeft(), W(9.5, 10.5)},
		{"top-right", r.TopRight(), W(10.5, 10.5)},
		{"bottom-right", r.BottomRight(), W(10.5, 9.5)},
		{"bottom-left", r.BottomLeft(), W(9.5, 9.5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.expected)
			}
		})
	}
}

func TestFRectMoveByAssignment(t *testing.T) {
	tests := []struct {
		name       string
		move       func(r *FRect)
		wantCenter World
	}{
		{"center to top-left", func(r *FRect) { r.Center = r.TopLeft() }, W(9.5, 10.5)},
		{"top-left to center", func(r *FRect) { r.SetTopLeft(r.Center) }, W(10.5, 9.5)},
		{"top-right to center", func(r *FRect) { r.SetTopRight(r.Center) }, W(9.5, 9.5)},
		{"bottom-right to center", func(r *FRect) { r.SetBottomRight(r.Center) }, W(9.5, 10.5)},
		{"bottom-left to center", func(r *FRect) { r.SetBottomLeft(r.Center) }, W(10.5, 10.5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewFRect(W(10, 10), 1, 1)
			tc.move(&r)
			if r.Center != tc.wantCenter {
				t.Errorf("Center = %v, expected %v", r.Center, tc.wantCenter)
			}
		})
	}
}

func TestFRectVerticesWinding(t *testing.T) {
	r := NewFRect(W(0, 0), 2, 4)
	v := r.Vertices()

	expected := []World{W(-1, 2), W(1, 2), W(1, -2), W(-1, -2)}
	if len(v) != len(expected) {
		t.Fatalf("Vertices() returned %d points, expected %d", len(v), len(expected))
	}
	for i := range expected {
		if v[i] != expected[i] {
			t.Errorf("Vertices()[%d] = %v, expected %v", i, v[i], expected[i])
		}
	}
}

func TestFRectNegativeSizeClamps(t *testing.T) {
	r := NewFRect(W(0, 0), -3, -1)
	if r.W != 0 || r.H != 0 {
		t.Errorf("NewFRect size = (%v, %v), expected (0, 0)", r.W, r.H)
	}
}

func TestFRectOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     FRect
		expected bool
	}{
		{"overlapping", NewFRect(W(0, 0), 2, 2), NewFRect(W(1, 1), 2, 2), true},
		{"touching edge", NewFRect(W(0, 0), 2, 2), NewFRect(W(2, 0), 2, 2), false},
		{"apart", NewFRect(W(0, 0), 1, 1), NewFRect(W(5, 5), 1, 1), false},
		{"contained", NewFRect(W(0, 0), 4, 4), NewFRect(W(0.5, 0.5), 1, 1), true},
		{"half-step overlap", NewFRect(W(0.5, 0), 1, 1), NewFRect(W(1, 0), 1, 1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() not symmetric: got %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d",
				tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %v, expected 1", got)
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %v, expected 0", got)
	}
}
