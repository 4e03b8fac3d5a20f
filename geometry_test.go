package framecore

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(10, 10), true},
		{Pt(15, 25), true},
		{Pt(30, 30), false},
		{Pt(9, 15), false},
		{Pt(15, 31), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if !r.Intersects(NewRect(5, 5, 10, 10)) {
		t.Error("overlapping rects should intersect")
	}
	if r.Intersects(NewRect(20, 20, 5, 5)) {
		t.Error("disjoint rects should not intersect")
	}
}

func TestRectTranslate(t *testing.T) {
	r := NewRect(1, 2, 3, 4).Translate(Pt(10, 20))
	want := NewRect(11, 22, 3, 4)
	if r != want {
		t.Errorf("Translate = %v, want %v", r, want)
	}
}

func TestRectUnion(t *testing.T) {
	got := NewRect(0, 0, 10, 10).Union(NewRect(5, 5, 20, 20))
	want := NewRect(0, 0, 25, 25)
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
}

func TestColorIsOpaque(t *testing.T) {
	if !RGB(1, 0, 0).IsOpaque() {
		t.Error("RGB color should be opaque")
	}
	if RGBA(1, 0, 0, 0.5).IsOpaque() {
		t.Error("half-transparent color should not be opaque")
	}
}

func TestEpochNext(t *testing.T) {
	if got := Epoch(3).Next(); got != 4 {
		t.Errorf("Next = %d, want 4", got)
	}
}
