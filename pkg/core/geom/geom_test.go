package geom

import (
	"math"
	"testing"
)

func TestInflate(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		dx, dy float64
		want   Rect
	}{
		{"grow", R(10, 10, 100, 50), 20, 20, R(-10, -10, 140, 90)},
		{"shrink", R(10, 10, 100, 50), -1, -1, R(11, 11, 98, 48)},
		{"zero size deflated", R(5, 5, 0, 0), -1, -1, R(6, 6, -2, -2)},
		{"asymmetric", R(0, 0, 10, 10), 1, 3, R(-1, -3, 12, 16)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Inflate(tt.dx, tt.dy); got != tt.want {
				t.Errorf("Inflate(%g, %g) = %v, want %v", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	r := R(0, 0, 100, 50)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(50, 25), true},
		{Pt(0, 0), true},
		{Pt(100, 50), true},
		{Pt(100, 0), true},
		{Pt(100.01, 25), false},
		{Pt(-0.01, 25), false},
		{Pt(50, 51), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestIntersectsWith(t *testing.T) {
	a := R(0, 0, 10, 10)
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", R(5, 5, 10, 10), true},
		{"shared edge", R(10, 0, 10, 10), true},
		{"shared corner", R(10, 10, 5, 5), true},
		{"left of", R(-20, 0, 10, 10), false},
		{"below", R(0, 10.5, 10, 10), false},
		{"contained", R(2, 2, 1, 1), true},
		{"degenerate segment box", RectFromPoints(Pt(5, -5), Pt(5, 20)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.IntersectsWith(tt.b); got != tt.want {
				t.Errorf("IntersectsWith(%v) = %v, want %v", tt.b, got, tt.want)
			}
			if got := tt.b.IntersectsWith(a); got != tt.want {
				t.Errorf("symmetric IntersectsWith(%v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestRectFromPoints(t *testing.T) {
	got := RectFromPoints(Pt(10, 2), Pt(4, 8))
	want := R(4, 2, 6, 6)
	if got != want {
		t.Errorf("RectFromPoints = %v, want %v", got, want)
	}
}

func TestCorners(t *testing.T) {
	r := R(1, 2, 3, 4)
	if r.TopLeft() != Pt(1, 2) || r.TopRight() != Pt(4, 2) ||
		r.BottomLeft() != Pt(1, 6) || r.BottomRight() != Pt(4, 6) {
		t.Errorf("unexpected corners for %v", r)
	}
	if c := r.Center(); c != Pt(2.5, 4) {
		t.Errorf("Center() = %v, want (2.5,4)", c)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Pt(0, 0), Pt(3, 4)); d != 5 {
		t.Errorf("Distance = %g, want 5", d)
	}
	if d := Distance(Pt(1, 1), Pt(1, 1)); d != 0 {
		t.Errorf("Distance of equal points = %g, want 0", d)
	}
}

func TestRotated(t *testing.T) {
	r := R(0, 0, 100, 50)
	if got := r.Rotated(0); got != r {
		t.Errorf("Rotated(0) = %v, want %v", got, r)
	}
	got := r.Rotated(90)
	want := R(25, -25, 50, 100)
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 ||
		math.Abs(got.W-want.W) > 1e-9 || math.Abs(got.H-want.H) > 1e-9 {
		t.Errorf("Rotated(90) = %v, want %v", got, want)
	}
}

func TestBounds(t *testing.T) {
	if got := Bounds(nil); got != (Rect{}) {
		t.Errorf("Bounds(nil) = %v, want zero", got)
	}
	got := Bounds([]Point{Pt(3, 4), Pt(-1, 10), Pt(7, 0)})
	if want := R(-1, 0, 8, 10); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestNaN(t *testing.T) {
	if !NaN().IsNaN() {
		t.Error("NaN().IsNaN() = false")
	}
	if Pt(0, 0).IsNaN() {
		t.Error("origin reported as NaN")
	}
}
