package geom

import (
	"math"
	"testing"
)

func TestCubicEndpoints(t *testing.T) {
	p0, c1, c2, p3 := Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(20, 10)
	if got := Cubic(p0, c1, c2, p3, 0); got != p0 {
		t.Errorf("Cubic(t=0) = %v, want %v", got, p0)
	}
	if got := Cubic(p0, c1, c2, p3, 1); got != p3 {
		t.Errorf("Cubic(t=1) = %v, want %v", got, p3)
	}
	mid := Cubic(p0, c1, c2, p3, 0.5)
	if math.Abs(mid.X-10) > 1e-9 || math.Abs(mid.Y-5) > 1e-9 {
		t.Errorf("Cubic(t=0.5) = %v, want (10,5)", mid)
	}
}

func TestDistanceToSegment(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"perpendicular", Pt(5, 3), Pt(0, 0), Pt(10, 0), 3},
		{"past end", Pt(13, 4), Pt(0, 0), Pt(10, 0), 5},
		{"before start", Pt(-3, 0), Pt(0, 0), Pt(10, 0), 3},
		{"degenerate", Pt(3, 4), Pt(0, 0), Pt(0, 0), 5},
		{"on segment", Pt(0, 7), Pt(0, 0), Pt(0, 10), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistanceToSegment(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistanceToSegment(%v) = %g, want %g", tt.p, got, tt.want)
			}
		})
	}
}

func TestInTriangle(t *testing.T) {
	a, b, c := Pt(0, 0), Pt(10, 0), Pt(0, 10)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(2, 2), true},
		{Pt(0, 0), true},
		{Pt(5, 5), true},
		{Pt(6, 6), false},
		{Pt(-1, 2), false},
	}
	for _, tt := range tests {
		if got := InTriangle(tt.p, a, b, c); got != tt.want {
			t.Errorf("InTriangle(%v) = %v, want %v", tt.p, got, tt.want)
		}
		if got := InTriangle(tt.p, c, b, a); got != tt.want {
			t.Errorf("InTriangle(%v) reversed = %v, want %v", tt.p, got, tt.want)
		}
	}
}
