package connector

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/errors"
)

func TestForRect(t *testing.T) {
	r := geom.R(10, 20, 100, 50)
	tests := []struct {
		o    Orientation
		want geom.Point
	}{
		{Left, geom.Pt(10, 45)},
		{Top, geom.Pt(60, 20)},
		{Right, geom.Pt(110, 45)},
		{Bottom, geom.Pt(60, 70)},
	}
	for _, tt := range tests {
		c, err := ForRect(r, tt.o)
		if err != nil {
			t.Fatalf("ForRect(%s) error: %v", tt.o, err)
		}
		if c.Anchor != tt.want {
			t.Errorf("ForRect(%s).Anchor = %v, want %v", tt.o, c.Anchor, tt.want)
		}
		if c.Host() != r {
			t.Errorf("ForRect(%s).Host() = %v, want %v", tt.o, c.Host(), r)
		}
		if c.Orientation != tt.o {
			t.Errorf("ForRect(%s).Orientation = %s", tt.o, c.Orientation)
		}
	}
}

func TestForRectNone(t *testing.T) {
	_, err := ForRect(geom.R(0, 0, 10, 10), None)
	if !errors.Is(err, errors.ErrCodeInvalidOrientation) {
		t.Errorf("ForRect(None) error = %v, want INVALID_ORIENTATION", err)
	}
}

func TestOpposite(t *testing.T) {
	tests := map[Orientation]Orientation{
		Left:   Right,
		Right:  Left,
		Top:    Bottom,
		Bottom: Top,
		None:   Top,
	}
	for in, want := range tests {
		if got := in.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, want %s", in, got, want)
		}
	}
}

func TestCorners(t *testing.T) {
	r := geom.R(0, 0, 10, 20)
	tests := []struct {
		o              Orientation
		n1, n2, o1, o2 geom.Point
	}{
		{Left, r.TopLeft(), r.BottomLeft(), r.TopRight(), r.BottomRight()},
		{Top, r.TopLeft(), r.TopRight(), r.BottomLeft(), r.BottomRight()},
		{Right, r.TopRight(), r.BottomRight(), r.TopLeft(), r.BottomLeft()},
		{Bottom, r.BottomLeft(), r.BottomRight(), r.TopLeft(), r.TopRight()},
	}
	for _, tt := range tests {
		n1, n2, err := NeighborCorners(tt.o, r)
		if err != nil || n1 != tt.n1 || n2 != tt.n2 {
			t.Errorf("NeighborCorners(%s) = %v, %v, %v", tt.o, n1, n2, err)
		}
		o1, o2, err := OppositeCorners(tt.o, r)
		if err != nil || o1 != tt.o1 || o2 != tt.o2 {
			t.Errorf("OppositeCorners(%s) = %v, %v, %v", tt.o, o1, o2, err)
		}
	}

	if _, _, err := NeighborCorners(None, r); err == nil {
		t.Error("NeighborCorners(None) should fail")
	}
	if _, _, err := OppositeCorners(None, r); err == nil {
		t.Error("OppositeCorners(None) should fail")
	}
}

func TestStep(t *testing.T) {
	p := geom.Pt(5, 5)
	tests := []struct {
		o    Orientation
		want geom.Point
	}{
		{Left, geom.Pt(-15, 5)},
		{Top, geom.Pt(5, -15)},
		{Right, geom.Pt(25, 5)},
		{Bottom, geom.Pt(5, 25)},
		{None, p},
	}
	for _, tt := range tests {
		if got := tt.o.Step(p, 20); got != tt.want {
			t.Errorf("%s.Step = %v, want %v", tt.o, got, tt.want)
		}
	}
}

func TestOrientationText(t *testing.T) {
	type wrapper struct {
		Side Orientation `json:"side"`
	}

	data, err := json.Marshal(wrapper{Side: Bottom})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"side":"bottom"}` {
		t.Errorf("Marshal = %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"side":"Left"}`), &w); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if w.Side != Left {
		t.Errorf("Side = %s, want left", w.Side)
	}

	if err := json.Unmarshal([]byte(`{"side":"diagonal"}`), &w); err == nil {
		t.Error("Unmarshal of unknown side should fail")
	}
}

func TestFree(t *testing.T) {
	c := Free(geom.Pt(3, 4))
	if c.Orientation != None || c.Anchor != geom.Pt(3, 4) || c.Host().W != 0 {
		t.Errorf("Free() = %v", c)
	}
}
