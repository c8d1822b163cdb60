// Package connector models the anchor points where connections attach to
// rectangular nodes.
//
// A [Connector] is a snapshot: the host rectangle, the anchor on its border
// and the side ([Orientation]) the anchor sits on. Nodes hand out fresh
// connectors whenever they move, and the router never mutates them.
package connector

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/errors"
)

// Orientation is the side of a node an anchor sits on.
type Orientation int

const (
	None Orientation = iota
	Left
	Top
	Right
	Bottom
)

// Sides lists the four real orientations in clockwise order starting left.
var Sides = []Orientation{Left, Top, Right, Bottom}

var orientationNames = map[Orientation]string{
	None:   "none",
	Left:   "left",
	Top:    "top",
	Right:  "right",
	Bottom: "bottom",
}

func (o Orientation) String() string {
	if s, ok := orientationNames[o]; ok {
		return s
	}
	return fmt.Sprintf("orientation(%d)", int(o))
}

// ParseOrientation parses a side name. Matching is case-insensitive and the
// empty string parses as None.
func ParseOrientation(s string) (Orientation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	for o, name := range orientationNames {
		if name == s {
			return o, nil
		}
	}
	return None, errors.New(errors.ErrCodeInvalidOrientation, "unknown orientation %q (must be left, top, right or bottom)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if _, ok := orientationNames[o]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidOrientation, "cannot marshal %s", o)
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Valid reports whether o names one of the four sides.
func (o Orientation) Valid() bool { return o >= Left && o <= Bottom }

// IsHorizontal reports whether an anchor on side o leaves its node along the X axis.
func (o Orientation) IsHorizontal() bool { return o == Left || o == Right }

// IsVertical reports whether an anchor on side o leaves its node along the Y axis.
func (o Orientation) IsVertical() bool { return o == Top || o == Bottom }

// Opposite returns the facing side. None maps to Top.
func (o Orientation) Opposite() Orientation {
	switch o {
	case Left:
		return Right
	case Top:
		return Bottom
	case Right:
		return Left
	case Bottom:
		return Top
	default:
		return Top
	}
}

// Step moves p by d units away from a node along side o. None leaves p unchanged.
func (o Orientation) Step(p geom.Point, d float64) geom.Point {
	switch o {
	case Left:
		return geom.Pt(p.X-d, p.Y)
	case Top:
		return geom.Pt(p.X, p.Y-d)
	case Right:
		return geom.Pt(p.X+d, p.Y)
	case Bottom:
		return geom.Pt(p.X, p.Y+d)
	default:
		return p
	}
}

// Connector is an anchor on the border of a host rectangle.
type Connector struct {
	HostOrigin  geom.Point
	HostSize    geom.Size
	Anchor      geom.Point
	Orientation Orientation
}

// Host returns the rectangle the connector belongs to.
func (c Connector) Host() geom.Rect { return geom.RectAt(c.HostOrigin, c.HostSize) }

func (c Connector) String() string {
	return fmt.Sprintf("%s@%v on %v", c.Orientation, c.Anchor, c.Host())
}

// ForRect places an anchor at the midpoint of side o of r.
func ForRect(r geom.Rect, o Orientation) (Connector, error) {
	c := Connector{HostOrigin: r.Origin(), HostSize: r.Size(), Orientation: o}
	switch o {
	case Left:
		c.Anchor = geom.Pt(r.Left(), r.Y+r.H/2)
	case Top:
		c.Anchor = geom.Pt(r.X+r.W/2, r.Top())
	case Right:
		c.Anchor = geom.Pt(r.Right(), r.Y+r.H/2)
	case Bottom:
		c.Anchor = geom.Pt(r.X+r.W/2, r.Bottom())
	default:
		return Connector{}, errors.New(errors.ErrCodeInvalidOrientation, "no anchor for side %s", o)
	}
	return c, nil
}

// Free returns a connector for a bare point with no host and no side.
func Free(p geom.Point) Connector {
	return Connector{HostOrigin: p, Anchor: p, Orientation: None}
}

// NeighborCorners returns the two corners of r adjacent to side o, in
// top-to-bottom or left-to-right order.
func NeighborCorners(o Orientation, r geom.Rect) (geom.Point, geom.Point, error) {
	switch o {
	case Left:
		return r.TopLeft(), r.BottomLeft(), nil
	case Top:
		return r.TopLeft(), r.TopRight(), nil
	case Right:
		return r.TopRight(), r.BottomRight(), nil
	case Bottom:
		return r.BottomLeft(), r.BottomRight(), nil
	}
	return geom.Point{}, geom.Point{}, errors.New(errors.ErrCodeInvalidOrientation, "no neighbor corners for side %s", o)
}

// OppositeCorners returns the two corners of r on the side facing o, paired
// with NeighborCorners so that the first results share an edge.
func OppositeCorners(o Orientation, r geom.Rect) (geom.Point, geom.Point, error) {
	switch o {
	case Left:
		return r.TopRight(), r.BottomRight(), nil
	case Top:
		return r.BottomLeft(), r.BottomRight(), nil
	case Right:
		return r.TopLeft(), r.BottomLeft(), nil
	case Bottom:
		return r.TopLeft(), r.TopRight(), nil
	}
	return geom.Point{}, geom.Point{}, errors.New(errors.ErrCodeInvalidOrientation, "no opposite corners for side %s", o)
}
