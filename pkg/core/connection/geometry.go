package connection

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/core/geom"
)

// Op is a path drawing operation.
type Op string

const (
	OpMove  Op = "M"
	OpLine  Op = "L"
	OpCubic Op = "C"
)

// Segment is one drawing operation. Move and Line carry one point; Cubic
// carries two control points followed by the end point.
type Segment struct {
	Op     Op           `json:"op"`
	Points []geom.Point `json:"points"`
}

// Path is a sequence of drawing operations starting with a move.
type Path struct {
	Segments []Segment `json:"segments"`
}

func polyline(pts []geom.Point) Path {
	if len(pts) == 0 {
		return Path{}
	}
	segs := make([]Segment, 0, len(pts))
	segs = append(segs, Segment{Op: OpMove, Points: []geom.Point{pts[0]}})
	for _, p := range pts[1:] {
		segs = append(segs, Segment{Op: OpLine, Points: []geom.Point{p}})
	}
	return Path{Segments: segs}
}

func cubic(start, c1, c2, end geom.Point) Path {
	return Path{Segments: []Segment{
		{Op: OpMove, Points: []geom.Point{start}},
		{Op: OpCubic, Points: []geom.Point{c1, c2, end}},
	}}
}

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool { return len(p.Segments) == 0 }

// Points returns every point of the path, control points included. Their
// bounding box contains the drawn path.
func (p Path) Points() []geom.Point {
	var out []geom.Point
	for _, s := range p.Segments {
		out = append(out, s.Points...)
	}
	return out
}

// curveSteps is the number of line pieces a cubic is flattened into.
const curveSteps = 24

// Flatten approximates the path with a polyline.
func (p Path) Flatten() []geom.Point {
	var out []geom.Point
	var cur geom.Point
	for _, s := range p.Segments {
		switch s.Op {
		case OpMove, OpLine:
			cur = s.Points[0]
			out = append(out, cur)
		case OpCubic:
			c1, c2, end := s.Points[0], s.Points[1], s.Points[2]
			for i := 1; i <= curveSteps; i++ {
				out = append(out, geom.Cubic(cur, c1, c2, end, float64(i)/curveSteps))
			}
			cur = end
		}
	}
	return out
}

// Data returns the path in SVG path-data syntax.
func (p Path) Data() string {
	var b strings.Builder
	for i, s := range p.Segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(s.Op))
		for _, pt := range s.Points {
			fmt.Fprintf(&b, " %.2f %.2f", pt.X, pt.Y)
		}
	}
	return b.String()
}

// Stroke describes how a path is drawn. Dash lengths are multiples of Width.
type Stroke struct {
	Color   string    `json:"color"`
	Width   float64   `json:"width"`
	Opacity float64   `json:"opacity"`
	Dash    []float64 `json:"dash,omitempty"`
	LineCap string    `json:"line_cap,omitempty"`
}

// End names the end of a connection an arrowhead sits on.
type End string

const (
	EndStart End = "start"
	EndEnd   End = "end"
)

// Arrow is a filled arrowhead triangle. Points[0] is the tip.
type Arrow struct {
	End    End          `json:"end"`
	Points []geom.Point `json:"points"`
	Fill   string       `json:"fill"`
}

// Geometry is everything a renderer needs to draw one connection.
type Geometry struct {
	ID          string       `json:"id"`
	Mode        RoutingMode  `json:"mode"`
	Pending     bool         `json:"pending,omitempty"`
	Selected    bool         `json:"selected,omitempty"`
	Highlighted bool         `json:"highlighted,omitempty"`
	Waypoints   []geom.Point `json:"waypoints"`
	Line        Path         `json:"line"`
	LineStroke  Stroke       `json:"line_stroke"`
	Touch       Path         `json:"touch"`
	TouchStroke Stroke       `json:"touch_stroke"`
	Arrows      []Arrow      `json:"arrows,omitempty"`
}

// Bounds returns the bounding box of the visible path and arrows.
func (g Geometry) Bounds() geom.Rect {
	pts := g.Line.Points()
	for _, a := range g.Arrows {
		pts = append(pts, a.Points...)
	}
	return geom.Bounds(pts)
}

// Hit reports whether p falls on the connection: within half the touch
// stroke of the touch path, or inside an arrowhead.
func (g Geometry) Hit(p geom.Point) bool {
	half := g.TouchStroke.Width / 2
	pts := g.Touch.Flatten()
	switch len(pts) {
	case 0:
	case 1:
		if geom.Distance(p, pts[0]) <= half {
			return true
		}
	default:
		for i := 0; i+1 < len(pts); i++ {
			if geom.DistanceToSegment(p, pts[i], pts[i+1]) <= half {
				return true
			}
		}
	}
	for _, a := range g.Arrows {
		if len(a.Points) == 3 && geom.InTriangle(p, a.Points[0], a.Points[1], a.Points[2]) {
			return true
		}
	}
	return false
}

// ArrowHead returns the triangle for an arrowhead whose tip sits on tip and
// which opens away from a node side. The triangle is thickness*5 long and
// half as wide on each side of the axis, scaled by 1.2 while selected.
// None yields no triangle.
func ArrowHead(tip geom.Point, side connector.Orientation, thickness float64, selected bool) []geom.Point {
	s := thickness * arrowRatio
	if selected {
		s *= selectedArrowScale
	}
	h := s / 2
	switch side {
	case connector.Left:
		return []geom.Point{tip, geom.Pt(tip.X-s, tip.Y-h), geom.Pt(tip.X-s, tip.Y+h)}
	case connector.Top:
		return []geom.Point{tip, geom.Pt(tip.X-h, tip.Y-s), geom.Pt(tip.X+h, tip.Y-s)}
	case connector.Right:
		return []geom.Point{tip, geom.Pt(tip.X+s, tip.Y-h), geom.Pt(tip.X+s, tip.Y+h)}
	case connector.Bottom:
		return []geom.Point{tip, geom.Pt(tip.X-h, tip.Y+s), geom.Pt(tip.X+h, tip.Y+s)}
	default:
		return nil
	}
}
