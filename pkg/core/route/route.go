package route

import (
	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/core/geom"
)

const (
	// DefaultMargin is the clearance kept between a routed line and the
	// nodes it connects.
	DefaultMargin = 20.0

	// pointMargin is the clearance used when routing to a free point.
	pointMargin = 1.0

	// maxHops bounds the corner-hop loop: one source step, one sink step.
	maxHops = 2
)

// Router computes waypoint lists. The zero value uses DefaultMargin.
type Router struct {
	Margin float64
}

// New returns a Router with the default margin.
func New() *Router {
	return &Router{Margin: DefaultMargin}
}

func (r *Router) margin() float64 {
	if r == nil || r.Margin == 0 {
		return DefaultMargin
	}
	return r.Margin
}

// Route returns the waypoints from source to sink. The first point is the
// source anchor and the last is the sink anchor.
func (r *Router) Route(source, sink connector.Connector) []geom.Point {
	m := r.margin()
	rectSource := source.Host().Inflate(m, m)
	rectSink := sink.Host().Inflate(m, m)

	start := offsetPoint(source, rectSource)
	end := offsetPoint(sink, rectSink)

	points := []geom.Point{start}
	if rectSink.Contains(start) || rectSource.Contains(end) ||
		!source.Orientation.Valid() || !sink.Orientation.Valid() {
		points = append(points, end)
	} else {
		points = hop(points, source, sink, rectSource, rectSink, end)
	}

	points = Simplify(points, []geom.Rect{rectSource, rectSink}, source.Orientation, sink.Orientation)

	out := make([]geom.Point, 0, len(points)+2)
	out = append(out, source.Anchor)
	out = append(out, points...)
	return append(out, sink.Anchor)
}

// RouteToPoint returns the waypoints from source to a free point p, avoiding
// only the source node. The final approach is straightened towards
// preferred, or towards the side facing the source when preferred is None.
// The result starts at the source's offset point, not at its anchor.
func (r *Router) RouteToPoint(source connector.Connector, p geom.Point, preferred connector.Orientation) []geom.Point {
	rectSource := source.Host().Inflate(pointMargin, pointMargin)
	obstacles := []geom.Rect{rectSource}
	start := offsetPoint(source, rectSource)

	points := []geom.Point{start}
	switch {
	case rectSource.Contains(p), !source.Orientation.Valid():
		points = append(points, p)
	case Visible(start, p, obstacles):
		points = append(points, p)
	default:
		n1, n2, _ := connector.NeighborCorners(source.Orientation, rectSource)
		first := geom.Distance(n1, p) <= geom.Distance(n2, p)
		n := n2
		if first {
			n = n1
		}
		points = append(points, n)
		if !Visible(n, p, obstacles) {
			o1, o2, _ := connector.OppositeCorners(source.Orientation, rectSource)
			if first {
				points = append(points, o1)
			} else {
				points = append(points, o2)
			}
		}
		points = append(points, p)
	}

	if preferred == connector.None {
		preferred = source.Orientation.Opposite()
	}
	return Simplify(points, obstacles, source.Orientation, preferred)
}

// hop runs the greedy corner search between two valid connectors and returns
// points extended up to and including end.
func hop(points []geom.Point, source, sink connector.Connector, rectSource, rectSink geom.Rect, end geom.Point) []geom.Point {
	both := []geom.Rect{rectSource, rectSink}
	start := points[0]
	cur := start

	for i := 0; i < maxHops; i++ {
		if Visible(cur, end, both) {
			return append(points, end)
		}

		if c, first, ok := nearestVisibleSinkNeighbor(cur, end, sink.Orientation, rectSource, rectSink); ok {
			points = append(points, c)
			if rectSource.Contains(c) {
				o1, o2, _ := connector.OppositeCorners(sink.Orientation, rectSink)
				if first {
					points = append(points, o1)
				} else {
					points = append(points, o2)
				}
			}
			return append(points, end)
		}

		if cur == start {
			n, first := nearestSourceNeighbor(source.Orientation, end, rectSource, rectSink)
			points = append(points, n)
			cur = n

			only := []geom.Rect{rectSource}
			if !rectVisible(cur, rectSink, only) {
				o1, o2, _ := connector.OppositeCorners(source.Orientation, rectSource)
				if !first {
					o1, o2 = o2, o1
				}
				points = append(points, o1)
				cur = o1
				if !rectVisible(cur, rectSink, only) {
					points = append(points, o2)
					cur = o2
				}
			}
			continue
		}

		return append(approachSink(points, cur, end, sink.Orientation, rectSource, rectSink), end)
	}

	return append(points, end)
}

// approachSink walks around the sink rectangle from cur: first to one of the
// far-side corners, then to the sink's neighbor corner on the same edge.
func approachSink(points []geom.Point, cur, end geom.Point, side connector.Orientation, rectSource, rectSink geom.Rect) []geom.Point {
	both := []geom.Rect{rectSource, rectSink}
	s1, s2, _ := connector.NeighborCorners(side, rectSink)
	n1, n2, _ := connector.OppositeCorners(side, rectSink)

	via := func(first bool) []geom.Point {
		if first {
			points = append(points, n1)
			if rectSource.Contains(s1) {
				return append(points, n2, s2)
			}
			return append(points, s1)
		}
		points = append(points, n2)
		if rectSource.Contains(s2) {
			return append(points, n1, s1)
		}
		return append(points, s2)
	}

	v1 := Visible(cur, n1, both)
	v2 := Visible(cur, n2, both)
	switch {
	case v1 && v2:
		if rectSource.Contains(n1) {
			return via(false)
		}
		if rectSource.Contains(n2) {
			return via(true)
		}
		return via(geom.Distance(n1, end) <= geom.Distance(n2, end))
	case v1:
		return via(true)
	default:
		return via(false)
	}
}

// nearestVisibleSinkNeighbor picks the sink neighbor corner to hop to from
// cur. A candidate inside the source rectangle yields to the other one;
// otherwise the corner closer to end wins. first reports whether the first
// neighbor corner was chosen.
func nearestVisibleSinkNeighbor(cur, end geom.Point, side connector.Orientation, rectSource, rectSink geom.Rect) (c geom.Point, first, ok bool) {
	both := []geom.Rect{rectSource, rectSink}
	s1, s2, err := connector.NeighborCorners(side, rectSink)
	if err != nil {
		return geom.NaN(), false, false
	}

	v1 := Visible(cur, s1, both)
	v2 := Visible(cur, s2, both)
	switch {
	case v1 && v2:
		if rectSource.Contains(s1) {
			return s2, false, true
		}
		if rectSource.Contains(s2) {
			return s1, true, true
		}
		if geom.Distance(s1, end) <= geom.Distance(s2, end) {
			return s1, true, true
		}
		return s2, false, true
	case v1:
		return s1, true, true
	case v2:
		return s2, false, true
	}
	return geom.NaN(), false, false
}

// nearestSourceNeighbor picks the source neighbor corner to step to first.
// A corner inside the sink rectangle yields to the other one; otherwise the
// corner closer to end wins, ties going to the first corner.
func nearestSourceNeighbor(side connector.Orientation, end geom.Point, rectSource, rectSink geom.Rect) (geom.Point, bool) {
	n1, n2, _ := connector.NeighborCorners(side, rectSource)
	if rectSink.Contains(n1) {
		return n2, false
	}
	if rectSink.Contains(n2) {
		return n1, true
	}
	if geom.Distance(n1, end) <= geom.Distance(n2, end) {
		return n1, true
	}
	return n2, false
}

// offsetPoint projects the connector's anchor onto the edge of rect on the
// connector's side. A connector without a side keeps its anchor.
func offsetPoint(c connector.Connector, rect geom.Rect) geom.Point {
	switch c.Orientation {
	case connector.Left:
		return geom.Pt(rect.Left(), c.Anchor.Y)
	case connector.Top:
		return geom.Pt(c.Anchor.X, rect.Top())
	case connector.Right:
		return geom.Pt(rect.Right(), c.Anchor.Y)
	case connector.Bottom:
		return geom.Pt(c.Anchor.X, rect.Bottom())
	default:
		return c.Anchor
	}
}
