package manager

import (
	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/geom"
)

// PrimitiveKind names the part of a connection that was hit.
type PrimitiveKind int

const (
	PrimitiveLine PrimitiveKind = iota
	PrimitiveArrow
)

func (k PrimitiveKind) String() string {
	if k == PrimitiveArrow {
		return "arrow"
	}
	return "line"
}

// Primitive is a drawable produced by the core. Connection is nil for
// primitives the host drew itself.
type Primitive struct {
	Kind       PrimitiveKind
	Connection *connection.Connection
}

// Host finds the topmost primitive at a point.
type Host interface {
	HitTest(p geom.Point) (Primitive, bool)
}

// GeometryHost hit-tests the manager's own connections. Connections added
// later are on top.
type GeometryHost struct {
	m *Manager
}

var _ Host = GeometryHost{}

// HitTest implements Host.
func (h GeometryHost) HitTest(p geom.Point) (Primitive, bool) {
	conns := h.m.Connections()
	for i := len(conns) - 1; i >= 0; i-- {
		c := conns[i]
		g := c.Geometry()
		for _, a := range g.Arrows {
			if geom.InTriangle(p, a.Points[0], a.Points[1], a.Points[2]) {
				return Primitive{Kind: PrimitiveArrow, Connection: c}, true
			}
		}
		if g.Hit(p) {
			return Primitive{Kind: PrimitiveLine, Connection: c}, true
		}
	}
	return Primitive{}, false
}
