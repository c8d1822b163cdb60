package graph

import (
	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Diagram file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default node size used by auto layout for nodes without one.
const (
	DefaultNodeWidth  = 160.0
	DefaultNodeHeight = 80.0
)

// =============================================================================
// Diagram - Node Set and Connection Records
// =============================================================================

// Diagram is the serialized form of a board: the nodes that connections
// attach to and the connection records between them.
//
// Records may name nodes that are not in the diagram. Such records are kept
// and round-tripped but never drawn.
type Diagram struct {
	Nodes       []Node              `json:"nodes" yaml:"nodes" bson:"nodes" validate:"dive"`
	Connections []connection.Record `json:"connections" yaml:"connections" bson:"connections"`
	Zoom        float64             `json:"zoom,omitempty" yaml:"zoom,omitempty" bson:"zoom,omitempty" validate:"gte=0"`
}

// Node is a rectangular element connections attach to.
//
// A node with a zero width or height is unplaced: its X and Y are ignored
// until auto layout assigns them.
type Node struct {
	ID       string  `json:"id" yaml:"id" bson:"id" validate:"required"`
	Label    string  `json:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"`
	X        float64 `json:"x" yaml:"x" bson:"x"`
	Y        float64 `json:"y" yaml:"y" bson:"y"`
	Width    float64 `json:"width" yaml:"width" bson:"width" validate:"gte=0"`
	Height   float64 `json:"height" yaml:"height" bson:"height" validate:"gte=0"`
	Rotation float64 `json:"rotation,omitempty" yaml:"rotation,omitempty" bson:"rotation,omitempty"`
	Locked   bool    `json:"locked,omitempty" yaml:"locked,omitempty" bson:"locked,omitempty"`
}

// Rect returns the node's unrotated rectangle.
func (n Node) Rect() geom.Rect { return geom.R(n.X, n.Y, n.Width, n.Height) }

// Placed reports whether the node has a size.
func (n Node) Placed() bool { return n.Width > 0 && n.Height > 0 }

// DisplayLabel returns the label, falling back to the id.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Node returns the node with the given id.
func (d Diagram) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NeedsLayout reports whether any node lacks a size or position.
func (d Diagram) NeedsLayout() bool {
	for _, n := range d.Nodes {
		if !n.Placed() {
			return true
		}
	}
	return false
}

// Bounds returns the bounding box of all placed nodes, rotation included.
func (d Diagram) Bounds() geom.Rect {
	var pts []geom.Point
	for _, n := range d.Nodes {
		if !n.Placed() {
			continue
		}
		b := n.Rect().Rotated(n.Rotation)
		pts = append(pts, b.TopLeft(), b.BottomRight())
	}
	return geom.Bounds(pts)
}

// Validate checks field ranges, id syntax, node id uniqueness and that no
// two connections join the same pair of node sides.
func (d Diagram) Validate() error {
	if err := errors.ValidateStruct(d); err != nil {
		return err
	}

	nodes := make(map[string]struct{}, len(d.Nodes))
	for _, n := range d.Nodes {
		if err := errors.ValidateID(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "node %q", n.ID)
		}
		if _, dup := nodes[n.ID]; dup {
			return errors.New(errors.ErrCodeDuplicateNode, "node %q appears more than once", n.ID)
		}
		nodes[n.ID] = struct{}{}
	}

	ids := make(map[string]struct{}, len(d.Connections))
	for i, r := range d.Connections {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := ids[r.ID]; dup {
			return errors.New(errors.ErrCodeDuplicateConnection, "connection id %q appears more than once", r.ID)
		}
		ids[r.ID] = struct{}{}
		for _, prev := range d.Connections[:i] {
			if prev.Matches(r) {
				return errors.New(errors.ErrCodeDuplicateConnection,
					"connections %q and %q join %s.%s to %s.%s",
					prev.ID, r.ID, r.FromNodeID, r.FromOrientation, r.ToNodeID, r.ToOrientation)
			}
		}
	}
	return nil
}

// =============================================================================
// Layout - Routed Output Format
// =============================================================================

// Layout is a diagram after routing: placed nodes plus the drawable geometry
// of every connection whose endpoints resolved. Width and Height are the
// frame size renderers draw into.
type Layout struct {
	Width       float64               `json:"width" bson:"width"`
	Height      float64               `json:"height" bson:"height"`
	Zoom        float64               `json:"zoom" bson:"zoom"`
	Nodes       []Node                `json:"nodes" bson:"nodes"`
	Connections []connection.Geometry `json:"connections" bson:"connections"`
}
