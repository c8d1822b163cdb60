package connection

import (
	"slices"

	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/core/geom"
)

// Node is a rectangular thing connections attach to. Implementations own
// their geometry; the core only reads it and keeps the touching list current.
//
// Nodes must call Refresh on every connection in Connections() after their
// bounds change.
type Node interface {
	ID() string
	Bounds() geom.Rect
	Connector(side connector.Orientation) (connector.Connector, error)

	Attach(c *Connection)
	Detach(c *Connection)
	Connections() []*Connection
	ClearConnections()
}

// TargetValidator is implemented by nodes that can refuse to become the
// destination of a connection.
type TargetValidator interface {
	AcceptsConnection(originID string, originSide, targetSide connector.Orientation) bool
}

// Touching is an embeddable implementation of a node's touching list.
// The zero value is an empty list.
type Touching struct {
	conns []*Connection
}

// Attach adds c unless it is already present.
func (t *Touching) Attach(c *Connection) {
	if c == nil || slices.Contains(t.conns, c) {
		return
	}
	t.conns = append(t.conns, c)
}

// Detach removes c if present.
func (t *Touching) Detach(c *Connection) {
	t.conns = slices.DeleteFunc(t.conns, func(x *Connection) bool { return x == c })
}

// Connections returns a snapshot of the list, safe to range over while
// connections detach themselves.
func (t *Touching) Connections() []*Connection {
	return slices.Clone(t.conns)
}

// ClearConnections empties the list.
func (t *Touching) ClearConnections() {
	t.conns = nil
}

// RefreshAll refreshes every touching connection and returns the first error.
func (t *Touching) RefreshAll() error {
	var first error
	for _, c := range t.Connections() {
		if err := c.Refresh(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
