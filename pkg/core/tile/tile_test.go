package tile

import (
	"testing"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/errors"
)

func link(t *testing.T, a, b *Tile, mode connection.RoutingMode) *connection.Connection {
	t.Helper()
	rec := connection.NewRecord(a.ID(), connector.Right, b.ID(), connector.Left)
	rec.RoutingMode = mode
	c, err := connection.FromRecord(rec, a, b, connection.DefaultStyle())
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	return c
}

func TestMoveRefreshesConnections(t *testing.T) {
	a := New("a", geom.R(0, 0, 100, 100))
	b := New("b", geom.R(300, 0, 100, 100))
	c := link(t, a, b, connection.Routed)

	if err := b.Move(0, 200); err != nil {
		t.Fatalf("Move: %v", err)
	}
	pts := c.Waypoints()
	if got, want := pts[len(pts)-1], geom.Pt(300, 250); got != want {
		t.Errorf("last waypoint = %v, want %v", got, want)
	}

	if err := a.MoveTo(50, 50); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if got, want := c.Waypoints()[0], geom.Pt(150, 100); got != want {
		t.Errorf("first waypoint = %v, want %v", got, want)
	}
}

func TestResize(t *testing.T) {
	a := New("a", geom.R(0, 0, 100, 100))
	b := New("b", geom.R(300, 0, 100, 100))
	c := link(t, a, b, connection.Routed)

	if err := a.Resize(200, 40); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if got, want := c.Waypoints()[0], geom.Pt(200, 20); got != want {
		t.Errorf("first waypoint = %v, want %v", got, want)
	}

	err := a.Resize(-1, 10)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Resize(-1, 10) error = %v, want INVALID_INPUT", err)
	}
}

func TestRotateUsesBoundingBox(t *testing.T) {
	a := New("a", geom.R(0, 0, 100, 50))
	if err := a.Rotate(90); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	c, err := a.Connector(connector.Top)
	if err != nil {
		t.Fatalf("Connector: %v", err)
	}
	if got, want := c.Anchor, geom.Pt(50, -25); got != want {
		t.Errorf("Top anchor after Rotate(90) = %v, want %v", got, want)
	}
}

func TestAcceptsConnection(t *testing.T) {
	a := New("a", geom.R(0, 0, 10, 10))
	if !a.AcceptsConnection("b", connector.Left, connector.Right) {
		t.Error("unlocked tile refused connection")
	}
	if a.AcceptsConnection("a", connector.Left, connector.Right) {
		t.Error("tile accepted connection from itself")
	}
	a.Locked = true
	if a.AcceptsConnection("b", connector.Left, connector.Right) {
		t.Error("locked tile accepted connection")
	}

	b := New("b", geom.R(100, 0, 10, 10))
	pending, err := connection.NewPending(b, connector.Right, connection.DefaultStyle())
	if err != nil {
		t.Fatalf("NewPending: %v", err)
	}
	if err := pending.Complete(a, connector.Left); !errors.Is(err, errors.ErrCodeInvalidTarget) {
		t.Errorf("Complete on locked tile error = %v, want INVALID_TARGET", err)
	}
	if len(a.Connections()) != 0 || len(b.Connections()) != 0 {
		t.Error("refused connection was attached")
	}
}
