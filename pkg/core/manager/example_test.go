package manager_test

import (
	"fmt"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/core/manager"
	"github.com/matzehuels/tilewire/pkg/core/tile"
)

func ExampleManager() {
	m := manager.New()
	a := tile.New("a", geom.R(0, 0, 100, 100))
	b := tile.New("b", geom.R(300, 0, 100, 100))
	_ = m.AddNode(a)
	_ = m.AddNode(b)

	rec := connection.NewRecord("a", connector.Right, "b", connector.Left)
	rec.RoutingMode = connection.Routed
	c, _ := m.Add(rec)
	fmt.Println(c.Waypoints())

	// Moving a tile re-routes every connection touching it.
	_ = b.Move(0, 100)
	fmt.Println(c.Waypoints())

	// Records naming unknown nodes are ignored.
	orphan, err := m.Add(connection.NewRecord("a", connector.Top, "ghost", connector.Bottom))
	fmt.Println(orphan == nil, err, len(m.Connections()))
	// Output:
	// [(100,50) (120,50) (280,50) (300,50)]
	// [(100,50) (120,50) (200,50) (200,150) (280,150) (300,150)]
	// true <nil> 1
}
