package route_test

import (
	"fmt"

	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/core/route"
)

func ExampleRouter_Route() {
	// Two boxes offset diagonally, facing each other.
	src, _ := connector.ForRect(geom.R(0, 0, 100, 100), connector.Right)
	dst, _ := connector.ForRect(geom.R(300, 300, 100, 100), connector.Left)

	fmt.Println(route.New().Route(src, dst))
	// Output:
	// [(100,50) (120,50) (200,50) (200,350) (280,350) (300,350)]
}

func ExampleRouter_RouteToPoint() {
	// A free point behind the source: the route wraps over the top.
	src, _ := connector.ForRect(geom.R(0, 0, 100, 100), connector.Right)

	fmt.Println(route.New().RouteToPoint(src, geom.Pt(-200, 50), connector.None))
	// Output:
	// [(101,50) (101,-1) (-1,-1) (-100.5,-1) (-100.5,50) (-200,50)]
}

func ExampleVisible() {
	box := []geom.Rect{geom.R(0, 0, 100, 100)}

	fmt.Println(route.Visible(geom.Pt(100, -50), geom.Pt(100, 150), box))
	fmt.Println(route.Visible(geom.Pt(-50, 50), geom.Pt(150, 50), box))
	// Output:
	// true
	// false
}
