// Package route computes orthogonal waypoint lists between two connectors.
//
// The router only ever reasons about two obstacles: the source node and the
// sink node, each inflated by [Router.Margin]. It offsets both anchors onto
// the edge of their inflated rectangles, hops greedily across at most a few
// rectangle corners until the sink side is reachable, then runs [Simplify] to
// drop redundant corners and straighten the first diagonal segment.
//
// # Visibility
//
// Two points see each other when the bounding box of the segment between them
// misses every obstacle shrunk by one unit. This is a box test, not a line
// clip: a diagonal segment whose box overlaps a corner of an obstacle is
// considered blocked even if the segment itself passes clear.
//
// # Usage
//
//	src, _ := connector.ForRect(geom.R(0, 0, 100, 100), connector.Right)
//	dst, _ := connector.ForRect(geom.R(300, 300, 100, 100), connector.Left)
//	pts := route.New().Route(src, dst)
//	// pts[0] == src.Anchor, pts[len(pts)-1] == dst.Anchor
//
// The router never fails. Degenerate input (zero-size hosts, coincident
// anchors, a side of None) still yields at least the two anchors.
package route
