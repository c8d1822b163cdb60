// Package geom provides the planar primitives used by the connector router.
//
// All coordinates live in the canvas's local space: X grows to the right and
// Y grows downward. A [Rect] is stored as origin plus size and is never
// normalized implicitly, so inflating by a negative amount can produce a
// rectangle with negative width or height. Callers that route around such a
// rectangle get degenerate but well-defined answers.
//
// # Rectangles
//
// [Rect.Contains] treats all four edges as inside. [Rect.IntersectsWith] is a
// closed-interval overlap test, so two rectangles that only share an edge
// intersect. [RectFromPoints] builds the normalized bounding box of a segment,
// which is what the router's visibility test compares against obstacles:
//
//	box := geom.RectFromPoints(p, q)
//	if obstacle.Inflate(-1, -1).IntersectsWith(box) {
//	    // p cannot see q
//	}
package geom
