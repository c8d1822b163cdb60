// Package connection turns a pair of node anchors into drawable geometry.
//
// A [Connection] starts pending at one side of an origin [Node]
// ([NewPending]), follows a free point while the user drags
// ([Connection.UpdatePendingEndpoint]) and becomes a real link once
// [Connection.Complete] names the destination. From then on the nodes call
// [Connection.Refresh] whenever they move, and the connection re-routes and
// rebuilds its [Geometry].
//
// # Routing modes
//
// Routed connections are orthogonal polylines around both nodes. Bezier
// connections are a single cubic from the origin to the destination anchor:
// four waypoints give start, two controls and end; any other count collapses
// both controls onto the last point. Ends that carry an arrowhead stop short
// of the anchor by 20 units (routed) or 4.5 times the thickness (bezier) so
// the arrow's base meets the line.
//
// # Geometry
//
// [Geometry] holds the visible line, an invisible touch path of the same
// shape used for hit testing, and up to two arrowhead triangles. Selection
// recolours the line and the arrows and enlarges the arrows; highlighting
// recolours the line only and wins over selection.
//
// # Records
//
// [Record] is the persisted form. [FromRecord] builds a completed connection
// from one, and [Connection.ToRecord] goes back.
package connection
