// Package layout places diagram nodes that have no size or position.
//
// [Auto] writes the diagram as a Graphviz DOT graph, one edge per connection
// record, lays it out with go-graphviz and reads the node centers back from
// the laid-out DOT. Graphviz puts the origin at the bottom left; positions
// are flipped into canvas space, where y grows downward.
//
// Nodes that already have a size keep their geometry. When a diagram mixes
// placed and unplaced nodes, the laid-out nodes are moved below the placed
// ones so the two groups do not overlap.
package layout
