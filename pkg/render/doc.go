// Package render draws routed diagrams.
//
// A [Scene] holds placed nodes and the geometry of every drawn connection.
// The sinks turn it into bytes:
//
//   - [SVG]: hand-written SVG, including the invisible touch paths hosts use
//     for hit testing
//   - [PNG]: rasterized with fogleman/gg
//   - [PDF]: vector PDF with gofpdf
//   - [JSON]: the scene itself, in the graph.Layout wire format
//
// [Render] dispatches on a format name; [Formats] lists the accepted names.
//
// All sinks draw the same frame, the content bounds padded by [Padding]
// (see [Frame]). Pending connections keep their dash pattern in every sink.
// Touch paths never reach the raster and PDF sinks: they have zero opacity
// and exist only for interactive hosts.
package render
