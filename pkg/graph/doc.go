// Package graph provides the serialization types for diagrams and routed
// layouts.
//
// This package defines the canonical wire format for tilewire's data, used
// for diagram files, API requests and responses, caching and storage.
//
// # Core Types
//
//   - [Diagram]: nodes plus the connection records between them
//   - [Node]: a rectangle connections attach to
//   - [Layout]: a diagram after routing, with the drawable geometry of every
//     resolved connection
//
// # Diagram Files
//
// Diagrams are JSON by default. Files ending in .yaml or .yml are read and
// written as YAML:
//
//	{
//	  "nodes": [
//	    {"id": "a", "x": 0, "y": 0, "width": 100, "height": 100},
//	    {"id": "b", "x": 300, "y": 0, "width": 100, "height": 100}
//	  ],
//	  "connections": [
//	    {"id": "c1", "from": "a", "from_side": "right", "to": "b", "to_side": "left"}
//	  ]
//	}
//
// Connection fields left out of a file take the defaults of
// connection.NewRecord: opacity 1, an arrow at the destination and bezier
// routing.
//
// Common operations:
//
//	d, _ := graph.ReadDiagramFile("board.yaml")  // File → Diagram (validated)
//	graph.WriteDiagramFile(d, "board.json")      // Diagram → File
//	data, _ := graph.MarshalDiagram(d)           // Diagram → []byte
//
// Every read validates the diagram with [Diagram.Validate]. Records naming
// nodes that are not in the diagram are accepted; they are carried through
// unchanged and simply not drawn.
//
// # Layout Serialization
//
// [Layout] is produced by the pipeline and is the JSON render format:
//
//	data, _ := graph.MarshalLayout(l)
//	l, _ := graph.ReadLayoutFile("board.layout.json")
package graph
