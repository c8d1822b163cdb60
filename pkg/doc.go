// Package pkg provides the libraries behind tilewire, a router and renderer
// for connections between rectangular tiles.
//
// # Overview
//
// A diagram is a set of tiles (nodes with a position and a size) plus
// connection records that name a side of one tile and a side of another.
// The pkg directory is organized into these areas:
//
//  1. [core] - Domain logic: geometry, anchors, orthogonal routing,
//     connections, tiles and the connection manager
//  2. [graph] - Serialization types for diagrams and routed layouts
//  3. [layout] - Graphviz placement for tiles without a position
//  4. [render] - SVG, PNG, PDF and JSON output of routed scenes
//  5. [pipeline] - Orchestration (layout → route → render) with caching
//  6. [cache], [store] - Infrastructure (file, redis, mongo)
//  7. [server], [httputil] - The HTTP API
//  8. [observability], [errors], [buildinfo] - Ambient support
//
// # Architecture
//
// The typical data flow:
//
//	diagram (JSON/YAML)
//	         ↓
//	    [layout] package (place unplaced tiles)
//	         ↓
//	    [core/manager] package (bind records to tiles, route)
//	         ↓
//	    [render] package (scene → SVG/PNG/PDF/JSON)
//
// # Quick Start
//
//	d, _ := graph.ReadDiagramFile("board.json")
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	res, _ := runner.Execute(ctx, d, pipeline.Options{
//	    Formats:  []string{pipeline.FormatSVG},
//	    Selected: []string{"conn-1"},
//	})
//	os.WriteFile("board.svg", res.Artifacts[pipeline.FormatSVG], 0o644)
//
// Interactive hosts use the core packages directly:
//
//	m := manager.New(manager.WithZoom(1))
//	a := tile.New("a", geom.R(0, 0, 100, 80))
//	b := tile.New("b", geom.R(300, 200, 100, 80))
//	m.AddNode(a)
//	m.AddNode(b)
//	m.Add(connection.NewRecord("a", connector.Right, "b", connector.Left))
//	a.Move(20, 0) // the route follows the tile
package pkg
