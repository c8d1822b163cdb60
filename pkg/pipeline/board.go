package pipeline

import (
	"context"
	"slices"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/manager"
	"github.com/matzehuels/tilewire/pkg/core/route"
	"github.com/matzehuels/tilewire/pkg/core/tile"
	"github.com/matzehuels/tilewire/pkg/graph"
	"github.com/matzehuels/tilewire/pkg/render"
)

// Board is a diagram bound to live tiles and connections.
type Board struct {
	Diagram graph.Diagram
	Manager *manager.Manager
	Tiles   map[string]*tile.Tile
}

// NewBoard builds tiles for every placed node and binds the diagram's
// connection records to them. Unplaced nodes get no tile, so records that
// touch them are skipped. Records the manager refuses are logged and
// skipped too; only invalid options are returned as errors.
func NewBoard(ctx context.Context, d graph.Diagram, opts Options) (*Board, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	m := manager.New(
		manager.WithStyle(opts.Style()),
		manager.WithZoom(opts.Zoom),
		manager.WithRouter(&route.Router{Margin: opts.Margin}),
		manager.WithLogger(logger),
		manager.WithContext(ctx),
	)
	b := &Board{Diagram: d, Manager: m, Tiles: make(map[string]*tile.Tile, len(d.Nodes))}

	for _, n := range d.Nodes {
		if !n.Placed() {
			logger.Debug("node has no size, not placed", "node", n.ID)
			continue
		}
		t := tile.New(n.ID, n.Rect())
		t.Label = n.Label
		t.Locked = n.Locked
		if err := t.Rotate(n.Rotation); err != nil {
			return nil, err
		}
		if err := m.AddNode(t); err != nil {
			return nil, err
		}
		b.Tiles[n.ID] = t
	}

	for _, rec := range d.Connections {
		if _, err := m.Add(rec); err != nil {
			logger.Warn("connection skipped", "id", rec.ID, "err", err)
		}
	}

	b.Select(opts.Selected, opts.Highlighted)
	return b, nil
}

// Select marks the given connections selected and highlighted. Unknown ids
// are ignored.
func (b *Board) Select(selected, highlighted []string) {
	for _, c := range b.Manager.Connections() {
		c.SetSelected(slices.Contains(selected, c.ID()))
		c.SetHighlighted(slices.Contains(highlighted, c.ID()))
	}
}

// Sync replaces the board's records, keeping connections whose records did
// not change.
func (b *Board) Sync(records []connection.Record) error {
	b.Diagram.Connections = records
	return b.Manager.Sync(records)
}

// Snapshot returns the board's diagram with every tile's current geometry
// written back to its node.
func (b *Board) Snapshot() graph.Diagram {
	d := b.Diagram
	d.Nodes = slices.Clone(b.Diagram.Nodes)
	for i, n := range d.Nodes {
		t, ok := b.Tiles[n.ID]
		if !ok {
			continue
		}
		r := t.Rect()
		d.Nodes[i].X, d.Nodes[i].Y, d.Nodes[i].Width, d.Nodes[i].Height = r.X, r.Y, r.W, r.H
		d.Nodes[i].Rotation = t.Rotation()
	}
	return d
}

// Scene returns the drawable state of the board.
func (b *Board) Scene(opts Options) render.Scene {
	nodes := make([]graph.Node, 0, len(b.Tiles))
	for _, n := range b.Snapshot().Nodes {
		if _, ok := b.Tiles[n.ID]; ok {
			nodes = append(nodes, n)
		}
	}
	s := render.NewScene(nodes, b.Manager.Geometries(), b.Manager.Zoom())
	s.Width = max(s.Width, opts.Width)
	s.Height = max(s.Height, opts.Height)
	return s
}
