// Package tile provides a rectangular node that connections can attach to.
//
// Tiles are the reference [connection.Node]: every geometry change refreshes
// the connections touching the tile, so routes follow the tile as it is
// dragged, resized or rotated.
package tile

import (
	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/errors"
)

// Tile is a movable rectangle on the canvas.
type Tile struct {
	connection.Touching

	id       string
	rect     geom.Rect
	rotation float64

	// Label is display text; the core never reads it.
	Label string
	// Locked tiles refuse new incoming connections.
	Locked bool
}

var (
	_ connection.Node            = (*Tile)(nil)
	_ connection.TargetValidator = (*Tile)(nil)
)

// New returns a tile with the given id and rectangle.
func New(id string, r geom.Rect) *Tile {
	return &Tile{id: id, rect: r}
}

func (t *Tile) ID() string { return t.id }

// Rect returns the unrotated rectangle.
func (t *Tile) Rect() geom.Rect { return t.rect }

// Rotation returns the rotation in degrees.
func (t *Tile) Rotation() float64 { return t.rotation }

// Bounds returns the axis-aligned box of the rotated rectangle. Anchors sit
// on this box.
func (t *Tile) Bounds() geom.Rect { return t.rect.Rotated(t.rotation) }

// Connector returns the anchor at the middle of the given side.
func (t *Tile) Connector(side connector.Orientation) (connector.Connector, error) {
	return connector.ForRect(t.Bounds(), side)
}

// AcceptsConnection refuses connections while the tile is locked and
// connections that start on the tile itself.
func (t *Tile) AcceptsConnection(originID string, _, _ connector.Orientation) bool {
	return !t.Locked && originID != t.id
}

// Move translates the tile by dx, dy.
func (t *Tile) Move(dx, dy float64) error {
	t.rect = t.rect.Translate(dx, dy)
	return t.RefreshAll()
}

// MoveTo places the tile's top-left corner at x, y.
func (t *Tile) MoveTo(x, y float64) error {
	t.rect.X, t.rect.Y = x, y
	return t.RefreshAll()
}

// Resize changes the tile's size, keeping its top-left corner.
func (t *Tile) Resize(w, h float64) error {
	if w < 0 || h < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "tile %s: size %gx%g is negative", t.id, w, h)
	}
	t.rect.W, t.rect.H = w, h
	return t.RefreshAll()
}

// Rotate sets the rotation in degrees around the tile's center.
func (t *Tile) Rotate(deg float64) error {
	t.rotation = deg
	return t.RefreshAll()
}
