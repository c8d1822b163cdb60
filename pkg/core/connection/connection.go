package connection

import (
	"slices"

	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/core/route"
	"github.com/matzehuels/tilewire/pkg/errors"
)

const (
	// TouchWidth is the hit-region stroke width at zoom 1.
	TouchWidth = 20.0

	// TouchColor is the stroke colour of the hit region. It is always drawn
	// at zero opacity.
	TouchColor = "#2000FF"

	// routedEdge is how far a routed line stops short of an arrowed anchor.
	routedEdge = 20.0

	// bezierEdgeRatio times the thickness is how far a curve stops short of
	// an arrowed anchor.
	bezierEdgeRatio = 4.5

	arrowRatio         = 5.0
	selectedArrowScale = 1.2
)

// PendingDash is the stroke dash pattern of a connection that has no
// destination yet.
var PendingDash = []float64{1, 1}

// Style is the appearance of a connection in its three visual states.
type Style struct {
	Color          string  `json:"color" toml:"color"`
	SelectedColor  string  `json:"selected_color" toml:"selected_color"`
	HighlightColor string  `json:"highlight_color" toml:"highlight_color"`
	Thickness      float64 `json:"thickness" toml:"thickness"`
	Opacity        float64 `json:"opacity" toml:"opacity"`
}

// DefaultStyle returns the style used when a record leaves fields unset.
func DefaultStyle() Style {
	return Style{
		Color:          "#4A4A4A",
		SelectedColor:  "#0078D7",
		HighlightColor: "#FFB900",
		Thickness:      2,
		Opacity:        1,
	}
}

// EditFunc receives edit requests raised on a connection.
type EditFunc func(c *Connection, at geom.Point)

// Connection is a live link between two nodes. It keeps its origin and
// destination connectors in sync with the nodes and recomputes its geometry
// on Refresh.
//
// A Connection is not safe for concurrent use.
type Connection struct {
	id     string
	syncID string

	origin     Node
	originSide connector.Orientation
	originConn connector.Connector

	dest     Node
	destSide connector.Orientation
	destConn connector.Connector

	style   Style
	ctype   ConnectionType
	mode    RoutingMode
	zoom    float64
	lineCap string
	router  *route.Router

	pending     bool
	pendingAt   *geom.Point
	selected    bool
	highlighted bool
	refreshing  bool

	points   []geom.Point
	geometry Geometry

	onEdit EditFunc
}

// Option configures a Connection.
type Option func(*Connection)

// WithID sets the connection id. By default a fresh dash-less UUID is used.
func WithID(id string) Option { return func(c *Connection) { c.id = id } }

// WithSyncID sets the sync id reported by ToRecord.
func WithSyncID(id string) Option { return func(c *Connection) { c.syncID = id } }

// WithType sets which ends carry arrowheads. The default is ArrowTo.
func WithType(t ConnectionType) Option { return func(c *Connection) { c.ctype = t } }

// WithRoutingMode sets the routing mode used once the connection completes.
// The default is Bezier.
func WithRoutingMode(m RoutingMode) Option { return func(c *Connection) { c.mode = m } }

// WithZoom sets the initial zoom factor for the touch region.
func WithZoom(z float64) Option {
	return func(c *Connection) {
		if z > 0 {
			c.zoom = z
		}
	}
}

// WithRouter replaces the default router.
func WithRouter(r *route.Router) Option { return func(c *Connection) { c.router = r } }

// WithEditHandler registers the edit callback.
func WithEditHandler(fn EditFunc) Option { return func(c *Connection) { c.onEdit = fn } }

// NewPending starts a connection at one side of origin. Its geometry is a
// short solid stub at the origin anchor until UpdatePendingEndpoint or
// Complete is called.
func NewPending(origin Node, side connector.Orientation, style Style, opts ...Option) (*Connection, error) {
	if origin == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "origin node is nil")
	}
	c := &Connection{
		id:      newID(),
		syncID:  newID(),
		origin:  origin,
		style:   style,
		ctype:   ArrowTo,
		mode:    Bezier,
		zoom:    1,
		router:  route.New(),
		pending: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.resolveOrigin(side); err != nil {
		return nil, err
	}
	c.buildStub()
	return c, nil
}

// FromRecord builds and completes a connection from a record. Empty colour,
// zero thickness and zero opacity in the record fall back to base.
func FromRecord(rec Record, from, to Node, base Style, opts ...Option) (*Connection, error) {
	style := base
	if rec.Color != "" {
		style.Color = rec.Color
	}
	if rec.Thickness > 0 {
		style.Thickness = rec.Thickness
	}
	if rec.Opacity > 0 {
		style.Opacity = rec.Opacity
	}
	opts = append([]Option{
		WithID(rec.ID),
		WithSyncID(rec.SyncID),
		WithType(rec.ConnectionType),
		WithRoutingMode(rec.RoutingMode),
	}, opts...)

	c, err := NewPending(from, rec.FromOrientation, style, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Complete(to, rec.ToOrientation); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Connection) resolveOrigin(side connector.Orientation) error {
	conn, err := c.origin.Connector(side)
	if err != nil {
		return errors.Wrap(codeOf(err, errors.ErrCodeInvalidOrientation), err, "resolve origin %s:%s", c.origin.ID(), side)
	}
	if !conn.Orientation.Valid() {
		return errors.New(errors.ErrCodeInvalidOrientation, "origin %s resolved without a side", c.origin.ID())
	}
	c.originSide, c.originConn = side, conn
	return nil
}

func (c *Connection) resolveDest(dest Node, side connector.Orientation) (connector.Connector, error) {
	conn, err := dest.Connector(side)
	if err != nil {
		return connector.Connector{}, errors.Wrap(codeOf(err, errors.ErrCodeInvalidOrientation), err, "resolve destination %s:%s", dest.ID(), side)
	}
	if !conn.Orientation.Valid() {
		return connector.Connector{}, errors.New(errors.ErrCodeInvalidOrientation, "destination %s resolved without a side", dest.ID())
	}
	return conn, nil
}

// UpdatePendingEndpoint re-routes a pending connection to a free point and
// draws it dashed.
func (c *Connection) UpdatePendingEndpoint(p geom.Point) error {
	if !c.pending {
		return errors.New(errors.ErrCodeInvalidState, "connection %s is already complete", c.id)
	}
	c.pendingAt = &p
	c.buildPendingCurve()
	return nil
}

// Complete attaches the connection to dest and switches it to its routing
// mode. The connection is registered in both nodes' touching lists. Only a
// pending connection can be completed.
func (c *Connection) Complete(dest Node, side connector.Orientation) error {
	if !c.pending {
		return errors.New(errors.ErrCodeInvalidState, "connection %s is already complete", c.id)
	}
	if dest == nil {
		return errors.New(errors.ErrCodeInvalidInput, "destination node is nil")
	}
	if v, ok := dest.(TargetValidator); ok && !v.AcceptsConnection(c.origin.ID(), c.originSide, side) {
		return errors.New(errors.ErrCodeInvalidTarget, "node %s does not accept a connection from %s:%s on %s", dest.ID(), c.origin.ID(), c.originSide, side)
	}
	conn, err := c.resolveDest(dest, side)
	if err != nil {
		return err
	}

	c.dest, c.destSide, c.destConn = dest, side, conn
	c.pending = false
	c.pendingAt = nil
	c.build()

	c.origin.Attach(c)
	dest.Attach(c)
	return nil
}

// Refresh re-resolves both connectors from their nodes and recomputes the
// geometry. Calling it again without node changes yields identical geometry.
// A Refresh triggered from inside another Refresh of the same connection is
// ignored.
func (c *Connection) Refresh() error {
	if c.refreshing {
		return nil
	}
	c.refreshing = true
	defer func() { c.refreshing = false }()

	if err := c.resolveOrigin(c.originSide); err != nil {
		return err
	}
	if c.pending {
		if c.pendingAt != nil {
			c.buildPendingCurve()
		} else {
			c.buildStub()
		}
		return nil
	}

	conn, err := c.resolveDest(c.dest, c.destSide)
	if err != nil {
		return err
	}
	c.destConn = conn
	c.build()
	return nil
}

// ApplyRecord restyles the connection from a changed record: colour,
// thickness, opacity, arrow type and routing mode. Selection is cleared and
// the connection is redrawn.
func (c *Connection) ApplyRecord(rec Record) error {
	if rec.Color != "" {
		c.style.Color = rec.Color
	}
	if rec.Thickness > 0 {
		c.style.Thickness = rec.Thickness
	}
	if rec.Opacity > 0 {
		c.style.Opacity = rec.Opacity
	}
	if rec.SyncID != "" {
		c.syncID = rec.SyncID
	}
	c.ctype = rec.ConnectionType
	c.mode = rec.RoutingMode
	c.selected = false
	c.lineCap = "round"
	return c.Refresh()
}

// SetZoom rescales the touch region to TouchWidth*z.
func (c *Connection) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
	c.geometry.TouchStroke.Width = TouchWidth * z
}

// Detach removes the connection from both nodes' touching lists.
func (c *Connection) Detach() {
	c.origin.Detach(c)
	if c.dest != nil {
		c.dest.Detach(c)
	}
}

// SetSelected changes the selection state. Selected connections use the
// selected colour for line and arrows, and draw larger arrows.
func (c *Connection) SetSelected(v bool) {
	if c.selected == v {
		return
	}
	c.selected = v
	c.restyle()
}

// ToggleSelected flips the selection state and returns the new value.
func (c *Connection) ToggleSelected() bool {
	c.SetSelected(!c.selected)
	return c.selected
}

// SetHighlighted changes the highlight state. Highlighting only affects the
// line colour and opacity; it wins over selection for the line.
func (c *Connection) SetHighlighted(v bool) {
	if c.highlighted == v {
		return
	}
	c.highlighted = v
	c.restyle()
}

// OnEditRequested replaces the edit callback.
func (c *Connection) OnEditRequested(fn EditFunc) { c.onEdit = fn }

// RequestEdit raises an edit request at p.
func (c *Connection) RequestEdit(p geom.Point) {
	if c.onEdit != nil {
		c.onEdit(c, p)
	}
}

// ToRecord returns the record describing the connection's current state.
func (c *Connection) ToRecord() Record {
	r := Record{
		ID:              c.id,
		SyncID:          c.syncID,
		FromNodeID:      c.origin.ID(),
		FromOrientation: c.originSide,
		Color:           c.style.Color,
		Thickness:       c.style.Thickness,
		Opacity:         c.style.Opacity,
		ConnectionType:  c.ctype,
		RoutingMode:     c.mode,
	}
	if c.dest != nil {
		r.ToNodeID, r.ToOrientation = c.dest.ID(), c.destSide
	}
	return r
}

func (c *Connection) ID() string { return c.id }
func (c *Connection) Origin() Node { return c.origin }
func (c *Connection) Destination() Node { return c.dest }
func (c *Connection) OriginSide() connector.Orientation { return c.originSide }
func (c *Connection) DestinationSide() connector.Orientation { return c.destSide }
func (c *Connection) IsPending() bool { return c.pending }
func (c *Connection) IsSelected() bool { return c.selected }
func (c *Connection) IsHighlighted() bool { return c.highlighted }
func (c *Connection) Type() ConnectionType { return c.ctype }
func (c *Connection) Mode() RoutingMode { return c.mode }
func (c *Connection) Style() Style { return c.style }
func (c *Connection) Zoom() float64 { return c.zoom }

// Touches reports whether n is either end of the connection.
func (c *Connection) Touches(n Node) bool {
	return c.origin == n || (c.dest != nil && c.dest == n)
}

// Waypoints returns the route's true points, before any arrow pull-back.
func (c *Connection) Waypoints() []geom.Point { return slices.Clone(c.points) }

// Geometry returns a copy of the current drawable geometry.
func (c *Connection) Geometry() Geometry {
	g := c.geometry
	g.Waypoints = slices.Clone(g.Waypoints)
	g.Arrows = slices.Clone(g.Arrows)
	return g
}

// ============================================================================
// Geometry assembly
// ============================================================================

// buildStub draws the degenerate stub shown right after NewPending.
func (c *Connection) buildStub() {
	pts := c.router.RouteToPoint(c.originConn, c.originConn.Anchor, c.originConn.Orientation)
	c.assemble(pts, Routed)
}

func (c *Connection) buildPendingCurve() {
	pts := c.router.RouteToPoint(c.originConn, *c.pendingAt, connector.None)
	c.assemble(pts, Bezier)
}

func (c *Connection) build() {
	if c.mode == Routed {
		c.assemble(c.router.Route(c.originConn, c.destConn), Routed)
		return
	}
	c.assemble(c.router.RouteToPoint(c.originConn, c.destConn.Anchor, connector.None), Bezier)
}

// assemble turns true waypoints into line and touch paths. Ends carrying an
// arrow are pulled back along their side so the line stops at the arrow's
// base.
func (c *Connection) assemble(pts []geom.Point, mode RoutingMode) {
	c.points = slices.Clone(pts)

	edge := routedEdge
	if mode != Routed {
		edge = c.style.Thickness * bezierEdgeRatio
	}
	line := slices.Clone(pts)
	if len(line) > 0 {
		if c.ctype.HasArrowTo() && !c.pending {
			last := len(line) - 1
			line[last] = c.destConn.Orientation.Step(line[last], edge)
		}
		if c.ctype.HasArrowFrom() {
			line[0] = c.originConn.Orientation.Step(line[0], edge)
		}
	}

	var path Path
	switch {
	case mode == Routed:
		path = polyline(line)
	case len(line) >= 4:
		path = cubic(line[0], line[1], line[2], line[len(line)-1])
	case len(line) > 0:
		last := line[len(line)-1]
		path = cubic(line[0], last, last, last)
	}

	c.geometry = Geometry{
		ID:        c.id,
		Mode:      mode,
		Pending:   c.pending,
		Waypoints: slices.Clone(pts),
		Line:      path,
		Touch:     path,
	}
	c.restyle()
}

// restyle recomputes strokes and arrowheads from the current state without
// re-routing.
func (c *Connection) restyle() {
	g := &c.geometry
	g.Selected, g.Highlighted = c.selected, c.highlighted

	color, opacity := c.style.Color, c.style.Opacity
	switch {
	case c.highlighted:
		color, opacity = c.style.HighlightColor, 1
	case c.selected:
		color = c.style.SelectedColor
	}
	g.LineStroke = Stroke{
		Color:   color,
		Width:   c.style.Thickness,
		Opacity: opacity,
		LineCap: c.lineCap,
	}
	if c.pending && g.Mode == Bezier {
		g.LineStroke.Dash = slices.Clone(PendingDash)
	}
	g.TouchStroke = Stroke{
		Color:   TouchColor,
		Width:   TouchWidth * c.zoom,
		Opacity: 0,
	}

	g.Arrows = nil
	if c.pending {
		return
	}
	fill := c.style.Color
	if c.selected {
		fill = c.style.SelectedColor
	}
	if c.ctype.HasArrowFrom() {
		if pts := ArrowHead(c.originConn.Anchor, c.originConn.Orientation, c.style.Thickness, c.selected); pts != nil {
			g.Arrows = append(g.Arrows, Arrow{End: EndStart, Points: pts, Fill: fill})
		}
	}
	if c.ctype.HasArrowTo() {
		if pts := ArrowHead(c.destConn.Anchor, c.destConn.Orientation, c.style.Thickness, c.selected); pts != nil {
			g.Arrows = append(g.Arrows, Arrow{End: EndEnd, Points: pts, Fill: fill})
		}
	}
}

func codeOf(err error, fallback errors.Code) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return fallback
}
