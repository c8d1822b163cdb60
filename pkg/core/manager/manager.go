package manager

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/core/route"
	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/observability"
)

// EditRequest asks the host to show the edit UI for a connection.
type EditRequest struct {
	Record connection.Record
	At     geom.Point
}

// Manager binds connection records to live nodes.
type Manager struct {
	nodes map[string]connection.Node
	conns map[string]*connection.Connection
	order []string

	style  connection.Style
	zoom   float64
	router *route.Router
	host   Host
	logger *log.Logger
	ctx    context.Context

	onEdit func(EditRequest)
}

// Option configures a Manager.
type Option func(*Manager)

// WithStyle sets the base style records fall back to.
func WithStyle(s connection.Style) Option { return func(m *Manager) { m.style = s } }

// WithZoom sets the initial zoom factor.
func WithZoom(z float64) Option {
	return func(m *Manager) {
		if z > 0 {
			m.zoom = z
		}
	}
}

// WithRouter sets the router every connection uses.
func WithRouter(r *route.Router) Option { return func(m *Manager) { m.router = r } }

// WithHost replaces the built-in GeometryHost.
func WithHost(h Host) Option { return func(m *Manager) { m.host = h } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option { return func(m *Manager) { m.logger = l } }

// WithContext sets the context passed to observability hooks.
func WithContext(ctx context.Context) Option { return func(m *Manager) { m.ctx = ctx } }

// New returns an empty manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		nodes:  make(map[string]connection.Node),
		conns:  make(map[string]*connection.Connection),
		style:  connection.DefaultStyle(),
		zoom:   1,
		router: route.New(),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if m.host == nil {
		m.host = GeometryHost{m: m}
	}
	return m
}

// =============================================================================
// Nodes
// =============================================================================

// AddNode registers a node. Ids must be unique.
func (m *Manager) AddNode(n connection.Node) error {
	id := n.ID()
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	if _, ok := m.nodes[id]; ok {
		return errors.New(errors.ErrCodeDuplicateNode, "node %q already registered", id)
	}
	m.nodes[id] = n
	return nil
}

// RemoveNode unregisters a node and removes every connection touching it.
// It reports whether the node was registered.
func (m *Manager) RemoveNode(id string) bool {
	n, ok := m.nodes[id]
	if !ok {
		return false
	}
	for _, c := range n.Connections() {
		m.Remove(c.ID())
	}
	delete(m.nodes, id)
	return true
}

// Node returns the node registered under id.
func (m *Manager) Node(id string) (connection.Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// =============================================================================
// Records
// =============================================================================

// Add binds a record. If either node is unknown the record is skipped and
// Add returns nil, nil. Errors from building the connection, such as an
// invalid side or a refusing target, are returned.
func (m *Manager) Add(rec connection.Record) (*connection.Connection, error) {
	if _, ok := m.conns[rec.ID]; ok {
		return nil, errors.New(errors.ErrCodeDuplicateConnection, "connection %q already bound", rec.ID)
	}
	from, ok := m.nodes[rec.FromNodeID]
	if !ok {
		m.skip(rec, "unknown_from_node")
		return nil, nil
	}
	to, ok := m.nodes[rec.ToNodeID]
	if !ok {
		m.skip(rec, "unknown_to_node")
		return nil, nil
	}

	start := time.Now()
	c, err := connection.FromRecord(rec, from, to, m.style,
		connection.WithRouter(m.router),
		connection.WithZoom(m.zoom),
		connection.WithEditHandler(m.raiseEdit),
	)
	if err != nil {
		m.logger.Warn("connection not built", "id", rec.ID, "err", err)
		observability.Connection().OnConnectionSkipped(m.ctx, rec.ID, string(errors.GetCode(err)))
		return nil, err
	}
	observability.Connection().OnRoute(m.ctx, c.Geometry().Mode.String(), len(c.Waypoints()), time.Since(start))
	observability.Connection().OnConnectionAdded(m.ctx, rec.ID, c.Mode().String())

	m.conns[rec.ID] = c
	m.order = append(m.order, rec.ID)
	m.logger.Debug("connection added", "id", rec.ID, "from", rec.FromNodeID, "to", rec.ToNodeID)
	return c, nil
}

func (m *Manager) skip(rec connection.Record, reason string) {
	m.logger.Debug("connection skipped", "id", rec.ID, "reason", reason, "from", rec.FromNodeID, "to", rec.ToNodeID)
	observability.Connection().OnConnectionSkipped(m.ctx, rec.ID, reason)
}

// Remove detaches and drops the connection bound to id. Unbound ids are a
// no-op.
func (m *Manager) Remove(id string) {
	c, ok := m.conns[id]
	if !ok {
		return
	}
	c.Detach()
	delete(m.conns, id)
	m.order = slices.DeleteFunc(m.order, func(x string) bool { return x == id })
	observability.Connection().OnConnectionRemoved(m.ctx, id)
	m.logger.Debug("connection removed", "id", id)
}

// Reset clears every node's touching list and drops all connections. Nodes
// stay registered. Dropped connections are deselected and reported to the
// connection hooks like single removals.
func (m *Manager) Reset() {
	for _, n := range m.nodes {
		n.ClearConnections()
	}
	hooks := observability.Connection()
	for _, id := range m.order {
		m.conns[id].SetSelected(false)
		hooks.OnConnectionRemoved(m.ctx, id)
	}
	m.logger.Debug("connections reset", "count", len(m.order))
	clear(m.conns)
	m.order = nil
}

// Update restyles the connection bound to rec.ID. A record that is not bound
// yet is added.
func (m *Manager) Update(rec connection.Record) error {
	c, ok := m.conns[rec.ID]
	if !ok {
		_, err := m.Add(rec)
		return err
	}
	if !c.ToRecord().Matches(rec) {
		// Endpoints changed: rebuild rather than restyle.
		m.Remove(rec.ID)
		_, err := m.Add(rec)
		return err
	}
	start := time.Now()
	if err := c.ApplyRecord(rec); err != nil {
		return err
	}
	observability.Connection().OnRoute(m.ctx, c.Mode().String(), len(c.Waypoints()), time.Since(start))
	return nil
}

// Sync reconciles the live set with records: connections whose record is
// gone are removed, new records are added and changed ones restyled. The
// resulting connection order follows records. The first error is returned
// after every record has been processed.
func (m *Manager) Sync(records []connection.Record) error {
	want := make(map[string]bool, len(records))
	for _, r := range records {
		want[r.ID] = true
	}
	for _, id := range slices.Clone(m.order) {
		if !want[id] {
			m.Remove(id)
		}
	}

	var first error
	for _, r := range records {
		c, ok := m.conns[r.ID]
		var err error
		switch {
		case !ok:
			_, err = m.Add(r)
		case stale(c, r):
			err = m.Update(r)
		}
		if err != nil && first == nil {
			first = err
		}
	}

	order := make([]string, 0, len(m.conns))
	for _, r := range records {
		if _, ok := m.conns[r.ID]; ok && !slices.Contains(order, r.ID) {
			order = append(order, r.ID)
		}
	}
	m.order = order
	return first
}

// stale reports whether r describes a different state than c. Records that
// carry a sync id are compared by it alone.
func stale(c *connection.Connection, r connection.Record) bool {
	cur := c.ToRecord()
	if r.SyncID != "" {
		return r.SyncID != cur.SyncID
	}
	return !cur.Matches(r) ||
		r.ConnectionType != cur.ConnectionType ||
		r.RoutingMode != cur.RoutingMode ||
		(r.Color != "" && r.Color != cur.Color) ||
		(r.Thickness > 0 && r.Thickness != cur.Thickness) ||
		(r.Opacity > 0 && r.Opacity != cur.Opacity)
}

// =============================================================================
// Queries
// =============================================================================

// Connections returns the live connections in record order.
func (m *Manager) Connections() []*connection.Connection {
	out := make([]*connection.Connection, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.conns[id])
	}
	return out
}

// Connection returns the connection bound to id.
func (m *Manager) Connection(id string) (*connection.Connection, bool) {
	c, ok := m.conns[id]
	return c, ok
}

// Records returns the records of the live connections in order.
func (m *Manager) Records() []connection.Record {
	out := make([]connection.Record, 0, len(m.order))
	for _, c := range m.Connections() {
		out = append(out, c.ToRecord())
	}
	return out
}

// Geometries returns the drawable geometry of every live connection in order.
func (m *Manager) Geometries() []connection.Geometry {
	out := make([]connection.Geometry, 0, len(m.order))
	for _, c := range m.Connections() {
		out = append(out, c.Geometry())
	}
	return out
}

// =============================================================================
// Interaction
// =============================================================================

// SetZoom rescales every connection's touch region.
func (m *Manager) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	m.zoom = z
	for _, c := range m.conns {
		c.SetZoom(z)
	}
}

// Zoom returns the current zoom factor.
func (m *Manager) Zoom() float64 { return m.zoom }

// OnEditRequested registers the single edit-request subscriber, replacing
// any previous one. Pass nil to unsubscribe.
func (m *Manager) OnEditRequested(fn func(EditRequest)) { m.onEdit = fn }

func (m *Manager) raiseEdit(c *connection.Connection, at geom.Point) {
	if m.onEdit != nil {
		m.onEdit(EditRequest{Record: c.ToRecord(), At: at})
	}
}

// Pick returns the connection primitive under p without changing any state.
func (m *Manager) Pick(p geom.Point) (Primitive, bool) {
	prim, ok := m.host.HitTest(p)
	if !ok || prim.Connection == nil {
		return Primitive{}, false
	}
	if _, bound := m.conns[prim.Connection.ID()]; !bound {
		return Primitive{}, false
	}
	return prim, true
}

// HitTest toggles the selection of the connection under p and reports
// whether there was one. With showUI set, an edit request is raised at p.
func (m *Manager) HitTest(p geom.Point, showUI bool) bool {
	prim, ok := m.Pick(p)
	if !ok {
		return false
	}
	c := prim.Connection
	selected := c.ToggleSelected()
	m.logger.Debug("connection hit", "id", c.ID(), "part", prim.Kind, "selected", selected)
	if showUI {
		c.RequestEdit(p)
	}
	return true
}
