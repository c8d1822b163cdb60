package layout

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/graph"
	"github.com/matzehuels/tilewire/pkg/observability"
)

// Supported Graphviz engines.
const (
	EngineDot   = "dot"
	EngineNeato = "neato"
	EngineCirco = "circo"
	EngineFDP   = "fdp"
)

// Engines lists the accepted engine names.
var Engines = []string{EngineDot, EngineNeato, EngineCirco, EngineFDP}

// Options configures auto layout. Sizes and gaps are in canvas units.
type Options struct {
	Engine     string
	RankDir    string // TB or LR
	NodeWidth  float64
	NodeHeight float64
	NodeSep    float64
	RankSep    float64
	// Gap separates laid-out nodes from already placed ones.
	Gap float64
}

// DefaultOptions returns top-to-bottom dot layout with 160x80 nodes.
func DefaultOptions() Options {
	return Options{
		Engine:     EngineDot,
		RankDir:    "TB",
		NodeWidth:  graph.DefaultNodeWidth,
		NodeHeight: graph.DefaultNodeHeight,
		NodeSep:    60,
		RankSep:    80,
		Gap:        80,
	}
}

// ValidateAndSetDefaults fills zero fields from DefaultOptions and rejects
// unknown engines and rank directions.
func (o *Options) ValidateAndSetDefaults() error {
	def := DefaultOptions()
	if o.Engine == "" {
		o.Engine = def.Engine
	}
	if !slices.Contains(Engines, o.Engine) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown layout engine %q (valid: %v)", o.Engine, Engines)
	}
	switch o.RankDir {
	case "":
		o.RankDir = def.RankDir
	case "TB", "LR", "BT", "RL":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown rank direction %q", o.RankDir)
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = def.NodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = def.NodeHeight
	}
	if o.NodeSep <= 0 {
		o.NodeSep = def.NodeSep
	}
	if o.RankSep <= 0 {
		o.RankSep = def.RankSep
	}
	if o.Gap <= 0 {
		o.Gap = def.Gap
	}
	return nil
}

// Auto returns a copy of d in which every unplaced node has a size and a
// position. Placed nodes are not moved. A diagram that needs no layout is
// returned unchanged without running Graphviz.
func Auto(ctx context.Context, d graph.Diagram, opts Options) (graph.Diagram, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Diagram{}, err
	}
	if !d.NeedsLayout() {
		return d, nil
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Engine, len(d.Nodes))
	start := time.Now()

	out, err := auto(ctx, d, opts)
	hooks.OnLayoutComplete(ctx, opts.Engine, time.Since(start), err)
	return out, err
}

func auto(ctx context.Context, d graph.Diagram, opts Options) (graph.Diagram, error) {
	laidOut, err := runGraphviz(ctx, ToDOT(d, opts), opts.Engine)
	if err != nil {
		return graph.Diagram{}, err
	}
	centers, top, err := parsePositions(laidOut)
	if err != nil {
		return graph.Diagram{}, errors.Wrap(errors.ErrCodeInternal, err, "read layout")
	}

	out := d
	out.Nodes = slices.Clone(d.Nodes)

	// Offset for laid-out nodes: below whatever is already placed.
	var dx, dy float64
	if placed := d.Bounds(); placed.W > 0 || placed.H > 0 {
		dx, dy = placed.X, placed.Bottom()+opts.Gap
	}

	for i := range out.Nodes {
		n := &out.Nodes[i]
		if n.Placed() {
			continue
		}
		c, ok := centers[i]
		if !ok {
			return graph.Diagram{}, errors.New(errors.ErrCodeInternal, "layout lost node %q", n.ID)
		}
		n.Width, n.Height = opts.NodeWidth, opts.NodeHeight
		n.X = dx + c.x - n.Width/2
		n.Y = dy + (top - c.y) - n.Height/2
	}
	return out, nil
}

// runGraphviz lays out a DOT graph and returns it as DOT with pos attributes.
func runGraphviz(ctx context.Context, dot, engine string) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(engine))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return "", fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("layout: %w", err)
	}
	return buf.String(), nil
}
