package layout

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/graph"
)

func chain(ids ...string) graph.Diagram {
	var d graph.Diagram
	for i, id := range ids {
		d.Nodes = append(d.Nodes, graph.Node{ID: id})
		if i > 0 {
			d.Connections = append(d.Connections, connection.NewRecord(ids[i-1], connector.Bottom, id, connector.Top))
		}
	}
	return d
}

func TestToDOT(t *testing.T) {
	d := chain("a", "b")
	d.Nodes[0].Width, d.Nodes[0].Height = 72, 36
	// Unknown endpoint and a repeated pair are both dropped.
	d.Connections = append(d.Connections,
		connection.NewRecord("a", connector.Right, "ghost", connector.Left),
		connection.NewRecord("a", connector.Right, "b", connector.Left),
	)

	opts := DefaultOptions()
	dot := ToDOT(d, opts)

	for _, want := range []string{
		"rankdir=TB;",
		"n0 [width=1.0000, height=0.5000];",
		"n1 [width=2.2222, height=1.1111];",
		"n0 -> n1;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "->"); got != 1 {
		t.Errorf("edge count = %d, want 1", got)
	}
}

func TestParsePositions(t *testing.T) {
	out := `digraph G {
	graph [bb="0,0,160,260",
		nodesep=0.83,
		rankdir=TB
	];
	node [fixedsize=true, label="", shape=box];
	n0	[height=1.1111,
		pos="80,220",
		width=2.2222];
	n1	[height=1.1111,
		pos="80,40",
		width=2.2222];
	n0 -> n1	[pos="e,80,80.2 80,179.8 80,150 80,110 80,90.3"];
}
`
	centers, top, err := parsePositions(out)
	if err != nil {
		t.Fatalf("parsePositions: %v", err)
	}
	if top != 260 {
		t.Errorf("top = %v, want 260", top)
	}
	if len(centers) != 2 {
		t.Fatalf("len(centers) = %d, want 2", len(centers))
	}
	if c := centers[0]; c.x != 80 || c.y != 220 {
		t.Errorf("n0 = %+v, want {80 220}", c)
	}
	if c := centers[1]; c.x != 80 || c.y != 40 {
		t.Errorf("n1 = %+v, want {80 40}", c)
	}
}

func TestParsePositionsNoBoundingBox(t *testing.T) {
	if _, _, err := parsePositions("digraph G {}"); err == nil {
		t.Error("parsePositions() error = nil, want error")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o != DefaultOptions() {
		t.Errorf("defaults = %+v, want %+v", o, DefaultOptions())
	}

	bad := Options{Engine: "spring"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown engine error = %v, want INVALID_INPUT", err)
	}
	bad = Options{RankDir: "UP"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown rankdir error = %v, want INVALID_INPUT", err)
	}
}

func TestAutoPlacedDiagramUnchanged(t *testing.T) {
	d := graph.Diagram{Nodes: []graph.Node{{ID: "a", X: 5, Y: 7, Width: 10, Height: 10}}}
	got, err := Auto(context.Background(), d, Options{})
	if err != nil {
		t.Fatalf("Auto: %v", err)
	}
	if got.Nodes[0] != d.Nodes[0] {
		t.Errorf("node = %+v, want %+v", got.Nodes[0], d.Nodes[0])
	}
}

func TestAuto(t *testing.T) {
	d := chain("a", "b", "c")
	got, err := Auto(context.Background(), d, Options{})
	if err != nil {
		t.Fatalf("Auto: %v", err)
	}
	if got.NeedsLayout() {
		t.Fatal("layout left unplaced nodes")
	}
	for _, n := range got.Nodes {
		if n.Width != graph.DefaultNodeWidth || n.Height != graph.DefaultNodeHeight {
			t.Errorf("%s size = %vx%v, want default", n.ID, n.Width, n.Height)
		}
	}
	// Top to bottom in canvas space: each successor sits lower.
	for i := 1; i < len(got.Nodes); i++ {
		prev, cur := got.Nodes[i-1], got.Nodes[i]
		if cur.Y <= prev.Y+prev.Height {
			t.Errorf("%s.Y = %v, want below %s (bottom %v)", cur.ID, cur.Y, prev.ID, prev.Y+prev.Height)
		}
	}
	if d.Nodes[0].Width != 0 {
		t.Error("Auto modified its input")
	}
}

func TestAutoKeepsPlacedNodes(t *testing.T) {
	d := chain("a", "b")
	d.Nodes[0] = graph.Node{ID: "a", X: 0, Y: 0, Width: 100, Height: 50}
	got, err := Auto(context.Background(), d, Options{})
	if err != nil {
		t.Fatalf("Auto: %v", err)
	}
	if got.Nodes[0] != d.Nodes[0] {
		t.Errorf("placed node moved: %+v", got.Nodes[0])
	}
	if b := got.Nodes[1]; b.Y < 50+DefaultOptions().Gap {
		t.Errorf("b.Y = %v, want at least %v", b.Y, 50+DefaultOptions().Gap)
	}
}
