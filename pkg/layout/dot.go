package layout

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/matzehuels/tilewire/pkg/graph"
)

// pointsPerInch is Graphviz's unit for node sizes; positions are in points.
const pointsPerInch = 72.0

// ToDOT converts a diagram to Graphviz DOT. Nodes are named n0, n1, ... in
// diagram order so that arbitrary ids survive the round trip. Labels are left
// out because every node has a fixed size. Records whose endpoints are not both in the diagram are
// skipped, as are repeated node pairs.
func ToDOT(d graph.Diagram, opts Options) string {
	index := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		index[n.ID] = i
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.RankDir)
	fmt.Fprintf(&buf, "  ranksep=%.2f;\n", opts.RankSep/pointsPerInch)
	fmt.Fprintf(&buf, "  nodesep=%.2f;\n", opts.NodeSep/pointsPerInch)
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	buf.WriteString("\n")

	for i, n := range d.Nodes {
		w, h := nodeSize(n, opts)
		fmt.Fprintf(&buf, "  n%d [width=%.4f, height=%.4f];\n", i, w/pointsPerInch, h/pointsPerInch)
	}

	buf.WriteString("\n")
	seen := make(map[[2]int]bool)
	for _, r := range d.Connections {
		from, ok1 := index[r.FromNodeID]
		to, ok2 := index[r.ToNodeID]
		if !ok1 || !ok2 || from == to || seen[[2]int{from, to}] {
			continue
		}
		seen[[2]int{from, to}] = true
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", from, to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeSize(n graph.Node, opts Options) (float64, float64) {
	if n.Placed() {
		return n.Width, n.Height
	}
	return opts.NodeWidth, opts.NodeHeight
}

var (
	stmtRe = regexp.MustCompile(`(?m)^\s*n(\d+)\s*\[([^\]]*)\]`)
	posRe  = regexp.MustCompile(`\bpos="?([-0-9.e+]+),([-0-9.e+]+)"?`)
	bbRe   = regexp.MustCompile(`\bbb="?([-0-9.e+]+),([-0-9.e+]+),([-0-9.e+]+),([-0-9.e+]+)"?`)
)

// center is a node center in Graphviz coordinates.
type center struct{ x, y float64 }

// parsePositions extracts node centers and the bounding box height from
// laid-out DOT. Only statements that start with a node name are node
// statements; edge statements start with "nA -> nB".
func parsePositions(dot string) (map[int]center, float64, error) {
	m := bbRe.FindStringSubmatch(dot)
	if m == nil {
		return nil, 0, fmt.Errorf("layout output has no bounding box")
	}
	top, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return nil, 0, fmt.Errorf("parse bb: %w", err)
	}

	out := make(map[int]center)
	for _, stmt := range stmtRe.FindAllStringSubmatch(dot, -1) {
		p := posRe.FindStringSubmatch(stmt[2])
		if p == nil {
			continue
		}
		i, _ := strconv.Atoi(stmt[1])
		x, err1 := strconv.ParseFloat(p[1], 64)
		y, err2 := strconv.ParseFloat(p[2], 64)
		if err1 != nil || err2 != nil {
			return nil, 0, fmt.Errorf("parse pos of n%d: %q", i, p[0])
		}
		out[i] = center{x: x, y: y}
	}
	return out, top, nil
}
