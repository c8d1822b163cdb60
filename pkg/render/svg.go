package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/fonts"
	"github.com/matzehuels/tilewire/pkg/graph"
)

const connectionInteractionCSS = `
    .connection .line { transition: stroke-width 0.15s ease; }
    .connection:hover .line { stroke-width: calc(var(--w) * 1.5); }
    .connection .touch { cursor: pointer; pointer-events: stroke; }`

// Node appearance shared by every sink.
const (
	nodeFill      = "#FFFFFF"
	nodeStroke    = "#333333"
	nodeTextColor = "#222222"
	nodeLineWidth = 1.5
	labelSize     = 14.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background  string
	nodes       bool
	touch       bool
	interactive bool
}

// WithBackground fills the frame with a color.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithoutNodes draws connections only.
func WithoutNodes() SVGOption { return func(r *svgRenderer) { r.nodes = false } }

// WithoutTouchPaths leaves out the invisible hit-test paths.
func WithoutTouchPaths() SVGOption { return func(r *svgRenderer) { r.touch = false } }

// WithInteraction adds hover styling for connections.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// SVG renders the scene as a standalone SVG document.
func SVG(s Scene, opts ...SVGOption) []byte {
	r := svgRenderer{nodes: true, touch: true}
	for _, opt := range opts {
		opt(&r)
	}

	f := Frame(s)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.X, f.Y, f.W, f.H, f.W, f.H)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			f.X, f.Y, f.W, f.H, attr(r.background))
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", connectionInteractionCSS)
	}
	if r.nodes {
		for _, n := range s.Nodes {
			renderNode(&buf, n)
		}
	}
	for _, c := range visible(s.Connections) {
		renderConnection(&buf, c, r.touch)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderNode(buf *bytes.Buffer, n graph.Node) {
	if !n.Placed() {
		return
	}
	c := n.Rect().Center()
	transform := ""
	if n.Rotation != 0 {
		transform = fmt.Sprintf(` transform="rotate(%.2f %.2f %.2f)"`, n.Rotation, c.X, c.Y)
	}
	fmt.Fprintf(buf, `  <g id="node-%s" class="node"%s>`+"\n", attr(n.ID), transform)
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		n.X, n.Y, n.Width, n.Height, nodeFill, nodeStroke, nodeLineWidth)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		c.X, c.Y, fonts.FontFamily, labelSize, nodeTextColor, html.EscapeString(n.DisplayLabel()))
	buf.WriteString("  </g>\n")
}

func renderConnection(buf *bytes.Buffer, c connection.Geometry, touch bool) {
	classes := []string{"connection"}
	if c.Pending {
		classes = append(classes, "pending")
	}
	if c.Selected {
		classes = append(classes, "selected")
	}
	if c.Highlighted {
		classes = append(classes, "highlighted")
	}
	fmt.Fprintf(buf, `  <g id="connection-%s" class="%s" style="--w: %.2f">`+"\n",
		attr(c.ID), strings.Join(classes, " "), c.LineStroke.Width)

	fmt.Fprintf(buf, `    <path class="line" d="%s" fill="none"%s/>`+"\n", c.Line.Data(), strokeAttrs(c.LineStroke))
	for _, a := range c.Arrows {
		fmt.Fprintf(buf, `    <polygon class="arrow %s" points="%s" fill="%s" fill-opacity="%.2f"/>`+"\n",
			a.End, pointList(a.Points), attr(a.Fill), c.LineStroke.Opacity)
	}
	if touch && !c.Touch.Empty() {
		fmt.Fprintf(buf, `    <path class="touch" d="%s" fill="none"%s/>`+"\n", c.Touch.Data(), strokeAttrs(c.TouchStroke))
	}
	buf.WriteString("  </g>\n")
}

func strokeAttrs(s connection.Stroke) string {
	var b strings.Builder
	fmt.Fprintf(&b, ` stroke="%s" stroke-width="%.2f" stroke-opacity="%g"`, attr(s.Color), s.Width, s.Opacity)
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = fmt.Sprintf("%g", d*s.Width)
		}
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	if s.LineCap != "" {
		fmt.Fprintf(&b, ` stroke-linecap="%s"`, attr(s.LineCap))
	}
	return b.String()
}

func pointList(pts []geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func attr(s string) string { return html.EscapeString(s) }
