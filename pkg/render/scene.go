package render

import (
	"slices"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/geom"
	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/graph"
)

// Scene is what the sinks draw. It shares the routed layout wire format.
type Scene = graph.Layout

// Padding is the space left around the content of every rendered frame.
const Padding = 20.0

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// NewScene builds a scene from placed nodes and connection geometry and sizes
// it to the padded content frame.
func NewScene(nodes []graph.Node, conns []connection.Geometry, zoom float64) Scene {
	s := Scene{Zoom: zoom, Nodes: nodes, Connections: conns}
	f := Frame(s)
	s.Width, s.Height = f.W, f.H
	return s
}

// Frame returns the drawing area: the bounding box of nodes, lines and
// arrowheads, padded on every side. The scene's Width and Height act as a
// minimum size; the frame grows right and down to meet it.
func Frame(s Scene) geom.Rect {
	var pts []geom.Point
	for _, n := range s.Nodes {
		if !n.Placed() {
			continue
		}
		b := n.Rect().Rotated(n.Rotation)
		pts = append(pts, b.TopLeft(), b.BottomRight())
	}
	for _, c := range s.Connections {
		b := c.Bounds()
		pts = append(pts, b.TopLeft(), b.BottomRight())
	}
	f := geom.Bounds(pts).Inflate(Padding, Padding)
	f.W = max(f.W, s.Width)
	f.H = max(f.H, s.Height)
	return f
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool { return slices.Contains(Formats, format) }

// Render draws the scene in the given format. Scale only affects PNG.
func Render(s Scene, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatSVG:
		return SVG(s), nil
	case FormatPNG:
		return PNG(s, scale)
	case FormatPDF:
		return PDF(s)
	case FormatJSON:
		return JSON(s)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (valid: %v)", format, Formats)
	}
}

// JSON encodes the scene in the graph.Layout format.
func JSON(s Scene) ([]byte, error) {
	return graph.MarshalLayout(s)
}

// visible drops connections that draw nothing.
func visible(conns []connection.Geometry) []connection.Geometry {
	return slices.DeleteFunc(slices.Clone(conns), func(g connection.Geometry) bool {
		return g.Line.Empty()
	})
}
