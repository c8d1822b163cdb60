package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/fonts"
	"github.com/matzehuels/tilewire/pkg/graph"
)

// MaxPixels bounds the size of a PNG.
const MaxPixels = 64 << 20

// PNG rasterizes the scene. A scale of 2 produces a 2x image; zero or
// negative scales mean 1.
func PNG(s Scene, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	f := Frame(s)
	w, h := int(math.Ceil(f.W*scale)), int(math.Ceil(f.H*scale))
	if w*h > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image of %dx%d pixels is too large", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	face, err := fonts.Face(labelSize * scale)
	if err != nil {
		return nil, fmt.Errorf("load label font: %w", err)
	}
	dc.SetFontFace(face)
	dc.Scale(scale, scale)
	dc.Translate(-f.X, -f.Y)

	for _, n := range s.Nodes {
		drawNodePNG(dc, n)
	}
	for _, c := range visible(s.Connections) {
		drawConnectionPNG(dc, c)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawNodePNG(dc *gg.Context, n graph.Node) {
	if !n.Placed() {
		return
	}
	c := n.Rect().Center()
	dc.Push()
	defer dc.Pop()
	if n.Rotation != 0 {
		dc.RotateAbout(gg.Radians(n.Rotation), c.X, c.Y)
	}

	dc.DrawRoundedRectangle(n.X, n.Y, n.Width, n.Height, 4)
	dc.SetColor(mustColor(nodeFill, "white"))
	dc.FillPreserve()
	dc.SetColor(mustColor(nodeStroke, "black"))
	dc.SetLineWidth(nodeLineWidth)
	dc.Stroke()

	dc.SetColor(mustColor(nodeTextColor, "black"))
	dc.DrawStringAnchored(n.DisplayLabel(), c.X, c.Y, 0.5, 0.5)
}

func drawConnectionPNG(dc *gg.Context, c connection.Geometry) {
	st := c.LineStroke
	col := mustColor(st.Color, "black")

	dc.Push()
	defer dc.Pop()

	tracePath(dc, c.Line)
	dc.SetRGBA(col.R, col.G, col.B, st.Opacity)
	dc.SetLineWidth(st.Width)
	if st.LineCap == "round" {
		dc.SetLineCapRound()
	} else {
		dc.SetLineCapButt()
	}
	if len(st.Dash) > 0 {
		dash := make([]float64, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = d * st.Width
		}
		dc.SetDash(dash...)
	}
	dc.Stroke()

	dc.SetDash()
	for _, a := range c.Arrows {
		if len(a.Points) == 0 {
			continue
		}
		fill := mustColor(a.Fill, st.Color)
		dc.NewSubPath()
		dc.MoveTo(a.Points[0].X, a.Points[0].Y)
		for _, p := range a.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.SetRGBA(fill.R, fill.G, fill.B, st.Opacity)
		dc.Fill()
	}
}

func tracePath(dc *gg.Context, p connection.Path) {
	dc.NewSubPath()
	for _, s := range p.Segments {
		switch s.Op {
		case connection.OpMove:
			dc.MoveTo(s.Points[0].X, s.Points[0].Y)
		case connection.OpLine:
			dc.LineTo(s.Points[0].X, s.Points[0].Y)
		case connection.OpCubic:
			dc.CubicTo(s.Points[0].X, s.Points[0].Y, s.Points[1].X, s.Points[1].Y, s.Points[2].X, s.Points[2].Y)
		}
	}
}
