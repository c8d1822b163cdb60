package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/graph"
)

// PDF renders the scene as a single-page vector PDF whose page is the frame,
// one canvas unit per point.
func PDF(s Scene) ([]byte, error) {
	f := Frame(s)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: f.W, Ht: f.H},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", labelSize)

	// Page coordinates start at the frame origin.
	ox, oy := -f.X, -f.Y
	for _, n := range s.Nodes {
		drawNodePDF(pdf, n, ox, oy)
	}
	for _, c := range visible(s.Connections) {
		drawConnectionPDF(pdf, c, ox, oy)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawNodePDF(pdf *gofpdf.Fpdf, n graph.Node, ox, oy float64) {
	if !n.Placed() {
		return
	}
	c := n.Rect().Center()
	cx, cy := c.X+ox, c.Y+oy

	pdf.TransformBegin()
	defer pdf.TransformEnd()
	if n.Rotation != 0 {
		// gofpdf turns counter-clockwise for positive angles.
		pdf.TransformRotate(-n.Rotation, cx, cy)
	}

	pdf.SetAlpha(1, "Normal")
	pdf.SetDashPattern(nil, 0)
	pdf.SetLineWidth(nodeLineWidth)
	pdf.SetDrawColor(rgb255(nodeStroke, "black"))
	pdf.SetFillColor(rgb255(nodeFill, "white"))
	pdf.Rect(n.X+ox, n.Y+oy, n.Width, n.Height, "FD")

	label := n.DisplayLabel()
	pdf.SetTextColor(rgb255(nodeTextColor, "black"))
	w := pdf.GetStringWidth(label)
	pdf.Text(cx-w/2, cy+labelSize/3, label)
}

func drawConnectionPDF(pdf *gofpdf.Fpdf, c connection.Geometry, ox, oy float64) {
	st := c.LineStroke

	pdf.SetAlpha(st.Opacity, "Normal")
	pdf.SetLineWidth(st.Width)
	pdf.SetDrawColor(rgb255(st.Color, "black"))
	if st.LineCap == "round" {
		pdf.SetLineCapStyle("round")
	} else {
		pdf.SetLineCapStyle("butt")
	}
	if len(st.Dash) > 0 {
		dash := make([]float64, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = d * st.Width
		}
		pdf.SetDashPattern(dash, 0)
	} else {
		pdf.SetDashPattern(nil, 0)
	}

	for _, s := range c.Line.Segments {
		switch s.Op {
		case connection.OpMove:
			pdf.MoveTo(s.Points[0].X+ox, s.Points[0].Y+oy)
		case connection.OpLine:
			pdf.LineTo(s.Points[0].X+ox, s.Points[0].Y+oy)
		case connection.OpCubic:
			pdf.CurveBezierCubicTo(
				s.Points[0].X+ox, s.Points[0].Y+oy,
				s.Points[1].X+ox, s.Points[1].Y+oy,
				s.Points[2].X+ox, s.Points[2].Y+oy)
		}
	}
	pdf.DrawPath("D")

	pdf.SetDashPattern(nil, 0)
	for _, a := range c.Arrows {
		pts := make([]gofpdf.PointType, len(a.Points))
		for i, p := range a.Points {
			pts[i] = gofpdf.PointType{X: p.X + ox, Y: p.Y + oy}
		}
		pdf.SetFillColor(rgb255(a.Fill, st.Color))
		pdf.Polygon(pts, "F")
	}
	pdf.SetAlpha(1, "Normal")
}
