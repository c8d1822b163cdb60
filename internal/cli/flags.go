package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilewire/pkg/pipeline"
)

// pipelineFlags are the routing and render flags shared by route, render,
// layout and inspect. Only flags set on the command line override the config.
type pipelineFlags struct {
	zoom           float64
	margin         float64
	thickness      float64
	color          string
	selectedColor  string
	highlightColor string
	selected       []string
	highlighted    []string
	autoLayout     bool
	engine         string
	rankDir        string
	noCache        bool
	refresh        bool

	// render only
	formats    string
	width      float64
	height     float64
	scale      float64
	background string
}

func (f *pipelineFlags) registerRoute(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&f.zoom, "zoom", 0, "zoom factor for touch regions (default 1)")
	fl.Float64Var(&f.margin, "margin", 0, "clearance between routed lines and tiles (default 20)")
	fl.Float64Var(&f.thickness, "thickness", 0, "default line thickness")
	fl.StringVar(&f.color, "color", "", "default line color")
	fl.StringVar(&f.selectedColor, "selected-color", "", "color of selected connections")
	fl.StringVar(&f.highlightColor, "highlight-color", "", "color of highlighted connections")
	fl.StringSliceVar(&f.selected, "select", nil, "connection ids to draw selected")
	fl.StringSliceVar(&f.highlighted, "highlight", nil, "connection ids to draw highlighted")
	fl.BoolVar(&f.autoLayout, "auto-layout", false, "place nodes without a size or position with Graphviz")
	fl.StringVar(&f.engine, "engine", "", "layout engine: dot (default), neato, circo, fdp")
	fl.StringVar(&f.rankDir, "rankdir", "", "layout direction: TB (default), LR")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

func (f *pipelineFlags) registerRender(cmd *cobra.Command) {
	f.registerRoute(cmd)
	fl := cmd.Flags()
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fl.Float64Var(&f.width, "width", 0, "minimum frame width")
	fl.Float64Var(&f.height, "height", 0, "minimum frame height")
	fl.Float64Var(&f.scale, "scale", 0, "PNG scale factor (default 2)")
	fl.StringVar(&f.background, "background", "", "background color (SVG)")
}

// options starts from the config file and applies the flags that were set.
func (c *CLI) options(cmd *cobra.Command, f *pipelineFlags) pipeline.Options {
	opts := c.Config.Options()
	opts.Logger = c.Logger
	changed := cmd.Flags().Changed

	if changed("zoom") {
		opts.Zoom = f.zoom
	}
	if changed("margin") {
		opts.Margin = f.margin
	}
	if changed("thickness") {
		opts.Thickness = f.thickness
	}
	if changed("color") {
		opts.Color = f.color
	}
	if changed("selected-color") {
		opts.SelectedColor = f.selectedColor
	}
	if changed("highlight-color") {
		opts.HighlightColor = f.highlightColor
	}
	if changed("engine") {
		opts.Layout.Engine = f.engine
	}
	if changed("rankdir") {
		opts.Layout.RankDir = f.rankDir
	}
	opts.Selected = f.selected
	opts.Highlighted = f.highlighted
	opts.AutoLayout = f.autoLayout
	opts.Refresh = f.refresh

	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("background") {
		opts.Background = f.background
	}
	return opts
}
