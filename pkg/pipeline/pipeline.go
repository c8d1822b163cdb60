// Package pipeline turns diagrams into routed scenes and rendered artifacts.
//
// This package implements the layout → route → render pipeline shared by the
// CLI and the HTTP server, so both entry points cache and render the same
// way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: place nodes that have no size or position (optional)
//  2. Route: bind every connection record to its nodes through a
//     connection-set manager and collect the drawable geometry
//  3. Render: draw the scene in the requested formats (SVG, PNG, PDF, JSON)
//
// Laid-out diagrams and rendered artifacts are cached; routing always runs
// because it is cheap and its result is what every stage after it needs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, diagram, pipeline.Options{
//	    Formats:    []string{"svg", "png"},
//	    AutoLayout: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	d, hit, err := runner.LayoutWithCacheInfo(ctx, diagram, opts)
//	b, err := pipeline.NewBoard(ctx, d, opts)
//	scene := b.Scene(opts)
//	artifacts, err := runner.Render(ctx, scene, hash, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilewire/pkg/cache"
	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/route"
	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/graph"
	"github.com/matzehuels/tilewire/pkg/layout"
	"github.com/matzehuels/tilewire/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultZoom is the zoom factor touch regions are scaled by.
	DefaultZoom = 1.0

	// DefaultScale is the PNG scale factor (2x for high-DPI displays).
	DefaultScale = 2.0

	// MaxScale bounds PNG upscaling.
	MaxScale = 8.0
)

// Format constants for output formats.
const (
	FormatSVG  = render.FormatSVG
	FormatPNG  = render.FormatPNG
	FormatPDF  = render.FormatPDF
	FormatJSON = render.FormatJSON
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	AutoLayout bool           `json:"auto_layout,omitempty"`
	Layout     layout.Options `json:"layout,omitempty"`

	// Routing options
	Zoom           float64  `json:"zoom,omitempty"`
	Margin         float64  `json:"margin,omitempty"`
	Color          string   `json:"color,omitempty"`
	SelectedColor  string   `json:"selected_color,omitempty"`
	HighlightColor string   `json:"highlight_color,omitempty"`
	Thickness      float64  `json:"thickness,omitempty"`
	Selected       []string `json:"selected,omitempty"`
	Highlighted    []string `json:"highlighted,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Width      float64  `json:"width,omitempty"`  // minimum frame width
	Height     float64  `json:"height,omitempty"` // minimum frame height
	Scale      float64  `json:"scale,omitempty"`
	Background string   `json:"background,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the diagram after auto layout.
	Diagram graph.Diagram

	// DiagramHash is the content hash of Diagram.
	DiagramHash string

	// Scene is the routed scene every artifact was drawn from.
	Scene render.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount       int
	ConnectionCount int // records in the diagram
	DrawnCount      int // connections whose endpoints resolved
	LayoutTime      time.Duration
	RouteTime       time.Duration
	RenderTime      time.Duration
}

// SkippedCount is the number of records that were not drawn.
func (s Stats) SkippedCount() int { return s.ConnectionCount - s.DrawnCount }

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the laid-out diagram came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !render.ValidFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateColor checks an optional color value.
func ValidateColor(name, value string) error {
	if value == "" {
		return nil
	}
	if _, err := render.ParseColor(value); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Layout.ValidateAndSetDefaults(); err != nil {
		return err
	}

	if o.Zoom < 0 || o.Margin < 0 || o.Thickness < 0 || o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "zoom, margin, thickness, width and height must not be negative")
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	if o.Margin == 0 {
		o.Margin = route.DefaultMargin
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = slices.Compact(slices.Sorted(slices.Values(o.Formats)))
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %.1f exceeds maximum %.0f", o.Scale, MaxScale)
	}

	for name, v := range map[string]string{
		"color":           o.Color,
		"selected_color":  o.SelectedColor,
		"highlight_color": o.HighlightColor,
		"background":      o.Background,
	} {
		if err := ValidateColor(name, v); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Style returns the connection style with the option overrides applied.
func (o *Options) Style() connection.Style {
	s := connection.DefaultStyle()
	if o.Color != "" {
		s.Color = o.Color
	}
	if o.SelectedColor != "" {
		s.SelectedColor = o.SelectedColor
	}
	if o.HighlightColor != "" {
		s.HighlightColor = o.HighlightColor
	}
	if o.Thickness > 0 {
		s.Thickness = o.Thickness
	}
	return s
}

// DiagramKeyOpts returns cache key options for auto layout.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{
		Engine:     o.Layout.Engine,
		RankDir:    o.Layout.RankDir,
		NodeWidth:  o.Layout.NodeWidth,
		NodeHeight: o.Layout.NodeHeight,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:         format,
		Zoom:           o.Zoom,
		Margin:         o.Margin,
		Color:          o.Color,
		SelectedColor:  o.SelectedColor,
		HighlightColor: o.HighlightColor,
		Thickness:      o.Thickness,
		Selected:       slices.Sorted(slices.Values(o.Selected)),
		Highlighted:    slices.Sorted(slices.Values(o.Highlighted)),
		Background:     o.Background,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	// Frame size changes every format.
	k.Width, k.Height = o.Width, o.Height
	return k
}

// Clone returns a copy that shares no slices with o and has not been
// validated yet.
func (o Options) Clone() Options {
	o.Formats = slices.Clone(o.Formats)
	o.Selected = slices.Clone(o.Selected)
	o.Highlighted = slices.Clone(o.Highlighted)
	o.validated = false
	return o
}
