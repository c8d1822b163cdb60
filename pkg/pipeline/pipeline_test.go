package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tilewire/pkg/cache"
	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/graph"
)

func record(id, from string, fromSide connector.Orientation, to string, toSide connector.Orientation) connection.Record {
	r := connection.NewRecord(from, fromSide, to, toSide)
	r.ID = id
	r.SyncID = ""
	return r
}

// testDiagram has two placed nodes, one unplaced node and three records:
// a drawable one, one that touches the unplaced node and a self connection.
func testDiagram() graph.Diagram {
	return graph.Diagram{
		Nodes: []graph.Node{
			{ID: "a", Label: "A", X: 0, Y: 0, Width: 100, Height: 100},
			{ID: "b", Label: "B", X: 300, Y: 300, Width: 100, Height: 100},
			{ID: "c", Label: "C"},
		},
		Connections: []connection.Record{
			record("ab", "a", connector.Right, "b", connector.Left),
			record("ac", "a", connector.Bottom, "c", connector.Top),
			record("aa", "a", connector.Top, "a", connector.Left),
		},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil {
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
		}
	}

	assert.NoError(t, ValidateFormats(nil))
	assert.Error(t, ValidateFormats([]string{"svg", "gif"}))
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Formats: []string{"png", "svg", "png"}}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, DefaultZoom, opts.Zoom)
	assert.Equal(t, 20.0, opts.Margin)
	assert.Equal(t, DefaultScale, opts.Scale)
	assert.Equal(t, []string{"png", "svg"}, opts.Formats)
	assert.Equal(t, "dot", opts.Layout.Engine)
	assert.NotNil(t, opts.Logger)

	// Idempotent.
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, []string{"png", "svg"}, opts.Formats)

	empty := Options{}
	require.NoError(t, empty.ValidateAndSetDefaults())
	assert.Equal(t, []string{FormatSVG}, empty.Formats)
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative zoom", Options{Zoom: -1}, errors.ErrCodeInvalidInput},
		{"negative margin", Options{Margin: -5}, errors.ErrCodeInvalidInput},
		{"scale too large", Options{Scale: 100}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad color", Options{Color: "not-a-color"}, errors.ErrCodeInvalidInput},
		{"bad background", Options{Background: "#12"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "code = %v, want %v", errors.GetCode(err), tt.code)
		})
	}
}

func TestStyle(t *testing.T) {
	opts := Options{Color: "#112233", Thickness: 5}
	s := opts.Style()
	def := connection.DefaultStyle()

	assert.Equal(t, "#112233", s.Color)
	assert.Equal(t, 5.0, s.Thickness)
	assert.Equal(t, def.SelectedColor, s.SelectedColor)
	assert.Equal(t, def.HighlightColor, s.HighlightColor)
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Selected: []string{"b", "a"}, Scale: 3}
	require.NoError(t, opts.ValidateAndSetDefaults())

	svg := opts.ArtifactKeyOpts(FormatSVG)
	png := opts.ArtifactKeyOpts(FormatPNG)

	assert.Zero(t, svg.Scale, "scale only changes PNG output")
	assert.Equal(t, 3.0, png.Scale)
	assert.Equal(t, []string{"a", "b"}, svg.Selected)
	assert.Equal(t, []string{"b", "a"}, opts.Selected, "options must not be reordered")

	keyer := cache.NewDefaultKeyer()
	assert.NotEqual(t, keyer.ArtifactKey("h", svg), keyer.ArtifactKey("h", png))
}

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(context.Background(), testDiagram(), Options{})
	require.NoError(t, err)

	assert.Len(t, b.Tiles, 2, "unplaced node gets no tile")
	conns := b.Manager.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, "ab", conns[0].ID())
	assert.Len(t, b.Tiles["a"].Connections(), 1)
	assert.Len(t, b.Tiles["b"].Connections(), 1)
}

func TestNewBoardLockedNode(t *testing.T) {
	d := testDiagram()
	d.Nodes[1].Locked = true

	b, err := NewBoard(context.Background(), d, Options{})
	require.NoError(t, err)
	assert.Empty(t, b.Manager.Connections())
}

func TestBoardSelect(t *testing.T) {
	b, err := NewBoard(context.Background(), testDiagram(), Options{
		Selected:    []string{"ab", "missing"},
		Highlighted: []string{"ab"},
	})
	require.NoError(t, err)

	c, ok := b.Manager.Connection("ab")
	require.True(t, ok)
	assert.True(t, c.IsSelected())
	assert.True(t, c.IsHighlighted())

	b.Select(nil, nil)
	assert.False(t, c.IsSelected())
	assert.False(t, c.IsHighlighted())
}

func TestBoardSync(t *testing.T) {
	b, err := NewBoard(context.Background(), testDiagram(), Options{})
	require.NoError(t, err)

	ba := record("ba", "b", connector.Top, "a", connector.Top)
	require.NoError(t, b.Sync([]connection.Record{ba}))

	conns := b.Manager.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, "ba", conns[0].ID())
	assert.Equal(t, []connection.Record{ba}, b.Diagram.Connections)
}

func TestBoardScene(t *testing.T) {
	b, err := NewBoard(context.Background(), testDiagram(), Options{})
	require.NoError(t, err)

	require.NoError(t, b.Tiles["b"].Move(50, 0))
	s := b.Scene(Options{Width: 2000, Height: 1000})

	require.Len(t, s.Nodes, 2)
	assert.Equal(t, 350.0, s.Nodes[1].X, "scene follows the moved tile")
	require.Len(t, s.Connections, 1)
	assert.Equal(t, "ab", s.Connections[0].ID)
	assert.Equal(t, 2000.0, s.Width)
	assert.Equal(t, 1000.0, s.Height)
}

func TestBoardSnapshot(t *testing.T) {
	d := testDiagram()
	b, err := NewBoard(context.Background(), d, Options{})
	require.NoError(t, err)

	require.NoError(t, b.Tiles["a"].MoveTo(10, 20))
	snap := b.Snapshot()

	require.Len(t, snap.Nodes, 3)
	assert.Equal(t, 10.0, snap.Nodes[0].X)
	assert.Equal(t, 20.0, snap.Nodes[0].Y)
	assert.Equal(t, 0.0, d.Nodes[0].X, "input diagram is untouched")
	assert.False(t, snap.Nodes[2].Placed(), "unplaced nodes stay unplaced")
	assert.Len(t, snap.Connections, 3, "skipped records are kept")
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), testDiagram(), Options{
		Formats: []string{FormatSVG, FormatJSON},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Stats.NodeCount)
	assert.Equal(t, 3, res.Stats.ConnectionCount)
	assert.Equal(t, 1, res.Stats.DrawnCount)
	assert.Equal(t, 2, res.Stats.SkippedCount())
	assert.NotEmpty(t, res.DiagramHash)
	assert.Contains(t, string(res.Artifacts[FormatSVG]), `id="connection-ab"`)

	scene, err := graph.UnmarshalLayout(res.Artifacts[FormatJSON])
	require.NoError(t, err)
	require.Len(t, scene.Connections, 1)
	assert.Equal(t, res.Scene.Connections[0].Waypoints, scene.Connections[0].Waypoints)
}

func TestExecuteRenderCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatPNG}}

	first, err := r.Execute(ctx, testDiagram(), opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.RenderHit)

	second, err := r.Execute(ctx, testDiagram(), opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Equal(t, first.Artifacts, second.Artifacts)

	// Different selection, different artifacts.
	opts.Selected = []string{"ab"}
	third, err := r.Execute(ctx, testDiagram(), opts)
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.RenderHit)

	opts.Refresh = true
	fourth, err := r.Execute(ctx, testDiagram(), opts)
	require.NoError(t, err)
	assert.False(t, fourth.CacheInfo.RenderHit)
}

func TestExecuteAutoLayout(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	d := testDiagram()
	opts := Options{AutoLayout: true, Formats: []string{FormatJSON}}

	first, err := r.Execute(ctx, d, opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.LayoutHit)
	assert.False(t, first.Diagram.NeedsLayout())
	assert.Equal(t, 2, first.Stats.DrawnCount, "laid-out node c joins the board")

	second, err := r.Execute(ctx, d, opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.LayoutHit)
	assert.Equal(t, first.Diagram.Nodes, second.Diagram.Nodes)
}

func TestLayoutDisabled(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	d := testDiagram()

	out, hit, err := r.LayoutWithCacheInfo(context.Background(), d, Options{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, d, out)
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), testDiagram(), Options{Formats: []string{"gif"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestRenderScene(t *testing.T) {
	b, err := NewBoard(context.Background(), testDiagram(), Options{})
	require.NoError(t, err)
	opts := Options{Background: "#FFFFFF"}
	require.NoError(t, opts.ValidateAndSetDefaults())

	out, err := RenderScene(context.Background(), b.Scene(opts), []string{FormatSVG, FormatPDF}, opts)
	require.NoError(t, err)
	assert.Contains(t, string(out[FormatSVG]), `fill="#FFFFFF"`)
	assert.Equal(t, "%PDF", string(out[FormatPDF][:4]))
}
