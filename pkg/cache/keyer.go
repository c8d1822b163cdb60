package cache

// Keyer generates cache keys.
type Keyer interface {
	// DiagramKey names a diagram after auto layout.
	DiagramKey(diagramHash string, opts DiagramKeyOpts) string
	// ArtifactKey names one rendered output of a routed diagram.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts holds the auto layout settings that change its result.
type DiagramKeyOpts struct {
	Engine     string  `json:"engine"`
	RankDir    string  `json:"rankdir"`
	NodeWidth  float64 `json:"node_width"`
	NodeHeight float64 `json:"node_height"`
}

// ArtifactKeyOpts holds every routing and render setting that changes an
// artifact's bytes.
type ArtifactKeyOpts struct {
	Format         string   `json:"format"`
	Scale          float64  `json:"scale,omitempty"`
	Zoom           float64  `json:"zoom"`
	Margin         float64  `json:"margin"`
	Color          string   `json:"color,omitempty"`
	SelectedColor  string   `json:"selected_color,omitempty"`
	HighlightColor string   `json:"highlight_color,omitempty"`
	Thickness      float64  `json:"thickness,omitempty"`
	Selected       []string `json:"selected,omitempty"`
	Highlighted    []string `json:"highlighted,omitempty"`
	Background     string   `json:"background,omitempty"`
	Width          float64  `json:"width,omitempty"`
	Height         float64  `json:"height,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DiagramKey returns "diagram:<sha256>".
func (DefaultKeyer) DiagramKey(diagramHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", diagramHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

var _ Keyer = DefaultKeyer{}
