package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants or boards
// can share one backend without colliding.
//
// Example usage:
//
//	// Keys for one board in a shared redis
//	boardKeyer := NewScopedKeyer(NewDefaultKeyer(), "board:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DiagramKey generates a prefixed key for laid-out diagrams.
func (k *ScopedKeyer) DiagramKey(diagramHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(diagramHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}
