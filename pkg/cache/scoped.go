package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. This is
// useful when several projects share one Redis instance and need separate
// cache namespaces.
//
// Example usage:
//
//	// Project-specific keys on a shared backend
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "denver:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
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

// BuildKey generates a prefixed key for built-graph caching.
func (k *ScopedKeyer) BuildKey(inputHash string, opts BuildKeyOpts) string {
	return k.prefix + k.inner.BuildKey(inputHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
