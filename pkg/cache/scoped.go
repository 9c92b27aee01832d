package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. A
// server hosting plots for several clients gives each one its own
// prefix so their artifacts never collide:
//
//	clientKeyer := NewScopedKeyer(NewDefaultKeyer(), "client:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every
// generated key. A nil inner keyer falls back to the default.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DataKey generates a prefixed key for an imported data table.
func (k *ScopedKeyer) DataKey(sourceHash string) string {
	return k.prefix + k.inner.DataKey(sourceHash)
}

// BuildKey generates a prefixed key for a built plot.
func (k *ScopedKeyer) BuildKey(dataHash string, opts BuildKeyOpts) string {
	return k.prefix + k.inner.BuildKey(dataHash, opts)
}

// RenderKey generates a prefixed key for a rendered output.
func (k *ScopedKeyer) RenderKey(buildHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(buildHash, opts)
}
