package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis or Mongo instance without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "stepwall:")
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

// ImageKey generates a prefixed key for a rendered image.
func (k *ScopedKeyer) ImageKey(opts ImageKeyOpts) string {
	return k.prefix + k.inner.ImageKey(opts)
}

// Prefix returns the scope prefix.
func (k *ScopedKeyer) Prefix() string {
	return k.prefix
}
