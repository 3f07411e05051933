package cache

// ScopedKeyer wraps a Keyer with a prefix. Shared backends use it to keep
// card entries apart from other data in the same Redis database or Mongo
// collection.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "titlecard:")
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

// CardKey generates a prefixed card key.
func (k *ScopedKeyer) CardKey(opts CardKeyOpts) string {
	return k.prefix + k.inner.CardKey(opts)
}
