package cache

// ScopedKeyer prefixes every key of an inner [Keyer], so that several
// deployments can share one Redis database without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "robdd:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DiagramKey(formula string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(formula, opts)
}

func (k *ScopedKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dotHash, opts)
}
