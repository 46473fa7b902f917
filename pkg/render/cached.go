package render

import (
	"context"
	"time"

	"github.com/matzehuels/robdd/pkg/cache"
	"github.com/matzehuels/robdd/pkg/observability"
)

// Cached memoizes a [Renderer] in a [cache.Cache]. Failed renders are not
// cached. Cache read and write errors are ignored: a broken cache only costs
// a re-render.
type Cached struct {
	inner Renderer
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewCached wraps inner. A nil keyer means [cache.DefaultKeyer].
func NewCached(inner Renderer, c cache.Cache, keyer cache.Keyer, ttl time.Duration) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cached{inner: inner, cache: c, keyer: keyer, ttl: ttl}
}

func (c *Cached) Name() string { return c.inner.Name() }

func (c *Cached) Render(ctx context.Context, dot []byte, format string) ([]byte, error) {
	if format == FormatDOT {
		return dot, nil
	}

	key := c.keyer.ArtifactKey(cache.Hash(dot), cache.ArtifactKeyOpts{
		Format:  format,
		Backend: c.inner.Name(),
	})
	hooks := observability.Cache()

	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, cache.KeyTypeArtifact)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, cache.KeyTypeArtifact)

	data, err := c.inner.Render(ctx, dot, format)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
		hooks.OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
	}
	return data, nil
}

var _ Renderer = (*Cached)(nil)
