// Package cli implements the robdd command-line interface.
//
// # Commands
//
//   - build: build the ROBDD of one formula and write DOT, JSON or images
//   - batch: build every diagram listed in a TOML manifest
//   - render: render a diagram previously exported as JSON
//   - explore: walk a diagram interactively, choosing branches
//   - serve: run the HTTP API
//   - cache: inspect and clear the local cache
//
// All commands accept --verbose (-v) for debug logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/robdd/pkg/cache"
	"github.com/matzehuels/robdd/pkg/config"
	"github.com/matzehuels/robdd/pkg/pipeline"
	"github.com/matzehuels/robdd/pkg/render"
	"github.com/matzehuels/robdd/pkg/render/graphviz"
	"github.com/matzehuels/robdd/pkg/render/quickchart"
)

// appName is used for the cache directory and in help texts.
const appName = "robdd"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // command results
	Err    io.Writer // logs and progress
}

// New creates a CLI logging to w at level. Command output goes to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// backend selects the cache and renderer of a runner. Its zero value means
// the local file cache and Graphviz.
type backend struct {
	Renderer string
	Endpoint string
	Timeout  time.Duration

	Cache     string
	CacheDir  string
	RedisAddr string
	Prefix    string
	TTL       time.Duration
}

// backendFromManifest maps the [render] and [cache] tables of a manifest.
func backendFromManifest(m *config.Manifest) backend {
	return backend{
		Renderer:  m.Render.Backend,
		Endpoint:  m.Render.Endpoint,
		Timeout:   m.Render.Timeout.Duration,
		Cache:     m.Cache.Backend,
		CacheDir:  m.Cache.Dir,
		RedisAddr: m.Cache.RedisAddr,
		Prefix:    m.Cache.Prefix,
		TTL:       m.Cache.TTL.Duration,
	}
}

// newRunner creates a pipeline runner for b.
func (c *CLI) newRunner(ctx context.Context, b backend) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, b)
	if err != nil {
		return nil, err
	}

	var keyer cache.Keyer
	if b.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, b.Prefix)
	}
	r := pipeline.NewRunner(ch, keyer, nil, c.Logger)

	ttl := pipeline.TTLArtifact
	if b.TTL > 0 {
		ttl = b.TTL
		r.TTL = b.TTL
	}
	if rend := newRenderer(b); rend != nil {
		r.Renderer = render.NewCached(rend, ch, r.Keyer, ttl)
	}
	return r, nil
}

func newCache(ctx context.Context, b backend) (cache.Cache, error) {
	switch b.Cache {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		addr := b.RedisAddr
		if addr == "" {
			addr = config.DefaultRedisAddr
		}
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: addr})
	default:
		dir := b.CacheDir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// newRenderer returns nil when image output is disabled.
func newRenderer(b backend) render.Renderer {
	switch b.Renderer {
	case config.BackendNone:
		return nil
	case config.RenderQuickChart:
		timeout := b.Timeout
		if timeout == 0 {
			timeout = config.DefaultTimeout
		}
		opts := []quickchart.Option{quickchart.WithHTTPClient(&http.Client{Timeout: timeout})}
		if b.Endpoint != "" {
			opts = append(opts, quickchart.WithEndpoint(b.Endpoint))
		}
		return quickchart.New(opts...)
	default:
		return graphviz.New()
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/robdd/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// splitList parses a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// writeArtifacts writes each artifact to dir/name.format and returns the
// paths in format order. Formats missing from artifacts, such as images
// whose rendering failed, are skipped.
func writeArtifacts(dir, name string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		if _, ok := artifacts[f]; !ok {
			continue
		}
		path := filepath.Join(dir, name+"."+f)
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
