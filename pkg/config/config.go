// Package config loads batch manifests.
//
// A manifest is a TOML file listing diagrams to build together with the
// render and cache settings used for them:
//
//	output = "out"
//
//	[render]
//	backend = "graphviz"   # graphviz, quickchart or none
//	timeout = "30s"
//
//	[cache]
//	backend = "file"       # file, redis or none
//	ttl = "168h"
//
//	[[diagram]]
//	name = "task_a"
//	formula = "(a and not c) or (b ^ d)"
//	order = ["a", "c", "b", "d"]
//	formats = ["dot", "png"]
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/robdd/pkg/bdd"
	"github.com/matzehuels/robdd/pkg/errors"
)

// Backends accepted in the [render] and [cache] tables.
const (
	RenderGraphviz   = "graphviz"
	RenderQuickChart = "quickchart"
	CacheFile        = "file"
	CacheRedis       = "redis"
	BackendNone      = "none"
)

// Defaults applied by [Manifest.SetDefaults].
const (
	DefaultOutput       = "."
	DefaultRenderer     = RenderGraphviz
	DefaultCache        = CacheFile
	DefaultRenderTTL    = 7 * 24 * time.Hour
	DefaultTimeout      = 30 * time.Second
	DefaultRedisAddr    = "localhost:6379"
)

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Manifest is a parsed batch file.
type Manifest struct {
	Output   string    `toml:"output"`
	Render   Render    `toml:"render"`
	Cache    Cache     `toml:"cache"`
	Diagrams []Diagram `toml:"diagram"`
}

// Render selects the image backend.
type Render struct {
	Backend  string   `toml:"backend"`
	Endpoint string   `toml:"endpoint"`
	Timeout  Duration `toml:"timeout"`
}

// Cache selects where rendered images are kept.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	Prefix    string   `toml:"prefix"`
	TTL       Duration `toml:"ttl"`
}

// Diagram is one entry of the manifest.
type Diagram struct {
	Name     string   `toml:"name"`
	Formula  string   `toml:"formula"`
	Order    []string `toml:"order"`
	Formats  []string `toml:"formats"`
	Strategy string   `toml:"strategy"`
	Verify   bool     `toml:"verify"`
}

// Load reads, defaults and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes a manifest, applies defaults and validates it. Unknown keys
// are an error so that typos do not silently fall back to defaults.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown keys: %s", strings.Join(keys, ", "))
	}

	m.SetDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// SetDefaults fills unset fields.
func (m *Manifest) SetDefaults() {
	if m.Output == "" {
		m.Output = DefaultOutput
	}
	if m.Render.Backend == "" {
		m.Render.Backend = DefaultRenderer
	}
	if m.Render.Timeout.Duration == 0 {
		m.Render.Timeout.Duration = DefaultTimeout
	}
	if m.Cache.Backend == "" {
		m.Cache.Backend = DefaultCache
	}
	if m.Cache.Backend == CacheRedis && m.Cache.RedisAddr == "" {
		m.Cache.RedisAddr = DefaultRedisAddr
	}
	if m.Cache.TTL.Duration == 0 {
		m.Cache.TTL.Duration = DefaultRenderTTL
	}
	for i := range m.Diagrams {
		d := &m.Diagrams[i]
		if len(d.Formats) == 0 {
			d.Formats = []string{"dot"}
		}
		if d.Strategy == "" {
			d.Strategy = bdd.Recursive.String()
		}
	}
}

// Validate checks the manifest after defaults are applied.
func (m *Manifest) Validate() error {
	if m.Output != DefaultOutput {
		if err := errors.ValidatePath(m.Output); err != nil {
			return err
		}
	}

	switch m.Render.Backend {
	case RenderGraphviz, BackendNone:
	case RenderQuickChart:
		if m.Render.Endpoint != "" {
			if err := errors.ValidateURL(m.Render.Endpoint); err != nil {
				return err
			}
		}
	default:
		return errors.New(errors.ErrCodeInvalidManifest, "unknown render backend %q", m.Render.Backend)
	}

	switch m.Cache.Backend {
	case CacheFile, CacheRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidManifest, "unknown cache backend %q", m.Cache.Backend)
	}

	if len(m.Diagrams) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest lists no diagrams")
	}
	names := make(map[string]bool, len(m.Diagrams))
	for i, d := range m.Diagrams {
		if err := d.validate(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "diagram %d (%s)", i+1, d.Name)
		}
		if names[d.Name] {
			return errors.New(errors.ErrCodeInvalidManifest, "duplicate diagram name %q", d.Name)
		}
		names[d.Name] = true
	}
	return nil
}

func (d Diagram) validate() error {
	if d.Name == "" {
		return errors.New(errors.ErrCodeInvalidManifest, "name is required")
	}
	if err := errors.ValidatePath(d.Name); err != nil {
		return err
	}
	if err := errors.ValidateFormula(d.Formula); err != nil {
		return err
	}
	if err := errors.ValidateOrder(d.Order); err != nil {
		return err
	}
	if len(d.Order) > 0 {
		if err := bdd.ValidateOrder(d.Order); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidVariableOrder, err, "order")
		}
	}
	for _, f := range d.Formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	if _, ok := bdd.ParseStrategy(d.Strategy); !ok {
		return errors.New(errors.ErrCodeInvalidManifest, "unknown strategy %q", d.Strategy)
	}
	return nil
}

// String renders a one-line summary, used in logs.
func (d Diagram) String() string {
	return fmt.Sprintf("%s: %s", d.Name, d.Formula)
}
