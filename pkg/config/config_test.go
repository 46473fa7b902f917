package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/robdd/pkg/errors"
)

const sample = `
output = "out"

[render]
backend = "quickchart"
endpoint = "https://quickchart.io/graphviz"
timeout = "10s"

[cache]
backend = "redis"
prefix = "robdd"
ttl = "1h"

[[diagram]]
name = "task_a"
formula = "(a and not c) or (b ^ d)"
order = ["a", "c", "b", "d"]
formats = ["dot", "png"]
verify = true

[[diagram]]
name = "task_d"
formula = "a ^ b ^ c ^ d ^ e"
strategy = "iterative"
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if m.Output != "out" {
		t.Errorf("Output = %q", m.Output)
	}
	if m.Render.Backend != RenderQuickChart || m.Render.Timeout.Duration != 10*time.Second {
		t.Errorf("Render = %+v", m.Render)
	}
	if m.Cache.RedisAddr != DefaultRedisAddr {
		t.Errorf("RedisAddr = %q, want default", m.Cache.RedisAddr)
	}
	if m.Cache.TTL.Duration != time.Hour {
		t.Errorf("TTL = %v, want 1h", m.Cache.TTL)
	}
	if len(m.Diagrams) != 2 {
		t.Fatalf("len(Diagrams) = %d, want 2", len(m.Diagrams))
	}

	a := m.Diagrams[0]
	if strings.Join(a.Order, ",") != "a,c,b,d" || !a.Verify || a.Strategy != "recursive" {
		t.Errorf("diagram[0] = %+v", a)
	}
	d := m.Diagrams[1]
	if len(d.Formats) != 1 || d.Formats[0] != "dot" {
		t.Errorf("default formats = %v", d.Formats)
	}
	if d.Order != nil {
		t.Errorf("unset order = %v, want nil", d.Order)
	}
}

func TestParseDefaults(t *testing.T) {
	m, err := Parse([]byte(`
[[diagram]]
name = "x"
formula = "x"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Output != DefaultOutput || m.Render.Backend != DefaultRenderer || m.Cache.Backend != DefaultCache {
		t.Errorf("defaults not applied: %+v", m)
	}
	if m.Render.Timeout.Duration != DefaultTimeout {
		t.Errorf("Timeout = %v", m.Render.Timeout)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"syntax", `output = `, errors.ErrCodeInvalidManifest},
		{"unknown key", "colour = \"red\"\n[[diagram]]\nname=\"a\"\nformula=\"a\"", errors.ErrCodeInvalidManifest},
		{"no diagrams", `output = "out"`, errors.ErrCodeInvalidManifest},
		{"bad duration", "[render]\ntimeout = \"soon\"", errors.ErrCodeInvalidManifest},
		{"bad backend", "[render]\nbackend = \"ascii\"\n[[diagram]]\nname=\"a\"\nformula=\"a\"", errors.ErrCodeInvalidManifest},
		{"bad cache", "[cache]\nbackend = \"s3\"\n[[diagram]]\nname=\"a\"\nformula=\"a\"", errors.ErrCodeInvalidManifest},
		{"missing name", "[[diagram]]\nformula=\"a\"", errors.ErrCodeInvalidManifest},
		{"empty formula", "[[diagram]]\nname=\"a\"\nformula=\"\"", errors.ErrCodeInvalidFormula},
		{"duplicate order", "[[diagram]]\nname=\"a\"\nformula=\"a\"\norder=[\"a\",\"a\"]", errors.ErrCodeInvalidVariableOrder},
		{"bad format", "[[diagram]]\nname=\"a\"\nformula=\"a\"\nformats=[\"gif\"]", errors.ErrCodeInvalidFormat},
		{"bad strategy", "[[diagram]]\nname=\"a\"\nformula=\"a\"\nstrategy=\"bfs\"", errors.ErrCodeInvalidManifest},
		{"traversal", "[[diagram]]\nname=\"../a\"\nformula=\"a\"", errors.ErrCodeInvalidPath},
		{"duplicate name", "[[diagram]]\nname=\"a\"\nformula=\"a\"\n[[diagram]]\nname=\"a\"\nformula=\"b\"", errors.ErrCodeInvalidManifest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Diagrams) != 2 {
		t.Errorf("len(Diagrams) = %d", len(m.Diagrams))
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}
}
