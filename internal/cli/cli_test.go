package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/robdd/pkg/config"
)

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := &CLI{
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
		Out:    &out,
		Err:    io.Discard,
	}
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "a"},
		{"a,c, b ,d", "a|c|b|d"},
		{"dot,,png,", "dot|png"},
	}
	for _, tt := range tests {
		if got := strings.Join(splitList(tt.in), "|"); got != tt.want {
			t.Errorf("splitList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()

	out, err := runCLI(t, "build", "(a and not c) or (b ^ d)",
		"--order", "a,c,b,d",
		"--format", "dot,json",
		"--output", dir,
		"--name", "task_a",
		"--renderer", "none",
		"--table",
		"--verify")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, want := range []string{"7 nodes", "5 internal", "16 oracle calls", "cross-check: 5 nodes", "task_a.dot"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	dot, err := os.ReadFile(filepath.Join(dir, "task_a.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), `digraph "task_a"`) {
		t.Errorf("dot file starts with %q", strings.SplitN(string(dot), "\n", 2)[0])
	}

	data, err := os.ReadFile(filepath.Join(dir, "task_a.json"))
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Order []string `json:"order"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if strings.Join(doc.Order, ",") != "a,c,b,d" {
		t.Errorf("json order = %v", doc.Order)
	}
}

func TestBuildCommandErrors(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{"syntax", []string{"build", "a &&", "--no-cache"}},
		{"order misses variable", []string{"build", "a & b", "--order", "a", "--no-cache"}},
		{"png without renderer", []string{"build", "a", "--format", "png", "--renderer", "none", "--no-cache", "-o", t.TempDir()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderCommandRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()

	if _, err := runCLI(t, "build", "x ^ y", "-f", "json", "-o", dir, "-n", "xor"); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "render", filepath.Join(dir, "xor.json"), "-f", "dot", "--renderer", "none")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "5 nodes") {
		t.Errorf("render output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "xor.dot")); err != nil {
		t.Errorf("xor.dot not written: %v", err)
	}
}

func TestBatchCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	manifest := filepath.Join(dir, "tasks.toml")
	src := `
output = "out"

[render]
backend = "none"

[cache]
backend = "none"

[[diagram]]
name = "task_a"
formula = "(a and not c) or (b ^ d)"
order = ["a", "c", "b", "d"]

[[diagram]]
name = "task_d"
formula = "a ^ b ^ c ^ d ^ e"
order = ["a", "c", "b", "d", "e"]
formats = ["dot", "json"]
`
	if err := os.WriteFile(manifest, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "batch", manifest)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	for _, want := range []string{"task_a: 7 nodes", "task_d: 11 nodes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, f := range []string{"task_a.dot", "task_d.dot", "task_d.json"} {
		if _, err := os.Stat(filepath.Join(dir, "out", f)); err != nil {
			t.Errorf("%s not written: %v", f, err)
		}
	}

	out, err = runCLI(t, "batch", manifest, "--only", "task_d", "-o", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "task_a") {
		t.Errorf("--only task_d still built task_a:\n%s", out)
	}

	if _, err := runCLI(t, "batch", manifest, "--only", "task_z"); err == nil {
		t.Error("unknown --only name should fail")
	}
}

func TestBatchKeepsDOTWhenRenderFails(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad graph", http.StatusBadRequest)
	}))
	defer srv.Close()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "tasks.toml")
	src := fmt.Sprintf(`
output = "out"

[render]
backend = "quickchart"
endpoint = %q

[cache]
backend = "none"

[[diagram]]
name = "task_a"
formula = "(a and not c) or (b ^ d)"
order = ["a", "c", "b", "d"]
formats = ["dot", "png"]
`, srv.URL)
	if err := os.WriteFile(manifest, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "batch", manifest)
	if err != nil {
		t.Fatalf("batch: %v\n%s", err, out)
	}
	for _, want := range []string{"task_a: 7 nodes", "images not written"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "task_a.dot")); err != nil {
		t.Errorf("task_a.dot not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "task_a.png")); err == nil {
		t.Error("task_a.png written although rendering failed")
	}
}

func TestBuildWritesDOTWhenRenderFails(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()

	out, err := runCLI(t, "build", "a ^ b", "--format", "dot,png", "--renderer", "none",
		"--no-cache", "-o", dir, "-n", "xor")
	if err == nil {
		t.Error("build should report the failed png")
	}
	if !strings.Contains(out, "5 nodes") {
		t.Errorf("node count not printed:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "xor.dot")); err != nil {
		t.Errorf("xor.dot not written: %v", err)
	}
}

func TestSelectDiagrams(t *testing.T) {
	all := []config.Diagram{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	got, err := selectDiagrams(all, []string{"c", "a"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("selectDiagrams = %v, want manifest order [a c]", got)
	}
}
