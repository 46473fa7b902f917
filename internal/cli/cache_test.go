package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDirXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(base, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", home)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", "robdd"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheClearAndPath(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	// Populate the cache through a build.
	if _, err := runCLI(t, "build", "a & b", "-o", t.TempDir(), "--renderer", "none"); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.Join(base, appName) {
		t.Errorf("cache path = %q", out)
	}

	out, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("cache clear output = %q", out)
	}
}
