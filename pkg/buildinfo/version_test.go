package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if got := Template(); !strings.HasPrefix(got, "{{.Name}} v1.2.3 ") {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.Contains(got, "version: v1.2.3") {
		t.Errorf("String() = %q", got)
	}
}
