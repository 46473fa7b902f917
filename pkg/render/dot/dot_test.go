package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/robdd/pkg/bdd"
)

func build(t *testing.T, f func(a bdd.Assignment) bool, order ...string) *bdd.Diagram {
	t.Helper()
	d, err := bdd.NewBuilder().Build(bdd.OracleFunc(func(a bdd.Assignment) (bool, error) {
		return f(a), nil
	}), order)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestToDOTSingleVariable(t *testing.T) {
	d := build(t, func(a bdd.Assignment) bool { return a.At(0) }, "a")

	want := `digraph "ROBDD" {
  0 [shape=box, label="0", style=filled, fillcolor="#AB1111", color="#AB1111"];
  1 [shape=box, label="1", style=filled, fillcolor="#67A15B", color="#67A15B"];
  2 [label="a"];
  2 -> 0 [style=dashed, color="#AB1111", fontcolor="#AB1111", label="0"];
  2 -> 1 [style=solid, color="#67A15B", fontcolor="#67A15B", label="1"];
}
`
	if got := ToDOT(d, Options{}); got != want {
		t.Errorf("ToDOT() =\n%s\nwant\n%s", got, want)
	}
}

func TestToDOTListsEachNodeOnce(t *testing.T) {
	xor3 := func(a bdd.Assignment) bool { return a.At(0) != a.At(1) != a.At(2) }
	d := build(t, xor3, "a", "b", "c")

	out := ToDOT(d, Options{Name: "xor"})

	if !strings.HasPrefix(out, `digraph "xor" {`) {
		t.Errorf("graph name missing:\n%s", out)
	}
	if got := strings.Count(out, "[label="); got != d.InternalCount() {
		t.Errorf("%d node statements, want %d", got, d.InternalCount())
	}
	if got := strings.Count(out, "->"); got != d.EdgeCount() {
		t.Errorf("%d edges, want %d", got, d.EdgeCount())
	}
	if got := strings.Count(out, "style=dashed"); got != d.InternalCount() {
		t.Errorf("%d dashed edges, want one per node", got)
	}
}

func TestToDOTConstant(t *testing.T) {
	d := build(t, func(bdd.Assignment) bool { return true }, "a", "b")
	out := ToDOT(d, Options{})

	if strings.Contains(out, "->") {
		t.Errorf("constant diagram should have no edges:\n%s", out)
	}
	if !strings.Contains(out, `1 [shape=box`) {
		t.Error("terminals are always declared")
	}
}

func TestToDOTRanks(t *testing.T) {
	d := build(t, func(a bdd.Assignment) bool { return a.At(0) != a.At(1) }, "a", "b")
	out := ToDOT(d, Options{Ranks: true})

	if got := strings.Count(out, "rank=same"); got != 2 {
		t.Errorf("%d rank groups, want 2:\n%s", got, out)
	}
	if !strings.Contains(out, "rank=sink; 0; 1;") {
		t.Error("terminals should share the sink rank")
	}
}
