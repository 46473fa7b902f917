package bdd

import (
	"strings"
	"testing"
)

func TestNewStore(t *testing.T) {
	s := NewStore()

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if got := s.Label(False); got != FalseLabel {
		t.Errorf("Label(False) = %q, want %q", got, FalseLabel)
	}
	if got := s.Label(True); got != TrueLabel {
		t.Errorf("Label(True) = %q, want %q", got, TrueLabel)
	}
	if !s.IsTerminal(False) || !s.IsTerminal(True) {
		t.Error("terminals should report IsTerminal")
	}
}

func TestMakeNodeAllocatesFromTwo(t *testing.T) {
	s := NewStore()

	a := s.MakeNode("a", False, True)
	b := s.MakeNode("b", True, False)

	if a != 2 || b != 3 {
		t.Errorf("handles = %d, %d; want 2, 3", a, b)
	}
	if s.IsTerminal(a) {
		t.Error("internal node reported as terminal")
	}
	low, high, ok := s.Children(b)
	if !ok || low != True || high != False {
		t.Errorf("Children(b) = %d, %d, %v; want 1, 0, true", low, high, ok)
	}
}

func TestMakeNodeRedundantTest(t *testing.T) {
	s := NewStore()
	a := s.MakeNode("a", False, True)

	got := s.MakeNode("b", a, a)

	if got != a {
		t.Errorf("MakeNode(b, a, a) = %d, want %d", got, a)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (no allocation)", s.Len())
	}
	if _, ok := s.Lookup("b", a, a); ok {
		t.Error("redundant test must not be registered in the unique table")
	}
	if st := s.Stats(); st.Reductions != 1 {
		t.Errorf("Stats().Reductions = %d, want 1", st.Reductions)
	}
}

func TestMakeNodeMergesIsomorphic(t *testing.T) {
	s := NewStore()

	first := s.MakeNode("x", False, True)
	second := s.MakeNode("x", False, True)

	if first != second {
		t.Errorf("same triple gave handles %d and %d", first, second)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	st := s.Stats()
	if st.Lookups != 2 || st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats() = %+v, want 2 lookups, 1 hit, 1 miss", st)
	}
}

func TestMakeNodeDistinguishesTriples(t *testing.T) {
	s := NewStore()

	tests := []struct {
		v         string
		low, high Handle
	}{
		{"x", False, True},
		{"x", True, False},
		{"y", False, True},
	}

	seen := make(map[Handle]bool)
	for _, tt := range tests {
		h := s.MakeNode(tt.v, tt.low, tt.high)
		if seen[h] {
			t.Errorf("MakeNode(%s, %d, %d) reused handle %d", tt.v, tt.low, tt.high, h)
		}
		seen[h] = true
	}
}

func TestChildrenOfTerminal(t *testing.T) {
	s := NewStore()
	for _, h := range []Handle{False, True} {
		if _, _, ok := s.Children(h); ok {
			t.Errorf("Children(%d) reported children for a terminal", h)
		}
	}
}

func TestMakeNodeForeignHandlePanics(t *testing.T) {
	s := NewStore()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MakeNode with foreign handle should panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "does not belong") {
			t.Errorf("panic message = %v", r)
		}
	}()
	s.MakeNode("a", False, Handle(42))
}

func TestOwnsIsRangeCheck(t *testing.T) {
	s := NewStore()
	s.MakeNode("a", False, True)

	other := NewStore()
	foreign := other.MakeNode("z", True, False)

	if !s.Owns(foreign) {
		t.Errorf("Owns(%d) = false; handles inside the range cannot be told apart", foreign)
	}
	if s.Owns(Handle(3)) || s.Owns(Handle(-1)) {
		t.Error("Owns should reject handles outside the allocated range")
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	s.MakeNode("a", False, True)
	s.MakeNode("b", False, True)

	s.Reset()

	if s.Len() != 2 {
		t.Errorf("Len() after Reset = %d, want 2", s.Len())
	}
	if _, ok := s.Lookup("a", False, True); ok {
		t.Error("unique table should be cleared by Reset")
	}
	if h := s.MakeNode("c", False, True); h != 2 {
		t.Errorf("first handle after Reset = %d, want 2", h)
	}
	if st := s.Stats(); st.Lookups != 1 {
		t.Errorf("Stats().Lookups after Reset = %d, want 1", st.Lookups)
	}
}

func TestStoreAllIsCopy(t *testing.T) {
	s := NewStore()
	s.MakeNode("a", False, True)

	all := s.All()
	all[2].Var = "mutated"

	if s.Label(2) != "a" {
		t.Error("All() must return a copy")
	}
}

func TestNodeString(t *testing.T) {
	tests := []struct {
		n    Node
		want string
	}{
		{Node{Handle: False, Var: FalseLabel}, "Node(0: 0)"},
		{Node{Handle: 5, Var: "x", Low: 0, High: 3}, "Node(5: x, L=0, H=3)"},
	}
	for _, tt := range tests {
		if got := tt.n.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
