package bdd

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
)

var (
	// ErrUnknownVariable is returned when a node or an assignment mentions a
	// variable outside the diagram's order.
	ErrUnknownVariable = errors.New("variable not in order")

	// ErrNotReduced is returned by [Diagram.Validate] when an internal node has
	// identical children.
	ErrNotReduced = errors.New("node has identical children")

	// ErrOrderViolation is returned by [Diagram.Validate] when a child tests a
	// variable that does not come strictly after its parent's.
	ErrOrderViolation = errors.New("child variable does not follow parent in order")
)

// Diagram is a view of one ROBDD: a root handle inside the [Store] that owns
// every reachable node, together with the order the diagram was built over.
// A Diagram does not own its store.
type Diagram struct {
	store       *Store
	root        Handle
	order       []string
	evaluations int
}

// NewDiagram wraps an existing root of s. It is used by importers that
// rebuild a store node by node; builders return diagrams directly.
func NewDiagram(s *Store, root Handle, order []string) *Diagram {
	s.mustOwn(root)
	return &Diagram{store: s, root: root, order: append([]string(nil), order...)}
}

// Root returns the root handle.
func (d *Diagram) Root() Handle { return d.root }

// Store returns the store owning the diagram's nodes.
func (d *Diagram) Store() *Store { return d.store }

// Order returns a copy of the variable order.
func (d *Diagram) Order() []string { return append([]string(nil), d.order...) }

// Evaluations returns how many times the oracle was consulted while building
// the diagram. It is zero for imported diagrams.
func (d *Diagram) Evaluations() int { return d.evaluations }

// IsConstant reports whether the diagram is one of the two terminals.
func (d *Diagram) IsConstant() bool { return d.root == False || d.root == True }

// reachable visits each handle reachable from the root exactly once, keyed
// by handle, and returns them in visit order.
func (d *Diagram) reachable() []Handle {
	seen := make(map[Handle]bool)
	var out []Handle
	pending := []Handle{d.root}
	for len(pending) > 0 {
		h := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
		if low, high, ok := d.store.Children(h); ok {
			pending = append(pending, high, low)
		}
	}
	return out
}

// NodeCount returns the number of distinct nodes reachable from the root,
// terminals included. Shared subgraphs are counted once.
func (d *Diagram) NodeCount() int {
	return len(d.reachable())
}

// InternalCount returns the number of reachable non-terminal nodes.
func (d *Diagram) InternalCount() int {
	n := 0
	for _, h := range d.reachable() {
		if h != False && h != True {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of branch edges in the diagram, two per
// reachable internal node.
func (d *Diagram) EdgeCount() int {
	return 2 * d.InternalCount()
}

// Nodes returns the reachable nodes sorted by descending handle, so the root
// comes first and the terminals last.
func (d *Diagram) Nodes() []Node {
	hs := d.reachable()
	slices.SortFunc(hs, func(a, b Handle) int { return int(b) - int(a) })
	out := make([]Node, len(hs))
	for i, h := range hs {
		out[i] = d.store.Node(h)
	}
	return out
}

// Level returns the position of v in the order, or len(order) for terminal
// labels. ok is false when v is neither.
func (d *Diagram) Level(v string) (int, bool) {
	if v == FalseLabel || v == TrueLabel {
		return len(d.order), true
	}
	i := slices.Index(d.order, v)
	return i, i >= 0
}

func (d *Diagram) level(h Handle) int {
	if h == False || h == True {
		return len(d.order)
	}
	lvl, _ := d.Level(d.store.nodes[h].Var)
	return lvl
}

// Eval follows the branches selected by a from the root and reports the
// terminal reached. Every variable tested on the path must be bound in a.
func (d *Diagram) Eval(a Assignment) (bool, error) {
	h := d.root
	for h != False && h != True {
		n := d.store.nodes[h]
		v, ok := a.Lookup(n.Var)
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrUnknownVariable, n.Var)
		}
		if v {
			h = n.High
		} else {
			h = n.Low
		}
	}
	return h == True, nil
}

// EvalMap is [Diagram.Eval] for a plain map. Variables of the order missing
// from values are false.
func (d *Diagram) EvalMap(values map[string]bool) bool {
	v, _ := d.Eval(NewAssignment(d.order, values))
	return v
}

// SatCount returns the number of assignments of the order that make the
// function true.
func (d *Diagram) SatCount() *big.Int {
	memo := make(map[Handle]*big.Int)
	var count func(h Handle) *big.Int
	count = func(h Handle) *big.Int {
		switch h {
		case False:
			return big.NewInt(0)
		case True:
			return big.NewInt(1)
		}
		if c, ok := memo[h]; ok {
			return c
		}
		n := d.store.nodes[h]
		lvl := d.level(h)
		lo := new(big.Int).Lsh(count(n.Low), uint(d.level(n.Low)-lvl-1))
		hi := new(big.Int).Lsh(count(n.High), uint(d.level(n.High)-lvl-1))
		c := lo.Add(lo, hi)
		memo[h] = c
		return c
	}
	return new(big.Int).Lsh(count(d.root), uint(d.level(d.root)))
}

// Isomorphic reports whether d and other have the same shape and labels,
// regardless of the stores and handles involved.
func (d *Diagram) Isomorphic(other *Diagram) bool {
	if !slices.Equal(d.order, other.order) {
		return false
	}
	pairs := make(map[Handle]Handle)
	var walk func(a, b Handle) bool
	walk = func(a, b Handle) bool {
		if m, ok := pairs[a]; ok {
			return m == b
		}
		na, nb := d.store.Node(a), other.store.Node(b)
		if na.IsTerminal() || nb.IsTerminal() {
			return na.Handle == nb.Handle
		}
		if na.Var != nb.Var {
			return false
		}
		pairs[a] = b
		return walk(na.Low, nb.Low) && walk(na.High, nb.High)
	}
	return walk(d.root, other.root)
}

// Validate checks the ROBDD invariants on the reachable part of the diagram:
// every variable belongs to the order, children test strictly later
// variables, and no node has identical children.
func (d *Diagram) Validate() error {
	for _, h := range d.reachable() {
		n := d.store.Node(h)
		if n.IsTerminal() {
			continue
		}
		lvl, ok := d.Level(n.Var)
		if !ok || lvl == len(d.order) {
			return fmt.Errorf("node %d: %w: %q", h, ErrUnknownVariable, n.Var)
		}
		if n.Low == n.High {
			return fmt.Errorf("node %d: %w", h, ErrNotReduced)
		}
		if d.level(n.Low) <= lvl || d.level(n.High) <= lvl {
			return fmt.Errorf("node %d (%s): %w", h, n.Var, ErrOrderViolation)
		}
	}
	return nil
}
