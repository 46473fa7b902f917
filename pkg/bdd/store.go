package bdd

import (
	"fmt"
	"strconv"
)

// Handle identifies a node inside the [Store] that allocated it. Handles are
// assigned in creation order, so the children of a node always have smaller
// handles than the node itself.
type Handle int

const (
	// False is the handle of the terminal node for the constant false.
	False Handle = 0
	// True is the handle of the terminal node for the constant true.
	True Handle = 1
)

// Terminal labels.
const (
	FalseLabel = "0"
	TrueLabel  = "1"
)

// firstInternal is the first handle handed out for an internal node.
const firstInternal Handle = 2

// String returns the decimal form of h, which is also its DOT node ID.
func (h Handle) String() string { return strconv.Itoa(int(h)) }

// Node is a decision point or a terminal.
//
// For internal nodes Var is the tested variable and Low/High are the
// subfunctions for Var=false and Var=true. For terminals Var holds
// [FalseLabel] or [TrueLabel] and Low/High are meaningless.
type Node struct {
	Handle Handle
	Var    string
	Low    Handle
	High   Handle
}

// IsTerminal reports whether n is one of the two constant nodes.
func (n Node) IsTerminal() bool { return n.Handle == False || n.Handle == True }

func (n Node) String() string {
	if n.IsTerminal() {
		return fmt.Sprintf("Node(%d: %s)", n.Handle, n.Var)
	}
	return fmt.Sprintf("Node(%d: %s, L=%d, H=%d)", n.Handle, n.Var, n.Low, n.High)
}

// triple is the unique table key.
type triple struct {
	v         string
	low, high Handle
}

// Stats describes the activity of the unique table.
type Stats struct {
	Nodes      int // live nodes, terminals included
	Lookups    int // MakeNode calls that reached the unique table
	Hits       int // lookups answered by an existing node
	Misses     int // lookups that allocated a new node
	Reductions int // MakeNode calls short-circuited because low == high
}

// Store owns the terminals and every internal node of one diagram and
// guarantees that no two live internal nodes share the same
// (variable, low, high) triple.
//
// The store is append-only: nodes are never mutated or removed, except by
// [Store.Reset] which drops everything but the terminals.
//
// The zero value is not usable; create stores with [NewStore].
// Store is not safe for concurrent use.
type Store struct {
	nodes  []Node
	unique map[triple]Handle
	stats  Stats
}

// NewStore returns a store holding only the terminals 0 and 1.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset clears the unique table and the handle counter together, leaving the
// store in the same state as a fresh [NewStore]. Diagrams previously built
// into s must not be used afterwards.
func (s *Store) Reset() {
	s.nodes = make([]Node, firstInternal, 64)
	s.nodes[False] = Node{Handle: False, Var: FalseLabel}
	s.nodes[True] = Node{Handle: True, Var: TrueLabel}
	s.unique = make(map[triple]Handle, 64)
	s.stats = Stats{}
}

// MakeNode returns the canonical node testing v with children low and high.
//
// When low == high the test is redundant and low is returned unchanged
// without touching the unique table. Otherwise the node registered for
// (v, low, high) is returned, allocating it with the next handle on first
// use.
//
// Both children must have been allocated by s. Passing a foreign handle is a
// programming error. Detection is best-effort: handles are plain integers,
// so only a handle beyond s's allocated range panics, while a foreign handle
// that falls inside the range is taken as one of s's nodes.
func (s *Store) MakeNode(v string, low, high Handle) Handle {
	s.mustOwn(low)
	s.mustOwn(high)

	if low == high {
		s.stats.Reductions++
		return low
	}

	s.stats.Lookups++
	key := triple{v: v, low: low, high: high}
	if h, ok := s.unique[key]; ok {
		s.stats.Hits++
		return h
	}

	s.stats.Misses++
	h := Handle(len(s.nodes))
	s.nodes = append(s.nodes, Node{Handle: h, Var: v, Low: low, High: high})
	s.unique[key] = h
	return h
}

// Lookup returns the node registered for (v, low, high) without allocating.
func (s *Store) Lookup(v string, low, high Handle) (Handle, bool) {
	h, ok := s.unique[triple{v: v, low: low, high: high}]
	return h, ok
}

// Owns reports whether h lies in the range of handles allocated by s. It
// cannot tell a handle of another store with the same value apart.
func (s *Store) Owns(h Handle) bool {
	return h >= 0 && int(h) < len(s.nodes)
}

func (s *Store) mustOwn(h Handle) {
	if !s.Owns(h) {
		panic(fmt.Sprintf("bdd: handle %d does not belong to this store (%d nodes)", h, len(s.nodes)))
	}
}

// IsTerminal reports whether h is [False] or [True].
func (s *Store) IsTerminal(h Handle) bool {
	s.mustOwn(h)
	return h == False || h == True
}

// Label returns the variable tested by h, or the terminal symbol for
// terminals.
func (s *Store) Label(h Handle) string {
	s.mustOwn(h)
	return s.nodes[h].Var
}

// Children returns the low and high children of h. For terminals ok is false
// and both children are reported as h itself.
func (s *Store) Children(h Handle) (low, high Handle, ok bool) {
	s.mustOwn(h)
	if h == False || h == True {
		return h, h, false
	}
	n := s.nodes[h]
	return n.Low, n.High, true
}

// Node returns the node stored under h.
func (s *Store) Node(h Handle) Node {
	s.mustOwn(h)
	return s.nodes[h]
}

// Len returns the number of live nodes, terminals included.
func (s *Store) Len() int { return len(s.nodes) }

// All returns every node of the store in handle order. The returned slice is
// a copy.
func (s *Store) All() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Stats returns the unique table counters.
func (s *Store) Stats() Stats {
	st := s.stats
	st.Nodes = len(s.nodes)
	return st
}
