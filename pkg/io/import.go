package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/robdd/pkg/bdd"
)

var (
	// ErrDanglingReference is returned when a node or the root refers to an
	// ID that is neither a terminal nor a node listed earlier in build order.
	ErrDanglingReference = errors.New("reference to unknown node")

	// ErrDuplicateNode is returned when two entries describe the same
	// (var, low, high) triple, or reuse an ID.
	ErrDuplicateNode = errors.New("duplicate node")
)

// ReadJSON decodes a diagram from r and rebuilds it in a fresh store. It
// returns the diagram and the formula recorded in the document, if any.
//
// Nodes are rebuilt children first, so handles in the returned diagram
// generally differ from IDs in the file. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*bdd.Diagram, string, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	d, err := doc.Diagram()
	if err != nil {
		return nil, "", err
	}
	return d, doc.Formula, nil
}

// Diagram rebuilds doc in a fresh store and validates it.
func (doc Document) Diagram() (*bdd.Diagram, error) {
	if err := bdd.ValidateOrder(doc.Order); err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}

	s := bdd.NewStore()
	handles := map[bdd.Handle]bdd.Handle{bdd.False: bdd.False, bdd.True: bdd.True}
	resolve := func(id bdd.Handle) (bdd.Handle, error) {
		h, ok := handles[id]
		if !ok {
			return 0, fmt.Errorf("%w: %d", ErrDanglingReference, id)
		}
		return h, nil
	}

	// Children always have smaller IDs than their parents in exported
	// documents; sorting lets each node see its children already built.
	nodes := slices.Clone(doc.Nodes)
	slices.SortFunc(nodes, func(a, b Node) int { return int(a.ID) - int(b.ID) })

	for _, n := range nodes {
		if _, ok := handles[n.ID]; ok {
			return nil, fmt.Errorf("node %d: %w: id reused", n.ID, ErrDuplicateNode)
		}
		low, err := resolve(n.Low)
		if err != nil {
			return nil, fmt.Errorf("node %d low: %w", n.ID, err)
		}
		high, err := resolve(n.High)
		if err != nil {
			return nil, fmt.Errorf("node %d high: %w", n.ID, err)
		}
		if low == high {
			return nil, fmt.Errorf("node %d: %w", n.ID, bdd.ErrNotReduced)
		}
		if other, ok := s.Lookup(n.Var, low, high); ok {
			return nil, fmt.Errorf("node %d: %w: same as handle %d", n.ID, ErrDuplicateNode, other)
		}
		handles[n.ID] = s.MakeNode(n.Var, low, high)
	}

	root, err := resolve(doc.Root)
	if err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	d := bdd.NewDiagram(s, root, doc.Order)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// ImportJSON reads a diagram from the JSON file at path.
func ImportJSON(path string) (*bdd.Diagram, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
