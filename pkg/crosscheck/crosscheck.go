// Package crosscheck verifies a diagram against an independent BDD package.
//
// The formula is rebuilt with rudd, which composes diagrams bottom-up with
// the apply operation instead of enumerating assignments. Two reduced
// ordered diagrams of the same function over the same order are
// isomorphic, so both implementations must agree on the number of internal
// nodes and on the number of satisfying assignments.
package crosscheck

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dalzilio/rudd"

	"github.com/matzehuels/robdd/pkg/bdd"
	"github.com/matzehuels/robdd/pkg/formula"
)

// ErrMismatch is returned by [Verify] when the two implementations disagree.
var ErrMismatch = errors.New("diagram disagrees with reference implementation")

// Report holds what the reference implementation computed.
type Report struct {
	Nodes    int      // internal nodes reachable from the root
	SatCount *big.Int // satisfying assignments over the whole order
}

// Reference builds e over order with rudd and reports its size and model
// count. Variable order[i] is rudd variable i.
func Reference(e formula.Expr, order []string) (Report, error) {
	if err := bdd.ValidateOrder(order); err != nil {
		return Report{}, err
	}

	b, err := rudd.New(len(order), rudd.Nodesize(1024), rudd.Cachesize(512))
	if err != nil {
		return Report{}, fmt.Errorf("rudd: %w", err)
	}

	index := make(map[string]int, len(order))
	for i, v := range order {
		index[v] = i
	}

	root, err := apply(b, e, index)
	if err != nil {
		return Report{}, err
	}
	if b.Errored() {
		return Report{}, fmt.Errorf("rudd: %s", b.Error())
	}

	// Whether Allnodes reports the constants differs between rudd
	// releases; ids 0 and 1 are always the constants.
	count := 0
	err = b.Allnodes(func(id, level, low, high int) error {
		if id > 1 {
			count++
		}
		return nil
	}, root)
	if err != nil {
		return Report{}, fmt.Errorf("rudd: %w", err)
	}

	return Report{Nodes: count, SatCount: b.Satcount(root)}, nil
}

func apply(b *rudd.BDD, e formula.Expr, index map[string]int) (rudd.Node, error) {
	switch x := e.(type) {
	case formula.Lit:
		if x {
			return b.True(), nil
		}
		return b.False(), nil
	case formula.Var:
		i, ok := index[string(x)]
		if !ok {
			return nil, &formula.UndefinedVariableError{Name: string(x)}
		}
		return b.Ithvar(i), nil
	case *formula.Negation:
		n, err := apply(b, x.X, index)
		if err != nil {
			return nil, err
		}
		return b.Not(n), nil
	case *formula.Binary:
		l, err := apply(b, x.L, index)
		if err != nil {
			return nil, err
		}
		r, err := apply(b, x.R, index)
		if err != nil {
			return nil, err
		}
		return b.Apply(l, r, operators[x.Op]), nil
	}
	return nil, fmt.Errorf("crosscheck: unsupported expression %T", e)
}

var operators = map[formula.Op]rudd.Operator{
	formula.OpAnd:     rudd.OPand,
	formula.OpOr:      rudd.OPor,
	formula.OpXor:     rudd.OPxor,
	formula.OpImplies: rudd.OPimp,
	formula.OpIff:     rudd.OPbiimp,
}

// Verify compares d with the reference diagram of e over d's order.
func Verify(e formula.Expr, d *bdd.Diagram) (Report, error) {
	ref, err := Reference(e, d.Order())
	if err != nil {
		return ref, err
	}
	if got := d.InternalCount(); got != ref.Nodes {
		return ref, fmt.Errorf("%w: %d internal nodes, reference has %d", ErrMismatch, got, ref.Nodes)
	}
	if got := d.SatCount(); got.Cmp(ref.SatCount) != 0 {
		return ref, fmt.Errorf("%w: %s satisfying assignments, reference has %s", ErrMismatch, got, ref.SatCount)
	}
	return ref, nil
}
