package formula

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/matzehuels/robdd/pkg/bdd"
)

// Circuit is a formula compiled to an and-inverter graph. Each evaluation is
// a single pass over the gates in topological order, which is much cheaper
// than re-walking the syntax tree for the 2^n calls a build makes.
type Circuit struct {
	c      *logic.C
	out    z.Lit
	inputs []z.Lit // inputs[i] belongs to order[i]
	order  []string
	vals   []bool
}

// Compile builds a circuit for e over order. Every variable of e must appear
// in order; variables of order that e does not mention are accepted and
// ignored.
func Compile(e Expr, order []string) (*Circuit, error) {
	if err := bdd.ValidateOrder(order); err != nil {
		return nil, err
	}

	c := logic.NewC()
	inputs := make([]z.Lit, len(order))
	byName := make(map[string]z.Lit, len(order))
	for i, name := range order {
		inputs[i] = c.Lit()
		byName[name] = inputs[i]
	}

	out, err := lower(c, e, byName)
	if err != nil {
		return nil, err
	}

	return &Circuit{
		c:      c,
		out:    out,
		inputs: inputs,
		order:  append([]string(nil), order...),
		vals:   make([]bool, c.Len()),
	}, nil
}

func lower(c *logic.C, e Expr, inputs map[string]z.Lit) (z.Lit, error) {
	switch x := e.(type) {
	case Lit:
		if x {
			return c.T, nil
		}
		return c.F, nil
	case Var:
		m, ok := inputs[string(x)]
		if !ok {
			return z.LitNull, &UndefinedVariableError{Name: string(x)}
		}
		return m, nil
	case *Negation:
		m, err := lower(c, x.X, inputs)
		return m.Not(), err
	case *Binary:
		a, err := lower(c, x.L, inputs)
		if err != nil {
			return z.LitNull, err
		}
		b, err := lower(c, x.R, inputs)
		if err != nil {
			return z.LitNull, err
		}
		switch x.Op {
		case OpAnd:
			return c.And(a, b), nil
		case OpOr:
			return c.Or(a, b), nil
		case OpXor:
			return c.Xor(a, b), nil
		case OpImplies:
			return c.Implies(a, b), nil
		default:
			return c.Xor(a, b).Not(), nil
		}
	}
	return z.LitNull, &SyntaxError{Msg: "unsupported expression"}
}

// Gates returns the number of and-gates and inputs in the circuit.
func (ct *Circuit) Gates() int { return ct.c.Len() }

// Eval implements [bdd.Oracle]. The assignment must be over the order the
// circuit was compiled for. A Circuit reuses its value buffer and must not be
// shared between concurrent builds.
func (ct *Circuit) Eval(a bdd.Assignment) (bool, error) {
	for i, m := range ct.inputs {
		v, ok := a.Lookup(ct.order[i])
		if !ok {
			return false, &UndefinedVariableError{Name: ct.order[i]}
		}
		ct.vals[m.Var()] = v
	}
	// Variable 1 is the circuit's constant; c.T is its positive literal.
	ct.vals[1] = true
	ct.c.Eval(ct.vals)

	v := ct.vals[ct.out.Var()]
	if !ct.out.IsPos() {
		v = !v
	}
	return v, nil
}

var _ bdd.Oracle = (*Circuit)(nil)
