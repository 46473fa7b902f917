package formula

import "fmt"

// Expr is a node of a parsed Boolean formula.
type Expr interface {
	// Eval computes the value of the expression. lookup reports the value of
	// a variable and whether it is bound.
	Eval(lookup func(name string) (bool, bool)) (bool, error)
	String() string
}

// Lit is the constant true or false.
type Lit bool

// Var is a reference to a named variable.
type Var string

// Negation is logical not.
type Negation struct {
	X Expr
}

// Op is a binary connective.
type Op int

const (
	OpAnd Op = iota
	OpOr
	OpXor
	OpImplies
	OpIff
)

var opSymbols = map[Op]string{
	OpAnd:     "and",
	OpOr:      "or",
	OpXor:     "xor",
	OpImplies: "->",
	OpIff:     "<->",
}

func (o Op) String() string { return opSymbols[o] }

func (o Op) apply(a, b bool) bool {
	switch o {
	case OpAnd:
		return a && b
	case OpOr:
		return a || b
	case OpXor:
		return a != b
	case OpImplies:
		return !a || b
	default:
		return a == b
	}
}

// Binary applies Op to two operands.
type Binary struct {
	Op   Op
	L, R Expr
}

// UndefinedVariableError is returned when evaluation reaches a variable that
// is not bound.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

func (l Lit) Eval(func(string) (bool, bool)) (bool, error) { return bool(l), nil }

func (l Lit) String() string {
	if l {
		return "true"
	}
	return "false"
}

func (v Var) Eval(lookup func(string) (bool, bool)) (bool, error) {
	val, ok := lookup(string(v))
	if !ok {
		return false, &UndefinedVariableError{Name: string(v)}
	}
	return val, nil
}

func (v Var) String() string { return string(v) }

func (n *Negation) Eval(lookup func(string) (bool, bool)) (bool, error) {
	v, err := n.X.Eval(lookup)
	return !v, err
}

func (n *Negation) String() string { return "not " + paren(n.X) }

// Eval evaluates both operands; there is no short-circuit so undefined
// variables are reported regardless of the other operand's value.
func (b *Binary) Eval(lookup func(string) (bool, bool)) (bool, error) {
	l, err := b.L.Eval(lookup)
	if err != nil {
		return false, err
	}
	r, err := b.R.Eval(lookup)
	if err != nil {
		return false, err
	}
	return b.Op.apply(l, r), nil
}

func (b *Binary) String() string {
	return paren(b.L) + " " + b.Op.String() + " " + paren(b.R)
}

func paren(e Expr) string {
	if _, ok := e.(*Binary); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// Vars returns the variables of e in order of first appearance, reading left
// to right. It is the default variable order for a formula.
func Vars(e Expr) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch x := e.(type) {
		case Var:
			if !seen[string(x)] {
				seen[string(x)] = true
				out = append(out, string(x))
			}
		case *Negation:
			walk(x.X)
		case *Binary:
			walk(x.L)
			walk(x.R)
		}
	}
	walk(e)
	return out
}
