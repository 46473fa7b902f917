package formula

import "github.com/matzehuels/robdd/pkg/bdd"

// Interpreter is a [bdd.Oracle] that walks the syntax tree on every call.
type Interpreter struct {
	expr Expr
}

// NewInterpreter returns an oracle for e.
func NewInterpreter(e Expr) *Interpreter {
	return &Interpreter{expr: e}
}

// Eval evaluates the formula under a. Variables the formula mentions but a
// does not bind produce an [*UndefinedVariableError].
func (in *Interpreter) Eval(a bdd.Assignment) (bool, error) {
	return in.expr.Eval(a.Lookup)
}

var _ bdd.Oracle = (*Interpreter)(nil)
