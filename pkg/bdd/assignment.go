package bdd

// Assignment maps the variables of an order to Boolean values.
//
// The builder hands the same Assignment to every oracle call and rewrites its
// values between calls, so oracles must not retain it. Use [Assignment.Map]
// or [Assignment.Clone] to keep a copy.
type Assignment struct {
	vars []string
	vals []bool
	pos  map[string]int
}

func newAssignment(order []string) Assignment {
	pos := make(map[string]int, len(order))
	for i, v := range order {
		pos[v] = i
	}
	return Assignment{vars: order, vals: make([]bool, len(order)), pos: pos}
}

// NewAssignment builds an assignment over order from values. Variables of
// order missing from values are false.
func NewAssignment(order []string, values map[string]bool) Assignment {
	a := newAssignment(append([]string(nil), order...))
	for i, v := range a.vars {
		a.vals[i] = values[v]
	}
	return a
}

// Lookup returns the value bound to name. ok is false when name is not part
// of the order.
func (a Assignment) Lookup(name string) (value, ok bool) {
	i, ok := a.pos[name]
	if !ok {
		return false, false
	}
	return a.vals[i], true
}

// At returns the value of the i-th variable of the order.
func (a Assignment) At(i int) bool { return a.vals[i] }

// Var returns the name of the i-th variable of the order.
func (a Assignment) Var(i int) string { return a.vars[i] }

// Len returns the number of variables.
func (a Assignment) Len() int { return len(a.vars) }

// Map returns the assignment as a fresh map.
func (a Assignment) Map() map[string]bool {
	m := make(map[string]bool, len(a.vars))
	for i, v := range a.vars {
		m[v] = a.vals[i]
	}
	return m
}

// Clone returns a copy that is not affected by later builder updates.
func (a Assignment) Clone() Assignment {
	vals := make([]bool, len(a.vals))
	copy(vals, a.vals)
	return Assignment{vars: a.vars, vals: vals, pos: a.pos}
}

// String renders the assignment as a bit string in order, e.g. "0110".
func (a Assignment) String() string {
	b := make([]byte, len(a.vals))
	for i, v := range a.vals {
		if v {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// Oracle is the Boolean function being represented. Eval is called with a
// total assignment of the build order and must be deterministic.
type Oracle interface {
	Eval(a Assignment) (bool, error)
}

// OracleFunc adapts an ordinary function to [Oracle].
type OracleFunc func(a Assignment) (bool, error)

// Eval calls f(a).
func (f OracleFunc) Eval(a Assignment) (bool, error) { return f(a) }
