package bdd

// Strategy selects how the builder walks the decomposition tree. Both
// strategies visit assignments in the same order and produce the same
// diagram.
type Strategy int

const (
	// Recursive descends with one Go call frame per variable.
	Recursive Strategy = iota
	// Iterative uses an explicit worklist, for orders too long to recurse on.
	Iterative
)

var strategyNames = map[Strategy]string{
	Recursive: "recursive",
	Iterative: "iterative",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseStrategy maps "recursive" or "iterative" to a Strategy. The empty
// string selects [Recursive].
func ParseStrategy(name string) (Strategy, bool) {
	if name == "" {
		return Recursive, true
	}
	for s, n := range strategyNames {
		if n == name {
			return s, true
		}
	}
	return Recursive, false
}

type options struct {
	strategy Strategy
}

// Option configures a [Builder].
type Option func(*options)

// WithStrategy selects the traversal strategy. The default is [Recursive].
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// Builder performs Shannon decomposition of a Boolean function over a fixed
// variable order. It holds no state between calls: all mutable state lives in
// the [Store] a diagram is built into.
type Builder struct {
	opts options
}

// NewBuilder returns a builder configured by opts.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, o := range opts {
		o(&b.opts)
	}
	return b
}

// Build constructs the diagram of oracle over order in a fresh store.
//
// The order is validated before any oracle call. The oracle is then
// consulted once per total assignment (2^len(order) calls), low branch
// before high branch. An oracle error aborts the construction and is
// returned as an [*OracleError].
func (b *Builder) Build(oracle Oracle, order []string) (*Diagram, error) {
	return b.BuildInto(NewStore(), oracle, order)
}

// BuildInto is like [Builder.Build] but allocates nodes in s. Functions that
// are equal under the same order get the same root handle in s.
func (b *Builder) BuildInto(s *Store, oracle Oracle, order []string) (*Diagram, error) {
	if oracle == nil {
		return nil, ErrNilOracle
	}
	if err := ValidateOrder(order); err != nil {
		return nil, err
	}

	run := &construction{
		store:  s,
		oracle: oracle,
		order:  append([]string(nil), order...),
	}
	run.assign = newAssignment(run.order)

	var (
		root Handle
		err  error
	)
	switch b.opts.strategy {
	case Iterative:
		root, err = run.iterative()
	default:
		root, err = run.recursive(0)
	}
	if err != nil {
		return nil, err
	}

	return &Diagram{
		store:       s,
		root:        root,
		order:       run.order,
		evaluations: run.evaluations,
	}, nil
}

// construction is the per-call state of one build.
type construction struct {
	store       *Store
	oracle      Oracle
	order       []string
	assign      Assignment
	evaluations int
}

// leaf evaluates the oracle on the current, total assignment.
func (c *construction) leaf() (Handle, error) {
	c.evaluations++
	v, err := c.oracle.Eval(c.assign)
	if err != nil {
		return False, &OracleError{
			Assignment: c.assign.Map(),
			Bits:       c.assign.String(),
			Err:        err,
		}
	}
	if v {
		return True, nil
	}
	return False, nil
}

func (c *construction) recursive(depth int) (Handle, error) {
	if depth == len(c.order) {
		return c.leaf()
	}

	c.assign.vals[depth] = false
	low, err := c.recursive(depth + 1)
	if err != nil {
		return False, err
	}

	c.assign.vals[depth] = true
	high, err := c.recursive(depth + 1)
	if err != nil {
		return False, err
	}

	return c.store.MakeNode(c.order[depth], low, high), nil
}

// frame is one pending decomposition step of the iterative strategy.
type frame struct {
	depth int
	stage uint8 // 0: descend low, 1: descend high, 2: combine
	low   Handle
}

func (c *construction) iterative() (Handle, error) {
	n := len(c.order)
	stack := make([]frame, 1, n+1)
	var ret Handle

	for len(stack) > 0 {
		top := len(stack) - 1
		f := stack[top]

		if f.depth == n {
			h, err := c.leaf()
			if err != nil {
				return False, err
			}
			ret = h
			stack = stack[:top]
			continue
		}

		switch f.stage {
		case 0:
			c.assign.vals[f.depth] = false
			stack[top].stage = 1
			stack = append(stack, frame{depth: f.depth + 1})
		case 1:
			stack[top].low = ret
			stack[top].stage = 2
			c.assign.vals[f.depth] = true
			stack = append(stack, frame{depth: f.depth + 1})
		default:
			ret = c.store.MakeNode(c.order[f.depth], f.low, ret)
			stack = stack[:top]
		}
	}
	return ret, nil
}
