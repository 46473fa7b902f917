package formula

import "fmt"

// SyntaxError reports a malformed formula.
type SyntaxError struct {
	Pos int // byte offset in the source
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// Parse parses a Boolean formula.
//
// Operators, from loosest to tightest binding:
//
//	<->  <=>            equivalence
//	->   =>             implication (right associative)
//	or   |   ||         disjunction
//	xor  ^              exclusive or
//	and  &   &&         conjunction
//	not  !   ~          negation
//
// Constants are true, false, 0 and 1. Identifiers start with a letter or
// underscore and continue with letters, digits or underscores.
func Parse(src string) (Expr, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	e, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Kind != EOF {
		return nil, p.unexpected(t)
	}
	return e, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// package-level formulas.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) next() Token {
	t := p.tokens[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

func (p *parser) unexpected(t Token) error {
	if t.Kind == EOF {
		return &SyntaxError{Pos: t.Pos, Msg: "unexpected end of input"}
	}
	return &SyntaxError{Pos: t.Pos, Msg: fmt.Sprintf("unexpected %s %q", t.Kind, t.Value)}
}

// parseLeft parses a left-associative chain of kind k over operands from sub.
func (p *parser) parseLeft(k Kind, op Op, sub func() (Expr, error)) (Expr, error) {
	left, err := sub()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == k {
		p.next()
		right, err := sub()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseIff() (Expr, error) {
	return p.parseLeft(Iff, OpIff, p.parseImplies)
}

func (p *parser) parseImplies() (Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != Implies {
		return left, nil
	}
	p.next()
	right, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: OpImplies, L: left, R: right}, nil
}

func (p *parser) parseOr() (Expr, error) {
	return p.parseLeft(Or, OpOr, p.parseXor)
}

func (p *parser) parseXor() (Expr, error) {
	return p.parseLeft(Xor, OpXor, p.parseAnd)
}

func (p *parser) parseAnd() (Expr, error) {
	return p.parseLeft(And, OpAnd, p.parseUnary)
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek().Kind == Not {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Negation{X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	switch t.Kind {
	case Ident:
		return Var(t.Value), nil
	case Const:
		return Lit(t.Value == "true" || t.Value == "1"), nil
	case LParen:
		e, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.Kind != RParen {
			return nil, p.unexpected(c)
		}
		return e, nil
	default:
		return nil, p.unexpected(t)
	}
}
