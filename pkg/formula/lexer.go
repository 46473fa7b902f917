package formula

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a lexical token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Const   // true, false, 0, 1
	Not     // ! ~ not
	And     // & && and
	Xor     // ^ xor
	Or      // | || or
	Implies // -> =>
	Iff     // <-> <=>
	LParen
	RParen
)

var kindNames = [...]string{
	EOF:     "end of input",
	Ident:   "identifier",
	Const:   "constant",
	Not:     "'not'",
	And:     "'and'",
	Xor:     "'xor'",
	Or:      "'or'",
	Implies: "'->'",
	Iff:     "'<->'",
	LParen:  "'('",
	RParen:  "')'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one lexeme with its byte offset in the source.
type Token struct {
	Kind  Kind
	Value string
	Pos   int
}

var keywords = map[string]Kind{
	"not":   Not,
	"and":   And,
	"xor":   Xor,
	"or":    Or,
	"true":  Const,
	"false": Const,
}

// symbols is matched longest first.
var symbols = []struct {
	text string
	kind Kind
}{
	{"<->", Iff},
	{"<=>", Iff},
	{"->", Implies},
	{"=>", Implies},
	{"&&", And},
	{"||", Or},
	{"!", Not},
	{"~", Not},
	{"&", And},
	{"^", Xor},
	{"|", Or},
	{"(", LParen},
	{")", RParen},
}

type lexer struct {
	src    string
	pos    int
	tokens []Token
}

// Lex splits src into tokens, ending with an EOF token.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src}
	if err := l.scan(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) scan() error {
next:
	for l.pos < len(l.src) {
		ch, width := utf8.DecodeRuneInString(l.src[l.pos:])

		if unicode.IsSpace(ch) {
			l.pos += width
			continue
		}

		if ch == '0' || ch == '1' {
			if l.pos+1 == len(l.src) || !isIdentChar(rune(l.src[l.pos+1])) {
				l.emit(Const, string(ch), 1)
				continue
			}
		}

		if isIdentStart(ch) {
			l.lexIdent()
			continue
		}

		for _, s := range symbols {
			if len(l.src)-l.pos >= len(s.text) && l.src[l.pos:l.pos+len(s.text)] == s.text {
				l.emit(s.kind, s.text, len(s.text))
				continue next
			}
		}

		return &SyntaxError{Pos: l.pos, Msg: fmt.Sprintf("unexpected character %q", ch)}
	}
	l.tokens = append(l.tokens, Token{Kind: EOF, Pos: l.pos})
	return nil
}

func (l *lexer) lexIdent() {
	start := l.pos
	for l.pos < len(l.src) && isIdentChar(rune(l.src[l.pos])) {
		l.pos++
	}
	word := l.src[start:l.pos]
	kind := Ident
	if k, ok := keywords[word]; ok {
		kind = k
	}
	l.tokens = append(l.tokens, Token{Kind: kind, Value: word, Pos: start})
}

func (l *lexer) emit(k Kind, text string, width int) {
	l.tokens = append(l.tokens, Token{Kind: k, Value: text, Pos: l.pos})
	l.pos += width
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch < unicode.MaxASCII && unicode.IsLetter(ch))
}

func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
