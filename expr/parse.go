package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts an infix mathematical string into an expression tree.
//
// Supported syntax: + - * / ^ (with ** accepted as an alias for power),
// unary minus, parentheses, numeric literals, and feature references
// X0, X1, ... Power is right-associative and binds tighter than
// multiplication, as in mathematical notation.
//
// Go's own parser is deliberately not used here: it assigns ^ the XOR
// precedence, which binds looser than *, so 3*X0^2 would parse as (3*X0)^2.
func Parse(src string) (Expr, error) {
	p := &parser{lex: lexer{src: src}}
	if err := p.next(); err != nil {
		return nil, err
	}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", p.tok.text, p.tok.pos)
	}
	return e, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) lex() (token, error) {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t' || l.src[l.pos] == '\n') {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}
	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '+':
		l.pos++
		return token{tokPlus, "+", start}, nil
	case c == '-':
		l.pos++
		return token{tokMinus, "-", start}, nil
	case c == '*':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '*' {
			l.pos++
			return token{tokCaret, "**", start}, nil
		}
		return token{tokStar, "*", start}, nil
	case c == '/':
		l.pos++
		return token{tokSlash, "/", start}, nil
	case c == '^':
		l.pos++
		return token{tokCaret, "^", start}, nil
	case c == '(':
		l.pos++
		return token{tokLParen, "(", start}, nil
	case c == ')':
		l.pos++
		return token{tokRParen, ")", start}, nil
	case c >= '0' && c <= '9' || c == '.':
		return l.lexNumber()
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return token{tokIdent, l.src[start:l.pos], start}, nil
	}
	return token{}, fmt.Errorf("unexpected character %q at position %d", c, start)
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && (l.src[l.pos] >= '0' && l.src[l.pos] <= '9' || l.src[l.pos] == '.') {
		l.pos++
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.pos++
		}
	}
	text := l.src[start:l.pos]
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return token{}, fmt.Errorf("malformed number %q at position %d", text, start)
	}
	return token{tokNum, text, start}, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) next() error {
	t, err := p.lex.lex()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := OpAdd
		if p.tok.kind == tokMinus {
			op = OpSub
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := OpMul
		if p.tok.kind == tokSlash {
			op = OpDiv
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.tok.kind {
	case tokMinus:
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Neg{Operand: operand}, nil
	case tokPlus:
		if err := p.next(); err != nil {
			return nil, err
		}
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokCaret {
		return base, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	// Right-associative; the exponent may itself be signed (X0^-2).
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: OpPow, Left: base, Right: exp}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.tok
	switch tok.kind {
	case tokNum:
		if err := p.next(); err != nil {
			return nil, err
		}
		v, _ := strconv.ParseFloat(tok.text, 64)
		isInt := !strings.ContainsAny(tok.text, ".eE")
		return &Num{Value: v, IsInt: isInt}, nil
	case tokIdent:
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokLParen {
			return nil, fmt.Errorf("function call %q at position %d: only arithmetic operators are supported", tok.text, tok.pos)
		}
		idx, ok := featureIndex(tok.text)
		if !ok {
			return nil, fmt.Errorf("unknown identifier %q at position %d: features must be named X0, X1, ...", tok.text, tok.pos)
		}
		return &Var{Index: idx}, nil
	case tokLParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis at position %d", p.tok.pos)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
}

func featureIndex(name string) (int, bool) {
	if len(name) < 2 || name[0] != 'X' {
		return 0, false
	}
	idx, err := strconv.Atoi(name[1:])
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
