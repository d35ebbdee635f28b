// Package expr parses and evaluates the arithmetic answers of the 24 game.
//
// Grammar, whitespace allowed anywhere between tokens:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := integer | '(' expr ')'
//
// Operators are left associative, '*' and '/' bind tighter than '+' and '-',
// and division truncates toward zero. Literals are non-negative integers.
package expr

import (
	"math"
	"unicode"
	"unicode/utf8"
)

// Result is a successful evaluation.
type Result struct {
	Value int64
	// Literals holds every integer literal in the order the parser consumed it.
	Literals []int64
}

// Evaluate parses input and computes its value in a single pass.
// On failure the returned Result still carries the literals read before the error.
func Evaluate(input string) (Result, error) {
	p := &parser{src: input}
	p.skipSpace()
	if p.eof() {
		return Result{}, &ParseError{Kind: EmptyInput, Pos: p.pos}
	}

	v, err := p.expr()
	if err != nil {
		return Result{Literals: p.literals}, err
	}

	p.skipSpace()
	if !p.eof() {
		kind := TrailingInput
		if p.peek() == ')' {
			kind = UnmatchedParen
		}
		return Result{Literals: p.literals}, &ParseError{Kind: kind, Pos: p.pos}
	}
	return Result{Value: v, Literals: p.literals}, nil
}

// Literals returns only the literal sequence of input.
func Literals(input string) ([]int64, error) {
	r, err := Evaluate(input)
	return r.Literals, err
}

type parser struct {
	src      string
	pos      int
	literals []int64
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *parser) expr() (int64, error) {
	acc, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		op := p.peek()
		if op != '+' && op != '-' {
			return acc, nil
		}
		p.pos++
		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			acc += rhs
		} else {
			acc -= rhs
		}
	}
}

func (p *parser) term() (int64, error) {
	acc, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		op := p.peek()
		if op != '*' && op != '/' {
			return acc, nil
		}
		opPos := p.pos
		p.pos++
		rhs, err := p.factor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			acc *= rhs
			continue
		}
		if rhs == 0 {
			return 0, &ParseError{Kind: DivisionByZero, Pos: opPos}
		}
		acc /= rhs
	}
}

func (p *parser) factor() (int64, error) {
	p.skipSpace()
	start := p.pos
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return 0, &ParseError{Kind: UnmatchedParen, Pos: start}
		}
		p.pos++
		return v, nil
	case isDigit(c):
		return p.integer()
	case p.eof(), isOperator(c), c == ')':
		// an operand is missing: the operator before it is left dangling
		return 0, &ParseError{Kind: TrailingInput, Pos: p.danglingPos(start)}
	default:
		return 0, &ParseError{Kind: InvalidLiteral, Pos: start}
	}
}

func (p *parser) integer() (int64, error) {
	start := p.pos
	var v int64
	for isDigit(p.peek()) {
		d := int64(p.peek() - '0')
		if v > (math.MaxInt64-d)/10 {
			return 0, &ParseError{Kind: InvalidLiteral, Pos: start}
		}
		v = v*10 + d
		p.pos++
	}
	// digits glued to anything that is not an operator, a parenthesis or a space
	if !p.eof() {
		r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
		if r != '(' && r != ')' && !isOperator(p.peek()) && !unicode.IsSpace(r) {
			return 0, &ParseError{Kind: InvalidLiteral, Pos: start}
		}
	}
	p.literals = append(p.literals, v)
	return v, nil
}

// danglingPos walks back from pos to the operator that is missing its operand.
func (p *parser) danglingPos(pos int) int {
	for i := pos - 1; i >= 0; i-- {
		c := p.src[i]
		if isOperator(c) || c == '(' {
			return i
		}
		if c != ' ' && c != '\t' {
			break
		}
	}
	return pos
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}
