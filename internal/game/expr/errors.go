package expr

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an answer could not be evaluated.
type ErrorKind int

const (
	EmptyInput ErrorKind = iota + 1
	UnmatchedParen
	TrailingInput
	InvalidLiteral
	DivisionByZero
)

var kindMessages = map[ErrorKind]string{
	EmptyInput:     "empty input",
	UnmatchedParen: "unmatched parenthesis",
	TrailingInput:  "unexpected input",
	InvalidLiteral: "invalid number",
	DivisionByZero: "division by zero",
}

func (k ErrorKind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Sentinels for errors.Is checks against a *ParseError.
var (
	ErrEmptyInput     = &ParseError{Kind: EmptyInput}
	ErrUnmatchedParen = &ParseError{Kind: UnmatchedParen}
	ErrTrailingInput  = &ParseError{Kind: TrailingInput}
	ErrInvalidLiteral = &ParseError{Kind: InvalidLiteral}
	ErrDivisionByZero = &ParseError{Kind: DivisionByZero}
)

// ParseError reports a parse or evaluation failure at byte offset Pos.
type ParseError struct {
	Kind ErrorKind
	Pos  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Kind, e.Pos)
}

// Is matches any ParseError of the same kind, whatever its position.
func (e *ParseError) Is(target error) bool {
	var t *ParseError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}
