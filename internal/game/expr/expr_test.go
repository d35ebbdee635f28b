package expr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		value    int64
		literals []int64
	}{
		{name: "single literal", input: "3", value: 3, literals: []int64{3}},
		{name: "parenthesized literal", input: " (  2 )", value: 2, literals: []int64{2}},
		{name: "spaces around", input: "  24   ", value: 24, literals: []int64{24}},
		{name: "addition", input: " 1 +  2 ", value: 3, literals: []int64{1, 2}},
		{name: "left to right", input: " 12 + 6 - 4+  3", value: 17, literals: []int64{12, 6, 4, 3}},
		{name: "precedence", input: " 1 + 2*3 + 4", value: 11, literals: []int64{1, 2, 3, 4}},
		{name: "terms", input: " 12 *2 /  3", value: 8, literals: []int64{12, 2, 3}},
		{name: "chained division", input: " 48 /  3/2", value: 8, literals: []int64{48, 3, 2}},
		{name: "parens", input: " 2* (  3 + 4 ) ", value: 14, literals: []int64{2, 3, 4}},
		{name: "mixed", input: "  2*2 / ( 5 - 1) + 3", value: 4, literals: []int64{2, 2, 5, 1, 3}},
		{name: "compact", input: "2*(3+4)", value: 14, literals: []int64{2, 3, 4}},
		{name: "integer division truncates", input: "7/2", value: 3, literals: []int64{7, 2}},
		{name: "negative intermediate", input: "(1-4)/2", value: -1, literals: []int64{1, 4, 2}},
		{name: "nested", input: "((1+2)*(3+(4)))", value: 21, literals: []int64{1, 2, 3, 4}},
		{name: "win", input: "(1+2+3)*4", value: 24, literals: []int64{1, 2, 3, 4}},
		{name: "space padded", input: "8*3                        ", value: 24, literals: []int64{8, 3}},
		{name: "tabs and newline", input: "\t6*4\n", value: 24, literals: []int64{6, 4}},
		{name: "zero literal", input: "0+24", value: 24, literals: []int64{0, 24}},
		{name: "leading zeros", input: "007", value: 7, literals: []int64{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := Evaluate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.value, r.Value)
			assert.Equal(t, tt.literals, r.Literals)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		pos   int
	}{
		{name: "empty", input: "", kind: EmptyInput, pos: 0},
		{name: "blank padding", input: "      ", kind: EmptyInput, pos: 6},
		{name: "dangling operator", input: "2+", kind: TrailingInput, pos: 1},
		{name: "dangling operator with space", input: "2 * ", kind: TrailingInput, pos: 2},
		{name: "missing close paren", input: "(1+2", kind: UnmatchedParen, pos: 0},
		{name: "stray close paren", input: "1+2)", kind: UnmatchedParen, pos: 3},
		{name: "division by zero", input: "1/0", kind: DivisionByZero, pos: 1},
		{name: "division by zero expression", input: "4/(2-2)", kind: DivisionByZero, pos: 1},
		{name: "two literals", input: "2 3", kind: TrailingInput, pos: 2},
		{name: "unary minus", input: "-3", kind: TrailingInput, pos: 0},
		{name: "double operator", input: "2+*3", kind: TrailingInput, pos: 1},
		{name: "empty parens", input: "()", kind: TrailingInput, pos: 0},
		{name: "decimal", input: "4.5*2", kind: InvalidLiteral, pos: 0},
		{name: "letters", input: "x+1", kind: InvalidLiteral, pos: 0},
		{name: "glued letters", input: "3a+1", kind: InvalidLiteral, pos: 0},
		{name: "overflow", input: "99999999999999999999", kind: InvalidLiteral, pos: 0},
		{name: "exponent", input: "2^3", kind: InvalidLiteral, pos: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Evaluate(tt.input)
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.kind, pe.Kind)
			assert.Equal(t, tt.pos, pe.Pos)
		})
	}
}

func TestEvaluate_ErrorsIs(t *testing.T) {
	t.Parallel()

	_, err := Evaluate("1/0")
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.NotErrorIs(t, err, ErrTrailingInput)

	_, err = Evaluate("(1+2")
	assert.ErrorIs(t, err, ErrUnmatchedParen)

	_, err = Evaluate("")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Equal(t, "empty input at position 0", err.Error())
}

func TestEvaluate_PartialLiterals(t *testing.T) {
	t.Parallel()

	r, err := Evaluate("3*4+2/0")
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.Equal(t, []int64{3, 4, 2, 0}, r.Literals)

	lits, err := Literals("2+")
	assert.ErrorIs(t, err, ErrTrailingInput)
	assert.Equal(t, []int64{2}, lits)
}
