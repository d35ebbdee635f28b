package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anibalanto/cardascii-24game/internal/game/card"
	"github.com/anibalanto/cardascii-24game/internal/game/expr"
	"github.com/anibalanto/cardascii-24game/internal/game/table"
)

func hand(values ...int) table.Hand {
	kinds := []card.Kind{card.Sword, card.Club, card.Gold, card.Cup}
	var h table.Hand
	for i, v := range values {
		if v == card.JokerValue {
			h[i] = card.Card{Kind: card.Joker, Value: card.JokerValue}
			continue
		}
		h[i] = card.Card{Kind: kinds[i], Value: v}
	}
	return h
}

func TestCheckUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hand     []int64
		literals []int64
		kind     UsageKind
	}{
		{name: "exact permutation", hand: []int64{1, 2, 3, 4}, literals: []int64{4, 3, 2, 1}},
		{name: "duplicates matched", hand: []int64{4, 4, 4, 4}, literals: []int64{4, 4, 4, 4}},
		{name: "value missing", hand: []int64{1, 2, 3, 4}, literals: []int64{3, 8}, kind: ValueNotInHand},
		{name: "value used twice", hand: []int64{1, 2, 3, 4}, literals: []int64{1, 1, 2, 3}, kind: ValueNotInHand},
		{name: "too many literals", hand: []int64{6, 6, 1, 2}, literals: []int64{6, 6, 6, 1, 2}, kind: ValueNotInHand},
		{name: "cards left", hand: []int64{1, 2, 3, 4}, literals: []int64{1, 2, 3}, kind: LeftoverCards},
		{name: "no literals", hand: []int64{1, 2, 3, 4}, kind: LeftoverCards},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckUsage(tt.hand, tt.literals)
			if tt.kind == 0 {
				assert.NoError(t, err)
				return
			}
			var ue *UsageError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.kind, ue.Kind)
		})
	}
}

func TestCheckUsage_Details(t *testing.T) {
	t.Parallel()

	err := CheckUsage([]int64{1, 2, 3, 4}, []int64{3, 8})
	assert.ErrorIs(t, err, ErrValueNotInHand)
	assert.Equal(t, "value not in hand: 8", err.Error())

	err = CheckUsage([]int64{5, 5, 2, 1}, []int64{5, 2})
	assert.ErrorIs(t, err, ErrLeftoverCards)
	var ue *UsageError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, []int64{5, 1}, ue.Left)
}

func TestJudge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hand    table.Hand
		answer  string
		won     bool
		value   int64
		errLike error
	}{
		{name: "win", hand: hand(1, 2, 3, 4), answer: "(1+2+3)*4", won: true, value: 24},
		{name: "win padded", hand: hand(1, 2, 3, 4), answer: "4*(3+2+1)            ", won: true, value: 24},
		{name: "win with duplicates", hand: hand(6, 6, 6, 6), answer: "6+6+6+6", won: true, value: 24},
		{name: "misuse reaches 24", hand: hand(1, 2, 3, 4), answer: "4*4+4+4", value: 0, errLike: ErrValueNotInHand},
		{name: "value not in hand", hand: hand(1, 2, 3, 4), answer: "3*8", errLike: ErrValueNotInHand},
		{name: "leftover cards", hand: hand(2, 3, 4, 12), answer: "2*12", errLike: ErrLeftoverCards},
		{name: "wrong value", hand: hand(1, 2, 3, 4), answer: "1+2+3+4", value: 10, errLike: ErrWrongValue},
		{name: "syntax error", hand: hand(1, 2, 3, 4), answer: "(1+2", errLike: expr.ErrUnmatchedParen},
		{name: "dangling operator", hand: hand(1, 2, 3, 4), answer: "2+", errLike: expr.ErrTrailingInput},
		{name: "division by zero", hand: hand(1, 0, 3, 4), answer: "1/0", errLike: expr.ErrDivisionByZero},
		{name: "blank answer", hand: hand(1, 2, 3, 4), answer: "    ", errLike: expr.ErrEmptyInput},
		{name: "joker as zero", hand: hand(0, 4, 6, 1), answer: "4*6+0*1", won: true, value: 24},
		{name: "joker must be used", hand: hand(0, 4, 6, 1), answer: "4*6*1", errLike: ErrLeftoverCards},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := Judge(tt.hand, tt.answer, 1)
			assert.Equal(t, tt.won, v.Won())
			if tt.won {
				assert.Equal(t, table.Winner(1), v.Outcome)
				assert.NoError(t, v.Err)
				assert.Equal(t, tt.value, v.Value)
				return
			}
			assert.Equal(t, table.Gaming(), v.Outcome)
			assert.ErrorIs(t, v.Err, tt.errLike)
			if tt.value != 0 {
				assert.Equal(t, tt.value, v.Value)
			}
		})
	}
}

func TestVerdict_Evaluated(t *testing.T) {
	t.Parallel()

	assert.True(t, Judge(hand(1, 2, 3, 4), "(1+2+3)*4", 0).Evaluated())
	assert.True(t, Judge(hand(1, 2, 3, 4), "1+2+3+4", 0).Evaluated())
	assert.True(t, Judge(hand(1, 2, 3, 4), "3*8", 0).Evaluated())
	assert.False(t, Judge(hand(1, 2, 3, 4), "(1+2", 0).Evaluated())
	assert.False(t, Judge(hand(1, 0, 3, 4), "4/0", 0).Evaluated())
}

func TestValidator_Options(t *testing.T) {
	t.Parallel()

	v := New(WithTarget(10))
	assert.Equal(t, int64(10), v.Target())
	assert.True(t, v.Judge(hand(1, 2, 3, 4), "1+2+3+4", 0).Won())
	assert.False(t, v.Judge(hand(1, 2, 3, 4), "(1+2+3)*4", 0).Won())

	excluded := New(WithJokerPolicy(JokerExcluded))
	assert.Equal(t, []int64{4, 6}, excluded.HandValues(hand(0, 4, 6, 0)))
	assert.True(t, excluded.Judge(hand(0, 4, 6, 0), "4*6", 0).Won())
	assert.False(t, New().Judge(hand(0, 4, 6, 0), "4*6", 0).Won())
}

func TestParseJokerPolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseJokerPolicy("excluded")
	require.NoError(t, err)
	assert.Equal(t, JokerExcluded, p)
	assert.Equal(t, "excluded", p.String())

	p, err = ParseJokerPolicy("")
	require.NoError(t, err)
	assert.Equal(t, JokerAsZero, p)

	_, err = ParseJokerPolicy("wild")
	assert.Error(t, err)
}
