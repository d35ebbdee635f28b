package table

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anibalanto/cardascii-24game/internal/game/card"
)

func smallDeck(t *testing.T, values ...int) *card.Deck {
	t.Helper()
	d := card.NewDeck()
	for _, v := range values {
		_, err := d.Add(card.Cup, v)
		require.NoError(t, err)
	}
	return d
}

func newTable(t *testing.T, deck *card.Deck, opts ...Option) *State {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(42, 24)))}, opts...)
	s, err := New(deck, 2, opts...)
	require.NoError(t, err)
	require.NoError(t, s.CheckConservation())
	return s
}

func TestNew(t *testing.T) {
	t.Parallel()

	s := newTable(t, card.NewSpanishDeck(2))
	c := s.Counts()
	assert.Equal(t, 50, c.Hidden)
	assert.Equal(t, 0, c.Visible)
	assert.Equal(t, []int{0, 0}, c.Players)
	assert.False(t, s.TurnOpen())
	assert.Equal(t, 2, s.Players())

	_, err := New(card.NewSpanishDeck(2), 1)
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestGiveCards(t *testing.T) {
	t.Parallel()

	s := newTable(t, card.NewSpanishDeck(2))
	require.NoError(t, s.GiveCards())
	assert.True(t, s.TurnOpen())
	assert.Equal(t, 1, s.Turn())
	assert.Equal(t, 46, s.Counts().Hidden)

	h, ok := s.Hand()
	require.True(t, ok)
	for i := range HandSize {
		c, ok := s.HandCard(i)
		require.True(t, ok)
		assert.Equal(t, h[i], c)
	}
	_, ok = s.HandCard(HandSize)
	assert.False(t, ok)

	// a second deal while the hand is open is refused
	assert.ErrorIs(t, s.GiveCards(), ErrTurnOpen)
	assert.NoError(t, s.CheckConservation())
}

func TestEndTurn(t *testing.T) {
	t.Parallel()

	s := newTable(t, card.NewSpanishDeck(0))

	require.NoError(t, s.GiveCards())
	require.NoError(t, s.EndTurn(Tie()))
	assert.Equal(t, 4, s.Counts().Accumulation)
	assert.False(t, s.TurnOpen())

	require.NoError(t, s.GiveCards())
	require.NoError(t, s.EndTurn(Gaming()))
	assert.True(t, s.TurnOpen(), "gaming leaves the hand on the table")
	require.NoError(t, s.EndTurn(Abandoned()))
	assert.True(t, s.TurnOpen())

	require.NoError(t, s.EndTurn(Winner(1)))
	c := s.Counts()
	assert.Equal(t, 0, c.Accumulation)
	assert.Equal(t, []int{0, 8}, c.Players, "winner takes the accumulated tie and the hand")
	assert.Len(t, s.PlayerPile(1), 8)
	assert.Nil(t, s.PlayerPile(5))

	require.NoError(t, s.GiveCards())
	assert.ErrorIs(t, s.EndTurn(Winner(2)), ErrBadPlayer)
	assert.True(t, s.TurnOpen())
	assert.NoError(t, s.CheckConservation())
}

func TestGiveCards_ReclaimsWhenHiddenRunsLow(t *testing.T) {
	t.Parallel()

	s := newTable(t, smallDeck(t, 1, 2, 3, 4, 5, 6))

	require.NoError(t, s.GiveCards())
	require.NoError(t, s.EndTurn(Winner(0)))
	require.Equal(t, 2, s.Counts().Hidden)
	require.Equal(t, []int{4, 0}, s.Counts().Players)

	require.NoError(t, s.GiveCards())
	c := s.Counts()
	assert.Equal(t, 4, c.Visible)
	assert.Equal(t, 2, c.Hidden)
	assert.Equal(t, []int{0, 0}, c.Players, "won piles go back into circulation")
	assert.NoError(t, s.CheckConservation())
}

func TestGiveCards_ReclaimsAccumulation(t *testing.T) {
	t.Parallel()

	s := newTable(t, smallDeck(t, 1, 2, 3, 4, 5))
	require.NoError(t, s.GiveCards())
	require.NoError(t, s.EndTurn(Tie()))
	require.NoError(t, s.GiveCards())
	assert.Equal(t, 0, s.Counts().Accumulation)
	assert.NoError(t, s.CheckConservation())
}

func TestGiveCards_InsufficientDeck(t *testing.T) {
	t.Parallel()

	s := newTable(t, smallDeck(t, 1, 2, 3))
	err := s.GiveCards()
	assert.ErrorIs(t, err, ErrInsufficientCards)
	assert.False(t, s.TurnOpen())
	assert.Equal(t, 3, s.Counts().Hidden)
	assert.Equal(t, 0, s.Turn())
	assert.NoError(t, s.CheckConservation())
}

func TestWithoutJokers(t *testing.T) {
	t.Parallel()

	s := newTable(t, card.NewSpanishDeck(2), WithoutJokers())
	assert.Equal(t, 48, s.Counts().Hidden)

	for range 40 {
		require.NoError(t, s.GiveCards())
		h, ok := s.Hand()
		require.True(t, ok)
		for _, c := range h {
			assert.False(t, c.IsJoker())
		}
		require.NoError(t, s.EndTurn(Tie()))
		require.NoError(t, s.CheckConservation())
	}
}

func TestConservation_RandomOperations(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 9))
	s, err := New(card.NewSpanishDeck(2), 3, WithRand(rng))
	require.NoError(t, err)

	for range 500 {
		if !s.TurnOpen() {
			require.NoError(t, s.GiveCards())
		}
		var o Outcome
		switch rng.IntN(4) {
		case 0:
			o = Winner(rng.IntN(3))
		case 1:
			o = Tie()
		case 2:
			o = Gaming()
		default:
			o = Abandoned()
		}
		require.NoError(t, s.EndTurn(o))
		require.NoError(t, s.CheckConservation())
	}
}

func TestHand_Values(t *testing.T) {
	t.Parallel()

	h := Hand{{Kind: card.Cup, Value: 1}, {Kind: card.Gold, Value: 12}, {Kind: card.Joker}, {Kind: card.Sword, Value: 7}}
	assert.Equal(t, []int{1, 12, 0, 7}, h.Values())
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "winner(1)", Winner(1).String())
	assert.Equal(t, "tie", Tie().String())
	assert.True(t, Tie().Ends())
	assert.False(t, Gaming().Ends())
	assert.False(t, Abandoned().Ends())
}
