// Package table owns the piles of one 24 game table and moves card ids between them.
package table

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/anibalanto/cardascii-24game/internal/game/card"
)

// HandSize is the number of cards dealt for every turn.
const HandSize = 4

var (
	// ErrInsufficientCards means the deck cannot fill a single hand even after reclamation.
	ErrInsufficientCards = errors.New("deck holds fewer cards than one hand")
	// ErrTurnOpen is returned when a deal is requested while a hand is still on the table.
	ErrTurnOpen = errors.New("a turn is already open")
	// ErrNoPlayers is returned when a table is created with fewer than two seats.
	ErrNoPlayers = errors.New("a table needs at least two players")
	// ErrBadPlayer is returned for a seat index outside the table.
	ErrBadPlayer = errors.New("player index out of range")
)

// Hand is the snapshot of the cards currently in play.
type Hand [HandSize]card.Card

// Values returns the face values of the hand in deal order.
func (h Hand) Values() []int {
	vals := make([]int, len(h))
	for i, c := range h {
		vals[i] = c.Value
	}
	return vals
}

// Option customizes a State.
type Option func(*State)

// WithRand makes every shuffle of the table use rng.
func WithRand(rng *rand.Rand) Option {
	return func(s *State) { s.rng = rng }
}

// WithoutJokers keeps jokers out of circulation.
func WithoutJokers() Option {
	return func(s *State) { s.noJokers = true }
}

// State is the table: one deck and every pile its card ids can live on.
// It is not safe for concurrent use; a table session owns it exclusively.
type State struct {
	deck         *card.Deck
	hidden       *card.Stack
	visible      *card.Stack
	players      []*card.Stack
	accumulation *card.Stack
	// ids kept off the table (jokers when they are not playable)
	reserve *card.Stack

	turn     int
	rng      *rand.Rand
	noJokers bool
}

// New creates a table for the given number of players with every card shuffled
// into the hidden pile.
func New(deck *card.Deck, players int, opts ...Option) (*State, error) {
	if players < 2 {
		return nil, ErrNoPlayers
	}

	s := &State{
		deck:         deck,
		visible:      card.NewStack(true),
		players:      make([]*card.Stack, players),
		accumulation: card.NewStack(false),
		reserve:      card.NewStack(false),
	}
	for i := range s.players {
		s.players[i] = card.NewStack(false)
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.noJokers {
		s.hidden = card.NewStackOf(false, deck.IDsWithoutJokers())
		var jokers []card.ID
		for _, id := range deck.IDs() {
			if c, _ := deck.Get(id); c.IsJoker() {
				jokers = append(jokers, id)
			}
		}
		s.reserve = card.NewStackOf(false, jokers)
	} else {
		s.hidden = card.NewStackOf(false, deck.IDs())
	}
	s.hidden.Shuffle(s.rng)

	return s, nil
}

// GiveCards deals a new hand onto the visible pile, reclaiming and reshuffling
// every pile first when the hidden one cannot supply a full hand.
func (s *State) GiveCards() error {
	if !s.visible.IsEmpty() {
		return ErrTurnOpen
	}
	if s.hidden.Len() < HandSize {
		s.reclaim()
	}
	if !card.TransferN(s.hidden, s.visible, HandSize) {
		// put back whatever was moved so the visible pile stays empty between turns
		card.TransferAll(s.visible, s.hidden)
		return fmt.Errorf("deal turn %d: %w", s.turn+1, ErrInsufficientCards)
	}
	s.turn++
	return nil
}

// reclaim moves every card in circulation back into the hidden pile and shuffles it.
func (s *State) reclaim() {
	card.TransferAll(s.visible, s.hidden)
	for _, p := range s.players {
		card.TransferAll(p, s.hidden)
	}
	card.TransferAll(s.accumulation, s.hidden)
	s.hidden.Shuffle(s.rng)
}

// EndTurn applies the outcome of the open turn to the piles.
func (s *State) EndTurn(o Outcome) error {
	switch o.Kind {
	case OutcomeWinner:
		if o.Player < 0 || o.Player >= len(s.players) {
			return fmt.Errorf("end turn %d: %w: %d", s.turn, ErrBadPlayer, o.Player)
		}
		won := s.players[o.Player]
		card.TransferAll(s.accumulation, won)
		card.TransferAll(s.visible, won)
	case OutcomeTie:
		card.TransferAll(s.visible, s.accumulation)
	case OutcomeGaming, OutcomeAbandoned:
	default:
		return fmt.Errorf("end turn %d: unknown outcome %s", s.turn, o)
	}
	return nil
}

// HandCard returns the i-th card of the open hand.
func (s *State) HandCard(i int) (card.Card, bool) {
	id, ok := s.visible.At(i)
	if !ok {
		return card.Card{}, false
	}
	return s.deck.Get(id)
}

// Hand copies the open hand out of the table.
func (s *State) Hand() (Hand, bool) {
	var h Hand
	if s.visible.Len() != HandSize {
		return h, false
	}
	for i := range h {
		c, ok := s.HandCard(i)
		if !ok {
			return h, false
		}
		h[i] = c
	}
	return h, true
}

// Turn returns the number of hands dealt so far.
func (s *State) Turn() int {
	return s.turn
}

// TurnOpen reports whether a hand is on the table.
func (s *State) TurnOpen() bool {
	return !s.visible.IsEmpty()
}

// Players returns the number of seats.
func (s *State) Players() int {
	return len(s.players)
}

// Counts is the size of every pile.
type Counts struct {
	Hidden       int
	Visible      int
	Players      []int
	Accumulation int
}

// Counts returns the current pile sizes.
func (s *State) Counts() Counts {
	c := Counts{
		Hidden:       s.hidden.Len(),
		Visible:      s.visible.Len(),
		Players:      make([]int, len(s.players)),
		Accumulation: s.accumulation.Len(),
	}
	for i, p := range s.players {
		c.Players[i] = p.Len()
	}
	return c
}

// PlayerPile returns the ids won by the player at seat p.
func (s *State) PlayerPile(p int) []card.ID {
	if p < 0 || p >= len(s.players) {
		return nil
	}
	return s.players[p].IDs()
}

// CheckConservation verifies that every id of the deck lives on exactly one pile.
func (s *State) CheckConservation() error {
	seen := make([]int, s.deck.Len())
	piles := append([]*card.Stack{s.hidden, s.visible, s.accumulation, s.reserve}, s.players...)
	for _, p := range piles {
		for _, id := range p.IDs() {
			if id < 0 || int(id) >= len(seen) {
				return fmt.Errorf("unknown card id %d", id)
			}
			seen[id]++
		}
	}
	for id, n := range seen {
		if n != 1 {
			return fmt.Errorf("card id %d found on %d piles", id, n)
		}
	}
	if open := s.visible.Len(); open != 0 && open != HandSize {
		return fmt.Errorf("visible pile holds %d cards", open)
	}
	return nil
}
