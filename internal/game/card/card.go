package card

import (
	"fmt"
	"strconv"
)

// Kind is the suit of a card (Spanish deck).
type Kind int

const (
	Sword Kind = iota // espada
	Club              // basto
	Gold              // oro
	Cup               // copa
	Joker             // comodín
)

// kindNames maps kinds to their wire and log names
var kindNames = map[Kind]string{
	Sword: "sword",
	Club:  "club",
	Gold:  "gold",
	Cup:   "cup",
	Joker: "joker",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

const (
	// MinValue and MaxValue bound the face value of a suited card.
	MinValue = 1
	MaxValue = 12
	// JokerValue is the value every joker carries.
	JokerValue = 0
)

// Card is a single card. Cards are plain values; the Deck owns the canonical copies.
type Card struct {
	Kind  Kind
	Value int
}

// IsJoker reports whether the card is a joker.
func (c Card) IsJoker() bool {
	return c.Kind == Joker
}

func (c Card) String() string {
	if c.IsJoker() {
		return "JOKER"
	}
	return fmt.Sprintf("%d of %s", c.Value, c.Kind)
}

// ID addresses a card inside its Deck.
type ID int

// Deck is the immutable catalog of every card identity of a table.
// Ids are indices into the catalog and are never reused.
type Deck struct {
	cards []Card
}

// NewDeck creates an empty catalog; fill it with Add before handing it to a table.
func NewDeck() *Deck {
	return &Deck{cards: make([]Card, 0, 50)}
}

// NewSpanishDeck builds the 24 game deck: the given number of jokers followed by
// swords, clubs, golds and cups from 12 down to 1.
func NewSpanishDeck(jokers int) *Deck {
	d := NewDeck()
	for range jokers {
		d.mustAdd(Joker, JokerValue)
	}
	for _, k := range []Kind{Sword, Club, Gold, Cup} {
		for v := MaxValue; v >= MinValue; v-- {
			d.mustAdd(k, v)
		}
	}
	return d
}

// Add registers a new card and returns its id.
func (d *Deck) Add(kind Kind, value int) (ID, error) {
	if !kind.Valid() {
		return -1, fmt.Errorf("unknown card kind %d", int(kind))
	}
	if kind == Joker && value != JokerValue {
		return -1, fmt.Errorf("joker must have value %d, got %d", JokerValue, value)
	}
	if kind != Joker && (value < MinValue || value > MaxValue) {
		return -1, fmt.Errorf("card value %d out of range %d-%d", value, MinValue, MaxValue)
	}
	d.cards = append(d.cards, Card{Kind: kind, Value: value})
	return ID(len(d.cards) - 1), nil
}

func (d *Deck) mustAdd(kind Kind, value int) {
	if _, err := d.Add(kind, value); err != nil {
		panic(err)
	}
}

// Get returns the card behind id.
func (d *Deck) Get(id ID) (Card, bool) {
	if id < 0 || int(id) >= len(d.cards) {
		return Card{}, false
	}
	return d.cards[id], true
}

// Len returns the number of cards in the catalog.
func (d *Deck) Len() int {
	return len(d.cards)
}

// IDs returns every id of the catalog in ascending order.
func (d *Deck) IDs() []ID {
	ids := make([]ID, len(d.cards))
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// IDsWithoutJokers returns every non-joker id in ascending order.
func (d *Deck) IDsWithoutJokers() []ID {
	ids := make([]ID, 0, len(d.cards))
	for i, c := range d.cards {
		if !c.IsJoker() {
			ids = append(ids, ID(i))
		}
	}
	return ids
}
