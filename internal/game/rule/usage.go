package rule

import "fmt"

// UsageKind tells how an answer misused the dealt cards.
type UsageKind int

const (
	// ValueNotInHand: a literal has no remaining card of that value.
	ValueNotInHand UsageKind = iota + 1
	// LeftoverCards: the answer did not use every card.
	LeftoverCards
)

func (k UsageKind) String() string {
	switch k {
	case ValueNotInHand:
		return "value not in hand"
	case LeftoverCards:
		return "cards left over"
	default:
		return fmt.Sprintf("usage kind %d", int(k))
	}
}

// UsageError reports a literal sequence that is not a permutation of the hand.
type UsageError struct {
	Kind UsageKind
	// Value is the offending literal for ValueNotInHand.
	Value int64
	// Left holds the unused hand values for LeftoverCards.
	Left []int64
}

func (e *UsageError) Error() string {
	if e.Kind == ValueNotInHand {
		return fmt.Sprintf("%s: %d", e.Kind, e.Value)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Left)
}

// Is matches any UsageError of the same kind.
func (e *UsageError) Is(target error) bool {
	t, ok := target.(*UsageError)
	return ok && t.Kind == e.Kind
}

var (
	ErrValueNotInHand = &UsageError{Kind: ValueNotInHand}
	ErrLeftoverCards  = &UsageError{Kind: LeftoverCards}
)

// CheckUsage verifies that literals use every hand value exactly once.
// Each literal removes one matching value from the multiset; duplicates in
// the hand must be matched by the same number of literals.
func CheckUsage(hand []int64, literals []int64) error {
	remaining := make(map[int64]int, len(hand))
	for _, v := range hand {
		remaining[v]++
	}
	for _, lit := range literals {
		if remaining[lit] == 0 {
			return &UsageError{Kind: ValueNotInHand, Value: lit}
		}
		remaining[lit]--
	}

	var left []int64
	for _, v := range hand {
		if remaining[v] > 0 {
			left = append(left, v)
			remaining[v]--
		}
	}
	if len(left) > 0 {
		return &UsageError{Kind: LeftoverCards, Left: left}
	}
	return nil
}
