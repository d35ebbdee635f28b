package card

import "math/rand/v2"

// Stack is one pile of card ids. The last element is the top of the pile.
type Stack struct {
	faceUp bool
	ids    []ID
}

// NewStack creates an empty pile.
func NewStack(faceUp bool) *Stack {
	return &Stack{faceUp: faceUp, ids: make([]ID, 0)}
}

// NewStackOf creates a pile holding ids, bottom first.
func NewStackOf(faceUp bool, ids []ID) *Stack {
	s := NewStack(faceUp)
	s.ids = append(s.ids, ids...)
	return s
}

// FaceUp reports whether the pile is shown to players.
func (s *Stack) FaceUp() bool {
	return s.faceUp
}

// Len returns the number of ids on the pile.
func (s *Stack) Len() int {
	return len(s.ids)
}

// IsEmpty reports whether the pile holds no ids.
func (s *Stack) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns a copy of the pile, bottom first.
func (s *Stack) IDs() []ID {
	out := make([]ID, len(s.ids))
	copy(out, s.ids)
	return out
}

// At returns the id at position i counted from the bottom.
func (s *Stack) At(i int) (ID, bool) {
	if i < 0 || i >= len(s.ids) {
		return -1, false
	}
	return s.ids[i], true
}

// Shuffle permutes the pile uniformly (Fisher-Yates). A nil rng uses the global source.
func (s *Stack) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) { s.ids[i], s.ids[j] = s.ids[j], s.ids[i] }
	if rng == nil {
		rand.Shuffle(len(s.ids), swap)
		return
	}
	rng.Shuffle(len(s.ids), swap)
}

// TransferAll moves every id of from onto the top of to and leaves from empty.
func TransferAll(from, to *Stack) {
	if from == to {
		return
	}
	to.ids = append(to.ids, from.ids...)
	from.ids = from.ids[:0]
}

// TransferOne pops the top id of from onto to.
func TransferOne(from, to *Stack) bool {
	if len(from.ids) == 0 {
		return false
	}
	last := len(from.ids) - 1
	to.ids = append(to.ids, from.ids[last])
	from.ids = from.ids[:last]
	return true
}

// TransferN pops up to n ids from the top of from onto to, one at a time.
// It is not atomic: when from runs out the ids already moved stay on to and
// false is returned.
func TransferN(from, to *Stack, n int) bool {
	if from == to {
		return len(from.ids) >= n
	}
	for range n {
		if !TransferOne(from, to) {
			return false
		}
	}
	return true
}
