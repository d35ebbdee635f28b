package table

import "fmt"

// OutcomeKind tags the state of a turn.
type OutcomeKind int

const (
	OutcomeGaming OutcomeKind = iota
	OutcomeWinner
	OutcomeTie
	OutcomeAbandoned
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeGaming:    "gaming",
	OutcomeWinner:    "winner",
	OutcomeTie:       "tie",
	OutcomeAbandoned: "abandoned",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(k))
}

// Outcome is the result of a turn. Player is only meaningful for OutcomeWinner.
type Outcome struct {
	Kind   OutcomeKind
	Player int
}

// Gaming keeps the turn open.
func Gaming() Outcome { return Outcome{Kind: OutcomeGaming} }

// Winner awards the turn to the player sitting at seat p.
func Winner(p int) Outcome { return Outcome{Kind: OutcomeWinner, Player: p} }

// Tie sends the hand to the accumulation pile.
func Tie() Outcome { return Outcome{Kind: OutcomeTie} }

// Abandoned closes the session without moving cards.
func Abandoned() Outcome { return Outcome{Kind: OutcomeAbandoned} }

// Ends reports whether the outcome closes the turn.
func (o Outcome) Ends() bool {
	return o.Kind == OutcomeWinner || o.Kind == OutcomeTie
}

func (o Outcome) String() string {
	if o.Kind == OutcomeWinner {
		return fmt.Sprintf("winner(%d)", o.Player)
	}
	return o.Kind.String()
}
