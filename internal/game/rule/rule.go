// Package rule decides what a submitted answer does to the current turn.
package rule

import (
	"errors"
	"fmt"

	"github.com/anibalanto/cardascii-24game/internal/game/expr"
	"github.com/anibalanto/cardascii-24game/internal/game/table"
)

// DefaultTarget is the value every answer must reach.
const DefaultTarget = 24

// JokerPolicy decides how a dealt joker takes part in an answer.
type JokerPolicy int

const (
	// JokerAsZero counts a joker as the value 0; the answer must use a literal 0 for it.
	JokerAsZero JokerPolicy = iota
	// JokerExcluded leaves jokers out of the usage check.
	JokerExcluded
)

// ParseJokerPolicy maps a config value ("zero" or "excluded") to a policy.
func ParseJokerPolicy(s string) (JokerPolicy, error) {
	switch s {
	case "", "zero":
		return JokerAsZero, nil
	case "excluded":
		return JokerExcluded, nil
	default:
		return JokerAsZero, fmt.Errorf("unknown joker policy %q", s)
	}
}

func (p JokerPolicy) String() string {
	if p == JokerExcluded {
		return "excluded"
	}
	return "zero"
}

// Verdict is the result of judging one answer.
type Verdict struct {
	Outcome  table.Outcome
	Value    int64
	Literals []int64
	// Err is why the answer did not win: a *expr.ParseError, a *UsageError,
	// or ErrWrongValue. Nil for a winning answer.
	Err error
}

// Won reports whether the verdict ends the turn with a winner.
func (v Verdict) Won() bool {
	return v.Outcome.Kind == table.OutcomeWinner
}

// Evaluated reports whether the answer parsed and produced Value.
func (v Verdict) Evaluated() bool {
	var pe *expr.ParseError
	return !errors.As(v.Err, &pe)
}

// ErrWrongValue means a well formed answer missed the target.
var ErrWrongValue = errors.New("answer does not reach the target")

// Option configures a Validator.
type Option func(*Validator)

// WithTarget changes the value answers must reach.
func WithTarget(target int64) Option {
	return func(v *Validator) { v.target = target }
}

// WithJokerPolicy sets how jokers are counted.
func WithJokerPolicy(p JokerPolicy) Option {
	return func(v *Validator) { v.jokers = p }
}

// Validator judges answers against a hand.
type Validator struct {
	target int64
	jokers JokerPolicy
}

// New creates a Validator aiming at DefaultTarget with JokerAsZero.
func New(opts ...Option) *Validator {
	v := &Validator{target: DefaultTarget, jokers: JokerAsZero}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Target returns the value answers must reach.
func (v *Validator) Target() int64 { return v.target }

// HandValues returns the usage multiset of hand under the joker policy.
func (v *Validator) HandValues(hand table.Hand) []int64 {
	vals := make([]int64, 0, len(hand))
	for _, c := range hand {
		if c.IsJoker() && v.jokers == JokerExcluded {
			continue
		}
		vals = append(vals, int64(c.Value))
	}
	return vals
}

// Judge evaluates answer for player against hand. Failures in order:
// parse or evaluation error, card misuse, wrong value. Any of them keeps
// the turn going; only a correct answer names a winner.
func (v *Validator) Judge(hand table.Hand, answer string, player int) Verdict {
	res, err := expr.Evaluate(answer)
	verdict := Verdict{Outcome: table.Gaming(), Value: res.Value, Literals: res.Literals}
	if err != nil {
		verdict.Value = 0
		verdict.Err = err
		return verdict
	}
	if err := CheckUsage(v.HandValues(hand), res.Literals); err != nil {
		verdict.Err = err
		return verdict
	}
	if res.Value != v.target {
		verdict.Err = ErrWrongValue
		return verdict
	}
	verdict.Outcome = table.Winner(player)
	return verdict
}

// Judge uses a default Validator.
func Judge(hand table.Hand, answer string, player int) Verdict {
	return New().Judge(hand, answer, player)
}
