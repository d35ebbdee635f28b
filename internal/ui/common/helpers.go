package common

import (
	"strconv"

	"github.com/anibalanto/cardascii-24game/internal/game/card"
)

// TruncateName shortens name to maxLen runes, ending with an ellipsis.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// CardLabel is the two lines printed inside a card box: the value and the suit.
func CardLabel(c card.Card) (value, kind string) {
	if c.IsJoker() {
		return "★", "joker"
	}
	return strconv.Itoa(c.Value), c.Kind.String()
}
