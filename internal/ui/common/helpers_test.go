package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anibalanto/cardascii-24game/internal/game/card"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short name within limit", "Alice", 10, "Alice"},
		{"exact length", "HelloWorld", 10, "HelloWorld"},
		{"long name truncated", "VeryLongPlayerName", 10, "VeryLongP…"},
		{"accented name truncated", "Áñgel Ñandú", 5, "Áñge…"},
		{"empty name", "", 10, ""},
		{"single char limit", "Hello", 1, "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxLen))
		})
	}
}

func TestCardLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card        card.Card
		value, kind string
	}{
		{card.Card{Kind: card.Sword, Value: 1}, "1", "sword"},
		{card.Card{Kind: card.Cup, Value: 12}, "12", "cup"},
		{card.Card{Kind: card.Gold, Value: 7}, "7", "gold"},
		{card.Card{Kind: card.Joker, Value: card.JokerValue}, "★", "joker"},
	}

	for _, tt := range tests {
		value, kind := CardLabel(tt.card)
		assert.Equal(t, tt.value, value)
		assert.Equal(t, tt.kind, kind)
	}
}

func TestKindStyle(t *testing.T) {
	t.Parallel()
	// unknown kinds still render
	assert.NotEmpty(t, KindStyle(card.Kind(99)).Render("x"))
	assert.NotEmpty(t, KindStyle(card.Cup).Render("x"))
}
