package server

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNickname(t *testing.T) {
	t.Parallel()

	for range 20 {
		name := GenerateNickname()
		assert.NotEmpty(t, name)

		matched := false
		for _, adj := range adjectives {
			if rest, ok := strings.CutPrefix(name, adj); ok && slices.Contains(nouns, rest) {
				matched = true
				break
			}
		}
		assert.True(t, matched, "unexpected nickname %q", name)
	}
}
