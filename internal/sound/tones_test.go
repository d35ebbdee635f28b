package sound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTones(t *testing.T) {
	t.Parallel()

	for _, name := range []string{Deal, Win, Lose, Tie, Connect} {
		notes, ok := tones[name]
		if assert.True(t, ok, name) {
			assert.NotEmpty(t, notes, name)
		}
		var total time.Duration
		for _, n := range notes {
			assert.GreaterOrEqual(t, n.freq, 0.0, name)
			total += n.length
		}
		// bells stay short so they never overlap the next hand
		assert.Less(t, total, 500*time.Millisecond, name)
	}
}

func TestPlayBeforeInit(t *testing.T) {
	t.Parallel()
	sm := NewSoundManager()
	assert.NotPanics(t, func() {
		sm.Play(Deal)
		sm.Play("unknown")
		sm.Close()
	})
}
