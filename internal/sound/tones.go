package sound

import "time"

// Sound names
const (
	Deal    = "deal"    // a new hand is on the table
	Win     = "win"     // this player took the hand
	Lose    = "lose"    // another player took it
	Tie     = "tie"     // the turn timed out
	Connect = "connect" // connected to the server
)

type note struct {
	freq   float64 // Hz, 0 is a rest
	length time.Duration
}

var tones = map[string][]note{
	Deal:    {{880, 120 * time.Millisecond}},
	Win:     {{660, 90 * time.Millisecond}, {0, 30 * time.Millisecond}, {990, 160 * time.Millisecond}},
	Lose:    {{440, 90 * time.Millisecond}, {0, 30 * time.Millisecond}, {330, 160 * time.Millisecond}},
	Tie:     {{550, 80 * time.Millisecond}, {0, 40 * time.Millisecond}, {550, 80 * time.Millisecond}},
	Connect: {{523, 70 * time.Millisecond}, {784, 70 * time.Millisecond}},
}
