package server

import "math/rand/v2"

var (
	adjectives = []string{
		"Brave", "Clever", "Lucky", "Quiet", "Swift",
		"Sharp", "Bold", "Calm", "Witty", "Eager",
		"Nimble", "Steady", "Sly", "Bright", "Cool",
		"Keen", "Merry", "Jolly", "Shy", "Wise",
	}

	nouns = []string{
		"Sword", "Club", "Coin", "Cup", "Joker",
		"Knight", "King", "Jack", "Ace", "Dealer",
		"Fox", "Owl", "Otter", "Panda", "Tiger",
		"Heron", "Badger", "Raven", "Lynx", "Koala",
	}
)

// GenerateNickname returns a random two word nickname such as "LuckyJoker".
func GenerateNickname() string {
	return adjectives[rand.IntN(len(adjectives))] + nouns[rand.IntN(len(nouns))]
}
