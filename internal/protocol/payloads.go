package protocol

import "strings"

// --- client requests ---

// ReconnectPayload resumes a session after a dropped connection.
type ReconnectPayload struct {
	Token    string `json:"token"`
	PlayerID string `json:"player_id"`
}

// PingPayload carries the client clock in milliseconds.
type PingPayload struct {
	Timestamp int64 `json:"timestamp"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

// AnswerPayload is a fixed width, space padded expression.
type AnswerPayload struct {
	Answer string `json:"answer"`
}

type GetLeaderboardPayload struct {
	Type   string `json:"type"` // total/daily/weekly
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

// --- server responses ---

type ConnectedPayload struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	ReconnectToken string `json:"reconnect_token"`
	AnswerWidth    int    `json:"answer_width,omitempty"` // bytes answers are padded to
}

type ReconnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	RoomCode   string `json:"room_code,omitempty"`
	// Table is set when the player was seated at a running table.
	Table *TableStateDTO `json:"table,omitempty"`
}

// TableStateDTO restores the table view of a reconnecting player.
type TableStateDTO struct {
	Players []PlayerInfo `json:"players"`
	Turn    int          `json:"turn"`
	Cards   []CardInfo   `json:"cards,omitempty"` // empty between turns
}

type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

type RoomCreatedPayload struct {
	RoomCode string     `json:"room_code"`
	Player   PlayerInfo `json:"player"`
}

type RoomJoinedPayload struct {
	RoomCode string       `json:"room_code"`
	Player   PlayerInfo   `json:"player"`
	Players  []PlayerInfo `json:"players"`
}

type MatchFoundPayload struct {
	RoomCode string       `json:"room_code"`
	Players  []PlayerInfo `json:"players"`
}

type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
}

// PlayerOfflinePayload tells the room how many seconds a dropped player has to come back.
type PlayerOfflinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Timeout    int    `json:"timeout"`
}

type PlayerOnlinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// GameStartPayload lists the players in seat order.
type GameStartPayload struct {
	Players     []PlayerInfo `json:"players"`
	Target      int          `json:"target"`
	AnswerWidth int          `json:"answer_width,omitempty"`
}

// TurnBeginPayload deals a new hand.
type TurnBeginPayload struct {
	Turn    int        `json:"turn"`
	Cards   []CardInfo `json:"cards"`
	Timeout int        `json:"timeout"` // seconds, 0 = no limit
}

// TurnContinuePayload tells a player the last answer did not end the turn.
type TurnContinuePayload struct {
	Reason string `json:"reason"`
	Value  *int64 `json:"value,omitempty"` // set when the answer evaluated
}

// Turn results
const (
	ResultYouWin    = "you_win"
	ResultOtherWins = "other_wins"
	ResultTied      = "tied"
	ResultAbandoned = "abandoned"
)

type TurnEndPayload struct {
	Result     string `json:"result"`
	WinnerID   string `json:"winner_id,omitempty"`
	WinnerName string `json:"winner_name,omitempty"`
	Answer     string `json:"answer,omitempty"`
	Value      int64  `json:"value,omitempty"`
}

// Game over reasons
const (
	ReasonConceded   = "conceded"
	ReasonPlayerLeft = "player_left"
	ReasonDeckEmpty  = "deck_empty"
	ReasonShutdown   = "shutdown"
)

// GameOverPayload reports the final pile sizes as scores.
type GameOverPayload struct {
	Reason string       `json:"reason"`
	Scores []PlayerInfo `json:"scores"`
}

type MaintenancePayload struct {
	Maintenance bool `json:"maintenance"`
}

type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type StatsResultPayload struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	TotalGames int     `json:"total_games"`
	GamesWon   int     `json:"games_won"`
	TurnsWon   int     `json:"turns_won"`
	TurnsTied  int     `json:"turns_tied"`
	WinRate    float64 `json:"win_rate"`
	Score      int     `json:"score"`
	Rank       int     `json:"rank"`
	BestStreak int     `json:"best_streak"`
	CurrentRun int     `json:"current_run"`
}

type LeaderboardResultPayload struct {
	Type    string             `json:"type"`
	Entries []LeaderboardEntry `json:"entries"`
}

type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	TurnsWon   int     `json:"turns_won"`
	WinRate    float64 `json:"win_rate"`
}

// --- shared ---

type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Seat   int    `json:"seat"`
	Ready  bool   `json:"ready"`
	Cards  int    `json:"cards"` // size of the player's pile
	Online bool   `json:"online"`
}

// CardInfo is a card on the wire; Kind follows card.Kind.
type CardInfo struct {
	Kind  int `json:"kind"`
	Value int `json:"value"`
}

// DefaultAnswerWidth is the byte width of the answer field.
const DefaultAnswerWidth = 32

// PadAnswer right-pads s with spaces to width bytes. It reports false when s
// does not fit; s is then returned unchanged.
func PadAnswer(s string, width int) (string, bool) {
	if len(s) > width {
		return s, false
	}
	return s + strings.Repeat(" ", width-len(s)), true
}
