package protocol

// Error codes
const (
	ErrCodeUnknown           = 1000
	ErrCodeInvalidMsg        = 1001
	ErrCodeRateLimit         = 1002
	ErrCodeRoomNotFound      = 2001
	ErrCodeRoomFull          = 2002
	ErrCodeNotInRoom         = 2003
	ErrCodeGameStarted       = 2004
	ErrCodeAlreadyInRoom     = 2005
	ErrCodeGameNotStart      = 3001
	ErrCodeNotAPlayer        = 3002
	ErrCodeTurnClosed        = 3003
	ErrCodeInvalidAnswer     = 3004
	ErrCodeDealFailed        = 3005
	ErrCodeServerMaintenance = 5003
)

// ErrorMessages maps each code to its default text.
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "unknown error",
	ErrCodeInvalidMsg:        "invalid message format",
	ErrCodeRateLimit:         "too many requests",
	ErrCodeRoomNotFound:      "room not found",
	ErrCodeRoomFull:          "room is full",
	ErrCodeNotInRoom:         "you are not in a room",
	ErrCodeGameStarted:       "game already started",
	ErrCodeAlreadyInRoom:     "you are already in a room",
	ErrCodeGameNotStart:      "game has not started",
	ErrCodeNotAPlayer:        "you are not playing at this table",
	ErrCodeTurnClosed:        "no hand is on the table",
	ErrCodeInvalidAnswer:     "answer is too long",
	ErrCodeDealFailed:        "the deck cannot deal a hand",
	ErrCodeServerMaintenance: "server under maintenance",
}
