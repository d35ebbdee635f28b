package apperrors

import (
	"errors"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
)

// GameError is an error that maps onto a protocol error code.
// Rooms and table sessions share these.
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Predefined errors
var (
	ErrRoomNotFound  = newGameError(protocol.ErrCodeRoomNotFound)
	ErrRoomFull      = newGameError(protocol.ErrCodeRoomFull)
	ErrNotInRoom     = newGameError(protocol.ErrCodeNotInRoom)
	ErrAlreadyInRoom = newGameError(protocol.ErrCodeAlreadyInRoom)
	ErrGameStarted   = newGameError(protocol.ErrCodeGameStarted)
	ErrGameNotStart  = newGameError(protocol.ErrCodeGameNotStart)
	ErrNotAPlayer    = newGameError(protocol.ErrCodeNotAPlayer)
	ErrTurnClosed    = newGameError(protocol.ErrCodeTurnClosed)
	ErrInvalidAnswer = newGameError(protocol.ErrCodeInvalidAnswer)
	ErrDealFailed    = newGameError(protocol.ErrCodeDealFailed)
)

func newGameError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// CodeOf returns the protocol code carried by err, or ErrCodeUnknown.
func CodeOf(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return protocol.ErrCodeUnknown
}
