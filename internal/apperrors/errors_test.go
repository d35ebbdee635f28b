package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
)

func TestGameError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "room is full", ErrRoomFull.Error())
	assert.Equal(t, protocol.ErrCodeRoomFull, CodeOf(ErrRoomFull))
	assert.Equal(t, protocol.ErrCodeTurnClosed, CodeOf(ErrTurnClosed))
	assert.Equal(t, protocol.ErrCodeUnknown, CodeOf(errors.New("other")))
	assert.Equal(t, protocol.ErrCodeRoomNotFound, CodeOf(fmt.Errorf("join: %w", ErrRoomNotFound)))

	wrapped := fmt.Errorf("join: %w", ErrRoomNotFound)
	assert.ErrorIs(t, wrapped, ErrRoomNotFound)
}
