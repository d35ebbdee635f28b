package session

import (
	"log"
	"time"

	"github.com/anibalanto/cardascii-24game/internal/game/table"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/server/storage"
)

// startTurnTimer expects gs.mu to be held.
func (gs *GameSession) startTurnTimer() {
	if gs.settings.TurnTimeout <= 0 {
		return
	}
	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
	}

	turn := gs.table.Turn()
	gs.timerTurn = turn
	gs.turnTimer = time.AfterFunc(gs.settings.TurnTimeout, func() {
		gs.handleTurnTimeout(turn)
	})
}

// stopTurnTimer expects gs.mu to be held.
func (gs *GameSession) stopTurnTimer() {
	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
		gs.turnTimer = nil
	}
}

// handleTurnTimeout ties the turn it was armed for; a stale timer is ignored.
func (gs *GameSession) handleTurnTimeout(turn int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.state != GameStatePlaying || !gs.table.TurnOpen() || gs.table.Turn() != turn || gs.timerTurn != turn {
		return
	}
	gs.turnTimer = nil

	if err := gs.table.EndTurn(table.Tie()); err != nil {
		log.Printf("❌ Room %s failed to tie turn %d: %v", gs.room.Code, turn, err)
		return
	}
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTurnEnd, protocol.TurnEndPayload{
		Result: protocol.ResultTied,
	}))
	log.Printf("⏰ Room %s turn %d timed out, hand goes to the accumulation pile", gs.room.Code, turn)

	gs.recordTurn(func(*GamePlayer) storage.TurnResult { return storage.TurnTied })

	gs.deal()
}
