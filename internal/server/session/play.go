package session

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/anibalanto/cardascii-24game/internal/apperrors"
	"github.com/anibalanto/cardascii-24game/internal/game/table"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/protocol/convert"
	"github.com/anibalanto/cardascii-24game/internal/server/storage"
)

// Start announces the table and deals the first hand.
func (gs *GameSession) Start() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.state != GameStateInit {
		return
	}
	gs.state = GameStatePlaying

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{
		Players:     gs.playersInfo(),
		Target:      int(gs.settings.Target),
		AnswerWidth: gs.settings.AnswerWidth,
	}))
	log.Printf("🎮 Game started in room %s with %d players", gs.room.Code, len(gs.players))

	gs.deal()
}

// deal expects gs.mu to be held.
func (gs *GameSession) deal() {
	if err := gs.table.GiveCards(); err != nil {
		if errors.Is(err, table.ErrInsufficientCards) {
			log.Printf("❌ Room %s cannot deal: %v", gs.room.Code, err)
			gs.room.Broadcast(codec.NewErrorMessage(protocol.ErrCodeDealFailed))
			gs.endGame(protocol.ReasonDeckEmpty, "")
		}
		return
	}

	gs.room.Broadcast(gs.turnBeginMessage())
	gs.startTurnTimer()
	gs.saveSnapshot()
}

// turnBeginMessage expects gs.mu to be held and a turn to be open.
func (gs *GameSession) turnBeginMessage() *protocol.Message {
	hand, _ := gs.table.Hand()
	return codec.MustNewMessage(protocol.MsgTurnBegin, protocol.TurnBeginPayload{
		Turn:    gs.table.Turn(),
		Cards:   convert.HandToInfos(hand),
		Timeout: int(gs.settings.TurnTimeout.Seconds()),
	})
}

// HandleNewTurn deals a hand when none is open, otherwise it re-sends the open one.
func (gs *GameSession) HandleNewTurn(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.state != GameStatePlaying {
		return apperrors.ErrGameNotStart
	}
	if _, ok := gs.seatOf(playerID); !ok {
		return apperrors.ErrNotAPlayer
	}

	if gs.table.TurnOpen() {
		gs.room.SendTo(playerID, gs.turnBeginMessage())
		return nil
	}
	gs.deal()
	return nil
}

// HandleAnswer judges one answer. An answer that does not win is reported back
// to its author only; a winning answer closes the turn for everyone.
func (gs *GameSession) HandleAnswer(playerID, answer string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.state != GameStatePlaying {
		return apperrors.ErrGameNotStart
	}
	player, ok := gs.seatOf(playerID)
	if !ok {
		return apperrors.ErrNotAPlayer
	}
	if !gs.table.TurnOpen() {
		return apperrors.ErrTurnClosed
	}
	if len(answer) > gs.settings.AnswerWidth {
		return apperrors.ErrInvalidAnswer
	}

	hand, _ := gs.table.Hand()
	verdict := gs.validator.Judge(hand, answer, player.Seat)

	if !verdict.Won() {
		payload := protocol.TurnContinuePayload{Reason: verdict.Err.Error()}
		if verdict.Evaluated() {
			value := verdict.Value
			payload.Value = &value
		}
		gs.room.SendTo(playerID, codec.MustNewMessage(protocol.MsgTurnContinue, payload))
		return nil
	}

	gs.stopTurnTimer()
	if err := gs.table.EndTurn(verdict.Outcome); err != nil {
		return err
	}

	trimmed := strings.TrimSpace(answer)
	for _, p := range gs.players {
		result := protocol.ResultOtherWins
		if p.ID == playerID {
			result = protocol.ResultYouWin
		}
		gs.room.SendTo(p.ID, codec.MustNewMessage(protocol.MsgTurnEnd, protocol.TurnEndPayload{
			Result:     result,
			WinnerID:   player.ID,
			WinnerName: player.Name,
			Answer:     trimmed,
			Value:      verdict.Value,
		}))
	}
	log.Printf("🏆 Room %s turn %d won by %s with %q", gs.room.Code, gs.table.Turn(), player.Name, trimmed)

	gs.recordTurn(func(p *GamePlayer) storage.TurnResult {
		if p.ID == playerID {
			return storage.TurnWon
		}
		return storage.TurnLost
	})

	gs.deal()
	return nil
}

// HandleConcede ends the game with the conceding player as the loser.
func (gs *GameSession) HandleConcede(playerID string) error {
	return gs.abandon(playerID, protocol.ReasonConceded)
}

// PlayerLeft ends the game when a seated player leaves the room.
func (gs *GameSession) PlayerLeft(playerID string) {
	_ = gs.abandon(playerID, protocol.ReasonPlayerLeft)
}

// Abort ends a running game without a loser, e.g. on shutdown.
func (gs *GameSession) Abort(reason string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if gs.state != GameStatePlaying {
		return
	}
	gs.closeTurnAbandoned()
	gs.endGame(reason, "")
}

func (gs *GameSession) abandon(playerID, reason string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.state != GameStatePlaying {
		return apperrors.ErrGameNotStart
	}
	player, ok := gs.seatOf(playerID)
	if !ok {
		return apperrors.ErrNotAPlayer
	}

	log.Printf("🏳️ Player %s abandoned the game in room %s (%s)", player.Name, gs.room.Code, reason)
	gs.closeTurnAbandoned()
	gs.endGame(reason, playerID)
	return nil
}

// closeTurnAbandoned expects gs.mu to be held.
func (gs *GameSession) closeTurnAbandoned() {
	gs.stopTurnTimer()
	_ = gs.table.EndTurn(table.Abandoned())
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTurnEnd, protocol.TurnEndPayload{
		Result: protocol.ResultAbandoned,
	}))
}

// recordTurn expects gs.mu to be held.
func (gs *GameSession) recordTurn(resultOf func(p *GamePlayer) storage.TurnResult) {
	if gs.recorder == nil {
		return
	}
	ctx := context.Background()
	for _, p := range gs.players {
		if err := gs.recorder.RecordTurn(ctx, p.ID, p.Name, resultOf(p)); err != nil {
			log.Printf("⚠️ Failed to record turn for %s: %v", p.Name, err)
		}
	}
}
