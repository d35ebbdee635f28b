package session

import (
	"context"
	"log"

	"github.com/anibalanto/cardascii-24game/internal/game/room"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/protocol/convert"
	"github.com/anibalanto/cardascii-24game/internal/server/storage"
)

// endGame expects gs.mu to be held. loserID is the player who abandoned,
// empty when the game ended for another reason.
func (gs *GameSession) endGame(reason, loserID string) {
	if gs.state == GameStateEnded {
		return
	}
	gs.state = GameStateEnded
	gs.stopTurnTimer()
	gs.room.SetState(room.RoomStateEnded)

	scores := gs.playersInfo()
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		Reason: reason,
		Scores: scores,
	}))

	winners := gameWinners(scores, loserID)
	log.Printf("🎮 Game over in room %s (%s) after %d turns", gs.room.Code, reason, gs.table.Turn())

	if gs.recorder != nil {
		ctx := context.Background()
		for _, p := range gs.players {
			if err := gs.recorder.RecordGame(ctx, p.ID, p.Name, winners[p.ID]); err != nil {
				log.Printf("⚠️ Failed to record game for %s: %v", p.Name, err)
			}
		}
	}

	if gs.onEnd != nil {
		go gs.onEnd(gs)
	}
}

// gameWinners names who won a finished game. When someone abandoned, everybody
// else wins; otherwise the largest non empty piles win.
func gameWinners(scores []protocol.PlayerInfo, loserID string) map[string]bool {
	winners := make(map[string]bool, len(scores))
	if loserID != "" {
		for _, s := range scores {
			winners[s.ID] = s.ID != loserID
		}
		return winners
	}

	best := 0
	for _, s := range scores {
		best = max(best, s.Cards)
	}
	for _, s := range scores {
		winners[s.ID] = best > 0 && s.Cards == best
	}
	return winners
}

// Snapshot returns the table as a reconnecting player should see it.
func (gs *GameSession) Snapshot() *protocol.TableStateDTO {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	dto := &protocol.TableStateDTO{
		Players: gs.playersInfo(),
		Turn:    gs.table.Turn(),
	}
	if hand, ok := gs.table.Hand(); ok && gs.state == GameStatePlaying {
		dto.Cards = convert.HandToInfos(hand)
	}
	return dto
}

// saveSnapshot expects gs.mu to be held.
func (gs *GameSession) saveSnapshot() {
	if gs.snapshots == nil {
		return
	}
	counts := gs.table.Counts()
	gs.snapshots.SaveSnapshot(gs.room, &storage.TableData{
		Turn:         gs.table.Turn(),
		Hidden:       counts.Hidden,
		Visible:      counts.Visible,
		Piles:        counts.Players,
		Accumulation: counts.Accumulation,
	})
}
