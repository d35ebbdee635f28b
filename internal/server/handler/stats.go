package handler

import (
	"context"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/server/storage"
	"github.com/anibalanto/cardascii-24game/internal/types"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 50
)

func (h *Handler) handleGetStats(client types.ClientInterface) {
	if h.leaderboard == nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "stats are unavailable"))
		return
	}

	ctx := context.Background()
	stats, err := h.leaderboard.GetPlayerStats(ctx, client.GetID())
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "failed to load stats"))
		return
	}

	if stats == nil {
		client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
			PlayerID:   client.GetID(),
			PlayerName: client.GetName(),
			Rank:       -1,
		}))
		return
	}

	rank, err := h.leaderboard.GetPlayerRank(ctx, client.GetID())
	if err != nil {
		rank = -1
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
		PlayerID:   stats.PlayerID,
		PlayerName: stats.PlayerName,
		TotalGames: stats.TotalGames,
		GamesWon:   stats.GamesWon,
		TurnsWon:   stats.TurnsWon,
		TurnsTied:  stats.TurnsTied,
		WinRate:    stats.WinRate(),
		Score:      stats.Score,
		Rank:       int(rank),
		BestStreak: stats.BestStreak,
		CurrentRun: stats.CurrentRun,
	}))
}

func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	if h.leaderboard == nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "leaderboard is unavailable"))
		return
	}

	payload, err := codec.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil {
		payload = &protocol.GetLeaderboardPayload{}
	}

	switch payload.Type {
	case storage.LeaderboardDaily, storage.LeaderboardWeekly:
	default:
		payload.Type = storage.LeaderboardTotal
	}
	if payload.Limit <= 0 || payload.Limit > maxLeaderboardLimit {
		payload.Limit = defaultLeaderboardLimit
	}
	if payload.Offset < 0 {
		payload.Offset = 0
	}

	entries, err := h.leaderboard.GetLeaderboard(context.Background(), payload.Type, payload.Offset, payload.Limit)
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "failed to load leaderboard"))
		return
	}

	out := make([]protocol.LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, protocol.LeaderboardEntry{
			Rank:       entry.Rank,
			PlayerID:   entry.PlayerID,
			PlayerName: entry.PlayerName,
			Score:      entry.Score,
			TurnsWon:   entry.TurnsWon,
			WinRate:    entry.WinRate,
		})
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Type:    payload.Type,
		Entries: out,
	}))
}
