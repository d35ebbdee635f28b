package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/ui/model"
)

func handleMsgStatsResult(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.StatsResultPayload](msg)
	if err != nil {
		return nil
	}
	m.Lobby().SetMyStats(payload)
	return nil
}

func handleMsgLeaderboardResult(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.LeaderboardResultPayload](msg)
	if err != nil {
		return nil
	}
	m.Lobby().SetLeaderboard(payload.Type, payload.Entries)
	return nil
}
