package handler

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/ui/model"
)

const waitingPlaceholder = "r ready | u not ready | ESC leave"

func enterRoom(m model.Model, code string, players []protocol.PlayerInfo) {
	state := m.Game().State()
	state.Reset()
	state.RoomCode = code
	state.Players = players
	m.SetPhase(model.PhaseWaiting)
	m.Input().Reset()
	m.Input().Placeholder = waitingPlaceholder
	m.Input().Focus()
}

func handleMsgRoomCreated(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoomCreatedPayload](msg)
	if err != nil {
		return nil
	}
	enterRoom(m, payload.RoomCode, []protocol.PlayerInfo{payload.Player})
	return nil
}

func handleMsgRoomJoined(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoomJoinedPayload](msg)
	if err != nil {
		return nil
	}
	enterRoom(m, payload.RoomCode, payload.Players)
	return nil
}

func handleMsgMatchFound(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.MatchFoundPayload](msg)
	if err != nil {
		return nil
	}
	enterRoom(m, payload.RoomCode, payload.Players)
	return nil
}

func handleMsgPlayerJoined(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.PlayerJoinedPayload](msg)
	if err != nil {
		return nil
	}
	m.Game().State().AddPlayer(payload.Player)
	return nil
}

func handleMsgPlayerLeft(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.PlayerLeftPayload](msg)
	if err != nil {
		return nil
	}
	m.Game().State().RemovePlayer(payload.PlayerID)
	return nil
}

func handleMsgPlayerReady(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.PlayerReadyPayload](msg)
	if err != nil {
		return nil
	}
	if p := m.Game().State().Player(payload.PlayerID); p != nil {
		p.Ready = payload.Ready
	}
	return nil
}

func handleMsgPlayerOffline(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.PlayerOfflinePayload](msg)
	if err != nil {
		return nil
	}
	if p := m.Game().State().Player(payload.PlayerID); p != nil {
		p.Online = false
	}
	m.SetNotification(model.NotifyPlayerOffline,
		fmt.Sprintf("📴 %s dropped, waiting %d s for them", payload.PlayerName, payload.Timeout), false)
	return nil
}

func handleMsgPlayerOnline(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.PlayerOnlinePayload](msg)
	if err != nil {
		return nil
	}
	if p := m.Game().State().Player(payload.PlayerID); p != nil {
		p.Online = true
	}
	m.ClearNotification(model.NotifyPlayerOffline)
	return nil
}
