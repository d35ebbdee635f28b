package handler

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/protocol/convert"
	"github.com/anibalanto/cardascii-24game/internal/sound"
	"github.com/anibalanto/cardascii-24game/internal/ui/model"
)

func handleMsgConnected(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ConnectedPayload](msg)
	if err != nil {
		return nil
	}
	m.SetAnswerWidth(payload.AnswerWidth)
	// a reconnecting client keeps the identity it resumes
	if m.PlayerID() == "" {
		m.SetPlayerInfo(payload.PlayerID, payload.PlayerName)
		m.PlaySound(sound.Connect)
	}
	return nil
}

func handleMsgReconnected(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ReconnectedPayload](msg)
	if err != nil {
		return nil
	}

	m.SetPlayerInfo(payload.PlayerID, payload.PlayerName)

	if payload.RoomCode == "" {
		m.EnterLobby()
		return nil
	}

	state := m.Game().State()
	state.RoomCode = payload.RoomCode
	if payload.Table == nil {
		m.SetPhase(model.PhaseWaiting)
		return nil
	}

	state.Players = payload.Table.Players
	state.Turn = payload.Table.Turn
	state.Cards = convert.InfosToCards(payload.Table.Cards)
	m.SetPhase(model.PhasePlaying)
	m.Input().Placeholder = model.AnswerPlaceholder(state)
	m.Input().Focus()
	return nil
}

func handleMsgError(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		return nil
	}

	switch payload.Code {
	case protocol.ErrCodeServerMaintenance:
		m.SetMaintenanceMode(true)
		m.SetNotification(model.NotifyMaintenance, "⚠️ Server under maintenance, no new games", false)
	case protocol.ErrCodeRateLimit:
		m.SetNotification(model.NotifyRateLimit, "⚠️ "+payload.Message, true)
		return model.ClearNotificationsLater()
	}

	switch m.Phase() {
	case model.PhasePlaying:
		m.Input().Placeholder = payload.Message
		return model.ClearInputErrorLater()
	case model.PhaseMatching, model.PhaseJoinRoom:
		m.EnterLobby()
	}

	m.SetNotification(model.NotifyError, fmt.Sprintf("⚠️ %s", payload.Message), true)
	return model.ClearNotificationsLater()
}

func handleMsgMaintenance(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.MaintenancePayload](msg)
	if err != nil {
		return nil
	}
	m.SetMaintenanceMode(payload.Maintenance)
	if payload.Maintenance {
		m.SetNotification(model.NotifyMaintenance, "⚠️ Server under maintenance, no new games", false)
	} else {
		m.ClearNotification(model.NotifyMaintenance)
	}
	return nil
}
