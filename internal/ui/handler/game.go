package handler

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/protocol/convert"
	"github.com/anibalanto/cardascii-24game/internal/sound"
	"github.com/anibalanto/cardascii-24game/internal/ui/model"
)

func handleMsgGameStart(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GameStartPayload](msg)
	if err != nil {
		return nil
	}

	state := m.Game().State()
	state.Players = payload.Players
	state.Target = payload.Target
	m.SetAnswerWidth(payload.AnswerWidth)
	state.LastResult = nil
	state.GameOver = nil

	m.SetPhase(model.PhasePlaying)
	m.Input().Reset()
	m.Input().Placeholder = model.AnswerPlaceholder(state)
	m.Input().Focus()
	return nil
}

func handleMsgTurnBegin(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.TurnBeginPayload](msg)
	if err != nil {
		return nil
	}

	state := m.Game().State()
	state.Turn = payload.Turn
	state.Cards = convert.InfosToCards(payload.Cards)
	state.Feedback = ""

	m.SetPhase(model.PhasePlaying)
	m.Input().Reset()
	m.Input().Placeholder = model.AnswerPlaceholder(state)
	m.Input().Focus()
	m.PlaySound(sound.Deal)

	if payload.Timeout <= 0 {
		m.Game().SetTimerDuration(0)
		m.SetTimer(timer.Model{})
		return nil
	}

	m.Game().SetTimerDuration(time.Duration(payload.Timeout) * time.Second)
	m.Game().SetTimerStartTime(time.Now())
	t := timer.NewWithInterval(m.Game().TimerDuration(), time.Second)
	m.SetTimer(t)
	return t.Start()
}

func handleMsgTurnContinue(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.TurnContinuePayload](msg)
	if err != nil {
		return nil
	}

	feedback := payload.Reason
	if payload.Value != nil {
		feedback = fmt.Sprintf("%s (= %d)", payload.Reason, *payload.Value)
	}
	m.Game().State().Feedback = feedback
	return nil
}

func handleMsgTurnEnd(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.TurnEndPayload](msg)
	if err != nil {
		return nil
	}

	state := m.Game().State()
	state.LastResult = payload
	state.Cards = nil
	state.Feedback = ""

	m.Game().SetTimerDuration(0)
	m.SetTimer(timer.Model{})
	m.Input().Reset()
	m.Input().Placeholder = model.AnswerPlaceholder(state)

	switch payload.Result {
	case protocol.ResultYouWin:
		m.PlaySound(sound.Win)
	case protocol.ResultOtherWins:
		m.PlaySound(sound.Lose)
	case protocol.ResultTied:
		m.PlaySound(sound.Tie)
	}
	return nil
}

func handleMsgGameOver(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GameOverPayload](msg)
	if err != nil {
		return nil
	}

	state := m.Game().State()
	state.GameOver = payload
	state.Cards = nil
	if len(payload.Scores) > 0 {
		state.Players = payload.Scores
	}

	m.SetPhase(model.PhaseGameOver)
	m.Game().SetTimerDuration(0)
	m.SetTimer(timer.Model{})
	m.ClearNotification(model.NotifyPlayerOffline)
	m.Input().Reset()
	m.Input().Placeholder = "press enter to go back to the lobby"
	return nil
}
