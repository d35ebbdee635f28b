package handler

import (
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/server/session"
	"github.com/anibalanto/cardascii-24game/internal/types"
)

// gameOf returns the table the client plays at, reporting an error to it otherwise.
func (h *Handler) gameOf(client types.ClientInterface) *session.GameSession {
	code := client.GetRoom()
	if code == "" || h.roomManager.GetRoom(code) == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return nil
	}

	gs := h.GetGameSession(code)
	if gs == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeGameNotStart))
		return nil
	}
	return gs
}

func (h *Handler) handleNewTurn(client types.ClientInterface) {
	gs := h.gameOf(client)
	if gs == nil {
		return
	}
	if err := gs.HandleNewTurn(client.GetID()); err != nil {
		sendError(client, err)
	}
}

func (h *Handler) handleAnswer(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.AnswerPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	gs := h.gameOf(client)
	if gs == nil {
		return
	}
	if err := gs.HandleAnswer(client.GetID(), payload.Answer); err != nil {
		sendError(client, err)
	}
}

func (h *Handler) handleConcede(client types.ClientInterface) {
	gs := h.gameOf(client)
	if gs == nil {
		return
	}
	if err := gs.HandleConcede(client.GetID()); err != nil {
		sendError(client, err)
	}
}
