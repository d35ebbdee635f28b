package handler

import (
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/types"
)

func (h *Handler) handleCreateRoom(client types.ClientInterface) {
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "server under maintenance, no new rooms"))
		return
	}

	h.matcher.RemoveFromQueue(client)
	if client.GetRoom() != "" {
		h.leaveRoom(client)
	}

	room, err := h.roomManager.CreateRoom(client)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: room.Code,
		Player:   room.GetPlayerInfo(client.GetID()),
	}))
}

func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "server under maintenance, rooms are closed"))
		return
	}

	payload, err := codec.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	h.matcher.RemoveFromQueue(client)
	if client.GetRoom() != "" {
		h.leaveRoom(client)
	}

	room, err := h.roomManager.JoinRoom(client, payload.RoomCode)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: room.Code,
		Player:   room.GetPlayerInfo(client.GetID()),
		Players:  room.GetAllPlayersInfo(),
	}))
}

func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	h.matcher.RemoveFromQueue(client)
	h.leaveRoom(client)
}

// leaveRoom ends the client's game, if any, before freeing its seat.
func (h *Handler) leaveRoom(client types.ClientInterface) {
	code := client.GetRoom()
	if code == "" {
		return
	}
	if gs := h.GetGameSession(code); gs != nil {
		gs.PlayerLeft(client.GetID())
	}
	h.roomManager.LeaveRoom(client)
}

func (h *Handler) handleQuickMatch(client types.ClientInterface) {
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "server under maintenance, matching is paused"))
		return
	}

	if client.GetRoom() != "" {
		h.leaveRoom(client)
	}

	h.matcher.AddToQueue(client)
}

func (h *Handler) handleReady(client types.ClientInterface, ready bool) {
	if err := h.roomManager.SetPlayerReady(client, ready); err != nil {
		sendError(client, err)
	}
}
