package handler

import (
	"log"
	"time"

	"github.com/anibalanto/cardascii-24game/internal/game/room"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/server/session"
	"github.com/anibalanto/cardascii-24game/internal/types"
)

func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleReconnect moves a fresh connection onto the identity of a dropped one.
func (h *Handler) handleReconnect(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if !h.sessionManager.CanReconnect(payload.Token, payload.PlayerID) {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "reconnect token is invalid or expired"))
		return
	}

	sess := h.sessionManager.GetSession(payload.PlayerID)
	if sess == nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "session not found"))
		return
	}

	// the old connection has not been reaped yet
	if old := h.server.GetClientByID(sess.PlayerID); old != nil && old != client {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "player is still connected"))
		return
	}

	reidentifier, ok := client.(types.Reidentifier)
	if !ok {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "connection cannot be resumed"))
		return
	}

	oldID := client.GetID()
	if client.GetRoom() != "" {
		h.roomManager.LeaveRoom(client)
	}
	h.matcher.RemoveFromQueue(client)

	h.server.UnregisterClient(oldID)
	h.sessionManager.DeleteSession(oldID)

	reidentifier.SetIdentity(sess.PlayerID, sess.PlayerName)
	h.server.RegisterClient(sess.PlayerID, client)
	h.sessionManager.SetOnline(sess.PlayerID)

	reconnected := protocol.ReconnectedPayload{
		PlayerID:   sess.PlayerID,
		PlayerName: sess.PlayerName,
	}
	if code := sess.Room(); code != "" {
		h.restoreSeat(client, sess, code, &reconnected)
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgReconnected, reconnected))

	log.Printf("🔄 Player %s (%s) reconnected", sess.PlayerName, sess.PlayerID)
}

func (h *Handler) restoreSeat(client types.ClientInterface, sess *session.PlayerSession, code string, payload *protocol.ReconnectedPayload) {
	if _, err := h.roomManager.ReconnectPlayer(code, client); err != nil {
		log.Printf("Player %s could not take back a seat in room %s: %v", sess.PlayerID, code, err)
		h.sessionManager.SetRoom(sess.PlayerID, "")
		return
	}

	payload.RoomCode = code
	if gs := h.GetGameSession(code); gs != nil {
		payload.Table = gs.Snapshot()
	}
}

// OnDisconnect releases everything a closed connection holds. A seat at a
// running table is kept for a reconnect; a seat in a waiting room is freed.
func (h *Handler) OnDisconnect(client types.ClientInterface) {
	id := client.GetID()
	code := client.GetRoom()

	if code != "" {
		if r := h.roomManager.GetRoom(code); r != nil && r.GetState() == room.RoomStateWaiting {
			h.roomManager.LeaveRoom(client)
			code = ""
		}
	}

	h.sessionManager.SetRoom(id, code)
	h.sessionManager.SetOffline(id)

	if code != "" && h.roomManager.NotifyPlayerOffline(client) {
		if gs := h.GetGameSession(code); gs != nil {
			gs.Abort(protocol.ReasonPlayerLeft)
		}
	}

	h.matcher.RemoveFromQueue(client)
	h.server.UnregisterClient(id)
}
