package room

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/anibalanto/cardascii-24game/internal/apperrors"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/types"
)

// SetAllPlayersReady marks every seat ready; used for matched rooms.
func (r *Room) SetAllPlayersReady() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, player := range r.Players {
		player.Ready = true
	}
}

// NotifyPlayerOffline keeps the seat of a dropped client and tells the others.
// It returns true when nobody in the room is online anymore; the room is then removed.
func (rm *RoomManager) NotifyPlayerOffline(client types.ClientInterface) bool {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return false
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	rm.mu.RUnlock()
	if !exists {
		return false
	}

	room.mu.Lock()
	if player, exists := room.Players[client.GetID()]; exists {
		player.Client = nil
	}

	allOffline := true
	for _, player := range room.Players {
		if player.Client != nil {
			allOffline = false
			player.Client.SendMessage(codec.MustNewMessage(protocol.MsgPlayerOffline, protocol.PlayerOfflinePayload{
				PlayerID:   client.GetID(),
				PlayerName: client.GetName(),
				Timeout:    offlineGraceSeconds,
			}))
		}
	}

	if allOffline {
		room.State = RoomStateEnded
		room.mu.Unlock()
		log.Printf("🧹 Every player of room %s disconnected, removing it", roomCode)
		rm.removeRoom(roomCode)
		return true
	}
	room.mu.Unlock()

	log.Printf("📴 Player %s went offline in room %s", client.GetName(), roomCode)
	rm.saveRoom(room)
	return false
}

// ReconnectPlayer hands the seat held by newClient's id back to the new connection.
func (rm *RoomManager) ReconnectPlayer(roomCode string, newClient types.ClientInterface) (*Room, error) {
	if roomCode == "" {
		return nil, apperrors.ErrNotInRoom
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	rm.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()
	player, exists := room.Players[newClient.GetID()]
	if !exists {
		room.mu.Unlock()
		return nil, apperrors.ErrNotInRoom
	}

	player.Client = newClient
	player.Name = newClient.GetName()
	newClient.SetRoom(roomCode)

	room.broadcastExcept(newClient.GetID(), codec.MustNewMessage(protocol.MsgPlayerOnline, protocol.PlayerOnlinePayload{
		PlayerID:   newClient.GetID(),
		PlayerName: newClient.GetName(),
	}))
	room.mu.Unlock()

	log.Printf("📶 Player %s reconnected to room %s", newClient.GetName(), roomCode)
	rm.saveRoom(room)

	return room, nil
}

// CloseRoom dissolves a room after its game is over.
func (rm *RoomManager) CloseRoom(code string) {
	rm.mu.RLock()
	room, exists := rm.rooms[code]
	rm.mu.RUnlock()
	if !exists {
		return
	}

	room.mu.Lock()
	room.State = RoomStateEnded
	for _, p := range room.Players {
		if p.Client != nil && p.Client.GetRoom() == code {
			p.Client.SetRoom("")
		}
	}
	room.mu.Unlock()

	rm.removeRoom(code)
	log.Printf("🏠 Room %s closed", code)
}

// generateRoomCode expects rm.mu to be held.
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rm.cleanup(time.Now())
		case <-rm.stop:
			return
		}
	}
}

// cleanup closes waiting rooms older than the room timeout.
func (rm *RoomManager) cleanup(now time.Time) {
	if rm.roomTimeout <= 0 {
		return
	}

	rm.mu.RLock()
	var expired []*Room
	for _, room := range rm.rooms {
		room.mu.RLock()
		if room.State == RoomStateWaiting && now.Sub(room.CreatedAt) > rm.roomTimeout {
			expired = append(expired, room)
		}
		room.mu.RUnlock()
	}
	rm.mu.RUnlock()

	for _, room := range expired {
		room.Broadcast(codec.NewErrorMessageWithText(protocol.ErrCodeRoomNotFound, "room closed after waiting too long"))
		room.mu.Lock()
		for _, p := range room.Players {
			if p.Client != nil {
				p.Client.SetRoom("")
			}
		}
		room.mu.Unlock()
		rm.removeRoom(room.Code)
		log.Printf("🏠 Room %s timed out", room.Code)
	}
}
