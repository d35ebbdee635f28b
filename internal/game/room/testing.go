//go:build !production

package room

import (
	"time"

	"github.com/anibalanto/cardascii-24game/internal/types"
)

// NewTestRoom builds a waiting room holding the given clients in seat order.
func NewTestRoom(code string, capacity int, clients ...types.ClientInterface) *Room {
	room := &Room{
		Code:      code,
		State:     RoomStateWaiting,
		Capacity:  capacity,
		Players:   make(map[string]*RoomPlayer, capacity),
		CreatedAt: time.Now(),
	}
	for seat, client := range clients {
		room.Players[client.GetID()] = &RoomPlayer{
			ID:     client.GetID(),
			Name:   client.GetName(),
			Client: client,
			Seat:   seat,
		}
		room.PlayerOrder = append(room.PlayerOrder, client.GetID())
		client.SetRoom(code)
	}
	return room
}

// AddRoomForTest registers a room built outside of CreateRoom.
func (rm *RoomManager) AddRoomForTest(room *Room) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.rooms[room.Code] = room
}
