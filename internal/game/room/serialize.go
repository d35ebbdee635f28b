package room

import (
	"context"

	"github.com/anibalanto/cardascii-24game/internal/server/storage"
)

// ToRoomData converts the room into its redis snapshot.
func (r *Room) ToRoomData() *storage.RoomData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := &storage.RoomData{
		Code:        r.Code,
		State:       int(r.State),
		Capacity:    r.Capacity,
		Players:     make([]storage.PlayerData, 0, len(r.Players)),
		PlayerOrder: append([]string(nil), r.PlayerOrder...),
		CreatedAt:   r.CreatedAt.Unix(),
	}

	for _, info := range r.allPlayersInfo() {
		data.Players = append(data.Players, storage.PlayerData{
			ID:     info.ID,
			Name:   info.Name,
			Seat:   info.Seat,
			Ready:  info.Ready,
			Online: info.Online,
		})
	}

	return data
}

// SaveSnapshot stores the room together with a summary of its running table.
func (rm *RoomManager) SaveSnapshot(room *Room, table *storage.TableData) {
	if !rm.redisStore.Enabled() {
		return
	}
	data := room.ToRoomData()
	data.Table = table
	go func() { _ = rm.redisStore.SaveRoom(context.Background(), data.Code, data) }()
}
