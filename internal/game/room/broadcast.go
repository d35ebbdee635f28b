package room

import (
	"slices"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
)

// Broadcast sends msg to every online player.
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcastExcept("", msg)
}

// BroadcastExcept sends msg to every online player but excludeID.
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcastExcept(excludeID, msg)
}

// broadcastExcept expects r.mu to be held.
func (r *Room) broadcastExcept(excludeID string, msg *protocol.Message) {
	for id, player := range r.Players {
		if id != excludeID && player.Client != nil {
			player.Client.SendMessage(msg)
		}
	}
}

// SendTo delivers msg to one player. It reports false when the player is absent or offline.
func (r *Room) SendTo(playerID string, msg *protocol.Message) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.Players[playerID]
	if !ok || player.Client == nil {
		return false
	}
	player.Client.SendMessage(msg)
	return true
}

// checkAllReady expects r.mu to be held.
func (r *Room) checkAllReady() bool {
	if len(r.Players) < r.Capacity {
		return false
	}
	for _, player := range r.Players {
		if !player.Ready {
			return false
		}
	}
	return true
}

// GetPlayerInfo describes one player. Cards is left to the table session.
func (r *Room) GetPlayerInfo(playerID string) protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playerInfo(playerID)
}

func (r *Room) playerInfo(playerID string) protocol.PlayerInfo {
	player, ok := r.Players[playerID]
	if !ok {
		return protocol.PlayerInfo{ID: playerID}
	}
	return protocol.PlayerInfo{
		ID:     player.ID,
		Name:   player.Name,
		Seat:   player.Seat,
		Ready:  player.Ready,
		Online: player.Online(),
	}
}

// GetAllPlayersInfo lists the players by seat.
func (r *Room) GetAllPlayersInfo() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.allPlayersInfo()
}

func (r *Room) allPlayersInfo() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.Players))
	for _, id := range r.PlayerOrder {
		infos = append(infos, r.playerInfo(id))
	}
	slices.SortFunc(infos, func(a, b protocol.PlayerInfo) int { return a.Seat - b.Seat })
	return infos
}

// HasPlayer reports whether playerID holds a seat.
func (r *Room) HasPlayer(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.Players[playerID]
	return ok
}

func (r *Room) GetState() RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.State
}

func (r *Room) SetState(state RoomState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.State = state
}

// PlayerCount returns the number of occupied seats.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Players)
}

// freeSeat expects r.mu to be held.
func (r *Room) freeSeat() int {
	taken := make(map[int]bool, len(r.Players))
	for _, p := range r.Players {
		taken[p.Seat] = true
	}
	seat := 0
	for taken[seat] {
		seat++
	}
	return seat
}
