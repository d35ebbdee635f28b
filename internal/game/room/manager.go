package room

import (
	"context"
	"log"
	"time"

	"github.com/anibalanto/cardascii-24game/internal/apperrors"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/types"
)

// CreateRoom opens a room with the client on seat 0.
func (rm *RoomManager) CreateRoom(client types.ClientInterface) (*Room, error) {
	if client.GetRoom() != "" {
		return nil, apperrors.ErrAlreadyInRoom
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	code := rm.generateRoomCode()

	room := &Room{
		Code:        code,
		State:       RoomStateWaiting,
		Capacity:    rm.capacity,
		Players:     make(map[string]*RoomPlayer, rm.capacity),
		PlayerOrder: make([]string, 0, rm.capacity),
		CreatedAt:   time.Now(),
	}

	room.Players[client.GetID()] = &RoomPlayer{
		ID:     client.GetID(),
		Name:   client.GetName(),
		Client: client,
		Seat:   0,
	}
	room.PlayerOrder = append(room.PlayerOrder, client.GetID())
	client.SetRoom(code)

	rm.rooms[code] = room

	rm.saveRoom(room)

	log.Printf("🏠 Room %s created by %s", code, client.GetName())

	return room, nil
}

// JoinRoom seats the client on the lowest free seat of a waiting room.
func (rm *RoomManager) JoinRoom(client types.ClientInterface, code string) (*Room, error) {
	if client.GetRoom() != "" {
		return nil, apperrors.ErrAlreadyInRoom
	}

	rm.mu.RLock()
	room, exists := rm.rooms[code]
	rm.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()

	if room.State != RoomStateWaiting {
		room.mu.Unlock()
		return nil, apperrors.ErrGameStarted
	}
	if len(room.Players) >= room.Capacity {
		room.mu.Unlock()
		return nil, apperrors.ErrRoomFull
	}

	player := &RoomPlayer{
		ID:     client.GetID(),
		Name:   client.GetName(),
		Client: client,
		Seat:   room.freeSeat(),
	}
	room.Players[client.GetID()] = player
	room.PlayerOrder = append(room.PlayerOrder, client.GetID())
	client.SetRoom(code)

	room.broadcastExcept(client.GetID(), codec.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: room.playerInfo(client.GetID()),
	}))
	room.mu.Unlock()

	log.Printf("👤 Player %s joined room %s (seat %d)", client.GetName(), code, player.Seat)

	rm.saveRoom(room)

	return room, nil
}

// LeaveRoom frees the client's seat and dissolves the room when it becomes empty.
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	rm.mu.RUnlock()
	if !exists {
		client.SetRoom("")
		return
	}

	room.mu.Lock()
	player, exists := room.Players[client.GetID()]
	if !exists {
		room.mu.Unlock()
		client.SetRoom("")
		return
	}

	room.broadcastExcept(client.GetID(), codec.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
	}))

	room.removePlayer(client.GetID())
	empty := len(room.Players) == 0
	room.mu.Unlock()
	client.SetRoom("")

	log.Printf("👋 Player %s left room %s (seat %d)", client.GetName(), roomCode, player.Seat)

	if empty {
		rm.removeRoom(roomCode)
		log.Printf("🏠 Room %s dissolved", roomCode)
		return
	}
	rm.saveRoom(room)
}

// removePlayer expects r.mu to be held.
func (r *Room) removePlayer(playerID string) {
	delete(r.Players, playerID)
	for i, id := range r.PlayerOrder {
		if id == playerID {
			r.PlayerOrder = append(r.PlayerOrder[:i], r.PlayerOrder[i+1:]...)
			break
		}
	}
}

// SetPlayerReady toggles the ready flag and starts the game once every seat is ready.
func (rm *RoomManager) SetPlayerReady(client types.ClientInterface, ready bool) error {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return apperrors.ErrNotInRoom
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	onGameStart := rm.onGameStart
	rm.mu.RUnlock()
	if !exists {
		return apperrors.ErrRoomNotFound
	}

	room.mu.Lock()
	player, exists := room.Players[client.GetID()]
	if !exists {
		room.mu.Unlock()
		return apperrors.ErrNotInRoom
	}
	if room.State != RoomStateWaiting {
		room.mu.Unlock()
		return apperrors.ErrGameStarted
	}

	player.Ready = ready

	room.broadcastExcept("", codec.MustNewMessage(protocol.MsgPlayerReady, protocol.PlayerReadyPayload{
		PlayerID: client.GetID(),
		Ready:    ready,
	}))

	start := room.checkAllReady()
	if start {
		room.State = RoomStatePlaying
	}
	room.mu.Unlock()

	rm.saveRoom(room)

	if start {
		log.Printf("🎮 Room %s is full and ready, starting game", roomCode)
		if onGameStart != nil {
			onGameStart(room)
		}
	}
	return nil
}

// StartIfReady starts a room whose seats were filled and readied by the matcher.
func (rm *RoomManager) StartIfReady(room *Room) bool {
	rm.mu.RLock()
	onGameStart := rm.onGameStart
	rm.mu.RUnlock()

	room.mu.Lock()
	start := room.State == RoomStateWaiting && room.checkAllReady()
	if start {
		room.State = RoomStatePlaying
	}
	room.mu.Unlock()

	if start && onGameStart != nil {
		rm.saveRoom(room)
		onGameStart(room)
	}
	return start
}

func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

func (rm *RoomManager) GetRoomByPlayerID(playerID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	for _, room := range rm.rooms {
		if room.HasPlayer(playerID) {
			return room
		}
	}
	return nil
}

// GetRoomCount returns the number of open rooms.
func (rm *RoomManager) GetRoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// GetActiveGamesCount counts the rooms with a table in play.
func (rm *RoomManager) GetActiveGamesCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	count := 0
	for _, room := range rm.rooms {
		if room.GetState() == RoomStatePlaying {
			count++
		}
	}
	return count
}

func (rm *RoomManager) saveRoom(room *Room) {
	if !rm.redisStore.Enabled() {
		return
	}
	data := room.ToRoomData()
	go func() { _ = rm.redisStore.SaveRoom(context.Background(), data.Code, data) }()
}

func (rm *RoomManager) removeRoom(code string) {
	rm.mu.Lock()
	delete(rm.rooms, code)
	rm.mu.Unlock()
	if rm.redisStore.Enabled() {
		go func() { _ = rm.redisStore.DeleteRoom(context.Background(), code) }()
	}
}
