// Package room seats players at tables and tracks who is ready, online or gone.
package room

import (
	"sync"
	"time"

	"github.com/anibalanto/cardascii-24game/internal/server/storage"
	"github.com/anibalanto/cardascii-24game/internal/types"
)

const (
	roomCodeLength = 6
	roomCodeChars  = "0123456789"

	// DefaultCapacity is the number of seats of a room when none is configured.
	DefaultCapacity = 2

	// offlineGraceSeconds is what other players are told a dropped player has to reconnect.
	offlineGraceSeconds = 20
)

// RoomPlayer is a seat. Client is nil while the player is offline.
type RoomPlayer struct {
	ID     string
	Name   string
	Client types.ClientInterface
	Seat   int
	Ready  bool
}

// Online reports whether the player has a live connection.
func (p *RoomPlayer) Online() bool {
	return p.Client != nil
}

type Room struct {
	Code        string
	State       RoomState
	Capacity    int
	Players     map[string]*RoomPlayer
	PlayerOrder []string // ids in join order
	CreatedAt   time.Time

	mu sync.RWMutex
}

// GameStartFunc is called, outside of any room lock, once every seat of a room is ready.
type GameStartFunc func(r *Room)

type RoomManager struct {
	redisStore  *storage.RedisStore
	roomTimeout time.Duration
	capacity    int
	rooms       map[string]*Room
	onGameStart GameStartFunc
	mu          sync.RWMutex

	stopOnce sync.Once
	stop     chan struct{}
}

func NewRoomManager(rs *storage.RedisStore, roomTimeout time.Duration, capacity int) *RoomManager {
	if capacity < 2 {
		capacity = DefaultCapacity
	}
	rm := &RoomManager{
		redisStore:  rs,
		roomTimeout: roomTimeout,
		capacity:    capacity,
		rooms:       make(map[string]*Room),
		stop:        make(chan struct{}),
	}

	go rm.cleanupLoop()

	return rm
}

// SetOnGameStart registers the hook that starts a table for a full, ready room.
func (rm *RoomManager) SetOnGameStart(fn GameStartFunc) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.onGameStart = fn
}

// Capacity is the number of seats of every room.
func (rm *RoomManager) Capacity() int {
	return rm.capacity
}

// Stop ends the cleanup loop.
func (rm *RoomManager) Stop() {
	rm.stopOnce.Do(func() { close(rm.stop) })
}
