// Package match pairs players waiting for a quick game.
package match

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/anibalanto/cardascii-24game/internal/apperrors"
	"github.com/anibalanto/cardascii-24game/internal/game/room"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/server/storage"
	"github.com/anibalanto/cardascii-24game/internal/types"
)

type MatcherDeps struct {
	RoomManager *room.RoomManager
	RedisStore  *storage.RedisStore
}

// Matcher queues players and seats them together once a room can be filled.
type Matcher struct {
	rooms *room.RoomManager
	store *storage.RedisStore
	queue []types.ClientInterface
	mu    sync.Mutex
}

func NewMatcher(deps MatcherDeps) *Matcher {
	return &Matcher{
		rooms: deps.RoomManager,
		store: deps.RedisStore,
		queue: make([]types.ClientInterface, 0),
	}
}

// AddToQueue enqueues a client once; repeated calls are ignored.
func (m *Matcher) AddToQueue(client types.ClientInterface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.queue {
		if c.GetID() == client.GetID() {
			return
		}
	}

	m.queue = append(m.queue, client)
	m.mirror(func(ctx context.Context) error { return m.store.AddToMatchQueue(ctx, client.GetID()) })
	log.Printf("🔍 Player %s joined the match queue, %d waiting", client.GetName(), len(m.queue))

	m.tryMatch()
}

func (m *Matcher) RemoveFromQueue(client types.ClientInterface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.queue {
		if c.GetID() == client.GetID() {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			m.mirror(func(ctx context.Context) error { return m.store.RemoveFromMatchQueue(ctx, client.GetID()) })
			log.Printf("🔍 Player %s left the match queue", client.GetName())
			return
		}
	}
}

func (m *Matcher) GetQueueLength() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// mirror copies a queue change to redis without waiting for it.
func (m *Matcher) mirror(op func(ctx context.Context) error) {
	if !m.store.Enabled() {
		return
	}
	go func() { _ = op(context.Background()) }()
}

// tryMatch expects m.mu to be held.
func (m *Matcher) tryMatch() {
	if m.rooms == nil {
		return
	}
	size := m.rooms.Capacity()
	if len(m.queue) < size {
		return
	}

	players := make([]types.ClientInterface, size)
	copy(players, m.queue[:size])
	m.queue = m.queue[size:]
	for _, p := range players {
		m.mirror(func(ctx context.Context) error { return m.store.RemoveFromMatchQueue(ctx, p.GetID()) })
	}

	go m.createMatchRoom(players)
}

func (m *Matcher) requeue(players []types.ClientInterface) {
	m.mu.Lock()
	m.queue = append(players, m.queue...)
	m.mu.Unlock()
}

func (m *Matcher) createMatchRoom(players []types.ClientInterface) {
	r, err := m.rooms.CreateRoom(players[0])
	if err != nil {
		log.Printf("❌ Match failed to create a room: %v", err)
		m.requeue(players)
		return
	}

	seated := []types.ClientInterface{players[0]}
	for _, client := range players[1:] {
		if _, err := m.rooms.JoinRoom(client, r.Code); err != nil {
			log.Printf("❌ Match failed to seat %s: %v", client.GetName(), err)
			client.SendMessage(codec.NewErrorMessageWithText(apperrors.CodeOf(err), err.Error()))
			continue
		}
		seated = append(seated, client)
	}

	names := make([]string, len(seated))
	for i, c := range seated {
		names[i] = c.GetName()
	}
	log.Printf("🎮 Match found! Room %s, players: %s", r.Code, strings.Join(names, ", "))

	infos := r.GetAllPlayersInfo()
	for _, client := range seated {
		client.SendMessage(codec.MustNewMessage(protocol.MsgMatchFound, protocol.MatchFoundPayload{
			RoomCode: r.Code,
			Players:  infos,
		}))
		client.SendMessage(codec.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
			RoomCode: r.Code,
			Player:   r.GetPlayerInfo(client.GetID()),
			Players:  infos,
		}))
	}

	r.SetAllPlayersReady()
	for _, client := range seated {
		r.Broadcast(codec.MustNewMessage(protocol.MsgPlayerReady, protocol.PlayerReadyPayload{
			PlayerID: client.GetID(),
			Ready:    true,
		}))
	}

	m.rooms.StartIfReady(r)
}
