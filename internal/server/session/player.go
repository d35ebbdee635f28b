package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anibalanto/cardascii-24game/internal/server/storage"
)

const (
	// how long an offline player may still reconnect
	reconnectTimeout = 2 * time.Minute
	// offline sessions older than this are dropped
	sessionExpireTime = 10 * time.Minute
)

// PlayerSession lets a dropped player take back its identity and seat.
type PlayerSession struct {
	PlayerID       string
	PlayerName     string
	ReconnectToken string
	RoomCode       string

	DisconnectedAt time.Time
	IsOnline       bool

	mu sync.RWMutex
}

// Room returns the code of the room the player sits in.
func (s *PlayerSession) Room() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.RoomCode
}

func (s *PlayerSession) toData() *storage.PlayerSessionData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data := &storage.PlayerSessionData{
		PlayerID:       s.PlayerID,
		PlayerName:     s.PlayerName,
		ReconnectToken: s.ReconnectToken,
		RoomCode:       s.RoomCode,
		IsOnline:       s.IsOnline,
	}
	if !s.DisconnectedAt.IsZero() {
		data.DisconnectedAt = s.DisconnectedAt.Unix()
	}
	return data
}

// SessionManager tracks reconnect sessions in memory and mirrors them to redis.
type SessionManager struct {
	sessions map[string]*PlayerSession // playerID -> session
	tokens   map[string]string         // token -> playerID
	store    *storage.RedisStore
	mu       sync.RWMutex

	stopOnce sync.Once
	stop     chan struct{}
}

func NewSessionManager(store *storage.RedisStore) *SessionManager {
	sm := &SessionManager{
		sessions: make(map[string]*PlayerSession),
		tokens:   make(map[string]string),
		store:    store,
		stop:     make(chan struct{}),
	}

	go sm.cleanupLoop()

	return sm
}

// Stop ends the cleanup loop.
func (sm *SessionManager) Stop() {
	sm.stopOnce.Do(func() { close(sm.stop) })
}

func (sm *SessionManager) CreateSession(playerID, playerName string) *PlayerSession {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session := &PlayerSession{
		PlayerID:       playerID,
		PlayerName:     playerName,
		ReconnectToken: uuid.NewString(),
		IsOnline:       true,
	}

	sm.sessions[playerID] = session
	sm.tokens[session.ReconnectToken] = playerID

	sm.persist(session)
	return session
}

func (sm *SessionManager) GetSession(playerID string) *PlayerSession {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[playerID]
}

func (sm *SessionManager) GetSessionByToken(token string) *PlayerSession {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	playerID, ok := sm.tokens[token]
	if !ok {
		return nil
	}
	return sm.sessions[playerID]
}

func (sm *SessionManager) update(playerID string, fn func(s *PlayerSession)) {
	sm.mu.RLock()
	session, ok := sm.sessions[playerID]
	sm.mu.RUnlock()
	if !ok {
		return
	}

	session.mu.Lock()
	fn(session)
	session.mu.Unlock()

	sm.persist(session)
}

func (sm *SessionManager) SetOffline(playerID string) {
	sm.update(playerID, func(s *PlayerSession) {
		s.IsOnline = false
		s.DisconnectedAt = time.Now()
	})
}

func (sm *SessionManager) SetOnline(playerID string) {
	sm.update(playerID, func(s *PlayerSession) {
		s.IsOnline = true
		s.DisconnectedAt = time.Time{}
	})
}

func (sm *SessionManager) SetRoom(playerID, roomCode string) {
	sm.update(playerID, func(s *PlayerSession) { s.RoomCode = roomCode })
}

func (sm *SessionManager) DeleteSession(playerID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if session, ok := sm.sessions[playerID]; ok {
		delete(sm.tokens, session.ReconnectToken)
		delete(sm.sessions, playerID)
		sm.forget(playerID)
	}
}

// CanReconnect checks the token against the player and the reconnect window.
func (sm *SessionManager) CanReconnect(token, playerID string) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	storedPlayerID, ok := sm.tokens[token]
	if !ok || storedPlayerID != playerID {
		return false
	}

	session, ok := sm.sessions[playerID]
	if !ok {
		return false
	}

	session.mu.RLock()
	defer session.mu.RUnlock()

	if !session.IsOnline && time.Since(session.DisconnectedAt) > reconnectTimeout {
		return false
	}
	return true
}

func (sm *SessionManager) IsOnline(playerID string) bool {
	sm.mu.RLock()
	session, ok := sm.sessions[playerID]
	sm.mu.RUnlock()

	if !ok {
		return false
	}

	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.IsOnline
}

// Count returns the number of tracked sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

func (sm *SessionManager) persist(session *PlayerSession) {
	if !sm.store.Enabled() {
		return
	}
	data := session.toData()
	go func() { _ = sm.store.SaveSession(context.Background(), data) }()
}

func (sm *SessionManager) forget(playerID string) {
	if !sm.store.Enabled() {
		return
	}
	go func() { _ = sm.store.DeleteSession(context.Background(), playerID) }()
}

func (sm *SessionManager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sm.cleanup(time.Now())
		case <-sm.stop:
			return
		}
	}
}

// cleanup drops sessions offline for longer than sessionExpireTime.
func (sm *SessionManager) cleanup(now time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for playerID, session := range sm.sessions {
		session.mu.RLock()
		expired := !session.IsOnline && now.Sub(session.DisconnectedAt) > sessionExpireTime
		session.mu.RUnlock()
		if expired {
			delete(sm.tokens, session.ReconnectToken)
			delete(sm.sessions, playerID)
			sm.forget(playerID)
		}
	}
}
