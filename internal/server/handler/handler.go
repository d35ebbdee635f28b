package handler

import (
	"context"
	"log"
	"sync"

	"github.com/anibalanto/cardascii-24game/internal/apperrors"
	"github.com/anibalanto/cardascii-24game/internal/game/match"
	"github.com/anibalanto/cardascii-24game/internal/game/room"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/server/session"
	"github.com/anibalanto/cardascii-24game/internal/server/storage"
	"github.com/anibalanto/cardascii-24game/internal/types"
)

// Leaderboard records table results and answers stats queries.
type Leaderboard interface {
	session.StatsRecorder
	GetPlayerStats(ctx context.Context, playerID string) (*storage.PlayerStats, error)
	GetPlayerRank(ctx context.Context, playerID string) (int64, error)
	GetLeaderboard(ctx context.Context, leaderboardType string, offset, limit int) ([]storage.LeaderboardEntry, error)
}

// HandlerDeps are the collaborators of a Handler.
type HandlerDeps struct {
	Server         types.ServerInterface
	RoomManager    *room.RoomManager
	Matcher        *match.Matcher
	Leaderboard    Leaderboard
	SessionManager *session.SessionManager
	Settings       session.Settings
}

// Handler dispatches client messages and owns the running tables.
type Handler struct {
	server         types.ServerInterface
	roomManager    *room.RoomManager
	matcher        *match.Matcher
	leaderboard    Leaderboard
	sessionManager *session.SessionManager
	settings       session.Settings
	handlers       map[protocol.MessageType]handlerFunc
	games          map[string]*session.GameSession
	gamesMu        sync.RWMutex
}

type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler creates a Handler and hooks it to the room manager's game start.
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:         deps.Server,
		roomManager:    deps.RoomManager,
		matcher:        deps.Matcher,
		leaderboard:    deps.Leaderboard,
		sessionManager: deps.SessionManager,
		settings:       deps.Settings,
		games:          make(map[string]*session.GameSession),
	}
	h.initHandlers()
	if h.roomManager != nil {
		h.roomManager.SetOnGameStart(h.startGame)
	}
	return h
}

// GetGameSession returns the table of a room, or nil.
func (h *Handler) GetGameSession(roomCode string) *session.GameSession {
	h.gamesMu.RLock()
	defer h.gamesMu.RUnlock()
	return h.games[roomCode]
}

// SetGameSession stores gs for roomCode; a nil gs removes it.
func (h *Handler) SetGameSession(roomCode string, gs *session.GameSession) {
	h.gamesMu.Lock()
	defer h.gamesMu.Unlock()
	if gs == nil {
		delete(h.games, roomCode)
	} else {
		h.games[roomCode] = gs
	}
}

// GameCount returns the number of running tables.
func (h *Handler) GameCount() int {
	h.gamesMu.RLock()
	defer h.gamesMu.RUnlock()
	return len(h.games)
}

func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// connection
		protocol.MsgPing:      h.handlePing,
		protocol.MsgReconnect: h.handleReconnect,

		// rooms
		protocol.MsgCreateRoom:  func(c types.ClientInterface, _ *protocol.Message) { h.handleCreateRoom(c) },
		protocol.MsgJoinRoom:    h.handleJoinRoom,
		protocol.MsgLeaveRoom:   func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveRoom(c) },
		protocol.MsgQuickMatch:  func(c types.ClientInterface, _ *protocol.Message) { h.handleQuickMatch(c) },
		protocol.MsgReady:       func(c types.ClientInterface, _ *protocol.Message) { h.handleReady(c, true) },
		protocol.MsgCancelReady: func(c types.ClientInterface, _ *protocol.Message) { h.handleReady(c, false) },

		// table
		protocol.MsgNewTurn: func(c types.ClientInterface, _ *protocol.Message) { h.handleNewTurn(c) },
		protocol.MsgAnswer:  h.handleAnswer,
		protocol.MsgConcede: func(c types.ClientInterface, _ *protocol.Message) { h.handleConcede(c) },

		// stats
		protocol.MsgGetStats:       func(c types.ClientInterface, _ *protocol.Message) { h.handleGetStats(c) },
		protocol.MsgGetLeaderboard: h.handleGetLeaderboard,
	}
}

// Handle dispatches msg to the handler of its type.
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  Unknown message type '%s' from %s (%s), payload %d bytes",
		msg.Type, client.GetName(), client.GetID(), len(msg.Payload))
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// sendError reports err to the client with its protocol code when it has one.
func sendError(client types.ClientInterface, err error) {
	code := apperrors.CodeOf(err)
	if code == protocol.ErrCodeUnknown {
		client.SendMessage(codec.NewErrorMessageWithText(code, err.Error()))
		return
	}
	client.SendMessage(codec.NewErrorMessage(code))
}

// startGame is called by the room manager once every seat of r is ready.
func (h *Handler) startGame(r *room.Room) {
	gs, err := session.NewGameSession(r, h.settings, h.leaderboard, h.onGameEnd)
	if err != nil {
		log.Printf("❌ Room %s cannot start a game: %v", r.Code, err)
		r.Broadcast(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
		h.roomManager.CloseRoom(r.Code)
		return
	}
	gs.SetSnapshotter(h.roomManager)

	h.SetGameSession(r.Code, gs)
	gs.Start()
}

func (h *Handler) onGameEnd(gs *session.GameSession) {
	code := gs.RoomCode()
	h.SetGameSession(code, nil)
	if h.roomManager != nil {
		h.roomManager.CloseRoom(code)
	}
}

// AbortAll ends every running table, e.g. on shutdown.
func (h *Handler) AbortAll(reason string) {
	h.gamesMu.RLock()
	games := make([]*session.GameSession, 0, len(h.games))
	for _, gs := range h.games {
		games = append(games, gs)
	}
	h.gamesMu.RUnlock()

	for _, gs := range games {
		gs.Abort(reason)
	}
}
