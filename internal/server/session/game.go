// Package session runs the tables of started rooms and keeps reconnect sessions.
package session

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/anibalanto/cardascii-24game/internal/game/card"
	"github.com/anibalanto/cardascii-24game/internal/game/room"
	"github.com/anibalanto/cardascii-24game/internal/game/rule"
	"github.com/anibalanto/cardascii-24game/internal/game/table"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/server/storage"
)

type GameState int

const (
	GameStateInit GameState = iota
	GameStatePlaying
	GameStateEnded
)

// deckJokers is the number of jokers in the Spanish deck.
const deckJokers = 2

// GamePlayer is a seat of the table. Seat is the index into the table's player piles.
type GamePlayer struct {
	ID   string
	Name string
	Seat int
}

// StatsRecorder receives the result of every closed turn and finished game.
type StatsRecorder interface {
	RecordTurn(ctx context.Context, playerID, playerName string, result storage.TurnResult) error
	RecordGame(ctx context.Context, playerID, playerName string, won bool) error
}

// Settings are the table rules of a session.
type Settings struct {
	Target      int64
	Jokers      rule.JokerPolicy
	TurnTimeout time.Duration // 0 disables the turn timer
	AnswerWidth int
	Rand        *rand.Rand // nil uses a random seed
}

func (s Settings) withDefaults() Settings {
	if s.Target == 0 {
		s.Target = rule.DefaultTarget
	}
	if s.AnswerWidth <= 0 {
		s.AnswerWidth = protocol.DefaultAnswerWidth
	}
	return s
}

// Snapshotter stores a summary of the table after every change.
type Snapshotter interface {
	SaveSnapshot(r *room.Room, t *storage.TableData)
}

// GameSession owns one table and serializes every event touching it.
type GameSession struct {
	room      *room.Room
	settings  Settings
	state     GameState
	players   []*GamePlayer // by seat
	table     *table.State
	validator *rule.Validator
	recorder  StatsRecorder
	snapshots Snapshotter
	onEnd     func(gs *GameSession)

	// turnTimer fires for the turn number it was armed with
	turnTimer *time.Timer
	timerTurn int

	mu sync.Mutex
}

// NewGameSession seats the players of r by seat order. recorder and onEnd may be nil.
func NewGameSession(r *room.Room, settings Settings, recorder StatsRecorder, onEnd func(gs *GameSession)) (*GameSession, error) {
	settings = settings.withDefaults()

	infos := r.GetAllPlayersInfo()
	players := make([]*GamePlayer, len(infos))
	for i, info := range infos {
		players[i] = &GamePlayer{ID: info.ID, Name: info.Name, Seat: i}
	}

	opts := []table.Option{}
	if settings.Rand != nil {
		opts = append(opts, table.WithRand(settings.Rand))
	}
	if settings.Jokers == rule.JokerExcluded {
		opts = append(opts, table.WithoutJokers())
	}
	state, err := table.New(card.NewSpanishDeck(deckJokers), len(players), opts...)
	if err != nil {
		return nil, err
	}

	return &GameSession{
		room:     r,
		settings: settings,
		state:    GameStateInit,
		players:  players,
		table:    state,
		validator: rule.New(
			rule.WithTarget(settings.Target),
			rule.WithJokerPolicy(settings.Jokers),
		),
		recorder: recorder,
		onEnd:    onEnd,
	}, nil
}

// SetSnapshotter makes the session save a table summary after every turn.
func (gs *GameSession) SetSnapshotter(s Snapshotter) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.snapshots = s
}

// RoomCode returns the code of the room the table belongs to.
func (gs *GameSession) RoomCode() string {
	return gs.room.Code
}

// State returns the lifecycle stage of the session.
func (gs *GameSession) State() GameState {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.state
}

// seatOf expects gs.mu to be held.
func (gs *GameSession) seatOf(playerID string) (*GamePlayer, bool) {
	for _, p := range gs.players {
		if p.ID == playerID {
			return p, true
		}
	}
	return nil, false
}

// playersInfo expects gs.mu to be held.
func (gs *GameSession) playersInfo() []protocol.PlayerInfo {
	counts := gs.table.Counts()
	infos := make([]protocol.PlayerInfo, len(gs.players))
	for i, p := range gs.players {
		info := gs.room.GetPlayerInfo(p.ID)
		info.Name = p.Name
		info.Seat = p.Seat
		info.Cards = counts.Players[i]
		infos[i] = info
	}
	return infos
}
