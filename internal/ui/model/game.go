package model

import (
	"slices"
	"time"

	"github.com/anibalanto/cardascii-24game/internal/game/card"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
)

// TableState is the client's view of the table it sits at.
type TableState struct {
	RoomCode string
	Players  []protocol.PlayerInfo
	Target   int

	Turn  int
	Cards []card.Card // empty between hands

	// Feedback is the server's reason for the last answer that did not end the turn.
	Feedback   string
	LastResult *protocol.TurnEndPayload
	GameOver   *protocol.GameOverPayload
}

func (s *TableState) Reset() {
	*s = TableState{}
}

// HandOpen reports whether cards are on the table.
func (s *TableState) HandOpen() bool {
	return len(s.Cards) > 0
}

// Player returns the seat of id, or nil.
func (s *TableState) Player(id string) *protocol.PlayerInfo {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// AddPlayer adds p unless it is already seated.
func (s *TableState) AddPlayer(p protocol.PlayerInfo) {
	if existing := s.Player(p.ID); existing != nil {
		*existing = p
		return
	}
	s.Players = append(s.Players, p)
}

func (s *TableState) RemovePlayer(id string) {
	s.Players = slices.DeleteFunc(s.Players, func(p protocol.PlayerInfo) bool {
		return p.ID == id
	})
}

// PlayerName returns the name of id, or id itself when unknown.
func (s *TableState) PlayerName(id string) string {
	if p := s.Player(id); p != nil {
		return p.Name
	}
	return id
}

// GameModel holds the table and its timer.
type GameModel struct {
	state *TableState

	width  int
	height int

	timerDuration  time.Duration
	timerStartTime time.Time
	showingHelp    bool
	confirmConcede bool
}

func NewGameModel() *GameModel {
	return &GameModel{state: &TableState{}}
}

func (m *GameModel) State() *TableState { return m.state }

func (m *GameModel) TimerDuration() time.Duration     { return m.timerDuration }
func (m *GameModel) SetTimerDuration(d time.Duration) { m.timerDuration = d }
func (m *GameModel) TimerStartTime() time.Time        { return m.timerStartTime }
func (m *GameModel) SetTimerStartTime(t time.Time)    { m.timerStartTime = t }

func (m *GameModel) ShowingHelp() bool           { return m.showingHelp }
func (m *GameModel) SetShowingHelp(showing bool) { m.showingHelp = showing }

func (m *GameModel) Width() int  { return m.width }
func (m *GameModel) Height() int { return m.height }
func (m *GameModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ConfirmingConcede reports whether the next 'y' concedes the game.
func (m *GameModel) ConfirmingConcede() bool           { return m.confirmConcede }
func (m *GameModel) SetConfirmingConcede(confirm bool) { m.confirmConcede = confirm }
