// Package model holds the state of the terminal client.
package model

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
)

// GamePhase is the screen the client is on.
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseLobby
	PhaseJoinRoom
	PhaseMatching
	PhaseWaiting
	PhasePlaying
	PhaseGameOver
	PhaseLeaderboard
	PhaseStats
	PhaseRules
)

// NotificationType orders the notifications; lower values win the status line.
type NotificationType int

const (
	NotifyError            NotificationType = iota // temporary
	NotifyRateLimit                                // temporary
	NotifyReconnecting                             // until reconnected
	NotifyReconnectSuccess                         // temporary
	NotifyMaintenance                              // until lifted
	NotifyPlayerOffline                            // until the player is back
)

// notificationTTL is how long temporary notifications stay.
const notificationTTL = 3 * time.Second

type SystemNotification struct {
	Message   string
	Type      NotificationType
	Temporary bool
}

// --- tea messages ---

// ServerMessage wraps a message from the server.
type ServerMessage struct {
	Msg *protocol.Message
}

type ConnectedMsg struct{}

type ConnectionErrorMsg struct {
	Err error
}

type ReconnectingMsg struct {
	Attempt  int
	MaxTries int
}

type ReconnectSuccessMsg struct{}

type ClearReconnectMsg struct{}

// ClearSystemNotificationMsg drops the temporary notifications.
type ClearSystemNotificationMsg struct{}

// ClearInputErrorMsg restores the input placeholder after an error was shown in it.
type ClearInputErrorMsg struct{}

// GameClient is what the UI needs from the connection.
type GameClient interface {
	Connect() error
	Receive() (*protocol.Message, error)
	Close()
	IsConnected() bool
	IsReconnecting() bool
	StartHeartbeat()

	CreateRoom() error
	JoinRoom(roomCode string) error
	LeaveRoom() error
	QuickMatch() error
	Ready() error
	CancelReady() error
	NewTurn() error
	Answer(expr string) error
	Concede() error
	GetStats() error
	GetLeaderboard(leaderboardType string, offset, limit int) error
}

// SoundPlayer plays named bells.
type SoundPlayer interface {
	Init() error
	Play(name string)
	Close()
}

// Model is what the handler, input and view packages see of OnlineModel.
type Model interface {
	Phase() GamePhase
	SetPhase(GamePhase)

	PlayerID() string
	PlayerName() string
	SetPlayerInfo(id, name string)

	Client() GameClient

	Input() *textinput.Model
	Timer() *timer.Model
	SetTimer(timer.Model)

	Lobby() *LobbyModel
	Game() *GameModel

	SetNotification(notifyType NotificationType, message string, temporary bool)
	ClearNotification(notifyType NotificationType)
	GetCurrentNotification() *SystemNotification

	EnterLobby()
	IsMaintenanceMode() bool
	SetMaintenanceMode(bool)

	MatchingStartTime() time.Time
	SetMatchingStartTime(time.Time)

	PlaySound(name string)

	AnswerWidth() int
	SetAnswerWidth(width int)

	Width() int
	Height() int
}

// ClearNotificationsLater clears the temporary notifications after a while.
func ClearNotificationsLater() tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return ClearSystemNotificationMsg{}
	})
}

// ClearInputErrorLater restores the input placeholder after a while.
func ClearInputErrorLater() tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return ClearInputErrorMsg{}
	})
}
