package model

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anibalanto/cardascii-24game/internal/logger"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/ui/common"
)

const lobbyPlaceholder = "↑↓ select | enter confirm"

// MatchingTickMsg redraws the matching screen once a second.
type MatchingTickMsg struct{}

// MatchingTick schedules the next MatchingTickMsg.
func MatchingTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return MatchingTickMsg{} })
}

// OnlineModel is the root bubbletea model of the client.
type OnlineModel struct {
	client GameClient
	sounds SoundPlayer
	phase  GamePhase
	error  string

	playerID   string
	playerName string

	matchingStartTime time.Time

	reconnecting  bool
	reconnectChan chan tea.Msg

	maintenanceMode bool

	notifications map[NotificationType]*SystemNotification

	lobby *LobbyModel
	game  *GameModel

	input       *textinput.Model
	answerWidth int // bytes, as announced by the server
	timer       timer.Model
	width       int
	height      int

	// injected by package ui, they import this package
	viewRenderer         func(Model, GamePhase) string
	keyHandler           func(Model, tea.KeyMsg) (bool, tea.Cmd)
	serverMessageHandler func(Model, *protocol.Message) tea.Cmd
}

// NewOnlineModel creates the model; sounds may be nil.
func NewOnlineModel(c GameClient, sounds SoundPlayer) *OnlineModel {
	ti := textinput.New()
	ti.Placeholder = lobbyPlaceholder
	ti.CharLimit = protocol.DefaultAnswerWidth
	ti.Width = 40
	ti.Focus()

	return &OnlineModel{
		client:        c,
		sounds:        sounds,
		phase:         PhaseConnecting,
		input:         &ti,
		answerWidth:   protocol.DefaultAnswerWidth,
		reconnectChan: make(chan tea.Msg, 10),
		lobby:         NewLobbyModel(),
		game:          NewGameModel(),
		notifications: make(map[NotificationType]*SystemNotification),
	}
}

// NotifyReconnecting is meant for the connection's reconnect callback.
func (m *OnlineModel) NotifyReconnecting(attempt, maxTries int) {
	select {
	case m.reconnectChan <- ReconnectingMsg{Attempt: attempt, MaxTries: maxTries}:
	default:
	}
}

// NotifyReconnected is meant for the connection's reconnect callback.
func (m *OnlineModel) NotifyReconnected() {
	select {
	case m.reconnectChan <- ReconnectSuccessMsg{}:
	default:
	}
}

func (m *OnlineModel) Init() tea.Cmd {
	if m.sounds != nil {
		go func() {
			if err := m.sounds.Init(); err != nil {
				logger.LogError("sound disabled: %v", err)
			}
		}()
	}

	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
		m.listenForReconnect(),
	)
}

func (m *OnlineModel) listenForReconnect() tea.Cmd {
	return func() tea.Msg {
		return <-m.reconnectChan
	}
}

func (m *OnlineModel) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *OnlineModel) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

// --- Model ---

func (m *OnlineModel) Phase() GamePhase         { return m.phase }
func (m *OnlineModel) SetPhase(phase GamePhase) { m.phase = phase }
func (m *OnlineModel) PlayerID() string         { return m.playerID }
func (m *OnlineModel) PlayerName() string       { return m.playerName }
func (m *OnlineModel) SetPlayerInfo(id, name string) {
	m.playerID = id
	m.playerName = name
}
func (m *OnlineModel) Client() GameClient      { return m.client }
func (m *OnlineModel) Input() *textinput.Model { return m.input }
func (m *OnlineModel) Timer() *timer.Model     { return &m.timer }
func (m *OnlineModel) SetTimer(t timer.Model)  { m.timer = t }
func (m *OnlineModel) Lobby() *LobbyModel      { return m.lobby }
func (m *OnlineModel) Game() *GameModel        { return m.game }
func (m *OnlineModel) Width() int              { return m.width }
func (m *OnlineModel) Height() int             { return m.height }
func (m *OnlineModel) Error() string           { return m.error }

func (m *OnlineModel) SetNotification(notifyType NotificationType, message string, temporary bool) {
	m.notifications[notifyType] = &SystemNotification{
		Message:   message,
		Type:      notifyType,
		Temporary: temporary,
	}
}

func (m *OnlineModel) ClearNotification(notifyType NotificationType) {
	delete(m.notifications, notifyType)
}

func (m *OnlineModel) GetCurrentNotification() *SystemNotification {
	for notifyType := NotifyError; notifyType <= NotifyPlayerOffline; notifyType++ {
		if notification, ok := m.notifications[notifyType]; ok {
			return notification
		}
	}
	return nil
}

// EnterLobby forgets the table and shows the menu.
func (m *OnlineModel) EnterLobby() {
	m.phase = PhaseLobby
	m.error = ""
	m.input.Reset()
	m.input.Placeholder = lobbyPlaceholder
	m.input.Focus()
	m.timer = timer.Model{}
	m.game.State().Reset()
	m.game.SetShowingHelp(false)
	m.ClearNotification(NotifyPlayerOffline)
}

func (m *OnlineModel) IsMaintenanceMode() bool          { return m.maintenanceMode }
func (m *OnlineModel) SetMaintenanceMode(mode bool)     { m.maintenanceMode = mode }
func (m *OnlineModel) MatchingStartTime() time.Time     { return m.matchingStartTime }
func (m *OnlineModel) SetMatchingStartTime(t time.Time) { m.matchingStartTime = t }

func (m *OnlineModel) PlaySound(name string) {
	if m.sounds != nil {
		m.sounds.Play(name)
	}
}

func (m *OnlineModel) IsReconnecting() bool { return m.reconnecting }

func (m *OnlineModel) AnswerWidth() int { return m.answerWidth }

// SetAnswerWidth bounds the input to the server's answer field; non-positive values are ignored.
func (m *OnlineModel) SetAnswerWidth(width int) {
	if width <= 0 {
		return
	}
	m.answerWidth = width
	m.input.CharLimit = width
}

func (m *OnlineModel) SetViewRenderer(fn func(Model, GamePhase) string) {
	m.viewRenderer = fn
}

func (m *OnlineModel) SetKeyHandler(fn func(Model, tea.KeyMsg) (bool, tea.Cmd)) {
	m.keyHandler = fn
}

func (m *OnlineModel) SetServerMessageHandler(fn func(Model, *protocol.Message) tea.Cmd) {
	m.serverMessageHandler = fn
}

func (m *OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.lobby.SetSize(msg.Width, msg.Height)
		m.game.SetSize(msg.Width, msg.Height)

	case ConnectedMsg:
		m.EnterLobby()
		m.client.StartHeartbeat()
		cmds = append(cmds, m.listenForMessages())

	case ConnectionErrorMsg:
		if m.reconnecting {
			// the connection comes back through ReconnectSuccessMsg
			break
		}
		logger.LogError("connection error: %v", msg.Err)
		m.error = fmt.Sprintf("Cannot reach the server: %v\n\nPress ESC to quit", msg.Err)
		m.phase = PhaseConnecting

	case ReconnectingMsg:
		m.reconnecting = true
		m.SetNotification(NotifyReconnecting,
			fmt.Sprintf("🔄 Reconnecting (%d/%d)...", msg.Attempt, msg.MaxTries), false)
		cmds = append(cmds, m.listenForReconnect())

	case ReconnectSuccessMsg:
		m.reconnecting = false
		m.ClearNotification(NotifyReconnecting)
		m.ClearNotification(NotifyError)
		m.ClearNotification(NotifyRateLimit)
		m.SetNotification(NotifyReconnectSuccess, "✅ Reconnected", true)
		cmds = append(cmds,
			tea.Tick(notificationTTL, func(time.Time) tea.Msg { return ClearReconnectMsg{} }),
			m.listenForReconnect(),
		)
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case ClearReconnectMsg:
		m.ClearNotification(NotifyReconnectSuccess)

	case ClearSystemNotificationMsg:
		m.ClearNotification(NotifyError)
		m.ClearNotification(NotifyRateLimit)

	case ClearInputErrorMsg:
		m.input.Placeholder = AnswerPlaceholder(m.game.State())

	case MatchingTickMsg:
		if m.phase == PhaseMatching {
			cmds = append(cmds, MatchingTick())
		}

	case ServerMessage:
		if m.serverMessageHandler != nil {
			if cmd := m.serverMessageHandler(m, msg.Msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case tea.KeyMsg:
		if m.keyHandler != nil {
			handled, keyCmd := m.keyHandler(m, msg)
			if keyCmd != nil {
				cmds = append(cmds, keyCmd)
			}
			if handled {
				return m, tea.Batch(cmds...)
			}
		}
	}

	m.timer, cmd = m.timer.Update(msg)
	cmds = append(cmds, cmd)

	before := m.input.Value()
	newInput, cmd := m.input.Update(msg)
	*m.input = newInput
	cmds = append(cmds, cmd)
	// CharLimit counts runes, the answer field counts bytes
	if len(m.input.Value()) > m.answerWidth {
		m.input.SetValue(before)
	}

	return m, tea.Batch(cmds...)
}

// AnswerPlaceholder is the input hint at the table.
func AnswerPlaceholder(state *TableState) string {
	if state.HandOpen() {
		return fmt.Sprintf("make %d, e.g. (1+2+3)*4", state.Target)
	}
	return "waiting for the next hand, n to deal"
}

func (m *OnlineModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.phase {
	case PhaseConnecting:
		content = m.connectingView()
	case PhaseMatching:
		content = m.matchingView()
	default:
		if m.viewRenderer != nil {
			content = m.viewRenderer(m, m.phase)
		} else {
			content = "View renderer not initialized"
		}
	}

	return common.DocStyle.Render(content)
}

func (m *OnlineModel) connectingView() string {
	text := "Connecting to the server..."
	if m.error != "" {
		text = common.ErrorStyle.Render(m.error)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}

func (m *OnlineModel) matchingView() string {
	elapsed := time.Since(m.matchingStartTime).Seconds()
	text := fmt.Sprintf("🔍 Looking for players...\n\nWaiting: %.0f s\n\nPress ESC to cancel", elapsed)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}
