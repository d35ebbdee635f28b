// Package input turns key presses into client actions.
package input

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anibalanto/cardascii-24game/internal/ui/model"
)

const leaderboardSize = 10

// HandleKeyPress reports whether the key was consumed; unconsumed keys reach the text input.
func HandleKeyPress(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.Client().Close()
		return true, tea.Quit
	case tea.KeyEsc:
		return handleEscKey(m)
	case tea.KeyUp:
		if m.Phase() == model.PhaseLobby {
			m.Lobby().HandleUpKey()
		}
		return false, nil
	case tea.KeyDown:
		if m.Phase() == model.PhaseLobby {
			m.Lobby().HandleDownKey()
		}
		return false, nil
	case tea.KeyTab:
		if m.Phase() == model.PhaseLeaderboard {
			return true, requestLeaderboard(m, m.Lobby().NextLeaderboardType())
		}
	case tea.KeyRunes:
		return handleRuneKey(m, msg)
	case tea.KeyEnter:
		return false, handleEnter(m)
	}
	return false, nil
}

func handleEscKey(m model.Model) (bool, tea.Cmd) {
	switch m.Phase() {
	case model.PhaseJoinRoom, model.PhaseLeaderboard, model.PhaseStats, model.PhaseRules, model.PhaseGameOver:
		m.EnterLobby()
		return true, nil
	case model.PhaseMatching, model.PhaseWaiting:
		// leaving also drops the player from the match queue
		_ = m.Client().LeaveRoom()
		m.EnterLobby()
		return true, nil
	case model.PhasePlaying:
		if m.Game().ShowingHelp() {
			m.Game().SetShowingHelp(false)
			return true, nil
		}
		m.SetNotification(model.NotifyError, "⚠️ A game is running, press q to concede", true)
		return true, model.ClearNotificationsLater()
	}

	m.Client().Close()
	return true, tea.Quit
}

// handleRuneKey handles the letter commands of the table. Answers never
// contain letters, so letters are free for commands.
func handleRuneKey(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.Phase() != model.PhasePlaying || len(msg.Runes) != 1 {
		return false, nil
	}

	game := m.Game()
	key := msg.Runes[0]

	if game.ConfirmingConcede() {
		game.SetConfirmingConcede(false)
		m.ClearNotification(model.NotifyError)
		if key == 'y' || key == 'Y' {
			_ = m.Client().Concede()
		}
		return true, nil
	}

	switch key {
	case 'h', 'H':
		game.SetShowingHelp(!game.ShowingHelp())
		return true, nil
	case 'n', 'N':
		if !game.State().HandOpen() {
			_ = m.Client().NewTurn()
		}
		return true, nil
	case 'q', 'Q':
		game.SetConfirmingConcede(true)
		m.SetNotification(model.NotifyError, "⚠️ Concede the game? y to confirm", false)
		return true, nil
	}
	return false, nil
}

func handleEnter(m model.Model) tea.Cmd {
	input := strings.TrimSpace(m.Input().Value())
	m.Input().Reset()

	switch m.Phase() {
	case model.PhaseLobby:
		return handleLobbyEnter(m, input)
	case model.PhaseJoinRoom:
		return handleJoinRoomEnter(m, input)
	case model.PhaseWaiting:
		return handleWaitingEnter(m, input)
	case model.PhasePlaying:
		return handlePlayingEnter(m, input)
	case model.PhaseGameOver:
		m.EnterLobby()
	}
	return nil
}

func notifyError(m model.Model, text string) tea.Cmd {
	m.SetNotification(model.NotifyError, "⚠️ "+text, true)
	return model.ClearNotificationsLater()
}

// canStartGame refuses new games during maintenance or without a connection.
func canStartGame(m model.Model) (bool, tea.Cmd) {
	switch {
	case m.IsMaintenanceMode():
		return false, notifyError(m, "Server under maintenance, no new games")
	case m.Client().IsReconnecting():
		return false, notifyError(m, "Reconnecting, try again in a moment")
	case !m.Client().IsConnected():
		return false, notifyError(m, "Not connected to the server")
	}
	return true, nil
}

func handleLobbyEnter(m model.Model, input string) tea.Cmd {
	choice := m.Lobby().SelectedIndex() + 1
	if input != "" {
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(model.MenuItems) {
			return notifyError(m, "Pick an option from 1 to "+strconv.Itoa(len(model.MenuItems)))
		}
		choice = n
	}
	m.Lobby().SetSelectedIndex(choice - 1)

	switch choice {
	case 1:
		if ok, cmd := canStartGame(m); !ok {
			return cmd
		}
		m.SetPhase(model.PhaseMatching)
		m.SetMatchingStartTime(time.Now())
		_ = m.Client().QuickMatch()
		return model.MatchingTick()

	case 2:
		if ok, cmd := canStartGame(m); !ok {
			return cmd
		}
		_ = m.Client().CreateRoom()

	case 3:
		if ok, cmd := canStartGame(m); !ok {
			return cmd
		}
		m.SetPhase(model.PhaseJoinRoom)
		m.Input().Placeholder = "room code, ESC to go back"

	case 4:
		m.SetPhase(model.PhaseLeaderboard)
		return requestLeaderboard(m, m.Lobby().LeaderboardType())

	case 5:
		m.SetPhase(model.PhaseStats)
		_ = m.Client().GetStats()

	case 6:
		m.SetPhase(model.PhaseRules)
	}
	return nil
}

func requestLeaderboard(m model.Model, leaderboardType string) tea.Cmd {
	if err := m.Client().GetLeaderboard(leaderboardType, 0, leaderboardSize); err != nil {
		return notifyError(m, "Cannot load the leaderboard")
	}
	return nil
}

func handleJoinRoomEnter(m model.Model, code string) tea.Cmd {
	if code == "" {
		return nil
	}
	_ = m.Client().JoinRoom(code)
	return nil
}

func handleWaitingEnter(m model.Model, input string) tea.Cmd {
	switch strings.ToLower(input) {
	case "r", "ready":
		_ = m.Client().Ready()
	case "u", "unready":
		_ = m.Client().CancelReady()
	}
	return nil
}

func handlePlayingEnter(m model.Model, input string) tea.Cmd {
	if !m.Game().State().HandOpen() {
		if input == "" {
			_ = m.Client().NewTurn()
		}
		return nil
	}
	if input == "" {
		return nil
	}

	if err := m.Client().Answer(input); err != nil {
		m.Input().Placeholder = err.Error()
		return model.ClearInputErrorLater()
	}
	m.Game().State().Feedback = ""
	return nil
}
