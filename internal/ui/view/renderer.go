// Package view renders the client screens.
package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/anibalanto/cardascii-24game/internal/ui/common"
	"github.com/anibalanto/cardascii-24game/internal/ui/model"
)

// CreateViewRenderer returns the renderer injected into OnlineModel.
func CreateViewRenderer() func(model.Model, model.GamePhase) string {
	return func(m model.Model, phase model.GamePhase) string {
		switch phase {
		case model.PhaseLobby:
			return LobbyView(m)
		case model.PhaseJoinRoom:
			return JoinRoomView(m)
		case model.PhaseWaiting:
			return WaitingView(m)
		case model.PhasePlaying:
			return GameView(m)
		case model.PhaseGameOver:
			return GameOverView(m)
		case model.PhaseLeaderboard:
			return LeaderboardView(m)
		case model.PhaseStats:
			return StatsView(m)
		case model.PhaseRules:
			return RulesView(m.Width(), m.Height())
		default:
			return "Unknown phase"
		}
	}
}

// RenderGameRules is the rules box, also shown as help at the table.
func RenderGameRules() string {
	var sb string

	sb += "GOAL\n"
	sb += "Four cards are dealt to every player at once. Be the first to\n"
	sb += "write an expression that equals the target (24).\n\n"

	sb += "ANSWERS\n"
	sb += "• Use the value of every card exactly once\n"
	sb += "• Operators + - * / and parentheses\n"
	sb += "• Division truncates toward zero, e.g. 7/2 = 3\n"
	sb += "• Jokers count as 0 unless the table excludes them\n"
	sb += "• A wrong answer costs nothing, try again\n\n"

	sb += "TURNS\n"
	sb += "• The winner of a hand takes its cards\n"
	sb += "• When the timer runs out the hand goes to the tie pile\n"
	sb += "• The game ends when the deck runs out or someone concedes\n\n"

	sb += "KEYS AT THE TABLE\n"
	sb += "• enter: send answer, or deal when no hand is open\n"
	sb += "• n: deal the next hand   h: help   q: concede\n"
	sb += "• ESC: back / quit\n"

	return common.BoxStyle.Padding(0, 1).Render(sb)
}

func RulesView(width, height int) string {
	var sb string

	sb += lipgloss.PlaceHorizontal(width, lipgloss.Center, common.TitleStyle("📖 Rules"))
	sb += "\n\n"
	sb += lipgloss.PlaceHorizontal(width, lipgloss.Center, RenderGameRules())
	sb += "\n\n"
	sb += lipgloss.PlaceHorizontal(width, lipgloss.Center, "Press ESC to go back")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, sb)
}

// renderNotification renders the status line, empty when nothing is pending.
func renderNotification(m model.Model) string {
	notification := m.GetCurrentNotification()
	if notification == nil {
		return ""
	}

	style := common.WarnStyle
	switch notification.Type {
	case model.NotifyReconnecting, model.NotifyPlayerOffline:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case model.NotifyReconnectSuccess:
		style = common.GoodStyle
	}
	return style.Render(notification.Message)
}

func renderTimer(duration time.Duration, startTime time.Time) string {
	if startTime.IsZero() {
		return "00:00"
	}

	remaining := max(duration-time.Since(startTime), 0)
	secs := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
