package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/anibalanto/cardascii-24game/internal/game/card"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/ui/common"
	"github.com/anibalanto/cardascii-24game/internal/ui/model"
)

func WaitingView(m model.Model) string {
	width := m.Width()
	state := m.Game().State()

	var sb strings.Builder

	title := common.TitleStyle(fmt.Sprintf("🏠 Room %s", state.RoomCode))
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	var players strings.Builder
	players.WriteString("Players:\n")
	for _, p := range state.Players {
		ready := "❌"
		if p.Ready {
			ready = common.ReadyIcon
		}
		me := ""
		if p.ID == m.PlayerID() {
			me = " (you)"
		}
		fmt.Fprintf(&players, "  %s %s%s\n", ready, p.Name, me)
	}
	players.WriteString("\nShare the code so friends can join")

	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.BoxStyle.Padding(0, 1).Render(players.String())))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderNotification(m)))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, m.Input().View()))

	return lipgloss.Place(width, m.Height(), lipgloss.Center, lipgloss.Center, sb.String())
}

// GameView is the table: players, the dealt cards, the last result and the answer input.
func GameView(m model.Model) string {
	width := m.Width()
	height := m.Height()
	game := m.Game()
	state := game.State()

	if game.ShowingHelp() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, RenderGameRules(),
			lipgloss.WithWhitespaceChars(" "))
	}

	var sb strings.Builder

	header := common.TitleStyle(fmt.Sprintf("Room %s  ·  hand %d  ·  target %d", state.RoomCode, state.Turn, state.Target))
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, header))
	sb.WriteString("\n\n")

	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderPlayers(state.Players, m.PlayerID())))
	sb.WriteString("\n\n")

	if state.HandOpen() {
		sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, RenderCards(state.Cards)))
	} else {
		sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			common.HintStyle.Render("No hand on the table")))
	}
	sb.WriteString("\n\n")

	if line := ResultLine(state); line != "" {
		sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		sb.WriteString("\n")
	}
	if state.Feedback != "" {
		sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.ErrorStyle.Render("✗ "+state.Feedback)))
		sb.WriteString("\n")
	}
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderNotification(m)))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderPrompt(m)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, sb.String())
}

// RenderCards draws the dealt cards side by side, each as a box with its value over its suit.
func RenderCards(cards []card.Card) string {
	boxes := make([]string, 0, len(cards)*2)
	for i, c := range cards {
		if i > 0 {
			boxes = append(boxes, " ")
		}
		value, kind := common.CardLabel(c)
		style := common.KindStyle(c.Kind)
		content := lipgloss.JoinVertical(lipgloss.Center,
			style.Render(value),
			"",
			style.Render(kind),
		)
		boxes = append(boxes, common.CardStyle.BorderForeground(style.GetForeground()).Render(content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// ResultLine describes how the last hand ended, empty before the first one.
func ResultLine(state *model.TableState) string {
	result := state.LastResult
	if result == nil {
		return ""
	}

	switch result.Result {
	case protocol.ResultYouWin:
		return common.GoodStyle.Render(fmt.Sprintf("%s You took the hand with %s = %d",
			common.WinIcon, strings.TrimSpace(result.Answer), result.Value))
	case protocol.ResultOtherWins:
		name := result.WinnerName
		if name == "" {
			name = state.PlayerName(result.WinnerID)
		}
		return common.WarnStyle.Render(fmt.Sprintf("%s took the hand with %s = %d",
			name, strings.TrimSpace(result.Answer), result.Value))
	case protocol.ResultTied:
		return common.HintStyle.Render(common.TieIcon + " Time is up, the hand goes to the tie pile")
	case protocol.ResultAbandoned:
		return common.HintStyle.Render("The hand was abandoned")
	}
	return ""
}

func renderPlayers(players []protocol.PlayerInfo, myID string) string {
	boxes := make([]string, 0, len(players))
	for _, p := range players {
		name := common.TruncateName(p.Name, 16)
		if p.ID == myID {
			name += " (you)"
		}
		status := fmt.Sprintf("🂠 %d cards", p.Cards)
		if !p.Online {
			status += " " + common.OfflineIcon
		}
		boxes = append(boxes, common.BoxStyle.Padding(0, 1).Render(name+"\n"+status))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func renderPrompt(m model.Model) string {
	game := m.Game()
	prompt := m.Input().View()
	if game.TimerDuration() > 0 && game.State().HandOpen() {
		prompt = fmt.Sprintf("%s %s  %s", common.WaitIcon, renderTimer(game.TimerDuration(), game.TimerStartTime()), prompt)
	}
	hint := common.HintStyle.Render("h help | n deal | q concede")
	return common.PromptStyle.Render(prompt + "\n" + hint)
}

func GameOverView(m model.Model) string {
	state := m.Game().State()

	var sb strings.Builder
	sb.WriteString(common.TitleStyle("🎮 Game over"))
	sb.WriteString("\n\n")

	if over := state.GameOver; over != nil {
		sb.WriteString(gameOverReason(over.Reason))
		sb.WriteString("\n\n")
		sb.WriteString(renderScores(over.Scores, m.PlayerID()))
	}

	sb.WriteString("\n\n")
	sb.WriteString(m.Input().View())

	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(sb.String()))
}

func gameOverReason(reason string) string {
	switch reason {
	case protocol.ReasonDeckEmpty:
		return "The deck ran out"
	case protocol.ReasonConceded:
		return "A player conceded"
	case protocol.ReasonPlayerLeft:
		return "A player left the table"
	case protocol.ReasonShutdown:
		return "The server is shutting down"
	default:
		return reason
	}
}

// renderScores lists the players by pile size, largest first.
func renderScores(scores []protocol.PlayerInfo, myID string) string {
	sorted := slices.Clone(scores)
	slices.SortStableFunc(sorted, func(a, b protocol.PlayerInfo) int {
		return cmp.Compare(b.Cards, a.Cards)
	})

	var sb strings.Builder
	for i, p := range sorted {
		icon := "  "
		if i == 0 && p.Cards > 0 {
			icon = common.WinIcon
		}
		me := ""
		if p.ID == myID {
			me = " (you)"
		}
		fmt.Fprintf(&sb, "%s %-16s %3d cards%s\n", icon, common.TruncateName(p.Name, 16), p.Cards, me)
	}
	return common.BoxStyle.Padding(0, 1).Render(strings.TrimRight(sb.String(), "\n"))
}
