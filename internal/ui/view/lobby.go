package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/ui/common"
	"github.com/anibalanto/cardascii-24game/internal/ui/model"
)

func LobbyView(m model.Model) string {
	var sb strings.Builder

	title := common.TitleStyle("🃏 24")
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, title))
	sb.WriteString("\n\n")

	if m.PlayerName() != "" {
		welcome := fmt.Sprintf("Welcome, %s!", m.PlayerName())
		sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, welcome))
		sb.WriteString("\n")
	}
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, renderNotification(m)))
	sb.WriteString("\n\n")

	menuLines := []string{"Choose:", ""}
	for i, item := range model.MenuItems {
		prefix := "  "
		if i == m.Lobby().SelectedIndex() {
			prefix = "▶ "
		}
		menuLines = append(menuLines, fmt.Sprintf("%s%d. %s", prefix, i+1, item))
	}
	menu := common.BoxStyle.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, menuLines...))
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, menu))
	sb.WriteString("\n\n")

	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, m.Input().View()))

	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center, sb.String())
}

func JoinRoomView(m model.Model) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, common.TitleStyle("🚪 Join a room")))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center,
		"Type the 6 digit code a friend shared with you"))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, renderNotification(m)))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, m.Input().View()))

	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center, sb.String())
}

func LeaderboardView(m model.Model) string {
	lobby := m.Lobby()
	var sb strings.Builder

	title := common.TitleStyle(fmt.Sprintf("🏆 Leaderboard (%s)", lobby.LeaderboardType()))
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, title))
	sb.WriteString("\n\n")

	if entries := lobby.Leaderboard(); len(entries) > 0 {
		sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, renderLeaderboardTable(entries)))
	} else {
		sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, "Nobody has played yet"))
	}

	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center,
		common.HintStyle.Render("TAB total/daily/weekly | ESC back")))

	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center, sb.String())
}

func renderLeaderboardTable(entries []protocol.LeaderboardEntry) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-5s %-14s %6s %6s %7s\n", "Rank", "Player", "Score", "Hands", "Win %")
	sb.WriteString(strings.Repeat("─", 42) + "\n")

	for _, e := range entries {
		fmt.Fprintf(&sb, "%-5s %-14s %6d %6d %6.1f%%\n",
			fmt.Sprintf("%d.", e.Rank), common.TruncateName(e.PlayerName, 14), e.Score, e.TurnsWon, e.WinRate)
	}

	return common.BoxStyle.Padding(0, 1).Render(strings.TrimRight(sb.String(), "\n"))
}

func StatsView(m model.Model) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, common.TitleStyle("📊 My stats")))
	sb.WriteString("\n\n")

	stats := m.Lobby().MyStats()
	if stats != nil && stats.TotalGames > 0 {
		sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, renderStatsTable(stats)))
	} else {
		sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, "No games played yet"))
	}

	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, common.HintStyle.Render("ESC back")))

	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center, sb.String())
}

func renderStatsTable(s *protocol.StatsResultPayload) string {
	var sb strings.Builder

	rank := "unranked"
	if s.Rank > 0 {
		rank = fmt.Sprintf("#%d", s.Rank)
	}
	fmt.Fprintf(&sb, "Rank: %s  |  Score: %d\n", rank, s.Score)
	sb.WriteString(strings.Repeat("─", 36) + "\n")
	fmt.Fprintf(&sb, "Games: %d  Won: %d  Win rate: %.1f%%\n", s.TotalGames, s.GamesWon, s.WinRate)
	fmt.Fprintf(&sb, "Hands won: %d  Hands tied: %d\n", s.TurnsWon, s.TurnsTied)

	streak := ""
	if s.CurrentRun > 0 {
		streak = fmt.Sprintf("🔥 %d hands in a row", s.CurrentRun)
	}
	if s.BestStreak > 0 {
		streak += fmt.Sprintf("  best: %d", s.BestStreak)
	}
	if streak != "" {
		sb.WriteString(strings.TrimSpace(streak))
	}

	return common.BoxStyle.Padding(0, 1).Render(strings.TrimRight(sb.String(), "\n"))
}
