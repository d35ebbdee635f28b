package model

import "github.com/anibalanto/cardascii-24game/internal/protocol"

// MenuItems are the lobby entries in display order.
var MenuItems = []string{
	"Quick match",
	"Create room",
	"Join room",
	"Leaderboard",
	"My stats",
	"Rules",
}

// LobbyModel is the lobby menu and the data shown from it.
type LobbyModel struct {
	width  int
	height int

	selectedIndex int

	leaderboardType string
	leaderboard     []protocol.LeaderboardEntry
	myStats         *protocol.StatsResultPayload
}

func NewLobbyModel() *LobbyModel {
	return &LobbyModel{leaderboardType: "total"}
}

func (m *LobbyModel) SelectedIndex() int       { return m.selectedIndex }
func (m *LobbyModel) SetSelectedIndex(idx int) { m.selectedIndex = idx }

func (m *LobbyModel) LeaderboardType() string { return m.leaderboardType }
func (m *LobbyModel) Leaderboard() []protocol.LeaderboardEntry {
	return m.leaderboard
}
func (m *LobbyModel) SetLeaderboard(leaderboardType string, entries []protocol.LeaderboardEntry) {
	m.leaderboardType = leaderboardType
	m.leaderboard = entries
}
func (m *LobbyModel) MyStats() *protocol.StatsResultPayload         { return m.myStats }
func (m *LobbyModel) SetMyStats(stats *protocol.StatsResultPayload) { m.myStats = stats }

// NextLeaderboardType cycles total → daily → weekly.
func (m *LobbyModel) NextLeaderboardType() string {
	switch m.leaderboardType {
	case "total":
		return "daily"
	case "daily":
		return "weekly"
	default:
		return "total"
	}
}

func (m *LobbyModel) HandleUpKey() {
	m.selectedIndex--
	if m.selectedIndex < 0 {
		m.selectedIndex = len(MenuItems) - 1
	}
}

func (m *LobbyModel) HandleDownKey() {
	m.selectedIndex++
	if m.selectedIndex >= len(MenuItems) {
		m.selectedIndex = 0
	}
}

func (m *LobbyModel) Width() int  { return m.width }
func (m *LobbyModel) Height() int { return m.height }
func (m *LobbyModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
