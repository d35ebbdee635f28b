// Package common holds the styles and helpers shared by the UI packages.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/anibalanto/cardascii-24game/internal/game/card"
)

// Icons
const (
	WinIcon     = "🏆"
	TieIcon     = "🤝"
	OfflineIcon = "📴"
	ReadyIcon   = "✅"
	WaitIcon    = "⏳"
)

var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	HintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	GoodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	WarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	// CardStyle is the box around one dealt card.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(CardWidth).
			Align(lipgloss.Center).
			Padding(1, 0).
			Background(lipgloss.Color("#FFFFFF"))
)

// CardWidth is the inner width of a card box.
const CardWidth = 9

// kindColors paints each suit; jokers are gray.
var kindColors = map[card.Kind]lipgloss.Color{
	card.Sword: lipgloss.Color("#1F3A93"),
	card.Club:  lipgloss.Color("#1E6B30"),
	card.Gold:  lipgloss.Color("#B8860B"),
	card.Cup:   lipgloss.Color("#CD0000"),
	card.Joker: lipgloss.Color("240"),
}

// KindStyle returns the text style of a suit.
func KindStyle(k card.Kind) lipgloss.Style {
	color, ok := kindColors[k]
	if !ok {
		color = lipgloss.Color("0")
	}
	return lipgloss.NewStyle().Foreground(color).Background(lipgloss.Color("#FFFFFF")).Bold(true)
}
