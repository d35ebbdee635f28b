package input

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anibalanto/cardascii-24game/internal/game/card"
	"github.com/anibalanto/cardascii-24game/internal/testutil"
	"github.com/anibalanto/cardascii-24game/internal/ui/model"
)

func newTestModel(t *testing.T) (*model.OnlineModel, *testutil.FakeGameClient) {
	t.Helper()
	c := testutil.NewFakeGameClient()
	m := model.NewOnlineModel(c, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(model.ConnectedMsg{})
	return m, c
}

func enter(m model.Model, text string) tea.Cmd {
	m.Input().SetValue(text)
	_, cmd := HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func atTable(m *model.OnlineModel, handOpen bool) {
	m.SetPhase(model.PhasePlaying)
	state := m.Game().State()
	state.RoomCode = "123456"
	state.Target = 24
	if handOpen {
		state.Cards = []card.Card{{Kind: card.Sword, Value: 1}, {Kind: card.Club, Value: 2}, {Kind: card.Gold, Value: 3}, {Kind: card.Cup, Value: 4}}
	}
}

func TestLobbyMenu(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantPhase model.GamePhase
		wantCall  string
	}{
		{"quick match", "1", model.PhaseMatching, "quick_match"},
		{"create room", "2", model.PhaseLobby, "create_room"},
		{"join room", "3", model.PhaseJoinRoom, ""},
		{"leaderboard", "4", model.PhaseLeaderboard, "get_leaderboard"},
		{"stats", "5", model.PhaseStats, "get_stats"},
		{"rules", "6", model.PhaseRules, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, c := newTestModel(t)

			enter(m, tt.input)
			assert.Equal(t, tt.wantPhase, m.Phase())
			if tt.wantCall != "" {
				assert.True(t, c.Called(tt.wantCall), "calls: %v", c.Calls())
			}
		})
	}
}

func TestLobbyMenu_EnterUsesSelection(t *testing.T) {
	t.Parallel()
	m, c := newTestModel(t)

	HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyDown})
	HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyDown})
	HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyDown})
	HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 2, m.Lobby().SelectedIndex())

	cmd := enter(m, "")
	assert.Nil(t, cmd)
	assert.Equal(t, model.PhaseJoinRoom, m.Phase())

	enter(m, "")
	assert.Empty(t, c.JoinedRooms(), "an empty code is ignored")

	enter(m, "654321")
	assert.Equal(t, []string{"654321"}, c.JoinedRooms())
}

func TestLobbyMenu_BadChoice(t *testing.T) {
	t.Parallel()
	m, c := newTestModel(t)

	cmd := enter(m, "9")
	assert.NotNil(t, cmd)
	assert.Equal(t, model.PhaseLobby, m.Phase())
	assert.Equal(t, model.NotifyError, m.GetCurrentNotification().Type)
	assert.Equal(t, []string{"heartbeat"}, c.Calls())
}

func TestLobbyMenu_RefusesNewGames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*model.OnlineModel, *testutil.FakeGameClient)
	}{
		{"maintenance", func(m *model.OnlineModel, _ *testutil.FakeGameClient) { m.SetMaintenanceMode(true) }},
		{"reconnecting", func(_ *model.OnlineModel, c *testutil.FakeGameClient) { c.Reconnecting = true }},
		{"disconnected", func(_ *model.OnlineModel, c *testutil.FakeGameClient) { c.Connected = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, c := newTestModel(t)
			tt.setup(m, c)

			for _, choice := range []string{"1", "2", "3"} {
				enter(m, choice)
				assert.Equal(t, model.PhaseLobby, m.Phase(), choice)
			}
			assert.False(t, c.Called("quick_match"))
			assert.False(t, c.Called("create_room"))
			assert.Equal(t, model.NotifyError, m.GetCurrentNotification().Type)
		})
	}
}

func TestLeaderboardTabCyclesType(t *testing.T) {
	t.Parallel()
	m, c := newTestModel(t)

	enter(m, "4")
	handled, _ := HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, handled)
	assert.Equal(t, []string{"total", "daily"}, c.LeaderboardTypes())
}

func TestWaitingRoom(t *testing.T) {
	t.Parallel()
	m, c := newTestModel(t)
	m.SetPhase(model.PhaseWaiting)

	enter(m, "r")
	enter(m, "unready")
	enter(m, "whatever")
	assert.Equal(t, []string{"heartbeat", "ready", "cancel_ready"}, c.Calls())
}

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phase     model.GamePhase
		wantPhase model.GamePhase
		wantCall  string
	}{
		{model.PhaseJoinRoom, model.PhaseLobby, ""},
		{model.PhaseLeaderboard, model.PhaseLobby, ""},
		{model.PhaseStats, model.PhaseLobby, ""},
		{model.PhaseRules, model.PhaseLobby, ""},
		{model.PhaseGameOver, model.PhaseLobby, ""},
		{model.PhaseMatching, model.PhaseLobby, "leave_room"},
		{model.PhaseWaiting, model.PhaseLobby, "leave_room"},
		{model.PhasePlaying, model.PhasePlaying, ""},
	}

	for _, tt := range tests {
		m, c := newTestModel(t)
		m.SetPhase(tt.phase)

		handled, _ := HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.True(t, handled)
		assert.Equal(t, tt.wantPhase, m.Phase())
		if tt.wantCall != "" {
			assert.True(t, c.Called(tt.wantCall))
		}
		assert.False(t, c.Called("close"))
	}
}

func TestEscapeFromLobbyQuits(t *testing.T) {
	t.Parallel()
	m, c := newTestModel(t)

	handled, cmd := HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, c.Called("close"))
}

func TestCtrlCQuitsAnywhere(t *testing.T) {
	t.Parallel()
	m, c := newTestModel(t)
	atTable(m, true)

	handled, cmd := HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, handled)
	require.NotNil(t, cmd)
	assert.True(t, c.Called("close"))
}

func TestTable_Answer(t *testing.T) {
	t.Parallel()
	m, c := newTestModel(t)
	atTable(m, true)
	m.Game().State().Feedback = "wrong value"

	enter(m, "  (1+2+3)*4 ")
	assert.Equal(t, []string{"(1+2+3)*4"}, c.Answers())
	assert.Empty(t, m.Game().State().Feedback)
	assert.Empty(t, m.Input().Value())

	enter(m, "")
	assert.Len(t, c.Answers(), 1, "empty answers are not sent")
}

func TestTable_AnswerError(t *testing.T) {
	t.Parallel()
	m, c := newTestModel(t)
	atTable(m, true)
	c.AnswerErr = errors.New("answer is longer than 32 bytes")

	cmd := enter(m, "1+2+3+4")
	assert.NotNil(t, cmd)
	assert.Equal(t, "answer is longer than 32 bytes", m.Input().Placeholder)
}

func TestTable_DealWhenNoHand(t *testing.T) {
	t.Parallel()
	m, c := newTestModel(t)
	atTable(m, false)

	enter(m, "")
	assert.True(t, c.Called("new_turn"))

	handled, _ := HandleKeyPress(m, runes("n"))
	assert.True(t, handled)
	assert.Len(t, c.Calls(), 3)

	// with cards on the table 'n' is swallowed
	atTable(m, true)
	HandleKeyPress(m, runes("n"))
	assert.Len(t, c.Calls(), 3)
}

func TestTable_DigitsReachTheInput(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)
	atTable(m, true)

	handled, _ := HandleKeyPress(m, runes("7"))
	assert.False(t, handled)
}

func TestTable_Help(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)
	atTable(m, true)

	HandleKeyPress(m, runes("h"))
	assert.True(t, m.Game().ShowingHelp())

	HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Game().ShowingHelp())
	assert.Equal(t, model.PhasePlaying, m.Phase())
}

func TestTable_Concede(t *testing.T) {
	t.Parallel()

	t.Run("confirmed", func(t *testing.T) {
		t.Parallel()
		m, c := newTestModel(t)
		atTable(m, true)

		HandleKeyPress(m, runes("q"))
		assert.True(t, m.Game().ConfirmingConcede())
		assert.NotNil(t, m.GetCurrentNotification())

		HandleKeyPress(m, runes("y"))
		assert.True(t, c.Called("concede"))
		assert.False(t, m.Game().ConfirmingConcede())
		assert.Nil(t, m.GetCurrentNotification())
	})

	t.Run("any other key cancels", func(t *testing.T) {
		t.Parallel()
		m, c := newTestModel(t)
		atTable(m, true)

		HandleKeyPress(m, runes("q"))
		handled, _ := HandleKeyPress(m, runes("5"))
		assert.True(t, handled)
		assert.False(t, c.Called("concede"))
		assert.False(t, m.Game().ConfirmingConcede())
	})
}

func TestGameOverEnterGoesToLobby(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)
	m.SetPhase(model.PhaseGameOver)
	m.Game().State().RoomCode = "123456"

	enter(m, "")
	assert.Equal(t, model.PhaseLobby, m.Phase())
	assert.Empty(t, m.Game().State().RoomCode)
}
