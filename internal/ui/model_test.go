package ui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tradeboard/internal/api"
	"github.com/aristath/tradeboard/internal/poller"
)

type fakeBackend struct {
	mu        sync.Mutex
	starts    int
	stops     int
	refreshes int
	trades    []api.Action
	logins    []string
	loginErr  error
}

func (b *fakeBackend) Login(_ context.Context, username, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logins = append(b.logins, username)
	return b.loginErr
}

func (b *fakeBackend) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.starts++
}

func (b *fakeBackend) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stops++
}

func (b *fakeBackend) Refresh() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshes++
}

func (b *fakeBackend) Trade(_ context.Context, action api.Action) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trades = append(b.trades, action)
	return nil
}

func newTestModel() (Model, *fakeBackend, *Surface) {
	b := &fakeBackend{}
	s := NewSurface()
	return NewModel(b, s, "NQU24", "http://localhost:5000"), b, s
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_Defaults(t *testing.T) {
	m, _, _ := newTestModel()

	assert.Equal(t, "$0.00", m.texts[poller.RegionBalance])
	assert.Equal(t, poller.PlaceholderNotAvailable, m.texts[poller.RegionMarketPrice])
	assert.Equal(t, "0", m.texts[poller.RegionPositionQuantity])
	assert.Contains(t, m.View(), "No open positions")
}

func TestUpdate_RendersSurfaceMessages(t *testing.T) {
	m, _, _ := newTestModel()

	m, _ = update(t, m, textMsg{region: poller.RegionBalance, text: "$100000.00"})
	m, _ = update(t, m, rowsMsg{rows: [][]string{{"NQU24", "2", "$19850.25", "$39753.00", "$52.50"}}})

	view := m.View()
	assert.Contains(t, view, "$100000.00")
	assert.Contains(t, view, "$19850.25")

	m, _ = update(t, m, tableMessageMsg{text: poller.MessagePositionsError})
	assert.Nil(t, m.rows)
	assert.Contains(t, m.View(), poller.MessagePositionsError)

	m, _ = update(t, m, rowsMsg{rows: [][]string{}})
	assert.Empty(t, m.tableMessage)
}

func TestUpdate_QuantityAcceptsDigitsOnly(t *testing.T) {
	m, _, s := newTestModel()

	m, _ = update(t, m, runes("1"))
	m, _ = update(t, m, runes("2"))
	m, _ = update(t, m, runes("x"))
	assert.Equal(t, "12", m.quantity.Value())
	assert.Equal(t, "12", s.Quantity())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "1", s.Quantity())
}

func TestUpdate_TradeKeys(t *testing.T) {
	m, b, _ := newTestModel()

	_, cmd := update(t, m, runes("b"))
	require.NotNil(t, cmd)
	cmd()

	_, cmd = update(t, m, runes("s"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []api.Action{api.ActionBuy, api.ActionSell}, b.trades)
}

func TestUpdate_RefreshKey(t *testing.T) {
	m, b, _ := newTestModel()

	_, cmd := update(t, m, runes("r"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 1, b.refreshes)
}

func TestUpdate_AlertBlocksKeysUntilDismissed(t *testing.T) {
	m, b, _ := newTestModel()

	m, _ = update(t, m, alertMsg{text: "Please enter a quantity"})
	m, _ = update(t, m, alertMsg{text: "second"})
	assert.Contains(t, m.View(), "Please enter a quantity")

	m, cmd := update(t, m, runes("b"))
	assert.Nil(t, cmd)
	assert.Empty(t, b.trades)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"second"}, m.alerts)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.alerts)
	assert.NotContains(t, m.View(), "dismiss")
}

func TestUpdate_Quit(t *testing.T) {
	m, _, _ := newTestModel()

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_RedirectStopsPollingAndShowsLogin(t *testing.T) {
	m, b, _ := newTestModel()

	m, _ = update(t, m, alertMsg{text: "pending"})
	m, cmd := update(t, m, redirectMsg{})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, screenLogin, m.screen)
	assert.Empty(t, m.alerts)
	assert.Equal(t, 1, b.stops)
	assert.Contains(t, m.View(), "Sign in to http://localhost:5000")

	// A second redirect while already on the login screen is a no-op.
	_, cmd = update(t, m, redirectMsg{})
	assert.Nil(t, cmd)
}

func TestUpdate_LoginFlow(t *testing.T) {
	m, b, _ := newTestModel()
	m, _ = update(t, m, redirectMsg{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "Username and password are required", m.loginErr)

	m, _ = update(t, m, runes("alice"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, runes("secret"))
	assert.Equal(t, "alice", m.username.Value())
	assert.Equal(t, "secret", m.password.Value())

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.loggingIn)

	result := cmd()
	assert.Equal(t, []string{"alice"}, b.logins)

	m, cmd = update(t, m, result)
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, screenDashboard, m.screen)
	assert.Empty(t, m.password.Value())
	assert.Equal(t, 1, b.starts)
}

func TestUpdate_LoginFailure(t *testing.T) {
	m, _, _ := newTestModel()
	m, _ = update(t, m, redirectMsg{})

	m, cmd := update(t, m, loginResultMsg{err: api.ErrInvalidCredentials})
	assert.Nil(t, cmd)
	assert.Equal(t, screenLogin, m.screen)
	assert.Equal(t, "Invalid username or password", m.loginErr)

	m, _ = update(t, m, loginResultMsg{err: errors.New("connection refused")})
	assert.Equal(t, "Login failed: connection refused", m.loginErr)
}

func TestUpdate_LoginScreenTypesQ(t *testing.T) {
	m, _, _ := newTestModel()
	m, _ = update(t, m, redirectMsg{})

	m, _ = update(t, m, runes("q"))
	assert.Equal(t, "q", m.username.Value())
	assert.Equal(t, screenLogin, m.screen)
}

func TestSurface_DropsUpdatesWithoutProgram(t *testing.T) {
	s := NewSurface()

	assert.NotPanics(t, func() {
		s.SetText(poller.RegionBalance, "$1.00")
		s.SetRows(nil)
		s.SetTableMessage("x")
		s.Alert("x")
		s.RedirectToLogin()
	})
	assert.Empty(t, s.Quantity())
}
