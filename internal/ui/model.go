// Package ui is the terminal trading dashboard.
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/aristath/tradeboard/internal/api"
	"github.com/aristath/tradeboard/internal/poller"
)

const loginTimeout = 15 * time.Second

type screen int

const (
	screenDashboard screen = iota
	screenLogin
)

type Model struct {
	backend Backend
	surface *Surface
	symbol  string
	baseURL string

	// Display state, written only by Update.
	texts        map[poller.Region]string
	rows         [][]string
	tableMessage string
	alerts       []string

	screen    screen
	quantity  textinput.Model
	username  textinput.Model
	password  textinput.Model
	loginErr  string
	loggingIn bool

	width  int
	height int
	help   help.Model
}

// Messages

type textMsg struct {
	region poller.Region
	text   string
}

type rowsMsg struct {
	rows [][]string
}

type tableMessageMsg struct {
	text string
}

type alertMsg struct {
	text string
}

type redirectMsg struct{}

type loginResultMsg struct {
	err error
}

func NewModel(backend Backend, surface *Surface, symbol, baseURL string) Model {
	qty := textinput.New()
	qty.Placeholder = "quantity"
	qty.CharLimit = 9
	qty.Width = 12
	qty.Prompt = "Qty › "
	qty.Focus()

	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = "Username › "
	user.CharLimit = 64

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "Password › "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 128

	texts := make(map[poller.Region]string)
	for _, region := range poller.AccountRegions {
		texts[region] = poller.FormatCurrency(decimal.Zero)
	}
	texts[poller.RegionMarketPrice] = poller.PlaceholderNotAvailable
	texts[poller.RegionPositionQuantity] = "0"
	texts[poller.RegionPositionAvgPrice] = poller.FormatCurrency(decimal.Zero)

	return Model{
		backend:  backend,
		surface:  surface,
		symbol:   symbol,
		baseURL:  baseURL,
		texts:    texts,
		quantity: qty,
		username: user,
		password: pass,
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, startPolling(m.backend))
}

// Commands

func startPolling(b Backend) tea.Cmd {
	return func() tea.Msg {
		b.Start()
		return nil
	}
}

func stopPolling(b Backend) tea.Cmd {
	return func() tea.Msg {
		b.Stop()
		return nil
	}
}

func refresh(b Backend) tea.Cmd {
	return func() tea.Msg {
		b.Refresh()
		return nil
	}
}

// submitTrade runs the trade flow; its outcome reaches the model through the surface.
func submitTrade(b Backend, action api.Action) tea.Cmd {
	return func() tea.Msg {
		_ = b.Trade(context.Background(), action)
		return nil
	}
}

func login(b Backend, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()
		return loginResultMsg{err: b.Login(ctx, username, password)}
	}
}

func loginErrorText(err error) string {
	if errors.Is(err, api.ErrInvalidCredentials) {
		return "Invalid username or password"
	}
	return "Login failed: " + err.Error()
}
