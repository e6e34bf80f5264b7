package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aristath/tradeboard/internal/api"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case textMsg:
		m.texts[msg.region] = msg.text

	case rowsMsg:
		m.rows = msg.rows
		m.tableMessage = ""

	case tableMessageMsg:
		m.rows = nil
		m.tableMessage = msg.text

	case alertMsg:
		m.alerts = append(m.alerts, msg.text)

	case redirectMsg:
		if m.screen == screenLogin {
			return m, nil
		}
		m.screen = screenLogin
		m.alerts = nil
		m.loginErr = ""
		m.quantity.Blur()
		m.password.Blur()
		m.username.Focus()
		return m, stopPolling(m.backend)

	case loginResultMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.loginErr = loginErrorText(msg.err)
			return m, nil
		}
		m.screen = screenDashboard
		m.loginErr = ""
		m.password.Reset()
		m.username.Blur()
		m.password.Blur()
		m.quantity.Focus()
		return m, startPolling(m.backend)

	case tea.KeyMsg:
		if m.screen == screenLogin {
			return m.updateLogin(msg)
		}
		return m.updateDashboard(msg)
	}

	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	// An open alert swallows every key until it is acknowledged.
	if len(m.alerts) > 0 {
		if key.Matches(msg, keys.Dismiss) {
			m.alerts = m.alerts[1:]
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Buy):
		return m, submitTrade(m.backend, api.ActionBuy)
	case key.Matches(msg, keys.Sell):
		return m, submitTrade(m.backend, api.ActionSell)
	case key.Matches(msg, keys.Refresh):
		return m, refresh(m.backend)
	}

	if msg.Type == tea.KeyBackspace || (msg.Type == tea.KeyRunes && digitsOnly(msg.Runes)) {
		var cmd tea.Cmd
		m.quantity, cmd = m.quantity.Update(msg)
		m.surface.setQuantity(m.quantity.Value())
		return m, cmd
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, keys.NextField):
		if m.username.Focused() {
			m.username.Blur()
			m.password.Focus()
		} else {
			m.password.Blur()
			m.username.Focus()
		}
		return m, nil

	case key.Matches(msg, keys.Submit):
		if m.loggingIn {
			return m, nil
		}
		username := strings.TrimSpace(m.username.Value())
		if username == "" || m.password.Value() == "" {
			m.loginErr = "Username and password are required"
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, login(m.backend, username, m.password.Value())
	}

	var cmd tea.Cmd
	if m.username.Focused() {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func digitsOnly(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
