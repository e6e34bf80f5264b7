package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/tradeboard/internal/poller"
	"github.com/aristath/tradeboard/internal/theme"
)

func (m Model) View() string {
	if m.screen == screenLogin {
		return m.viewLogin()
	}

	body := m.viewDashboard()
	if len(m.alerts) > 0 {
		body = m.viewAlert(m.alerts[0])
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.viewHeader(), "", body)
}

func (m Model) viewHeader() string {
	t := theme.Default
	title := theme.GradientText("TRADEBOARD", t.Primary, t.Accent)
	info := t.Label().Render(fmt.Sprintf("  %s · %s", m.symbol, m.baseURL))
	return lipgloss.NewStyle().Padding(0, 1).Render(title + info)
}

func (m Model) viewDashboard() string {
	t := theme.Default

	top := lipgloss.JoinHorizontal(lipgloss.Top, m.viewAccount(), " ", m.viewMarket())
	positions := t.Card().Render(m.viewPositions())
	trade := lipgloss.NewStyle().Padding(0, 1).Render(m.quantity.View())
	helpLine := lipgloss.NewStyle().Padding(0, 1).Render(m.help.ShortHelpView(keys.dashboardHelp()))

	return lipgloss.JoinVertical(lipgloss.Left, top, positions, "", trade, "", helpLine)
}

func (m Model) viewAccount() string {
	t := theme.Default

	lines := []string{lipgloss.NewStyle().Foreground(t.Info).Render("Account")}
	for _, region := range poller.AccountRegions {
		text := m.texts[region]
		value := t.Value().Render(text)
		if region != poller.RegionBalance && region != poller.RegionEquity {
			value = t.Signed(text).Render(text)
		}
		lines = append(lines, field(poller.RegionLabels[region], value))
	}
	return t.Card().Render(strings.Join(lines, "\n"))
}

func (m Model) viewMarket() string {
	t := theme.Default

	lines := []string{
		lipgloss.NewStyle().Foreground(t.Info).Render(m.symbol),
		field(poller.RegionLabels[poller.RegionMarketPrice], t.Value().Render(m.texts[poller.RegionMarketPrice])),
		field(poller.RegionLabels[poller.RegionPositionQuantity], t.Value().Render(m.texts[poller.RegionPositionQuantity])),
		field(poller.RegionLabels[poller.RegionPositionAvgPrice], t.Value().Render(m.texts[poller.RegionPositionAvgPrice])),
	}
	return t.Card().Render(strings.Join(lines, "\n"))
}

func field(label, value string) string {
	return theme.Default.Label().Width(16).Render(label) + value
}

func (m Model) viewPositions() string {
	t := theme.Default
	title := lipgloss.NewStyle().Foreground(t.Info).Render("Positions")

	if m.tableMessage != "" {
		return title + "\n" + lipgloss.NewStyle().Foreground(t.Loss).Render(m.tableMessage)
	}
	if len(m.rows) == 0 {
		return title + "\n" + t.Label().Render("No open positions")
	}

	widths := make([]int, len(poller.PositionColumns))
	for i, h := range poller.PositionColumns {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range m.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	lines := []string{title}
	var header []string
	for i, h := range poller.PositionColumns {
		header = append(header, t.Label().Width(widths[i]+2).Render(h))
	}
	lines = append(lines, strings.Join(header, ""))

	last := len(poller.PositionColumns) - 1
	for _, row := range m.rows {
		var cells []string
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			style := t.Value()
			if i == last {
				style = t.Signed(cell)
			}
			cells = append(cells, style.Width(widths[i]+2).Render(cell))
		}
		lines = append(lines, strings.Join(cells, ""))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewAlert(text string) string {
	t := theme.Default
	box := t.Alert().Render(text + "\n\n" + t.Label().Render("enter to dismiss"))
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, max(m.height-2, lipgloss.Height(box)), lipgloss.Center, lipgloss.Center, box)
}

func (m Model) viewLogin() string {
	t := theme.Default

	lines := []string{
		theme.GradientText("TRADEBOARD", t.Primary, t.Accent),
		t.Label().Render("Sign in to " + m.baseURL),
		"",
		m.username.View(),
		m.password.View(),
		"",
	}
	switch {
	case m.loggingIn:
		lines = append(lines, t.Label().Render("Logging in…"))
	case m.loginErr != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Loss).Render(m.loginErr))
	}
	lines = append(lines, "", m.help.ShortHelpView(keys.loginHelp()))

	box := t.Card().Padding(1, 3).Render(strings.Join(lines, "\n"))
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
