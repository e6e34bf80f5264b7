package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Buy       key.Binding
	Sell      key.Binding
	Refresh   key.Binding
	Dismiss   key.Binding
	NextField key.Binding
	Submit    key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Buy:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "buy")),
	Sell:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sell")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Dismiss:   key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
	NextField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in")),
}

func (k keyMap) dashboardHelp() []key.Binding {
	return []key.Binding{k.Buy, k.Sell, k.Refresh, k.Quit}
}

func (k keyMap) loginHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.ForceQuit}
}
