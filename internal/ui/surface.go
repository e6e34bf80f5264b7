package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aristath/tradeboard/internal/poller"
)

// Surface implements poller.Display for the dashboard. Every update is delivered to the
// running program as a message, so display state is only ever mutated by Update.
type Surface struct {
	mu       sync.Mutex
	program  *tea.Program
	quantity string
}

func NewSurface() *Surface {
	return &Surface{}
}

// Attach connects the surface to the program it delivers updates to. Updates sent
// before a program is attached are dropped.
func (s *Surface) Attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
}

func (s *Surface) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (s *Surface) SetText(region poller.Region, text string) {
	s.send(textMsg{region: region, text: text})
}

func (s *Surface) SetRows(rows [][]string) {
	s.send(rowsMsg{rows: rows})
}

func (s *Surface) SetTableMessage(text string) {
	s.send(tableMessageMsg{text: text})
}

func (s *Surface) Alert(text string) {
	s.send(alertMsg{text: text})
}

func (s *Surface) RedirectToLogin() {
	s.send(redirectMsg{})
}

// Quantity returns the last value of the quantity input seen by Update.
func (s *Surface) Quantity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity
}

func (s *Surface) setQuantity(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantity = q
}
