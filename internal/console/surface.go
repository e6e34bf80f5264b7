// Package console is a display surface for non-interactive commands. Values are collected
// while a poll cycle runs and written out by Render; alerts are written immediately.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/olekukonko/tablewriter"

	"github.com/aristath/tradeboard/internal/poller"
)

// summaryOrder is the order regions are printed in.
var summaryOrder = []poller.Region{
	poller.RegionBalance,
	poller.RegionEquity,
	poller.RegionRealizedPL,
	poller.RegionUnrealizedPL,
	poller.RegionDailyPL,
	poller.RegionMarketPrice,
	poller.RegionPositionQuantity,
	poller.RegionPositionAvgPrice,
}

// Surface implements poller.Display on top of an io.Writer.
type Surface struct {
	mu           sync.Mutex
	out          io.Writer
	quantity     string
	texts        map[poller.Region]string
	rows         [][]string
	tableMessage string
	redirected   bool
}

// New creates a surface writing to out.
func New(out io.Writer) *Surface {
	return &Surface{
		out:   out,
		texts: make(map[poller.Region]string),
	}
}

// SetQuantity fills the quantity input, as a user typing it would.
func (s *Surface) SetQuantity(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantity = q
}

func (s *Surface) SetText(region poller.Region, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[region] = text
}

func (s *Surface) SetRows(rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.tableMessage = ""
}

func (s *Surface) SetTableMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	s.tableMessage = text
}

func (s *Surface) Quantity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity
}

func (s *Surface) Alert(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "! %s\n", text)
}

func (s *Surface) RedirectToLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.redirected {
		return
	}
	s.redirected = true
	fmt.Fprintln(s.out, "! Not authenticated: set TRADEBOARD_USERNAME and TRADEBOARD_PASSWORD to log in")
}

// Redirected reports whether any response asked for a login.
func (s *Surface) Redirected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redirected
}

// Text returns the current text of a region.
func (s *Surface) Text(region poller.Region) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.texts[region]
}

// Render writes every known region followed by the positions table.
func (s *Surface) Render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, region := range summaryOrder {
		text, ok := s.texts[region]
		if !ok {
			continue
		}
		fmt.Fprintf(s.out, "%-15s %s\n", poller.RegionLabels[region]+":", text)
	}

	if s.tableMessage != "" {
		fmt.Fprintf(s.out, "\n%s\n", s.tableMessage)
		return
	}
	if s.rows == nil {
		return
	}

	fmt.Fprintln(s.out)
	table := tablewriter.NewWriter(s.out)
	table.SetHeader(poller.PositionColumns)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(s.rows)
	if len(s.rows) == 0 {
		table.SetFooter([]string{"", "", "", "", "no open positions"})
	}
	table.Render()
}
