package poller

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tradeboard/internal/api"
)

// gatedAPI returns account summaries whose completion is controlled by the test.
type gatedAPI struct {
	calls chan chan api.AccountSummary
}

func (g *gatedAPI) AccountSummary(ctx context.Context) (api.AccountSummary, error) {
	reply := make(chan api.AccountSummary)
	g.calls <- reply
	return <-reply, nil
}

func (g *gatedAPI) Positions(ctx context.Context) ([]api.Position, error) {
	return nil, nil
}

func (g *gatedAPI) MarketData(ctx context.Context) (api.MarketQuote, error) {
	return api.MarketQuote{}, nil
}

func (g *gatedAPI) Trade(ctx context.Context, req api.TradeRequest) (api.TradeResponse, error) {
	return api.TradeResponse{}, nil
}

func TestSequence_RenderOrdering(t *testing.T) {
	var s sequence
	first, second := s.next(), s.next()

	var rendered []uint64
	assert.True(t, s.render(second, func() { rendered = append(rendered, second) }))
	assert.False(t, s.render(first, func() { rendered = append(rendered, first) }))
	assert.Equal(t, []uint64{second}, rendered)
}

func TestStaleResponseDoesNotOverwriteNewer(t *testing.T) {
	gate := &gatedAPI{calls: make(chan chan api.AccountSummary)}
	display := newFakeDisplay()
	p := New(gate, display, "NQU24", zerolog.Nop())

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		_ = p.FetchAccountSummary(context.Background())
	}()
	slowReply := <-gate.calls

	fastDone := make(chan struct{})
	go func() {
		defer close(fastDone)
		_ = p.FetchAccountSummary(context.Background())
	}()
	fastReply := <-gate.calls

	fastReply <- api.AccountSummary{Balance: decimal.NewFromInt(2)}
	<-fastDone
	require.Equal(t, "$2.00", display.text(RegionBalance))

	slowReply <- api.AccountSummary{Balance: decimal.NewFromInt(1)}
	<-slowDone
	assert.Equal(t, "$2.00", display.text(RegionBalance))
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"5", 5, true},
		{" 12 ", 12, true},
		{"12abc", 12, true},
		{"3.9", 3, true},
		{"+4", 4, true},
		{"-2", -2, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"99999999999", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseQuantity(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Decimal{}))
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$-3.00", FormatCurrency(decimal.NewFromInt(-3)))
	assert.Equal(t, "19876.26", FormatPrice(decimal.RequireFromString("19876.255")))
	assert.Equal(t, "2", FormatQuantity(decimal.NewFromInt(2)))
}
