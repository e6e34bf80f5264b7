// Package poller keeps a display surface in sync with the trading server: it fetches the
// account summary, positions and market quote, renders each into its regions, and submits
// trade orders.
package poller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/tradeboard/internal/api"
)

var (
	ErrEmptyQuantity   = errors.New("empty quantity")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrTradeRejected   = errors.New("trade rejected")
)

// API is the subset of api.Client the poller needs.
type API interface {
	AccountSummary(ctx context.Context) (api.AccountSummary, error)
	Positions(ctx context.Context) ([]api.Position, error)
	MarketData(ctx context.Context) (api.MarketQuote, error)
	Trade(ctx context.Context, req api.TradeRequest) (api.TradeResponse, error)
}

// Poller fetches snapshots and renders them. Each endpoint has its own sequence so a slow
// response never overwrites the output of a request issued after it.
type Poller struct {
	api     API
	display Display
	symbol  string
	log     zerolog.Logger

	account   sequence
	positions sequence
	market    sequence
}

// New creates a poller that trades symbol.
func New(client API, display Display, symbol string, log zerolog.Logger) *Poller {
	return &Poller{
		api:     client,
		display: display,
		symbol:  symbol,
		log:     log.With().Str("component", "poller").Logger(),
	}
}

// Symbol returns the contract trades are submitted for.
func (p *Poller) Symbol() string {
	return p.symbol
}

// FetchAccountSummary fetches and renders the account summary. A response carrying an
// error field is logged and leaves the display untouched.
func (p *Poller) FetchAccountSummary(ctx context.Context) error {
	token := p.account.next()

	summary, err := p.api.AccountSummary(ctx)
	if err != nil {
		return p.failed(ctx, api.PathAccountSummary, err, func() {
			p.account.render(token, p.renderAccountError)
		})
	}

	if summary.Error != "" {
		p.log.Error().Str("error", summary.Error).Msg("Error fetching account summary")
		return fmt.Errorf("account summary: %s", summary.Error)
	}

	p.account.render(token, func() { p.renderAccount(summary) })
	return nil
}

// FetchPositions fetches and renders open positions. A malformed body is logged and leaves
// the table as it was.
func (p *Poller) FetchPositions(ctx context.Context) error {
	token := p.positions.next()

	positions, err := p.api.Positions(ctx)
	if err != nil {
		if errors.Is(err, api.ErrMalformed) {
			p.log.Error().Err(err).Msg("Invalid positions data")
			return err
		}
		return p.failed(ctx, api.PathPositions, err, func() {
			p.positions.render(token, p.renderPositionsError)
		})
	}

	p.positions.render(token, func() { p.renderPositions(positions) })
	return nil
}

// FetchMarketData fetches and renders the current market price.
func (p *Poller) FetchMarketData(ctx context.Context) error {
	token := p.market.next()

	quote, err := p.api.MarketData(ctx)
	if err != nil {
		return p.failed(ctx, api.PathMarketData, err, func() {
			p.market.render(token, p.renderQuoteError)
		})
	}

	p.market.render(token, func() { p.renderQuote(quote) })
	return nil
}

// SubmitTrade places an order for the quantity currently in the input. On success the
// account summary and positions are fetched again straight away.
func (p *Poller) SubmitTrade(ctx context.Context, action api.Action) error {
	raw := strings.TrimSpace(p.display.Quantity())
	if raw == "" {
		p.display.Alert(MessageEmptyQuantity)
		return ErrEmptyQuantity
	}

	quantity, ok := ParseQuantity(raw)
	if !ok || quantity <= 0 {
		p.display.Alert(MessageInvalidQuantity)
		return fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}

	req := api.TradeRequest{Action: action, Quantity: quantity, Symbol: p.symbol}
	p.log.Info().
		Str("action", string(action)).
		Int("quantity", quantity).
		Str("symbol", p.symbol).
		Msg("Placing trade")

	resp, err := p.api.Trade(ctx, req)
	if err != nil {
		switch {
		case api.IsUnauthorized(err):
			p.redirect(api.PathTrade)
		case ctx.Err() != nil:
			p.log.Debug().Err(err).Msg("Trade request aborted")
		default:
			p.log.Error().Err(err).Msg("Error placing trade")
			p.display.Alert("Error placing trade: " + err.Error())
		}
		return err
	}

	if !resp.Success {
		p.log.Warn().Str("message", resp.Message).Msg("Trade rejected")
		p.display.Alert("Error: " + resp.Message)
		return fmt.Errorf("%w: %s", ErrTradeRejected, resp.Message)
	}

	p.log.Info().Str("message", resp.Message).Msg("Trade placed")
	p.display.Alert(resp.Message)

	// Failures here are already rendered; the trade itself succeeded.
	_ = p.FetchAccountSummary(ctx)
	_ = p.FetchPositions(ctx)
	return nil
}

// failed applies the shared failure policy: 401 redirects to login without touching the
// display, an aborted request renders nothing, anything else renders the placeholder.
func (p *Poller) failed(ctx context.Context, path string, err error, placeholder func()) error {
	switch {
	case api.IsUnauthorized(err):
		p.redirect(path)
	case ctx.Err() != nil:
		p.log.Debug().Err(err).Str("endpoint", path).Msg("Request aborted")
	default:
		p.log.Error().Err(err).Str("endpoint", path).Msg("Fetch failed")
		placeholder()
	}
	return err
}

func (p *Poller) redirect(path string) {
	p.log.Warn().Str("endpoint", path).Msg("Not authenticated, redirecting to login")
	p.display.RedirectToLogin()
}

// Renderers. Each is called only with the latest accepted value for its domain.

func (p *Poller) renderAccount(s api.AccountSummary) {
	values := []decimal.Decimal{s.Balance, s.Equity, s.RealizedPL, s.UnrealizedPL, s.DailyPL}
	for i, region := range AccountRegions {
		p.display.SetText(region, FormatCurrency(values[i]))
	}
}

func (p *Poller) renderAccountError() {
	for _, region := range AccountRegions {
		p.display.SetText(region, PlaceholderError)
	}
}

func (p *Poller) renderPositions(positions []api.Position) {
	p.display.SetRows(PositionRows(positions))

	quantity, avgPrice := decimal.Zero, decimal.Zero
	if len(positions) > 0 {
		quantity, avgPrice = positions[0].Quantity, positions[0].AveragePrice
	}
	p.display.SetText(RegionPositionQuantity, FormatQuantity(quantity))
	p.display.SetText(RegionPositionAvgPrice, FormatCurrency(avgPrice))
}

func (p *Poller) renderPositionsError() {
	p.display.SetTableMessage(MessagePositionsError)
}

func (p *Poller) renderQuote(q api.MarketQuote) {
	price, ok := q.Price()
	if !ok {
		p.display.SetText(RegionMarketPrice, PlaceholderNotAvailable)
		return
	}
	p.display.SetText(RegionMarketPrice, FormatPrice(price))
}

func (p *Poller) renderQuoteError() {
	p.display.SetText(RegionMarketPrice, PlaceholderError)
}

// PositionRows converts positions into table rows matching PositionColumns.
func PositionRows(positions []api.Position) [][]string {
	rows := make([][]string, 0, len(positions))
	for _, pos := range positions {
		rows = append(rows, []string{
			pos.Symbol,
			FormatQuantity(pos.Quantity),
			FormatCurrency(pos.AveragePrice),
			FormatCurrency(pos.CurrentValue),
			FormatCurrency(pos.UnrealizedPL),
		})
	}
	return rows
}
