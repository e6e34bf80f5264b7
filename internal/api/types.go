package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Action is the side of a trade request.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// ParseAction accepts "buy" or "sell" in any case.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionBuy:
		return ActionBuy, nil
	case ActionSell:
		return ActionSell, nil
	}
	return "", fmt.Errorf("unknown trade action %q", s)
}

// AccountSummary is the payload of /api/account_summary.
// Missing or null numeric fields decode as zero.
type AccountSummary struct {
	Balance      decimal.Decimal `json:"balance"`
	Equity       decimal.Decimal `json:"equity"`
	RealizedPL   decimal.Decimal `json:"realized_pl"`
	UnrealizedPL decimal.Decimal `json:"unrealized_pl"`
	DailyPL      decimal.Decimal `json:"daily_pl"`
	Error        string          `json:"error,omitempty"`
}

// Position is one entry of /api/positions.
type Position struct {
	Symbol       string          `json:"symbol"`
	Quantity     decimal.Decimal `json:"quantity"`
	AveragePrice decimal.Decimal `json:"average_price"`
	CurrentValue decimal.Decimal `json:"current_value"`
	UnrealizedPL decimal.Decimal `json:"unrealized_pl"`
}

// Price is a quote field that may arrive as a JSON number or a numeric string.
// Null, empty, zero and non-numeric values are treated as absent.
type Price struct {
	value decimal.Decimal
	valid bool
}

// NewPrice returns a present price.
func NewPrice(d decimal.Decimal) Price {
	return Price{value: d, valid: !d.IsZero()}
}

// UnmarshalJSON never fails; unusable input leaves the price absent.
func (p *Price) UnmarshalJSON(b []byte) error {
	*p = Price{}

	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	*p = NewPrice(d)
	return nil
}

// MarshalJSON writes the price as a number, or null when absent.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return []byte(p.value.String()), nil
}

// Valid reports whether the price is present.
func (p Price) Valid() bool { return p.valid }

// Decimal returns the price value; zero when absent.
func (p Price) Decimal() decimal.Decimal { return p.value }

// MarketQuote is the payload of /api/market_data. The server may send other bar fields; only
// Close and Last are read.
type MarketQuote struct {
	Close Price `json:"Close"`
	Last  Price `json:"Last"`
}

// Price selects the displayable price, preferring Close over Last.
func (q MarketQuote) Price() (decimal.Decimal, bool) {
	if q.Close.Valid() {
		return q.Close.Decimal(), true
	}
	if q.Last.Valid() {
		return q.Last.Decimal(), true
	}
	return decimal.Zero, false
}

// TradeRequest is the body of POST /api/trade.
type TradeRequest struct {
	Action   Action `json:"action"`
	Quantity int    `json:"quantity"`
	Symbol   string `json:"symbol"`
}

// TradeResponse is the reply of POST /api/trade.
type TradeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
