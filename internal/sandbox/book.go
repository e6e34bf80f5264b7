package sandbox

import (
	"errors"

	"github.com/shopspring/decimal"
)

// StartingBalance is the cash balance of a new or reset account.
var StartingBalance = decimal.NewFromInt(100000)

var (
	ErrUserExists   = errors.New("username already exists")
	ErrNoMarketData = errors.New("no market data")
	ErrInvalidOrder = errors.New("invalid order")
)

type account struct {
	password string
	balance  decimal.Decimal
	position position
}

// position is a signed contract count: positive long, negative short.
type position struct {
	quantity     int64
	averagePrice decimal.Decimal
}

// fill applies a filled order of delta contracts at price. The average price is
// weighted by the absolute size of the fill over the absolute size of the new position,
// and resets to zero when the position goes flat.
func (p position) fill(delta int64, price decimal.Decimal) position {
	newQty := p.quantity + delta
	if newQty == 0 {
		return position{}
	}
	weighted := p.averagePrice.Mul(decimal.NewFromInt(p.quantity)).
		Add(price.Mul(decimal.NewFromInt(abs(delta))))
	return position{
		quantity:     newQty,
		averagePrice: weighted.Div(decimal.NewFromInt(abs(newQty))),
	}
}

func (p position) unrealizedPL(price decimal.Decimal) decimal.Decimal {
	return price.Sub(p.averagePrice).Mul(decimal.NewFromInt(p.quantity))
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
