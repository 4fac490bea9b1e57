package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeOrderSide string

const (
	TradeOrderSide_Buy TradeOrderSide = "buy"
)

// TradeOrder is a proposed limit order. Immutable once constructed.
type TradeOrder struct {
	Symbol     string          `json:"symbol"`
	Side       TradeOrderSide  `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	LimitPrice decimal.Decimal `json:"limitPrice"`
	Notional   decimal.Decimal `json:"notional"`
}

// TradePlan is the full output of one planning pass: the orders to
// submit plus the symbols that could not be priced or sized.
type TradePlan struct {
	CreatedAt   time.Time       `json:"createdAt"`
	TotalEquity decimal.Decimal `json:"totalEquity"`
	Orders      []TradeOrder    `json:"orders"`
	Skipped     []string        `json:"skipped"`
}

func (p TradePlan) TotalNotional() decimal.Decimal {
	total := decimal.Zero
	for _, o := range p.Orders {
		total = total.Add(o.Notional)
	}
	return total
}

// Position is a share quantity currently held at the broker.
type Position struct {
	Symbol   string
	Quantity decimal.Decimal
}
