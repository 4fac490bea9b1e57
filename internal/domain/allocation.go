package domain

import (
	"github.com/shopspring/decimal"
)

// CashTicker is the reserved symbol for the uninvested residual row
// emitted by the risk constraint solver.
const CashTicker = "CASH"

// AllocationRow is a single symbol's share of the portfolio. Sector is
// empty when the sector map has no entry for the symbol.
type AllocationRow struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
	Sector string  `json:"sector,omitempty"`
}

// AllocationTarget is an AllocationRow converted into money. Shares is
// nil when no price info was available for the symbol at all,
// distinguishing "unpriceable" from "priced but buys nothing".
type AllocationTarget struct {
	Ticker  string           `json:"ticker"`
	Weight  float64          `json:"weight"`
	Dollars decimal.Decimal  `json:"dollars"`
	Price   *decimal.Decimal `json:"price,omitempty"`
	Shares  *decimal.Decimal `json:"shares,omitempty"`
}
