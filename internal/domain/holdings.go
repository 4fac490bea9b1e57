package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingRecord is one position line from an institutional filing,
// produced by the data layer. Read-only to the pipeline.
type HoldingRecord struct {
	InvestorID       string          `json:"investorId" csv:"investor_id"`
	InvestorName     string          `json:"investorName" csv:"investor_name"`
	Ticker           string          `json:"ticker" csv:"ticker"`
	SecurityName     string          `json:"securityName" csv:"security_name"`
	FilingDate       time.Time       `json:"filingDate" csv:"-"`
	Shares           decimal.Decimal `json:"shares" csv:"shares"`
	ValueUsd         decimal.Decimal `json:"valueUsd" csv:"value_usd"`
	FilingTotalValue decimal.Decimal `json:"filingTotalValue" csv:"filing_total_value"`
	DaysOld          *int            `json:"daysOld" csv:"days_old"`
}

// PortfolioWeight is the position's share of the filing's total value,
// or nil when the filing total is missing or non-positive.
func (h HoldingRecord) PortfolioWeight() *float64 {
	if h.FilingTotalValue.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	w := h.ValueUsd.Div(h.FilingTotalValue).InexactFloat64()
	return &w
}
