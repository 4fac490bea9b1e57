package repository

import (
	"fmt"
	"os"
	"time"

	"convictiontrader/internal/domain"
	"convictiontrader/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// csvHoldingRow mirrors the export format of the filings scraper.
type csvHoldingRow struct {
	InvestorID       string          `csv:"investor_id"`
	InvestorName     string          `csv:"investor_name"`
	Ticker           string          `csv:"ticker"`
	SecurityName     string          `csv:"security_name"`
	FilingDate       string          `csv:"filing_date"`
	Shares           decimal.Decimal `csv:"shares"`
	ValueUsd         decimal.Decimal `csv:"value_usd"`
	FilingTotalValue decimal.Decimal `csv:"filing_total_value"`
}

type csvHoldingsRepositoryHandler struct {
	Path string
}

// NewCsvHoldingsRepository reads holdings from a CSV export instead of
// the database, for dry runs and fixtures.
func NewCsvHoldingsRepository(path string) HoldingsRepository {
	return csvHoldingsRepositoryHandler{Path: path}
}

func (h csvHoldingsRepositoryHandler) List(filter HoldingsListFilter) ([]domain.HoldingRecord, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open holdings csv %s: %w", h.Path, err)
	}
	defer f.Close()

	rows := []csvHoldingRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse holdings csv %s: %w", h.Path, err)
	}

	asOf := filter.AsOfDate
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	windowStart := asOf.AddDate(0, 0, -filter.LookbackDays)

	out := []domain.HoldingRecord{}
	for _, row := range rows {
		filingDate, err := time.Parse(time.DateOnly, row.FilingDate)
		if err != nil {
			return nil, fmt.Errorf("bad filing_date %q in %s: %w", row.FilingDate, h.Path, err)
		}
		if filingDate.Before(windowStart) || filingDate.After(asOf) {
			continue
		}

		out = append(out, domain.HoldingRecord{
			InvestorID:       row.InvestorID,
			InvestorName:     row.InvestorName,
			Ticker:           row.Ticker,
			SecurityName:     row.SecurityName,
			FilingDate:       filingDate,
			Shares:           row.Shares,
			ValueUsd:         row.ValueUsd,
			FilingTotalValue: row.FilingTotalValue,
			DaysOld:          util.IntPointer(util.DaysBetween(filingDate, asOf)),
		})
	}

	return out, nil
}
