package repository

import (
	"database/sql"
	"fmt"
	"time"

	"convictiontrader/internal/db/models/postgres/public/model"
	"convictiontrader/internal/db/models/postgres/public/table"
	"convictiontrader/internal/domain"
	"convictiontrader/internal/util"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/shopspring/decimal"
)

// HoldingsRepository is the pipeline's only view of the institutional
// filings data; scoring takes it as an injected dependency so tests can
// swap in fixtures.
type HoldingsRepository interface {
	List(filter HoldingsListFilter) ([]domain.HoldingRecord, error)
}

type HoldingsListFilter struct {
	AsOfDate     time.Time
	LookbackDays int
}

type holdingsRepositoryHandler struct {
	Db *sql.DB
}

func NewHoldingsRepository(db *sql.DB) HoldingsRepository {
	return holdingsRepositoryHandler{Db: db}
}

func (h holdingsRepositoryHandler) List(filter HoldingsListFilter) ([]domain.HoldingRecord, error) {
	asOf := filter.AsOfDate
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	windowStart := asOf.AddDate(0, 0, -filter.LookbackDays)

	query := table.InstitutionalHolding.
		SELECT(table.InstitutionalHolding.AllColumns).
		WHERE(
			table.InstitutionalHolding.FilingDate.GT_EQ(postgres.DateT(windowStart)).
				AND(table.InstitutionalHolding.FilingDate.LT_EQ(postgres.DateT(asOf))),
		).
		ORDER_BY(table.InstitutionalHolding.FilingDate.DESC())

	results := []model.InstitutionalHolding{}
	err := query.Query(h.Db, &results)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutional holdings: %w", err)
	}

	out := []domain.HoldingRecord{}
	for _, holding := range results {
		record := domain.HoldingRecord{
			InvestorID:   holding.InvestorID,
			InvestorName: holding.InvestorName,
			Ticker:       holding.Symbol,
			FilingDate:   holding.FilingDate,
			Shares:       holding.Shares,
			ValueUsd:     holding.ValueUsd,
			DaysOld:      util.IntPointer(util.DaysBetween(holding.FilingDate, asOf)),
		}
		if holding.SecurityName != nil {
			record.SecurityName = *holding.SecurityName
		}
		if holding.FilingTotalValue != nil {
			record.FilingTotalValue = *holding.FilingTotalValue
		} else {
			record.FilingTotalValue = decimal.Zero
		}
		out = append(out, record)
	}

	return out, nil
}
