package internal

import (
	"math"
	"testing"

	"convictiontrader/internal/domain"
	"convictiontrader/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func holding(investorID, ticker string, valueUsd, filingTotal float64, daysOld int) domain.HoldingRecord {
	return domain.HoldingRecord{
		InvestorID:       investorID,
		InvestorName:     investorID,
		Ticker:           ticker,
		ValueUsd:         decimal.NewFromFloat(valueUsd),
		FilingTotalValue: decimal.NewFromFloat(filingTotal),
		DaysOld:          util.IntPointer(daysOld),
	}
}

func Test_CalculateConvictionScores(t *testing.T) {
	t.Run("additive across investors", func(t *testing.T) {
		rows, err := CalculateConvictionScores(CalculateConvictionScoresInput{
			Holdings: []domain.HoldingRecord{
				holding("investorA", "AAA", 20, 100, 0),
				holding("investorB", "AAA", 10, 100, 0),
				holding("investorA", "BBB", 10, 100, 0),
			},
			Config: DefaultConvictionConfig(),
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)

		require.Equal(t, "AAA", rows[0].Ticker)
		require.InDelta(t, 0.75, rows[0].NormalizedWeight, 1e-9)
		require.Equal(t, 2, rows[0].InvestorCount)

		require.Equal(t, "BBB", rows[1].Ticker)
		require.InDelta(t, 0.25, rows[1].NormalizedWeight, 1e-9)
		require.Equal(t, 1, rows[1].InvestorCount)
	})

	t.Run("weights sum to one", func(t *testing.T) {
		rows, err := CalculateConvictionScores(CalculateConvictionScoresInput{
			Holdings: []domain.HoldingRecord{
				holding("investorA", "AAA", 35, 120, 12),
				holding("investorB", "BBB", 11, 95, 47),
				holding("investorC", "CCC", 5, 60, 89),
				holding("investorC", "AAA", 14, 60, 89),
			},
			Config: DefaultConvictionConfig(),
		})
		require.NoError(t, err)
		require.Len(t, rows, 3)

		sum := 0.0
		for _, row := range rows {
			sum += row.NormalizedWeight
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("recency half life decay", func(t *testing.T) {
		rows, err := CalculateConvictionScores(CalculateConvictionScoresInput{
			Holdings: []domain.HoldingRecord{
				holding("investorA", "AAA", 10, 100, 0),
				holding("investorB", "BBB", 10, 100, 90),
			},
			Config: ConvictionConfig{RecencyHalfLifeDays: 90},
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "AAA", rows[0].Ticker)
		require.InDelta(t, 0.5, rows[1].RawConviction/rows[0].RawConviction, 1e-9)
	})

	t.Run("drops rows with missing inputs", func(t *testing.T) {
		noDaysOld := holding("investorA", "AAA", 10, 100, 0)
		noDaysOld.DaysOld = nil
		noFilingTotal := holding("investorB", "BBB", 10, 0, 5)

		rows, err := CalculateConvictionScores(CalculateConvictionScoresInput{
			Holdings: []domain.HoldingRecord{
				noDaysOld,
				noFilingTotal,
				holding("investorC", "CCC", 10, 100, 5),
			},
			Config: DefaultConvictionConfig(),
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, "CCC", rows[0].Ticker)
	})

	t.Run("min weight filter and max positions", func(t *testing.T) {
		rows, err := CalculateConvictionScores(CalculateConvictionScoresInput{
			Holdings: []domain.HoldingRecord{
				holding("investorA", "AAA", 40, 100, 0),
				holding("investorA", "BBB", 30, 100, 0),
				holding("investorA", "CCC", 20, 100, 0),
				holding("investorA", "DDD", 1, 100, 0),
			},
			Config: ConvictionConfig{
				RecencyHalfLifeDays: 90,
				MinWeight:           0.05,
				MaxPositions:        2,
			},
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "AAA", rows[0].Ticker)
		require.Equal(t, "BBB", rows[1].Ticker)

		sum := rows[0].NormalizedWeight + rows[1].NormalizedWeight
		require.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("custom score expression", func(t *testing.T) {
		rows, err := CalculateConvictionScores(CalculateConvictionScoresInput{
			Holdings: []domain.HoldingRecord{
				holding("investorA", "AAA", 20, 100, 400),
				holding("investorA", "BBB", 10, 100, 0),
			},
			Config: ConvictionConfig{
				RecencyHalfLifeDays: 90,
				ScoreExpression:     "portfolioWeight",
			},
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)

		// expression ignores recency, so the stale AAA filing still
		// carries double BBB's weight
		require.Equal(t, "AAA", rows[0].Ticker)
		require.InDelta(t, 2.0/3.0, rows[0].NormalizedWeight, 1e-9)
	})

	t.Run("empty holdings", func(t *testing.T) {
		rows, err := CalculateConvictionScores(CalculateConvictionScoresInput{
			Holdings: []domain.HoldingRecord{},
			Config:   DefaultConvictionConfig(),
		})
		require.NoError(t, err)
		require.Empty(t, rows)
	})
}

func Test_CalculateConvictionScores_orderIndependent(t *testing.T) {
	holdings := []domain.HoldingRecord{
		holding("investorA", "AAA", 35, 120, 12),
		holding("investorB", "BBB", 11, 95, 47),
		holding("investorC", "AAA", 14, 60, 89),
	}
	reversed := []domain.HoldingRecord{holdings[2], holdings[1], holdings[0]}

	forward, err := CalculateConvictionScores(CalculateConvictionScoresInput{Holdings: holdings, Config: DefaultConvictionConfig()})
	require.NoError(t, err)
	backward, err := CalculateConvictionScores(CalculateConvictionScoresInput{Holdings: reversed, Config: DefaultConvictionConfig()})
	require.NoError(t, err)

	require.Equal(t, len(forward), len(backward))
	for i := range forward {
		require.Equal(t, forward[i].Ticker, backward[i].Ticker)
		require.True(t, math.Abs(forward[i].NormalizedWeight-backward[i].NormalizedWeight) < 1e-12)
	}
}
