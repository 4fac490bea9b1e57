package internal

import (
	"testing"

	"convictiontrader/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_FloorToIncrement(t *testing.T) {
	require.Equal(t, "10.25", FloorToIncrement(decimal.NewFromFloat(10.259), decimal.NewFromFloat(0.01)).StringFixed(2))
	require.Equal(t, "3.0001", FloorToIncrement(decimal.NewFromFloat(3.00019), decimal.NewFromFloat(0.0001)).String())
	require.Equal(t, "7", FloorToIncrement(decimal.NewFromFloat(7.9), decimal.NewFromInt(1)).String())
	// non-positive increment is a no-op
	require.Equal(t, "7.9", FloorToIncrement(decimal.NewFromFloat(7.9), decimal.Zero).String())
}

func Test_ConvertAllocations(t *testing.T) {
	t.Run("dollars and shares", func(t *testing.T) {
		targets := ConvertAllocations(ConvertAllocationsInput{
			Rows: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 0.6},
				{Ticker: "BBB", Weight: 0.4},
			},
			AvailableCapital: decimal.NewFromInt(1000),
			Prices: map[string]decimal.Decimal{
				"AAA": decimal.NewFromInt(10),
				"BBB": decimal.NewFromInt(20),
			},
			Config: DefaultConverterConfig(),
		})

		require.Len(t, targets, 2)
		require.Equal(t, "600.00", targets[0].Dollars.StringFixed(2))
		require.Equal(t, "60.00", targets[0].Shares.StringFixed(2))
		require.Equal(t, "400.00", targets[1].Dollars.StringFixed(2))
		require.Equal(t, "20.00", targets[1].Shares.StringFixed(2))
	})

	t.Run("never exceeds available capital", func(t *testing.T) {
		capital := decimal.NewFromFloat(999.97)
		targets := ConvertAllocations(ConvertAllocationsInput{
			Rows: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 1.0 / 3.0},
				{Ticker: "BBB", Weight: 1.0 / 3.0},
				{Ticker: "CCC", Weight: 1.0 / 3.0},
			},
			AvailableCapital: capital,
			Config:           DefaultConverterConfig(),
		})

		total := decimal.Zero
		for _, target := range targets {
			total = total.Add(target.Dollars)
		}
		require.True(t, total.LessThanOrEqual(capital), "allocated %s of %s", total, capital)
	})

	t.Run("dust filter", func(t *testing.T) {
		targets := ConvertAllocations(ConvertAllocationsInput{
			Rows: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 0.999},
				{Ticker: "BBB", Weight: 0.001},
			},
			AvailableCapital: decimal.NewFromInt(1000),
			Config:           DefaultConverterConfig(),
		})

		require.Len(t, targets, 2)
		require.Equal(t, "BBB", targets[1].Ticker)
		require.True(t, targets[1].Dollars.IsZero())
	})

	t.Run("renormalizes and drops non-positive weights", func(t *testing.T) {
		targets := ConvertAllocations(ConvertAllocationsInput{
			Rows: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 0.3},
				{Ticker: "BBB", Weight: 0.3},
				{Ticker: "CCC", Weight: -0.1},
			},
			AvailableCapital: decimal.NewFromInt(1000),
			Config:           DefaultConverterConfig(),
		})

		require.Len(t, targets, 2)
		require.Equal(t, "500.00", targets[0].Dollars.StringFixed(2))
		require.Equal(t, "500.00", targets[1].Dollars.StringFixed(2))
	})

	t.Run("no price map yields dollars only", func(t *testing.T) {
		targets := ConvertAllocations(ConvertAllocationsInput{
			Rows:             []domain.AllocationRow{{Ticker: "AAA", Weight: 1}},
			AvailableCapital: decimal.NewFromInt(100),
			Config:           DefaultConverterConfig(),
		})

		require.Len(t, targets, 1)
		require.Nil(t, targets[0].Price)
		require.Nil(t, targets[0].Shares)
	})

	t.Run("unpriceable vs priced at zero", func(t *testing.T) {
		targets := ConvertAllocations(ConvertAllocationsInput{
			Rows: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 0.5},
				{Ticker: "BBB", Weight: 0.5},
			},
			AvailableCapital: decimal.NewFromInt(1000),
			Prices: map[string]decimal.Decimal{
				"BBB": decimal.Zero,
			},
			Config: DefaultConverterConfig(),
		})

		require.Len(t, targets, 2)
		// AAA has no price info at all
		require.Nil(t, targets[0].Shares)
		// BBB is priced, just at zero
		require.NotNil(t, targets[1].Shares)
		require.True(t, targets[1].Shares.IsZero())
	})

	t.Run("whole shares when fractional disallowed", func(t *testing.T) {
		config := DefaultConverterConfig()
		config.AllowFractional = false

		targets := ConvertAllocations(ConvertAllocationsInput{
			Rows:             []domain.AllocationRow{{Ticker: "AAA", Weight: 1}},
			AvailableCapital: decimal.NewFromInt(100),
			Prices:           map[string]decimal.Decimal{"AAA": decimal.NewFromInt(33)},
			Config:           config,
		})

		require.Len(t, targets, 1)
		require.Equal(t, "3", targets[0].Shares.String())
	})
}
