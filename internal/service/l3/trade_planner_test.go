package l3_service

import (
	"testing"

	"convictiontrader/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_BuildTradePlan(t *testing.T) {
	t.Run("buys the target quantities from zero positions", func(t *testing.T) {
		plan := BuildTradePlan(BuildTradePlanInput{
			Weights: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 0.5},
				{Ticker: "BBB", Weight: 0.5},
			},
			Prices: map[string]decimal.Decimal{
				"AAA": decimal.NewFromInt(100),
				"BBB": decimal.NewFromInt(50),
			},
			CurrentPositions: map[string]decimal.Decimal{},
			TotalEquity:      decimal.NewFromInt(1000),
			Config:           DefaultTradePlannerConfig(),
		})

		require.Empty(t, plan.Skipped)
		require.Len(t, plan.Orders, 2)

		require.Equal(t, "AAA", plan.Orders[0].Symbol)
		require.Equal(t, "5", plan.Orders[0].Quantity.String())
		// 10bps over the $100 quote
		require.Equal(t, "100.10", plan.Orders[0].LimitPrice.StringFixed(2))
		require.Equal(t, "500.00", plan.Orders[0].Notional.StringFixed(2))

		require.Equal(t, "BBB", plan.Orders[1].Symbol)
		require.Equal(t, "10", plan.Orders[1].Quantity.String())
	})

	t.Run("orders only the delta over existing positions", func(t *testing.T) {
		plan := BuildTradePlan(BuildTradePlanInput{
			Weights: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 1.0},
			},
			Prices: map[string]decimal.Decimal{
				"AAA": decimal.NewFromInt(100),
			},
			CurrentPositions: map[string]decimal.Decimal{
				"AAA": decimal.NewFromInt(9),
			},
			TotalEquity: decimal.NewFromInt(1000),
			Config:      DefaultTradePlannerConfig(),
		})

		require.Len(t, plan.Orders, 1)
		require.Equal(t, "1", plan.Orders[0].Quantity.String())
	})

	t.Run("unpriced symbols are skipped", func(t *testing.T) {
		plan := BuildTradePlan(BuildTradePlanInput{
			Weights: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 0.5},
				{Ticker: "NOPRICE", Weight: 0.5},
			},
			Prices: map[string]decimal.Decimal{
				"AAA": decimal.NewFromInt(100),
			},
			CurrentPositions: map[string]decimal.Decimal{},
			TotalEquity:      decimal.NewFromInt(1000),
			Config:           DefaultTradePlannerConfig(),
		})

		require.Len(t, plan.Orders, 1)
		require.Equal(t, []string{"NOPRICE"}, plan.Skipped)
	})

	t.Run("cash row and sub-minimum deltas emit nothing", func(t *testing.T) {
		plan := BuildTradePlan(BuildTradePlanInput{
			Weights: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 0.005},
				{Ticker: domain.CashTicker, Weight: 0.995},
			},
			Prices: map[string]decimal.Decimal{
				"AAA": decimal.NewFromInt(100),
			},
			CurrentPositions: map[string]decimal.Decimal{},
			TotalEquity:      decimal.NewFromInt(1000),
			Config:           DefaultTradePlannerConfig(),
		})

		// $5 delta is below the $10 minimum, and CASH is never traded
		require.Empty(t, plan.Orders)
		require.Empty(t, plan.Skipped)
	})

	t.Run("non-positive equity skips every requested symbol", func(t *testing.T) {
		plan := BuildTradePlan(BuildTradePlanInput{
			Weights: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 0.6},
				{Ticker: "BBB", Weight: 0.4},
			},
			Prices:           map[string]decimal.Decimal{},
			CurrentPositions: map[string]decimal.Decimal{},
			TotalEquity:      decimal.Zero,
			Config:           DefaultTradePlannerConfig(),
		})

		require.Empty(t, plan.Orders)
		require.Equal(t, []string{"AAA", "BBB"}, plan.Skipped)
	})

	t.Run("identical inputs produce identical orders", func(t *testing.T) {
		input := BuildTradePlanInput{
			Weights: []domain.AllocationRow{
				{Ticker: "AAA", Weight: 0.37},
				{Ticker: "BBB", Weight: 0.41},
				{Ticker: domain.CashTicker, Weight: 0.22},
			},
			Prices: map[string]decimal.Decimal{
				"AAA": decimal.NewFromFloat(123.45),
				"BBB": decimal.NewFromFloat(67.89),
			},
			CurrentPositions: map[string]decimal.Decimal{
				"AAA": decimal.NewFromFloat(1.5),
			},
			TotalEquity: decimal.NewFromFloat(25000.17),
			Config:      DefaultTradePlannerConfig(),
		}

		first := BuildTradePlan(input)
		second := BuildTradePlan(input)

		diff := cmp.Diff(
			first.Orders, second.Orders,
			cmpopts.EquateEmpty(),
			cmp.Comparer(func(d1, d2 decimal.Decimal) bool { return d1.Equal(d2) }),
		)
		require.Empty(t, diff)
	})
}
