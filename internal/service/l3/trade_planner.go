package l3_service

import (
	"time"

	"convictiontrader/internal"
	"convictiontrader/internal/domain"

	"github.com/shopspring/decimal"
)

type TradePlannerConfig struct {
	// ShareIncrement is the step quantities are floored to.
	ShareIncrement decimal.Decimal

	// MinTradeNotional suppresses orders smaller than this.
	MinTradeNotional decimal.Decimal

	// LimitOffsetBps is the markup over the last price when forming
	// the limit price.
	LimitOffsetBps int64
}

func DefaultTradePlannerConfig() TradePlannerConfig {
	return TradePlannerConfig{
		ShareIncrement:   decimal.NewFromFloat(0.0001),
		MinTradeNotional: decimal.NewFromInt(10),
		LimitOffsetBps:   10,
	}
}

type BuildTradePlanInput struct {
	// Weights is the constrained allocation, cash row included.
	Weights []domain.AllocationRow

	Prices           map[string]decimal.Decimal
	CurrentPositions map[string]decimal.Decimal
	TotalEquity      decimal.Decimal
	Config           TradePlannerConfig
}

// BuildTradePlan diffs the target allocation against current broker
// positions and emits buy-only delta orders. Selling is the strategy
// layer's concern. Symbols that cannot be priced land in Skipped;
// deltas too small to trade produce no order at all.
func BuildTradePlan(in BuildTradePlanInput) domain.TradePlan {
	plan := domain.TradePlan{
		CreatedAt:   time.Now().UTC(),
		TotalEquity: in.TotalEquity,
		Orders:      []domain.TradeOrder{},
		Skipped:     []string{},
	}

	if in.TotalEquity.LessThanOrEqual(decimal.Zero) {
		for _, row := range in.Weights {
			if row.Ticker == domain.CashTicker || row.Weight <= 0 {
				continue
			}
			plan.Skipped = append(plan.Skipped, row.Ticker)
		}
		return plan
	}

	offset := decimal.NewFromInt(in.Config.LimitOffsetBps).
		Div(decimal.NewFromInt(10000)).
		Add(decimal.NewFromInt(1))

	for _, row := range in.Weights {
		if row.Ticker == domain.CashTicker || row.Weight <= 0 {
			continue
		}

		price, ok := in.Prices[row.Ticker]
		if !ok || price.LessThanOrEqual(decimal.Zero) {
			plan.Skipped = append(plan.Skipped, row.Ticker)
			continue
		}

		currentValue := in.CurrentPositions[row.Ticker].Mul(price)
		targetValue := in.TotalEquity.Mul(decimal.NewFromFloat(row.Weight))
		delta := targetValue.Sub(currentValue)
		if delta.LessThanOrEqual(in.Config.MinTradeNotional) {
			continue
		}

		quantity := internal.FloorToIncrement(delta.Div(price), in.Config.ShareIncrement)
		if quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		notional := internal.RoundToCent(quantity.Mul(price))
		if notional.LessThan(in.Config.MinTradeNotional) {
			continue
		}

		limitPrice := internal.FloorToCent(price.Mul(offset))
		if limitPrice.LessThanOrEqual(decimal.Zero) {
			plan.Skipped = append(plan.Skipped, row.Ticker)
			continue
		}

		plan.Orders = append(plan.Orders, domain.TradeOrder{
			Symbol:     row.Ticker,
			Side:       domain.TradeOrderSide_Buy,
			Quantity:   quantity,
			LimitPrice: limitPrice,
			Notional:   notional,
		})
	}

	return plan
}
