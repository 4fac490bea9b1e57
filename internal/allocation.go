package internal

import (
	"convictiontrader/internal/domain"

	"github.com/shopspring/decimal"
)

var centIncrement = decimal.NewFromFloat(0.01)

func RoundToCent(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func FloorToCent(d decimal.Decimal) decimal.Decimal {
	return FloorToIncrement(d, centIncrement)
}

// FloorToIncrement floors d to the nearest multiple of increment.
// Non-positive increments leave d untouched.
func FloorToIncrement(d decimal.Decimal, increment decimal.Decimal) decimal.Decimal {
	if increment.LessThanOrEqual(decimal.Zero) {
		return d
	}
	return d.Div(increment).Floor().Mul(increment)
}

type ConverterConfig struct {
	// MinTradeDollars zeroes out dollar amounts below it (dust filter).
	MinTradeDollars decimal.Decimal

	// ShareIncrement is the fractional-share step, default 0.0001.
	ShareIncrement decimal.Decimal

	// AllowFractional floors share counts to ShareIncrement when true,
	// to whole shares when false.
	AllowFractional bool
}

func DefaultConverterConfig() ConverterConfig {
	return ConverterConfig{
		MinTradeDollars: decimal.NewFromInt(10),
		ShareIncrement:  decimal.NewFromFloat(0.0001),
		AllowFractional: true,
	}
}

type ConvertAllocationsInput struct {
	Rows             []domain.AllocationRow
	AvailableCapital decimal.Decimal

	// Prices is optional; when nil only dollar amounts are produced.
	Prices map[string]decimal.Decimal

	Config ConverterConfig
}

// ConvertAllocations turns weights into floored dollar amounts and,
// when prices are supplied, share quantities. Each row is floored
// independently so the total never exceeds AvailableCapital, and share
// counts never exceed what the floored dollars buy at the given price.
func ConvertAllocations(in ConvertAllocationsInput) []domain.AllocationTarget {
	weightSum := 0.0
	for _, row := range in.Rows {
		if row.Weight > 0 {
			weightSum += row.Weight
		}
	}
	if weightSum <= 0 {
		return []domain.AllocationTarget{}
	}

	targets := []domain.AllocationTarget{}
	for _, row := range in.Rows {
		if row.Weight <= 0 {
			continue
		}
		weight := row.Weight / weightSum

		dollars := FloorToCent(in.AvailableCapital.Mul(decimal.NewFromFloat(weight)))
		if dollars.LessThan(in.Config.MinTradeDollars) {
			dollars = decimal.Zero
		}

		target := domain.AllocationTarget{
			Ticker:  row.Ticker,
			Weight:  weight,
			Dollars: dollars,
		}

		if in.Prices != nil {
			if price, ok := in.Prices[row.Ticker]; ok {
				p := price
				target.Price = &p
				shares := decimal.Zero
				if price.GreaterThan(decimal.Zero) {
					raw := dollars.Div(price)
					if in.Config.AllowFractional {
						shares = FloorToIncrement(raw, in.Config.ShareIncrement)
					} else {
						shares = raw.Floor()
					}
				}
				target.Shares = &shares
			}
		}

		targets = append(targets, target)
	}

	return targets
}
