package internal

import (
	"math"
	"sort"

	"convictiontrader/internal/domain"
)

type RiskConstraints struct {
	MaxPositionWeight float64
	MaxSectorWeight   float64
	CashBufferWeight  float64
	CashSymbol        string
}

func DefaultRiskConstraints() RiskConstraints {
	return RiskConstraints{
		MaxPositionWeight: 0.10,
		MaxSectorWeight:   0.30,
		CashBufferWeight:  0.10,
		CashSymbol:        domain.CashTicker,
	}
}

const (
	redistributionEpsilon   = 1e-12
	maxRedistributionPasses = 200
)

type ApplyRiskConstraintsInput struct {
	Rows        []domain.AllocationRow
	SectorMap   map[string]string
	Constraints RiskConstraints
}

type constrainedPosition struct {
	ticker string
	sector string
	base   float64
	weight float64
}

// ApplyRiskConstraints redistributes weights under position, sector and
// cash-buffer limits, always emitting exactly one synthetic cash row.
// Excess mass freed by the caps is pushed back greedily in descending
// original-weight order - a deterministic waterfilling pass, not a
// general optimizer. Mass that no position can absorb falls to cash.
func ApplyRiskConstraints(in ApplyRiskConstraintsInput) []domain.AllocationRow {
	constraints := in.Constraints
	cashSymbol := constraints.CashSymbol
	if cashSymbol == "" {
		cashSymbol = domain.CashTicker
	}

	totalWeight := 0.0
	for _, row := range in.Rows {
		if row.Ticker == cashSymbol {
			continue
		}
		totalWeight += row.Weight
	}
	if len(in.Rows) == 0 || totalWeight <= 0 {
		return []domain.AllocationRow{{Ticker: cashSymbol, Weight: 1}}
	}

	investable := 1 - constraints.CashBufferWeight

	positions := []*constrainedPosition{}
	for _, row := range in.Rows {
		if row.Ticker == cashSymbol {
			continue
		}
		sector := row.Sector
		if sector == "" && in.SectorMap != nil {
			sector = in.SectorMap[row.Ticker]
		}
		base := row.Weight / totalWeight
		positions = append(positions, &constrainedPosition{
			ticker: row.Ticker,
			sector: sector,
			base:   base,
			weight: base * investable,
		})
	}

	excess := 0.0

	// per-position cap
	for _, position := range positions {
		if position.weight > constraints.MaxPositionWeight {
			excess += position.weight - constraints.MaxPositionWeight
			position.weight = constraints.MaxPositionWeight
		}
	}

	// sector caps, scaled down proportionally to hit the cap exactly
	for _, sector := range sortedSectors(positions) {
		sectorWeight := 0.0
		for _, position := range positions {
			if position.sector == sector {
				sectorWeight += position.weight
			}
		}
		if sectorWeight <= constraints.MaxSectorWeight {
			continue
		}
		scale := constraints.MaxSectorWeight / sectorWeight
		for _, position := range positions {
			if position.sector == sector {
				removed := position.weight * (1 - scale)
				position.weight -= removed
				excess += removed
			}
		}
	}

	// waterfill the freed mass back, highest original weight first
	byBaseDesc := make([]*constrainedPosition, len(positions))
	copy(byBaseDesc, positions)
	sort.SliceStable(byBaseDesc, func(i, j int) bool {
		return byBaseDesc[i].base > byBaseDesc[j].base
	})

	for pass := 0; pass < maxRedistributionPasses && excess > redistributionEpsilon; pass++ {
		absorbed := 0.0
		for _, position := range byBaseDesc {
			if excess <= redistributionEpsilon {
				break
			}
			room := constraints.MaxPositionWeight - position.weight
			if position.sector != "" {
				sectorWeight := 0.0
				for _, other := range positions {
					if other.sector == position.sector {
						sectorWeight += other.weight
					}
				}
				sectorRoom := constraints.MaxSectorWeight - sectorWeight
				room = math.Min(room, sectorRoom)
			}
			if room <= 0 {
				continue
			}
			take := math.Min(room, excess)
			position.weight += take
			excess -= take
			absorbed += take
		}
		if absorbed == 0 {
			break
		}
	}

	positionTotal := 0.0
	for _, position := range positions {
		positionTotal += position.weight
	}
	cashWeight := math.Max(0, 1-positionTotal)

	// correct floating point drift so the total is exactly 1
	total := positionTotal + cashWeight
	out := []domain.AllocationRow{}
	for _, position := range positions {
		out = append(out, domain.AllocationRow{
			Ticker: position.ticker,
			Weight: position.weight / total,
			Sector: position.sector,
		})
	}
	out = append(out, domain.AllocationRow{
		Ticker: cashSymbol,
		Weight: cashWeight / total,
	})

	return out
}

func sortedSectors(positions []*constrainedPosition) []string {
	seen := map[string]bool{}
	sectors := []string{}
	for _, position := range positions {
		if position.sector == "" || seen[position.sector] {
			continue
		}
		seen[position.sector] = true
		sectors = append(sectors, position.sector)
	}
	sort.Strings(sectors)
	return sectors
}
