package l3_service

import (
	"convictiontrader/internal"
	"convictiontrader/internal/domain"
)

type ComputeTargetAllocationInput struct {
	ConvictionRows []domain.ConvictionRow
	SectorMap      map[string]string
	Constraints    internal.RiskConstraints
}

// ComputeTargetAllocation converts conviction weights into the final
// constrained allocation, cash row included. An empty or zero-weight
// conviction set comes back as all cash.
func ComputeTargetAllocation(in ComputeTargetAllocationInput) []domain.AllocationRow {
	rows := []domain.AllocationRow{}
	for _, conviction := range in.ConvictionRows {
		rows = append(rows, domain.AllocationRow{
			Ticker: conviction.Ticker,
			Weight: conviction.NormalizedWeight,
		})
	}

	return internal.ApplyRiskConstraints(internal.ApplyRiskConstraintsInput{
		Rows:        rows,
		SectorMap:   in.SectorMap,
		Constraints: in.Constraints,
	})
}
