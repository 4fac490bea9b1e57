package app

import (
	"context"
	"time"

	"convictiontrader/internal/domain"
	"convictiontrader/internal/logger"
	"convictiontrader/internal/repository"
	l1_service "convictiontrader/internal/service/l1"
	l3_service "convictiontrader/internal/service/l3"
)

type RebalancerHandler struct {
	PlanningService  l3_service.PlanningService
	ExecutionService l1_service.ExecutionService
	GptRepository    repository.GptRepository
}

type RebalanceResult struct {
	Plan        domain.TradePlan         `json:"plan"`
	Orders      []l1_service.OrderResult `json:"orders"`
	Explanation *string                  `json:"explanation,omitempty"`
	DryRun      bool                     `json:"dryRun"`
}

// Rebalance generates a fresh trade plan for the account and, unless
// dryRun is set, plays it against the broker order by order. Orders
// already accepted by the broker when an error occurs are reported in
// the result alongside the error.
func (h RebalancerHandler) Rebalance(ctx context.Context, dryRun bool) (*RebalanceResult, error) {
	log := logger.FromContext(ctx)
	date := time.Now().UTC()

	planResult, err := h.PlanningService.GeneratePlan(ctx, date)
	if err != nil {
		return nil, err
	}
	plan := planResult.Plan

	result := &RebalanceResult{
		Plan:   plan,
		DryRun: dryRun,
	}

	if h.GptRepository != nil {
		explanation, err := h.GptRepository.ExplainTradePlan(ctx, plan)
		if err != nil {
			// the explanation is cosmetic, never fail the run over it
			log.Warnf("failed to explain trade plan: %v", err)
		} else {
			result.Explanation = &explanation
		}
	}

	if dryRun {
		log.Infof("dry run: %d order(s) proposed, none submitted", len(plan.Orders))
		return result, nil
	}

	orders, err := h.ExecutionService.ExecutePlan(ctx, plan)
	result.Orders = orders
	if err != nil {
		return result, err
	}

	log.Infof("rebalance complete: %d order(s) submitted, total notional %s", len(orders), plan.TotalNotional().StringFixed(2))

	return result, nil
}
