package l3_service

import (
	"context"
	"fmt"
	"time"

	"convictiontrader/internal"
	"convictiontrader/internal/domain"
	"convictiontrader/internal/repository"
	l1_service "convictiontrader/internal/service/l1"
	l2_service "convictiontrader/internal/service/l2"

	"github.com/shopspring/decimal"
)

// PlanningService runs the numeric pipeline end to end: conviction
// scoring, risk-constrained weights, dollar targets, and the diffed
// trade plan. It never talks to the order endpoints; execution is a
// separate concern.
type PlanningService interface {
	GeneratePlan(ctx context.Context, asOfDate time.Time) (*PlanResult, error)
}

type PlanResult struct {
	ConvictionRows []domain.ConvictionRow    `json:"convictionRows"`
	Allocation     []domain.AllocationRow    `json:"allocation"`
	Targets        []domain.AllocationTarget `json:"targets"`
	Plan           domain.TradePlan          `json:"plan"`
}

type planningServiceHandler struct {
	ConvictionService l2_service.ConvictionService
	PriceService      l1_service.PriceService
	SectorRepository  repository.SectorRepository
	AlpacaRepository  repository.AlpacaRepository

	Constraints     internal.RiskConstraints
	ConverterConfig internal.ConverterConfig
	PlannerConfig   TradePlannerConfig
}

func NewPlanningService(
	convictionService l2_service.ConvictionService,
	priceService l1_service.PriceService,
	sectorRepository repository.SectorRepository,
	alpacaRepository repository.AlpacaRepository,
	constraints internal.RiskConstraints,
	converterConfig internal.ConverterConfig,
	plannerConfig TradePlannerConfig,
) PlanningService {
	return planningServiceHandler{
		ConvictionService: convictionService,
		PriceService:      priceService,
		SectorRepository:  sectorRepository,
		AlpacaRepository:  alpacaRepository,
		Constraints:       constraints,
		ConverterConfig:   converterConfig,
		PlannerConfig:     plannerConfig,
	}
}

func (h planningServiceHandler) GeneratePlan(ctx context.Context, asOfDate time.Time) (*PlanResult, error) {
	convictionRows, err := h.ConvictionService.GetConvictionRows(ctx, asOfDate)
	if err != nil {
		return nil, err
	}

	symbols := []string{}
	for _, row := range convictionRows {
		symbols = append(symbols, row.Ticker)
	}

	sectorMap, err := h.SectorRepository.GetSectorMap(symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to get sector map: %w", err)
	}

	allocation := ComputeTargetAllocation(ComputeTargetAllocationInput{
		ConvictionRows: convictionRows,
		SectorMap:      sectorMap,
		Constraints:    h.Constraints,
	})

	account, err := h.AlpacaRepository.GetAccount()
	if err != nil {
		return nil, err
	}
	if account.TradingBlocked {
		return nil, fmt.Errorf("trading is blocked on account %s", account.ID)
	}
	totalEquity := account.Equity

	positions, err := h.AlpacaRepository.GetPositions()
	if err != nil {
		return nil, err
	}
	positionQuantities := map[string]decimal.Decimal{}
	for _, position := range positions {
		positionQuantities[position.Symbol] = position.Quantity
	}

	prices, err := h.PriceService.GetLatestPrices(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest prices: %w", err)
	}

	targets := internal.ConvertAllocations(internal.ConvertAllocationsInput{
		Rows:             allocation,
		AvailableCapital: totalEquity,
		Prices:           prices,
		Config:           h.ConverterConfig,
	})

	plan := BuildTradePlan(BuildTradePlanInput{
		Weights:          allocation,
		Prices:           prices,
		CurrentPositions: positionQuantities,
		TotalEquity:      totalEquity,
		Config:           h.PlannerConfig,
	})

	return &PlanResult{
		ConvictionRows: convictionRows,
		Allocation:     allocation,
		Targets:        targets,
		Plan:           plan,
	}, nil
}
