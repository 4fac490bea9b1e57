package l3_service

import (
	"context"
	"testing"
	"time"

	"convictiontrader/internal"
	"convictiontrader/internal/domain"
	mock_repository "convictiontrader/internal/repository/mocks"
	l1_service "convictiontrader/internal/service/l1"
	l2_service "convictiontrader/internal/service/l2"
	"convictiontrader/internal/util"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_GeneratePlan(t *testing.T) {
	ctx := context.Background()
	asOf := util.NewDate(2024, 6, 28)
	ctrl := gomock.NewController(t)

	holdingsRepository := mock_repository.NewMockHoldingsRepository(ctrl)
	sectorRepository := mock_repository.NewMockSectorRepository(ctrl)
	alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)

	newHolding := func(investor, ticker string, valueUsd int64) domain.HoldingRecord {
		return domain.HoldingRecord{
			InvestorID:       investor,
			InvestorName:     investor,
			Ticker:           ticker,
			ValueUsd:         decimal.NewFromInt(valueUsd),
			FilingTotalValue: decimal.NewFromInt(100),
			DaysOld:          util.IntPointer(0),
		}
	}

	holdingsRepository.EXPECT().
		List(gomock.Any()).
		Return([]domain.HoldingRecord{
			newHolding("inv-1", "AAPL", 30),
			newHolding("inv-1", "MSFT", 20),
			newHolding("inv-2", "AAPL", 10),
			newHolding("inv-2", "GOOG", 20),
			newHolding("inv-3", "AMZN", 20),
		}, nil)

	sectorRepository.EXPECT().
		GetSectorMap([]string{"AAPL", "MSFT", "GOOG", "AMZN"}).
		Return(map[string]string{
			"AAPL": "Technology",
			"MSFT": "Technology",
			"GOOG": "Technology",
			"AMZN": "Consumer Discretionary",
		}, nil)

	alpacaRepository.EXPECT().
		GetAccount().
		Return(&alpaca.Account{
			Equity:         decimal.NewFromInt(10000),
			TradingBlocked: false,
		}, nil)

	alpacaRepository.EXPECT().
		GetPositions().
		Return([]domain.Position{
			{Symbol: "AAPL", Quantity: decimal.NewFromInt(2)},
		}, nil)

	alpacaRepository.EXPECT().
		GetLatestPrices(gomock.Any(), []string{"AAPL", "MSFT", "GOOG", "AMZN"}).
		Return(map[string]decimal.Decimal{
			"AAPL": decimal.NewFromInt(100),
			"MSFT": decimal.NewFromInt(200),
			"GOOG": decimal.NewFromInt(50),
			"AMZN": decimal.NewFromInt(100),
		}, nil)

	handler := planningServiceHandler{
		ConvictionService: l2_service.NewConvictionService(holdingsRepository, l2_service.DefaultConvictionServiceConfig()),
		PriceService:      l1_service.NewPriceService(alpacaRepository),
		SectorRepository:  sectorRepository,
		AlpacaRepository:  alpacaRepository,
		Constraints:       internal.DefaultRiskConstraints(),
		ConverterConfig:   internal.DefaultConverterConfig(),
		PlannerConfig:     DefaultTradePlannerConfig(),
	}

	result, err := handler.GeneratePlan(ctx, asOf)
	require.NoError(t, err)

	// every position pinned at the 10% cap, Technology pinned at 30%
	allocationSum := 0.0
	for _, row := range result.Allocation {
		allocationSum += row.Weight
		if row.Ticker != domain.CashTicker {
			require.InDelta(t, 0.10, row.Weight, 1e-9)
		}
	}
	require.InDelta(t, 1.0, allocationSum, 1e-9)

	cash := result.Allocation[len(result.Allocation)-1]
	require.Equal(t, domain.CashTicker, cash.Ticker)
	require.InDelta(t, 0.60, cash.Weight, 1e-9)

	require.Empty(t, result.Plan.Skipped)
	require.Len(t, result.Plan.Orders, 4)

	quantities := map[string]string{}
	for _, order := range result.Plan.Orders {
		quantities[order.Symbol] = order.Quantity.String()
	}
	require.Equal(t, map[string]string{
		// $1,000 target minus the $200 already held
		"AAPL": "8",
		"MSFT": "5",
		"GOOG": "20",
		"AMZN": "10",
	}, quantities)
}

func Test_GeneratePlan_tradingBlocked(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	holdingsRepository := mock_repository.NewMockHoldingsRepository(ctrl)
	sectorRepository := mock_repository.NewMockSectorRepository(ctrl)
	alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)

	holdingsRepository.EXPECT().
		List(gomock.Any()).
		Return([]domain.HoldingRecord{
			{
				InvestorID:       "inv-1",
				InvestorName:     "inv-1",
				Ticker:           "AAPL",
				ValueUsd:         decimal.NewFromInt(10),
				FilingTotalValue: decimal.NewFromInt(100),
				DaysOld:          util.IntPointer(0),
			},
		}, nil)
	sectorRepository.EXPECT().
		GetSectorMap(gomock.Any()).
		Return(map[string]string{}, nil)
	alpacaRepository.EXPECT().
		GetAccount().
		Return(&alpaca.Account{TradingBlocked: true}, nil)

	handler := planningServiceHandler{
		ConvictionService: l2_service.NewConvictionService(holdingsRepository, l2_service.DefaultConvictionServiceConfig()),
		PriceService:      l1_service.NewPriceService(alpacaRepository),
		SectorRepository:  sectorRepository,
		AlpacaRepository:  alpacaRepository,
		Constraints:       internal.DefaultRiskConstraints(),
		ConverterConfig:   internal.DefaultConverterConfig(),
		PlannerConfig:     DefaultTradePlannerConfig(),
	}

	_, err := handler.GeneratePlan(ctx, time.Now().UTC())
	require.ErrorContains(t, err, "trading is blocked")
}
