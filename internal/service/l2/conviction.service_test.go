package l2_service

import (
	"context"
	"testing"
	"time"

	"convictiontrader/internal/domain"
	"convictiontrader/internal/repository"
	mock_repository "convictiontrader/internal/repository/mocks"
	"convictiontrader/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_GetConvictionRows(t *testing.T) {
	ctx := context.Background()
	asOf := util.NewDate(2024, 6, 28)

	ctrl := gomock.NewController(t)
	holdingsRepository := mock_repository.NewMockHoldingsRepository(ctrl)

	holdingsRepository.EXPECT().
		List(repository.HoldingsListFilter{
			AsOfDate:     asOf,
			LookbackDays: 365,
		}).
		Return([]domain.HoldingRecord{
			{
				InvestorID:       "inv-1",
				InvestorName:     "Fund One",
				Ticker:           "AAPL",
				ValueUsd:         decimal.NewFromInt(20),
				FilingTotalValue: decimal.NewFromInt(100),
				DaysOld:          util.IntPointer(0),
			},
			{
				InvestorID:       "inv-2",
				InvestorName:     "Fund Two",
				Ticker:           "AAPL",
				ValueUsd:         decimal.NewFromInt(10),
				FilingTotalValue: decimal.NewFromInt(100),
				DaysOld:          util.IntPointer(0),
			},
			{
				InvestorID:       "inv-1",
				InvestorName:     "Fund One",
				Ticker:           "MSFT",
				ValueUsd:         decimal.NewFromInt(10),
				FilingTotalValue: decimal.NewFromInt(100),
				DaysOld:          util.IntPointer(0),
			},
		}, nil)

	handler := convictionServiceHandler{
		HoldingsRepository: holdingsRepository,
		Config:             DefaultConvictionServiceConfig(),
	}

	rows, err := handler.GetConvictionRows(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "AAPL", rows[0].Ticker)
	require.InDelta(t, 0.75, rows[0].NormalizedWeight, 1e-9)
	require.Equal(t, []string{"Fund One", "Fund Two"}, rows[0].Investors)

	require.Equal(t, "MSFT", rows[1].Ticker)
	require.InDelta(t, 0.25, rows[1].NormalizedWeight, 1e-9)
}

func Test_GetConvictionRows_emptyWindow(t *testing.T) {
	ctx := context.Background()
	asOf := time.Now().UTC()

	ctrl := gomock.NewController(t)
	holdingsRepository := mock_repository.NewMockHoldingsRepository(ctrl)

	holdingsRepository.EXPECT().
		List(gomock.Any()).
		Return([]domain.HoldingRecord{}, nil)

	handler := convictionServiceHandler{
		HoldingsRepository: holdingsRepository,
		Config:             DefaultConvictionServiceConfig(),
	}

	rows, err := handler.GetConvictionRows(ctx, asOf)
	require.NoError(t, err)
	require.Empty(t, rows)
}
