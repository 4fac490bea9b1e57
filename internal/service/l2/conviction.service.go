package l2_service

import (
	"context"
	"fmt"
	"time"

	"convictiontrader/internal"
	"convictiontrader/internal/domain"
	"convictiontrader/internal/logger"
	"convictiontrader/internal/repository"
)

// ConvictionService turns a window of institutional filings into
// normalized conviction weights. The holdings source is injected so the
// pipeline runs the same against postgres, a csv fixture, or a mock.
type ConvictionService interface {
	GetConvictionRows(ctx context.Context, asOfDate time.Time) ([]domain.ConvictionRow, error)
}

type ConvictionServiceConfig struct {
	// LookbackDays bounds the filing window ending at the as-of date.
	LookbackDays int

	Scoring internal.ConvictionConfig
}

func DefaultConvictionServiceConfig() ConvictionServiceConfig {
	return ConvictionServiceConfig{
		LookbackDays: 365,
		Scoring:      internal.DefaultConvictionConfig(),
	}
}

type convictionServiceHandler struct {
	HoldingsRepository repository.HoldingsRepository
	Config             ConvictionServiceConfig
}

func NewConvictionService(holdingsRepository repository.HoldingsRepository, config ConvictionServiceConfig) ConvictionService {
	return convictionServiceHandler{
		HoldingsRepository: holdingsRepository,
		Config:             config,
	}
}

func (h convictionServiceHandler) GetConvictionRows(ctx context.Context, asOfDate time.Time) ([]domain.ConvictionRow, error) {
	log := logger.FromContext(ctx)

	holdings, err := h.HoldingsRepository.List(repository.HoldingsListFilter{
		AsOfDate:     asOfDate,
		LookbackDays: h.Config.LookbackDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings as of %s: %w", asOfDate.Format(time.DateOnly), err)
	}

	rows, err := internal.CalculateConvictionScores(internal.CalculateConvictionScoresInput{
		Holdings: holdings,
		Config:   h.Config.Scoring,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate conviction scores: %w", err)
	}

	// zero rows is a valid terminal outcome, not an error
	if len(rows) == 0 {
		log.Warnf("no eligible holdings in the %d day window ending %s", h.Config.LookbackDays, asOfDate.Format(time.DateOnly))
	}

	return rows, nil
}
