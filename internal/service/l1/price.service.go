package l1_service

import (
	"context"

	"convictiontrader/internal/logger"
	"convictiontrader/internal/repository"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// PriceService resolves latest prices for a batch of symbols. Symbols
// it cannot price are absent from the result, never an error - the
// planner records them as skipped.
type PriceService interface {
	GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}

type priceServiceHandler struct {
	AlpacaRepository repository.AlpacaRepository
}

func NewPriceService(alpacaRepository repository.AlpacaRepository) PriceService {
	return priceServiceHandler{
		AlpacaRepository: alpacaRepository,
	}
}

func (h priceServiceHandler) GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	log := logger.FromContext(ctx)

	if len(symbols) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	prices, err := h.AlpacaRepository.GetLatestPrices(ctx, symbols)
	if err != nil {
		return nil, err
	}

	for _, symbol := range symbols {
		if _, ok := prices[symbol]; ok {
			continue
		}
		// fall back to yahoo quotes for symbols alpaca has no data for
		q, err := quote.Get(symbol)
		if err != nil || q == nil {
			log.Warnf("no price found for %s: %v", symbol, err)
			continue
		}
		if q.RegularMarketPrice <= 0 {
			log.Warnf("non-positive fallback price for %s", symbol)
			continue
		}
		prices[symbol] = decimal.NewFromFloat(q.RegularMarketPrice)
	}

	return prices, nil
}
