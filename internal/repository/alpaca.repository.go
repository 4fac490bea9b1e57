package repository

import (
	"context"
	"fmt"
	"time"

	"convictiontrader/internal/domain"
	"convictiontrader/internal/logger"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlpacaRepository wraps the brokerage account - the only shared
// mutable resource in the system. Everything the execution loop needs
// to submit, poll and cancel orders goes through here.
type AlpacaRepository interface {
	GetAccount() (*alpaca.Account, error)
	GetPositions() ([]domain.Position, error)
	IsMarketOpen() (bool, error)
	PlaceOrder(req AlpacaPlaceOrderRequest) (*alpaca.Order, error)
	GetOrder(orderID string) (*alpaca.Order, error)
	CancelOrder(orderID string) error
	CancelOpenOrders(ctx context.Context) error
	GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}

func NewAlpacaRepository(apiKey, apiSecret, endpoint string) AlpacaRepository {
	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:     apiKey,
		APISecret:  apiSecret,
		BaseURL:    endpoint,
		RetryLimit: 3,
	})

	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &alpacaRepositoryHandler{
		Client:   client,
		MdClient: mdClient,
	}
}

type alpacaRepositoryHandler struct {
	Client   *alpaca.Client
	MdClient *marketdata.Client
}

func (h alpacaRepositoryHandler) GetAccount() (*alpaca.Account, error) {
	acct, err := h.Client.GetAccount()
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acct, nil
}

func (h alpacaRepositoryHandler) GetPositions() ([]domain.Position, error) {
	positions, err := h.Client.GetPositions()
	if err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	out := []domain.Position{}
	for _, position := range positions {
		out = append(out, domain.Position{
			Symbol:   position.Symbol,
			Quantity: position.Qty,
		})
	}
	return out, nil
}

func (h alpacaRepositoryHandler) IsMarketOpen() (bool, error) {
	clock, err := h.Client.GetClock()
	if err != nil {
		return false, err
	}
	return clock.IsOpen, nil
}

type AlpacaPlaceOrderRequest struct {
	ClientOrderID uuid.UUID
	Symbol        string
	Quantity      decimal.Decimal
	Side          alpaca.Side
	LimitPrice    *decimal.Decimal
}

func (a AlpacaPlaceOrderRequest) isValid() error {
	if a.Quantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("quantity is <= 0, order of | %s %s | not sent", a.Quantity.String(), a.Side)
	}
	if a.LimitPrice == nil || a.LimitPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("missing or non-positive limit price on %s order", a.Symbol)
	}
	return nil
}

func (h alpacaRepositoryHandler) PlaceOrder(req AlpacaPlaceOrderRequest) (*alpaca.Order, error) {
	if err := req.isValid(); err != nil {
		return nil, fmt.Errorf("invalid input to alpaca submit order %s: %w", req.ClientOrderID.String(), err)
	}

	order, err := h.Client.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:        req.Symbol,
		Qty:           &req.Quantity,
		Side:          req.Side,
		Type:          alpaca.Limit,
		LimitPrice:    req.LimitPrice,
		TimeInForce:   alpaca.Day,
		ClientOrderID: req.ClientOrderID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("order %s %s %s failed: %w", req.Side, req.Symbol, req.Quantity.String(), err)
	}

	return order, nil
}

func (h alpacaRepositoryHandler) GetOrder(orderID string) (*alpaca.Order, error) {
	return h.Client.GetOrder(orderID)
}

func (h alpacaRepositoryHandler) CancelOrder(orderID string) error {
	return h.Client.CancelOrder(orderID)
}

func (h alpacaRepositoryHandler) CancelOpenOrders(ctx context.Context) error {
	log := logger.FromContext(ctx)
	orders, err := h.Client.GetOrders(alpaca.GetOrdersRequest{
		Status: "open",
		Until:  time.Now(),
		Limit:  100,
	})
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}
	for _, order := range orders {
		if err := h.Client.CancelOrder(order.ID); err != nil {
			return fmt.Errorf("failed to cancel order %s: %w", order.ID, err)
		}
	}

	log.Infof("%d order(s) cancelled", len(orders))
	return nil
}

func (h alpacaRepositoryHandler) GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	log := logger.FromContext(ctx)

	if len(symbols) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	results, err := h.MdClient.GetLatestQuotes(symbols, marketdata.GetLatestQuoteRequest{})
	if err != nil {
		return nil, err
	}

	out := map[string]decimal.Decimal{}
	for symbol, result := range results {
		price := decimal.NewFromFloat(result.BidPrice)
		if price.IsZero() {
			// missing quote - leave the symbol out and let the planner
			// record it as skipped
			log.Warnf("no usable quote for %s", symbol)
			continue
		}
		out[symbol] = price
	}

	return out, nil
}
