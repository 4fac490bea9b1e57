package integration_tests

import (
	"context"
	"fmt"
	"sync"

	"convictiontrader/internal/domain"
	"convictiontrader/internal/repository"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// mockAlpacaForTestsHandler is an in-memory broker: every limit order
// fills immediately at its limit price. Positions and equity are fixed
// by the test.
type mockAlpacaForTestsHandler struct {
	mu sync.Mutex

	equity    decimal.Decimal
	prices    map[string]decimal.Decimal
	positions []domain.Position

	orders          map[string]*alpaca.Order
	placedRequests  []repository.AlpacaPlaceOrderRequest
	cancelledOrders []string
	cancelAllCalls  int
}

func NewMockAlpacaRepositoryForTests(
	equity decimal.Decimal,
	prices map[string]decimal.Decimal,
	positions []domain.Position,
) *mockAlpacaForTestsHandler {
	return &mockAlpacaForTestsHandler{
		equity:    equity,
		prices:    prices,
		positions: positions,
		orders:    map[string]*alpaca.Order{},
	}
}

var _ repository.AlpacaRepository = &mockAlpacaForTestsHandler{}

func (m *mockAlpacaForTestsHandler) GetAccount() (*alpaca.Account, error) {
	return &alpaca.Account{
		Equity:         m.equity,
		TradingBlocked: false,
	}, nil
}

func (m *mockAlpacaForTestsHandler) GetPositions() ([]domain.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Position{}, m.positions...), nil
}

func (m *mockAlpacaForTestsHandler) IsMarketOpen() (bool, error) {
	return true, nil
}

func (m *mockAlpacaForTestsHandler) PlaceOrder(req repository.AlpacaPlaceOrderRequest) (*alpaca.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.placedRequests = append(m.placedRequests, req)

	order := &alpaca.Order{
		ID:            uuid.NewString(),
		ClientOrderID: req.ClientOrderID.String(),
		Symbol:        req.Symbol,
		Qty:           &req.Quantity,
		Status:        "filled",
		FilledQty:     req.Quantity,
	}
	m.orders[order.ID] = order

	// simulate the fill landing in the account
	for i := range m.positions {
		if m.positions[i].Symbol == req.Symbol {
			m.positions[i].Quantity = m.positions[i].Quantity.Add(req.Quantity)
			return order, nil
		}
	}
	m.positions = append(m.positions, domain.Position{
		Symbol:   req.Symbol,
		Quantity: req.Quantity,
	})

	return order, nil
}

func (m *mockAlpacaForTestsHandler) GetOrder(orderID string) (*alpaca.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("unknown order %s", orderID)
	}
	return order, nil
}

func (m *mockAlpacaForTestsHandler) CancelOrder(orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelledOrders = append(m.cancelledOrders, orderID)
	return nil
}

func (m *mockAlpacaForTestsHandler) CancelOpenOrders(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelAllCalls++
	return nil
}

func (m *mockAlpacaForTestsHandler) GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, symbol := range symbols {
		if price, ok := m.prices[symbol]; ok {
			out[symbol] = price
		}
	}
	return out, nil
}

func (m *mockAlpacaForTestsHandler) PlacedRequests() []repository.AlpacaPlaceOrderRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]repository.AlpacaPlaceOrderRequest{}, m.placedRequests...)
}

func (m *mockAlpacaForTestsHandler) CancelAllCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancelAllCalls
}

// staticSectorRepository serves a fixed symbol-to-sector map.
type staticSectorRepository map[string]string

func (s staticSectorRepository) GetSectorMap(symbols []string) (map[string]string, error) {
	out := map[string]string{}
	for _, symbol := range symbols {
		if sector, ok := s[symbol]; ok {
			out[symbol] = sector
		}
	}
	return out, nil
}
