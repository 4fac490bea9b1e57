package l1_service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"convictiontrader/internal"
	"convictiontrader/internal/domain"
	"convictiontrader/internal/logger"
	"convictiontrader/internal/repository"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Per-order lifecycle:
// PENDING_SUBMIT -> SUBMITTED -> {FILLED | PARTIALLY_FILLED |
// CANCELED_RETRY -> PENDING_SUBMIT | FAILED}
type OrderState string

const (
	OrderState_PendingSubmit   OrderState = "PENDING_SUBMIT"
	OrderState_Submitted       OrderState = "SUBMITTED"
	OrderState_Filled          OrderState = "FILLED"
	OrderState_PartiallyFilled OrderState = "PARTIALLY_FILLED"
	OrderState_CanceledRetry   OrderState = "CANCELED_RETRY"
	OrderState_Failed          OrderState = "FAILED"
)

// KillSwitchEnv halts execution when set to a truthy value. If the
// value is a path, the switch is active while that file exists.
const KillSwitchEnv = "TRADING_KILL_SWITCH"

// limit price is bumped 0.2% on every retry
var limitEscalationFactor = decimal.NewFromFloat(1.002)

var (
	ErrKillSwitchActive = errors.New("trading kill switch is active")
	ErrMarketClosed     = errors.New("market is closed")
)

// TooManyOrdersError is a plan-wide refusal: the whole call is
// rejected rather than truncated.
type TooManyOrdersError struct {
	Requested int
	Max       int
}

func (e TooManyOrdersError) Error() string {
	return fmt.Sprintf("refusing to execute %d orders: max is %d", e.Requested, e.Max)
}

// OrderExecutionError is a per-symbol failure carrying the last
// underlying error. Sibling orders are unaffected.
type OrderExecutionError struct {
	Symbol string
	Err    error
}

func (e OrderExecutionError) Error() string {
	return fmt.Sprintf("order for %s failed: %v", e.Symbol, e.Err)
}

func (e OrderExecutionError) Unwrap() error {
	return e.Err
}

type ExecutionConfig struct {
	// MaxRetries is the number of submit attempts per order.
	MaxRetries int

	// MaxOrders caps the plan size; exceeding it is a hard failure.
	MaxOrders int

	PollInterval time.Duration
	FillTimeout  time.Duration

	RequireMarketOpen bool
}

func DefaultExecutionConfig() ExecutionConfig {
	return ExecutionConfig{
		MaxRetries:        3,
		MaxOrders:         50,
		PollInterval:      5 * time.Second,
		FillTimeout:       2 * time.Minute,
		RequireMarketOpen: true,
	}
}

type OrderResult struct {
	Symbol    string
	OrderID   string
	State     OrderState
	FilledQty decimal.Decimal
	Attempts  int
}

// ExecutionService drives the orders of a TradePlan to terminal state,
// strictly sequentially and in plan order. It keeps no state of its
// own; idempotent re-runs rely entirely on querying live broker state.
type ExecutionService interface {
	ExecutePlan(ctx context.Context, plan domain.TradePlan) ([]OrderResult, error)
}

type executionServiceHandler struct {
	AlpacaRepository repository.AlpacaRepository
	Config           ExecutionConfig
}

func NewExecutionService(alpacaRepository repository.AlpacaRepository, config ExecutionConfig) ExecutionService {
	return executionServiceHandler{
		AlpacaRepository: alpacaRepository,
		Config:           config,
	}
}

// killSwitchActive reports whether the external halt flag is engaged.
func killSwitchActive() bool {
	value := os.Getenv(KillSwitchEnv)
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "0", "false", "off":
		return false
	}
	if strings.ContainsRune(value, os.PathSeparator) {
		_, err := os.Stat(value)
		return err == nil
	}
	return true
}

// abortAll cancels every open order at the broker. Called whenever the
// kill switch trips mid-run.
func (h executionServiceHandler) abortAll(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Warn("kill switch engaged - cancelling all open orders")
	if err := h.AlpacaRepository.CancelOpenOrders(ctx); err != nil {
		return errors.Join(ErrKillSwitchActive, fmt.Errorf("failed to cancel open orders: %w", err))
	}
	return ErrKillSwitchActive
}

func (h executionServiceHandler) ExecutePlan(ctx context.Context, plan domain.TradePlan) ([]OrderResult, error) {
	log := logger.FromContext(ctx)

	if killSwitchActive() {
		return nil, h.abortAll(ctx)
	}

	if h.Config.RequireMarketOpen {
		open, err := h.AlpacaRepository.IsMarketOpen()
		if err != nil {
			return nil, fmt.Errorf("failed to check market clock: %w", err)
		}
		if !open {
			return nil, ErrMarketClosed
		}
	}

	if h.Config.MaxOrders > 0 && len(plan.Orders) > h.Config.MaxOrders {
		return nil, TooManyOrdersError{Requested: len(plan.Orders), Max: h.Config.MaxOrders}
	}

	results := []OrderResult{}
	var symbolErrors []error

	// strictly sequential - overlapping retries must not step on each
	// other, and the kill switch stays meaningful at every step
	for _, order := range plan.Orders {
		result, err := h.executeOrder(ctx, order)
		results = append(results, result)
		if err != nil {
			if errors.Is(err, ErrKillSwitchActive) {
				return results, err
			}
			symbolErrors = append(symbolErrors, err)
			log.Errorf("order execution failed: %v", err)
		}
	}

	if len(symbolErrors) > 0 {
		return results, errors.Join(symbolErrors...)
	}
	return results, nil
}

func (h executionServiceHandler) executeOrder(ctx context.Context, order domain.TradeOrder) (OrderResult, error) {
	log := logger.FromContext(ctx)

	result := OrderResult{
		Symbol: order.Symbol,
		State:  OrderState_PendingSubmit,
	}
	limitPrice := order.LimitPrice
	var lastErr error

	for attempt := 0; attempt < h.Config.MaxRetries; attempt++ {
		if killSwitchActive() {
			return result, h.abortAll(ctx)
		}
		if attempt > 0 {
			limitPrice = internal.RoundToCent(limitPrice.Mul(limitEscalationFactor))
			log.Warnf("retrying %s with escalated limit price %s (attempt %d)", order.Symbol, limitPrice.String(), attempt+1)
		}
		result.Attempts = attempt + 1

		placed, err := h.AlpacaRepository.PlaceOrder(repository.AlpacaPlaceOrderRequest{
			ClientOrderID: uuid.New(),
			Symbol:        order.Symbol,
			Quantity:      order.Quantity,
			Side:          alpaca.Buy,
			LimitPrice:    &limitPrice,
		})
		if err != nil {
			lastErr = err
			continue
		}
		result.State = OrderState_Submitted
		result.OrderID = placed.ID

		final, err := h.waitForFill(ctx, placed.ID)
		if err != nil {
			return result, err
		}

		switch final.Status {
		case "filled":
			result.State = OrderState_Filled
			result.FilledQty = final.FilledQty
			return result, nil
		case "partially_filled":
			result.State = OrderState_PartiallyFilled
			result.FilledQty = final.FilledQty
			return result, nil
		case "canceled", "expired", "rejected":
			lastErr = fmt.Errorf("order %s reached terminal status %s", placed.ID, final.Status)
		default:
			// still open after the fill timeout - cancel and retry
			if err := h.AlpacaRepository.CancelOrder(placed.ID); err != nil {
				log.Warnf("failed to cancel stale order %s: %v", placed.ID, err)
			}
			lastErr = fmt.Errorf("order %s not filled within %s (status %s)", placed.ID, h.Config.FillTimeout, final.Status)
		}
		result.State = OrderState_CanceledRetry
	}

	result.State = OrderState_Failed
	return result, OrderExecutionError{Symbol: order.Symbol, Err: lastErr}
}

// waitForFill polls the order until it leaves the open states or the
// fill timeout elapses, returning the last observed order. The kill
// switch is re-checked on every tick.
func (h executionServiceHandler) waitForFill(ctx context.Context, orderID string) (*alpaca.Order, error) {
	deadline := time.Now().Add(h.Config.FillTimeout)

	for {
		if killSwitchActive() {
			return nil, h.abortAll(ctx)
		}

		order, err := h.AlpacaRepository.GetOrder(orderID)
		if err != nil {
			return nil, fmt.Errorf("failed to poll order %s: %w", orderID, err)
		}

		switch order.Status {
		case "filled", "partially_filled", "canceled", "expired", "rejected":
			return order, nil
		}

		if time.Now().After(deadline) {
			return order, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(h.Config.PollInterval):
		}
	}
}
