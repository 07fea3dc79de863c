package trading

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mhanafy/agentgate/internal/config"
)

// Trade is one requested order.
type Trade struct {
	Symbol      string  `json:"symbol"`
	Action      string  `json:"action"` // buy or sell
	Quantity    float64 `json:"quantity"`
	OrderType   string  `json:"order_type,omitempty"` // market, limit, stop, stop_limit
	Price       float64 `json:"price,omitempty"`
	TimeInForce string  `json:"time_in_force,omitempty"`
}

// Validate checks the trade's required fields and enum values.
func (t Trade) Validate() error {
	if t.Symbol == "" || t.Action == "" || t.Quantity == 0 {
		return errors.New("missing required trade fields: symbol, action, quantity")
	}
	if t.Action != "buy" && t.Action != "sell" {
		return fmt.Errorf("invalid action %q: must be buy or sell", t.Action)
	}
	if t.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	switch t.OrderType {
	case "", "market", "limit", "stop", "stop_limit":
	default:
		return fmt.Errorf("invalid order type %q", t.OrderType)
	}
	if (t.OrderType == "limit" || t.OrderType == "stop_limit") && t.Price == 0 {
		return fmt.Errorf("%s orders require a price", t.OrderType)
	}
	return nil
}

// TradeResult is the outcome of one trade attempt.
type TradeResult struct {
	Trade          Trade   `json:"trade"`
	Status         string  `json:"status"` // executed or failed
	Message        string  `json:"message"`
	OrderID        string  `json:"order_id,omitempty"`
	ExecutionPrice float64 `json:"execution_price,omitempty"`
	Timestamp      string  `json:"timestamp,omitempty"`
}

// ExecutionResult is the outcome of an execution request.
type ExecutionResult struct {
	Status          string        `json:"status"`
	ExecutionMode   string        `json:"execution_mode,omitempty"`
	TradesExecuted  []TradeResult `json:"trades_executed,omitempty"`
	PendingID       string        `json:"pending_id,omitempty"`
	TradesCount     int           `json:"trades_count,omitempty"`
	ExpirationTime  string        `json:"expiration_time,omitempty"`
	Recommendations []Trade       `json:"recommendations,omitempty"`
	Timestamp       string        `json:"execution_timestamp,omitempty"`
}

// Executor simulates trade execution against a brokerage. No real
// orders are placed anywhere.
type Executor struct {
	store *Store
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
	rng   *rand.Rand
}

// NewExecutor creates an executor persisting pending approvals in
// store with the given TTL.
func NewExecutor(store *Store, ttl time.Duration, log zerolog.Logger) *Executor {
	return &Executor{
		store: store,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Execute processes a batch of trades under the given execution mode.
func (e *Executor) Execute(ctx context.Context, investorID string, trades []Trade, mode config.ExecutionMode) (ExecutionResult, error) {
	switch mode {
	case config.ModeFullyAutomated:
		results := e.processTrades(trades)
		return ExecutionResult{
			Status:         "success",
			ExecutionMode:  string(mode),
			TradesExecuted: results,
			Timestamp:      e.now().Format(time.RFC3339),
		}, nil

	case config.ModeApprovalRequired:
		pendingID, err := e.store.Save(ctx, investorID, trades, e.ttl)
		if err != nil {
			return ExecutionResult{}, err
		}
		e.log.Info().Str("pending_id", pendingID).Int("trades", len(trades)).Msg("trades parked for approval")
		return ExecutionResult{
			Status:         "pending_approval",
			ExecutionMode:  string(mode),
			PendingID:      pendingID,
			TradesCount:    len(trades),
			ExpirationTime: e.now().Add(e.ttl).Format(time.RFC3339),
		}, nil

	default: // advisory only
		return ExecutionResult{
			Status:          "advisory_only",
			ExecutionMode:   string(mode),
			Recommendations: trades,
			Timestamp:       e.now().Format(time.RFC3339),
		}, nil
	}
}

// Approve executes a previously parked batch and clears it.
func (e *Executor) Approve(ctx context.Context, pendingID, investorID string) (ExecutionResult, error) {
	trades, err := e.store.Get(ctx, pendingID, investorID)
	if err != nil {
		return ExecutionResult{}, err
	}

	results := e.processTrades(trades)

	if err := e.store.Delete(ctx, pendingID, investorID); err != nil {
		e.log.Error().Err(err).Str("pending_id", pendingID).Msg("failed to clear pending trades")
	}

	return ExecutionResult{
		Status:         "success",
		TradesExecuted: results,
		Timestamp:      e.now().Format(time.RFC3339),
	}, nil
}

// processTrades validates and simulates each trade independently; one
// bad trade does not abort the batch.
func (e *Executor) processTrades(trades []Trade) []TradeResult {
	results := make([]TradeResult, 0, len(trades))
	for _, trade := range trades {
		if err := trade.Validate(); err != nil {
			results = append(results, TradeResult{
				Trade:   trade,
				Status:  "failed",
				Message: "Invalid trade parameters: " + err.Error(),
			})
			continue
		}
		results = append(results, e.executeSingle(trade))
	}
	return results
}

// executeSingle fills a trade at the requested price plus small random
// slippage (within +/-0.2%).
func (e *Executor) executeSingle(trade Trade) TradeResult {
	price := trade.Price
	if price == 0 {
		price = 100
	}
	slippage := (e.rng.Float64()*2 - 1) * 0.002
	executionPrice := price * (1 + slippage)

	now := e.now()
	orderID := fmt.Sprintf("mock-order-%s-%04d", now.Format("20060102150405"), e.rng.Intn(10000))

	return TradeResult{
		Trade:          trade,
		Status:         "executed",
		Message:        "Trade executed successfully",
		OrderID:        orderID,
		ExecutionPrice: math.Round(executionPrice*100) / 100,
		Timestamp:      now.Format(time.RFC3339),
	}
}
