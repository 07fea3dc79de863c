package trading

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mhanafy/agentgate/internal/config"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func setupExecutor(t *testing.T) *Executor {
	t.Helper()
	return NewExecutor(setupStore(t), 3*24*time.Hour, zerolog.Nop())
}

func sampleTrades() []Trade {
	return []Trade{
		{Symbol: "NVDA", Action: "buy", Quantity: 10, OrderType: "market"},
		{Symbol: "TSLA", Action: "sell", Quantity: 5, OrderType: "limit", Price: 250},
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, "inv-1", sampleTrades(), time.Hour)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(id, "pending-") {
		t.Errorf("id = %q, want pending- prefix", id)
	}

	trades, err := store.Get(ctx, id, "inv-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(trades) != 2 || trades[0].Symbol != "NVDA" || trades[1].Price != 250 {
		t.Errorf("trades = %v", trades)
	}
}

func TestStoreGetWrongInvestor(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, "inv-1", sampleTrades(), time.Hour)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Get(ctx, id, "inv-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get with wrong investor = %v, want ErrNotFound", err)
	}
}

func TestStoreExpiredBatchIsAbsent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, "inv-1", sampleTrades(), -time.Minute)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Get(ctx, id, "inv-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on expired batch = %v, want ErrNotFound", err)
	}
}

func TestStorePurgeExpired(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, "inv-1", sampleTrades(), -time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Save(ctx, "inv-1", sampleTrades(), time.Hour); err != nil {
		t.Fatalf("Save: %v", err)
	}

	n, err := store.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}
}

func TestTradeValidate(t *testing.T) {
	cases := []struct {
		name  string
		trade Trade
		valid bool
	}{
		{"market buy", Trade{Symbol: "A", Action: "buy", Quantity: 1, OrderType: "market"}, true},
		{"limit with price", Trade{Symbol: "A", Action: "sell", Quantity: 1, OrderType: "limit", Price: 10}, true},
		{"bad action", Trade{Symbol: "A", Action: "hold", Quantity: 1, OrderType: "market"}, false},
		{"zero quantity", Trade{Symbol: "A", Action: "buy", Quantity: 0, OrderType: "market"}, false},
		{"bad order type", Trade{Symbol: "A", Action: "buy", Quantity: 1, OrderType: "iceberg"}, false},
		{"limit without price", Trade{Symbol: "A", Action: "buy", Quantity: 1, OrderType: "limit"}, false},
		{"stop_limit without price", Trade{Symbol: "A", Action: "buy", Quantity: 1, OrderType: "stop_limit"}, false},
	}
	for _, tc := range cases {
		err := tc.trade.Validate()
		if tc.valid && err != nil {
			t.Errorf("%s: Validate = %v, want nil", tc.name, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%s: Validate = nil, want error", tc.name)
		}
	}
}

func TestExecuteFullyAutomated(t *testing.T) {
	e := setupExecutor(t)

	result, err := e.Execute(context.Background(), "inv-1", sampleTrades(), config.ModeFullyAutomated)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Status != "success" {
		t.Errorf("Status = %q, want success", result.Status)
	}
	if len(result.TradesExecuted) != 2 {
		t.Fatalf("TradesExecuted = %d, want 2", len(result.TradesExecuted))
	}
	for _, tr := range result.TradesExecuted {
		if tr.Status != "executed" {
			t.Errorf("%s status = %q, want executed", tr.Trade.Symbol, tr.Status)
		}
		if !strings.HasPrefix(tr.OrderID, "mock-order-") {
			t.Errorf("OrderID = %q", tr.OrderID)
		}
	}
	// Slippage is bounded at +/-0.2%.
	limit := result.TradesExecuted[1]
	if limit.ExecutionPrice < 249.5 || limit.ExecutionPrice > 250.5 {
		t.Errorf("ExecutionPrice = %v, want near 250", limit.ExecutionPrice)
	}
}

func TestExecuteInvalidTradeDoesNotAbortBatch(t *testing.T) {
	e := setupExecutor(t)
	trades := []Trade{
		{Symbol: "BAD", Action: "hold", Quantity: 1, OrderType: "market"},
		{Symbol: "NVDA", Action: "buy", Quantity: 10, OrderType: "market"},
	}

	result, err := e.Execute(context.Background(), "inv-1", trades, config.ModeFullyAutomated)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.TradesExecuted) != 2 {
		t.Fatalf("TradesExecuted = %d, want 2", len(result.TradesExecuted))
	}
	if result.TradesExecuted[0].Status != "failed" {
		t.Errorf("first status = %q, want failed", result.TradesExecuted[0].Status)
	}
	if result.TradesExecuted[1].Status != "executed" {
		t.Errorf("second status = %q, want executed", result.TradesExecuted[1].Status)
	}
}

func TestExecuteApprovalRequired(t *testing.T) {
	e := setupExecutor(t)
	ctx := context.Background()

	result, err := e.Execute(ctx, "inv-1", sampleTrades(), config.ModeApprovalRequired)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Status != "pending_approval" {
		t.Errorf("Status = %q, want pending_approval", result.Status)
	}
	if result.PendingID == "" || result.TradesCount != 2 {
		t.Errorf("result = %+v", result)
	}

	approved, err := e.Approve(ctx, result.PendingID, "inv-1")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != "success" || len(approved.TradesExecuted) != 2 {
		t.Errorf("approved = %+v", approved)
	}

	// Approval consumes the batch.
	if _, err := e.Approve(ctx, result.PendingID, "inv-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Approve = %v, want ErrNotFound", err)
	}
}

func TestExecuteAdvisoryOnly(t *testing.T) {
	e := setupExecutor(t)

	result, err := e.Execute(context.Background(), "inv-1", sampleTrades(), config.ModeAdvisoryOnly)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Status != "advisory_only" {
		t.Errorf("Status = %q, want advisory_only", result.Status)
	}
	if len(result.Recommendations) != 2 {
		t.Errorf("Recommendations = %d, want 2", len(result.Recommendations))
	}
	if len(result.TradesExecuted) != 0 {
		t.Error("advisory mode executed trades")
	}
}

func TestActionHandlerExecuteTrades(t *testing.T) {
	e := setupExecutor(t)

	body := `{"action_type":"execute_trades","investor_id":"inv-1","trades":[{"symbol":"NVDA","action":"buy","quantity":10,"order_type":"market"}]}`
	req := httptest.NewRequest(http.MethodPost, "/execute_portfolio_action", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ActionHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result ExecutionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// The execution mode defaults to approval_required.
	if result.Status != "pending_approval" {
		t.Errorf("Status = %q, want pending_approval", result.Status)
	}
}

func TestActionHandlerMissingParameters(t *testing.T) {
	e := setupExecutor(t)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"no action", `{"investor_id":"inv-1"}`, "Missing required parameters"},
		{"no trades", `{"action_type":"execute_trades","investor_id":"inv-1"}`, "Missing trades parameter"},
		{"no pending id", `{"action_type":"approve_trades","investor_id":"inv-1"}`, "Missing pending_id parameter"},
		{"no holdings", `{"action_type":"rebalance_portfolio","investor_id":"inv-1"}`, "Missing holdings parameter"},
		{"unsupported", `{"action_type":"short_the_moon","investor_id":"inv-1"}`, "Unsupported action type: short_the_moon"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/execute_portfolio_action", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		e.ActionHandler(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
			continue
		}
		var doc map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		if doc["error"] != tc.want {
			t.Errorf("%s: error = %q, want %q", tc.name, doc["error"], tc.want)
		}
	}
}

func TestActionHandlerApproveUnknownPending(t *testing.T) {
	e := setupExecutor(t)

	body := `{"action_type":"approve_trades","investor_id":"inv-1","pending_id":"pending-nope"}`
	req := httptest.NewRequest(http.MethodPost, "/execute_portfolio_action", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ActionHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var doc map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["error"] != "Pending trades not found or expired" {
		t.Errorf("error = %q", doc["error"])
	}
}
