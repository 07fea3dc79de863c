package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mhanafy/agentgate/internal/agent"
	"github.com/mhanafy/agentgate/internal/config"
	"github.com/mhanafy/agentgate/internal/trading"
)

func setupIntents(t *testing.T) (*agent.Registry, Intents) {
	t.Helper()
	store, err := trading.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	in := Intents{
		Agent:    agent.New(agent.Config{Name: "portfolio-manager", ProjectID: "demo"}),
		Executor: trading.NewExecutor(store, 24*time.Hour, zerolog.Nop()),
		Mode:     config.ModeApprovalRequired,
	}
	reg := agent.NewRegistry(zerolog.Nop())
	RegisterIntents(reg, in)
	return reg, in
}

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg, _ := setupIntents(t)

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(reg, zerolog.Nop()))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postWebhook(t *testing.T, srv *httptest.Server, body string) map[string]any {
	t.Helper()
	resp, err := http.Post(srv.URL+"/webhook", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /webhook: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func webhookBody(intent string, params map[string]any) string {
	doc := map[string]any{
		"session": "projects/demo/locations/global/agents/pm/sessions/sess-1",
		"queryResult": map[string]any{
			"intent":       map[string]any{"displayName": intent},
			"parameters":   params,
			"languageCode": "en",
		},
	}
	data, _ := json.Marshal(doc)
	return string(data)
}

func TestWebhookDispatchesIntent(t *testing.T) {
	srv := setupServer(t)

	doc := postWebhook(t, srv, webhookBody("market_opportunities", nil))
	text, _ := doc["fulfillmentText"].(string)
	if !strings.Contains(text, "volatility opportunities") {
		t.Errorf("fulfillmentText = %q", text)
	}
	if _, ok := doc["payload"]; !ok {
		t.Error("response has no rich-content payload")
	}
}

func TestWebhookEmptyIntentGetsWelcome(t *testing.T) {
	srv := setupServer(t)

	doc := postWebhook(t, srv, `{"session":"s/sess-1","queryResult":{"queryText":"hello"}}`)
	text, _ := doc["fulfillmentText"].(string)
	if !strings.Contains(text, "portfolio assistant") {
		t.Errorf("fulfillmentText = %q, want welcome message", text)
	}
}

func TestWebhookUnknownIntentGetsFallback(t *testing.T) {
	srv := setupServer(t)

	doc := postWebhook(t, srv, webhookBody("order_pizza", nil))
	text, _ := doc["fulfillmentText"].(string)
	if !strings.Contains(text, "not sure how to help") {
		t.Errorf("fulfillmentText = %q, want fallback message", text)
	}
}

func TestWebhookMalformedJSONStillAnswers200(t *testing.T) {
	srv := setupServer(t)

	doc := postWebhook(t, srv, `{this is not json`)
	text, _ := doc["fulfillmentText"].(string)
	if !strings.Contains(text, "couldn't understand") {
		t.Errorf("fulfillmentText = %q, want apologetic message", text)
	}
}

func TestAnalyzeSymbolIntentSetsFollowupContext(t *testing.T) {
	reg, _ := setupIntents(t)

	req := agent.Request{
		SessionID:  "sess-1",
		IntentName: "analyze_symbol",
		Parameters: agent.Params{"symbol": "NVDA"},
	}
	resp := reg.Dispatch(context.Background(), req)

	if len(resp.OutputContexts) != 1 {
		t.Fatalf("OutputContexts = %d, want 1", len(resp.OutputContexts))
	}
	out := resp.OutputContexts[0]
	want := "projects/demo/locations/global/agents/default_agent/sessions/sess-1/contexts/symbol-followup"
	if out.Name != want {
		t.Errorf("context name = %q, want %q", out.Name, want)
	}
	if out.LifespanCount != 5 {
		t.Errorf("LifespanCount = %d, want 5", out.LifespanCount)
	}
	if out.Parameters.String("symbol", "") != "NVDA" {
		t.Errorf("context symbol = %v", out.Parameters)
	}
}

func TestAnalyzeSymbolIntentWithoutSymbolAsks(t *testing.T) {
	reg, _ := setupIntents(t)

	resp := reg.Dispatch(context.Background(), agent.Request{IntentName: "analyze_symbol"})
	if !strings.Contains(resp.FulfillmentText, "Which stock") {
		t.Errorf("fulfillmentText = %q", resp.FulfillmentText)
	}
}

func TestEducationalContentIntentUnknownTopic(t *testing.T) {
	reg, _ := setupIntents(t)

	resp := reg.Dispatch(context.Background(), agent.Request{
		IntentName: "educational_content",
		Parameters: agent.Params{"topic": "astrology"},
	})
	if !strings.Contains(resp.FulfillmentText, "astrology") {
		t.Errorf("fulfillmentText = %q, want topic named", resp.FulfillmentText)
	}
	if resp.Payload == nil {
		t.Error("no suggestion chips for available topics")
	}
}

func TestApproveTradesIntentRoundTrip(t *testing.T) {
	reg, in := setupIntents(t)
	ctx := context.Background()

	trades := []trading.Trade{{Symbol: "NVDA", Action: "buy", Quantity: 10, OrderType: "market"}}
	parked, err := in.Executor.Execute(ctx, "sess-1", trades, config.ModeApprovalRequired)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	resp := reg.Dispatch(ctx, agent.Request{
		SessionID:  "sess-1",
		IntentName: "approve_trades",
		Parameters: agent.Params{"pending_id": parked.PendingID},
	})
	if !strings.Contains(resp.FulfillmentText, "1 of 1 trades executed") {
		t.Errorf("fulfillmentText = %q", resp.FulfillmentText)
	}
}

func TestApproveTradesIntentExpiredBatch(t *testing.T) {
	reg, _ := setupIntents(t)

	resp := reg.Dispatch(context.Background(), agent.Request{
		SessionID:  "sess-1",
		IntentName: "approve_trades",
		Parameters: agent.Params{"pending_id": "pending-nope"},
	})
	if !strings.Contains(resp.FulfillmentText, "may have expired") {
		t.Errorf("fulfillmentText = %q", resp.FulfillmentText)
	}
}

func TestApproveTradesIntentAdvisoryMode(t *testing.T) {
	store, err := trading.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	reg := agent.NewRegistry(zerolog.Nop())
	RegisterIntents(reg, Intents{
		Agent:    agent.New(agent.Config{ProjectID: "demo"}),
		Executor: trading.NewExecutor(store, time.Hour, zerolog.Nop()),
		Mode:     config.ModeAdvisoryOnly,
	})

	resp := reg.Dispatch(context.Background(), agent.Request{
		IntentName: "approve_trades",
		Parameters: agent.Params{"pending_id": "pending-x"},
	})
	if !strings.Contains(resp.FulfillmentText, "advisory-only") {
		t.Errorf("fulfillmentText = %q", resp.FulfillmentText)
	}
}
