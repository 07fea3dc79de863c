package market

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpportunityFilterMinVolatility(t *testing.T) {
	opps := LatestAnalysis().Opportunities

	filtered := OpportunityFilter{MinVolatility: 40, HasMinVolatility: true}.Filter(opps)
	for _, o := range filtered {
		if o.Volatility < 40 {
			t.Errorf("%s volatility %.1f below threshold", o.Symbol, o.Volatility)
		}
	}
	if len(filtered) != 2 {
		t.Errorf("len = %d, want 2 (NVDA, COIN)", len(filtered))
	}
}

func TestOpportunityFilterMomentumDirection(t *testing.T) {
	opps := LatestAnalysis().Opportunities

	negative := OpportunityFilter{MomentumDirection: "negative"}.Filter(opps)
	if len(negative) != 1 || negative[0].Symbol != "COIN" {
		t.Errorf("negative momentum = %v, want only COIN", symbols(negative))
	}

	positive := OpportunityFilter{MomentumDirection: "positive"}.Filter(opps)
	for _, o := range positive {
		if o.Momentum <= 0 {
			t.Errorf("%s momentum %.1f is not positive", o.Symbol, o.Momentum)
		}
	}
}

func TestOpportunityFilterLimitPreservesOrder(t *testing.T) {
	opps := LatestAnalysis().Opportunities

	limited := OpportunityFilter{Limit: 2}.Filter(opps)
	if len(limited) != 2 {
		t.Fatalf("len = %d, want 2", len(limited))
	}
	if limited[0].Symbol != opps[0].Symbol || limited[1].Symbol != opps[1].Symbol {
		t.Errorf("limited = %v, want first two of %v", symbols(limited), symbols(opps))
	}
}

func TestSectorInsightsThresholds(t *testing.T) {
	sectors := []Sector{
		{Name: "Quiet", Volatility: 10, Momentum: 1, VolumeRatio: 1.0},
		{Name: "Wild", Volatility: 30, Momentum: 8, VolumeRatio: 1.8},
		{Name: "Falling", Volatility: 25, Momentum: -9, VolumeRatio: 1.2},
	}

	insights := SectorInsights(sectors)
	byType := map[string]string{}
	for _, ins := range insights {
		byType[ins.Type] = ins.Description
	}

	if desc, ok := byType["high_volatility"]; !ok || !strings.Contains(desc, "Wild, Falling") {
		t.Errorf("high_volatility = %q", desc)
	}
	if desc, ok := byType["bullish_momentum"]; !ok || !strings.Contains(desc, "Wild") {
		t.Errorf("bullish_momentum = %q", desc)
	}
	if desc, ok := byType["bearish_momentum"]; !ok || !strings.Contains(desc, "Falling") {
		t.Errorf("bearish_momentum = %q", desc)
	}
	if desc, ok := byType["unusual_volume"]; !ok || !strings.Contains(desc, "Wild") {
		t.Errorf("unusual_volume = %q", desc)
	}
}

func TestSectorInsightsQuietMarket(t *testing.T) {
	insights := SectorInsights([]Sector{{Name: "Calm", Volatility: 5, Momentum: 0, VolumeRatio: 1.0}})
	if len(insights) != 0 {
		t.Errorf("insights = %v, want none", insights)
	}
}

func TestAnalyzeSymbolKnown(t *testing.T) {
	a := AnalyzeSymbol("aapl")
	if a.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", a.Symbol)
	}
	if a.Name != "Apple Inc." {
		t.Errorf("Name = %q", a.Name)
	}
	if !a.Options.Available {
		t.Error("options data should be available for AAPL")
	}
}

func TestAnalyzeSymbolUnknownGetsNeutralProfile(t *testing.T) {
	a := AnalyzeSymbol("zzzz")
	if a.Symbol != "ZZZZ" {
		t.Errorf("Symbol = %q, want ZZZZ", a.Symbol)
	}
	if len(a.Strategies) == 0 {
		t.Fatal("unknown symbol has no strategies")
	}
	if a.Strategies[0].Type != "wait_and_watch" {
		t.Errorf("strategy = %q, want wait_and_watch", a.Strategies[0].Type)
	}
}

func TestVolatilityOpportunitiesEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/volatility_opportunities?min_volatility=40&limit=1", nil)
	rec := httptest.NewRecorder()
	VolatilityOpportunities(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var doc struct {
		Opportunities []Opportunity `json:"volatility_opportunities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Opportunities) != 1 {
		t.Fatalf("len = %d, want 1", len(doc.Opportunities))
	}
	if doc.Opportunities[0].Symbol != "NVDA" {
		t.Errorf("symbol = %q, want NVDA", doc.Opportunities[0].Symbol)
	}
}

func TestAnalyzeSymbolEndpointMissingSymbol(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analyze_symbol", nil)
	rec := httptest.NewRecorder()
	AnalyzeSymbolHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var doc map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["error"] != "Missing symbol parameter" {
		t.Errorf("error = %q", doc["error"])
	}
}

func TestAnalyzeSymbolEndpointPOST(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze_symbol", strings.NewReader(`{"symbol":"msft"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	AnalyzeSymbolHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var a SymbolAnalysis
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Symbol != "MSFT" {
		t.Errorf("Symbol = %q, want MSFT", a.Symbol)
	}
}

func symbols(opps []Opportunity) []string {
	out := make([]string, 0, len(opps))
	for _, o := range opps {
		out = append(out, o.Symbol)
	}
	return out
}
