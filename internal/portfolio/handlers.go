package portfolio

import (
	"net/http"
	"strings"
	"time"

	"github.com/mhanafy/agentgate/internal/api"
)

// analyzeRequest is the POST body of the portfolio_analyzer endpoint.
type analyzeRequest struct {
	Holdings    []Holding `json:"holdings"`
	RiskProfile string    `json:"risk_profile"`
}

// AnalyzeHandler analyzes a portfolio posted as JSON.
func AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := api.DecodeBody(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	if req.Holdings == nil {
		api.Error(w, http.StatusBadRequest, "Missing holdings parameter")
		return
	}
	if req.RiskProfile == "" {
		req.RiskProfile = "moderate"
	}

	result := Analyze(req.Holdings, req.RiskProfile)
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"portfolio_value":    result.PortfolioValue,
		"asset_allocation":   result.Allocation,
		"risk_metrics":       result.RiskMetrics,
		"diversification":    result.Diversification,
		"recommendations":    result.Recommendations,
		"analysis_timestamp": time.Now().Format(time.RFC3339),
	})
}

// strategyRequest is the POST body of the generate_investment_strategy
// endpoint.
type strategyRequest struct {
	InvestorProfile  *InvestorProfile `json:"investor_profile"`
	CurrentPortfolio []Holding        `json:"current_portfolio"`
}

// StrategyHandler generates an investment strategy from an investor
// profile, with an optional transition plan when a current portfolio
// is supplied.
func StrategyHandler(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if err := api.DecodeBody(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	if req.InvestorProfile == nil {
		api.Error(w, http.StatusBadRequest, "Missing investor profile")
		return
	}

	strategy := GenerateStrategy(*req.InvestorProfile)
	if req.CurrentPortfolio != nil {
		plan := BuildTransitionPlan(req.CurrentPortfolio, strategy, req.InvestorProfile.RiskTolerance)
		strategy.TransitionPlan = &plan
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"investment_strategy": strategy,
		"generated_at":        time.Now().Format(time.RFC3339),
	})
}

// EducationHandler serves educational content by topic and level.
func EducationHandler(w http.ResponseWriter, r *http.Request) {
	topic := strings.ToLower(r.URL.Query().Get("topic"))
	level := strings.ToLower(r.URL.Query().Get("level"))
	if level == "" {
		level = "beginner"
	}

	content, ok := LookupContent(topic, level)
	if !ok {
		api.WriteJSON(w, http.StatusNotFound, map[string]any{
			"available_topics": Topics(),
			"error":            "Topic '" + topic + "' not found",
		})
		return
	}
	api.WriteJSON(w, http.StatusOK, content)
}
