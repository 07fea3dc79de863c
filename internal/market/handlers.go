package market

import (
	"net/http"
	"strconv"

	"github.com/mhanafy/agentgate/internal/api"
)

// SectorReport is the response of the sector_analysis endpoint.
type SectorReport struct {
	Timestamp string    `json:"timestamp"`
	Sectors   []Sector  `json:"sectors"`
	Insights  []Insight `json:"insights"`
}

// VolatilityOpportunities answers questions about current market
// opportunities. GET with optional min_volatility, momentum_direction
// and limit query parameters.
func VolatilityOpportunities(w http.ResponseWriter, r *http.Request) {
	analysis := LatestAnalysis()

	filter := OpportunityFilter{}
	q := r.URL.Query()
	if v := q.Get("min_volatility"); v != "" {
		if minVol, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinVolatility = minVol
			filter.HasMinVolatility = true
		}
	}
	if dir := q.Get("momentum_direction"); dir == "positive" || dir == "negative" {
		filter.MomentumDirection = dir
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}
	analysis.Opportunities = filter.Filter(analysis.Opportunities)

	api.WriteJSON(w, http.StatusOK, analysis)
}

// SectorAnalysis reports sector-level data plus derived insights.
func SectorAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis := LatestAnalysis()
	sectors := analysis.Overview.VolatileSectors

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"sector_analysis": SectorReport{
			Timestamp: analysis.AnalysisDate,
			Sectors:   sectors,
			Insights:  SectorInsights(sectors),
		},
	})
}

// symbolRequest is the POST body of the analyze_symbol endpoint.
type symbolRequest struct {
	Symbol string `json:"symbol"`
}

// AnalyzeSymbolHandler analyzes a single ticker, accepting the symbol
// as a GET query parameter or a POST JSON field.
func AnalyzeSymbolHandler(w http.ResponseWriter, r *http.Request) {
	var symbol string
	if r.Method == http.MethodGet {
		symbol = r.URL.Query().Get("symbol")
	} else {
		var req symbolRequest
		if err := api.DecodeBody(r, &req); err == nil {
			symbol = req.Symbol
		}
	}

	if symbol == "" {
		api.Error(w, http.StatusBadRequest, "Missing symbol parameter")
		return
	}

	api.WriteJSON(w, http.StatusOK, AnalyzeSymbol(symbol))
}
