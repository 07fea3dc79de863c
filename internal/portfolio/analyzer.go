// Package portfolio produces mock portfolio analysis, investment
// strategies, and educational content for the agent's handlers.
package portfolio

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Holding is one portfolio position.
type Holding struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name,omitempty"`
	AssetClass string  `json:"asset_class"`
	Sector     string  `json:"sector,omitempty"`
	Value      float64 `json:"value"`
}

// Slice is the value and percentage of one allocation bucket.
type Slice struct {
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Allocation groups holdings by asset class and, for equities, sector.
type Allocation struct {
	ByAssetClass map[string]Slice `json:"by_asset_class"`
	BySector     map[string]Slice `json:"by_sector"`
}

// RiskMetrics carries the simulated portfolio risk numbers.
type RiskMetrics struct {
	PortfolioVolatility float64 `json:"portfolio_volatility"`
	MaxDrawdown         float64 `json:"max_drawdown"`
	SharpeRatio         float64 `json:"sharpe_ratio"`
	Beta                float64 `json:"beta"`
}

// Diversification summarizes concentration risk.
type Diversification struct {
	AssetClassCount         int     `json:"asset_class_count"`
	SectorCount             int     `json:"sector_count"`
	SecurityCount           int     `json:"security_count"`
	TopHoldingConcentration float64 `json:"top_holding_concentration"`
	Top5Concentration       float64 `json:"top5_concentration"`
	HerfindahlIndex         float64 `json:"herfindahl_index"`
	DiversificationScore    float64 `json:"diversification_score"`
}

// Recommendation is one suggested portfolio change.
type Recommendation struct {
	Type              string  `json:"type"`
	AssetClass        string  `json:"asset_class,omitempty"`
	Sector            string  `json:"sector,omitempty"`
	CurrentAllocation float64 `json:"current_allocation,omitempty"`
	TargetAllocation  float64 `json:"target_allocation,omitempty"`
	Description       string  `json:"description"`
	Details           string  `json:"details,omitempty"`
	Priority          string  `json:"priority"`
}

// AnalysisResult is the full portfolio analysis.
type AnalysisResult struct {
	PortfolioValue  float64          `json:"portfolio_value"`
	Allocation      Allocation       `json:"asset_allocation"`
	RiskMetrics     RiskMetrics      `json:"risk_metrics"`
	Diversification Diversification  `json:"diversification"`
	Recommendations []Recommendation `json:"recommendations"`
}

// targetAllocations maps risk profiles to target asset-class weights.
var targetAllocations = map[string]map[string]float64{
	"conservative": {"equity": 40, "fixed_income": 50, "alternatives": 5, "cash": 5},
	"moderate":     {"equity": 60, "fixed_income": 30, "alternatives": 7, "cash": 3},
	"aggressive":   {"equity": 80, "fixed_income": 15, "alternatives": 3, "cash": 2},
}

// Analyze computes allocation, risk, diversification, and
// recommendations for a set of holdings. Risk metrics are simulated;
// allocation and concentration are computed from the holdings.
func Analyze(holdings []Holding, riskProfile string) AnalysisResult {
	var total float64
	for _, h := range holdings {
		total += h.Value
	}

	assetClasses := map[string]float64{}
	sectors := map[string]float64{}
	for _, h := range holdings {
		class := lowerOr(h.AssetClass, "unknown")
		assetClasses[class] += h.Value
		if class == "equity" {
			sector := orDefault(h.Sector, "unknown")
			sectors[sector] += h.Value
		}
	}

	alloc := Allocation{
		ByAssetClass: map[string]Slice{},
		BySector:     map[string]Slice{},
	}
	for class, value := range assetClasses {
		alloc.ByAssetClass[class] = Slice{Value: value, Percentage: pct(value, total)}
	}
	equityTotal := assetClasses["equity"]
	for sector, value := range sectors {
		alloc.BySector[sector] = Slice{Value: value, Percentage: pct(value, equityTotal)}
	}

	div := diversify(holdings, assetClasses, sectors, total)

	return AnalysisResult{
		PortfolioValue: total,
		Allocation:     alloc,
		RiskMetrics: RiskMetrics{
			PortfolioVolatility: 24.5,
			MaxDrawdown:         -28.3,
			SharpeRatio:         0.92,
			Beta:                1.15,
		},
		Diversification: div,
		Recommendations: recommend(holdings, alloc, div, riskProfile),
	}
}

func diversify(holdings []Holding, assetClasses, sectors map[string]float64, total float64) Diversification {
	values := make([]float64, 0, len(holdings))
	for _, h := range holdings {
		values = append(values, h.Value)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	var top, top5, herfindahl float64
	if total > 0 && len(values) > 0 {
		top = values[0] / total * 100
		for i, v := range values {
			if i < 5 {
				top5 += v
			}
			share := v / total * 100
			herfindahl += share * share
		}
		top5 = top5 / total * 100
	}

	penalty := 0.0
	if len(assetClasses) == 1 {
		penalty = 20
	}
	score := math.Max(0, math.Min(100, 100-herfindahl/100-penalty))

	return Diversification{
		AssetClassCount:         len(assetClasses),
		SectorCount:             len(sectors),
		SecurityCount:           len(holdings),
		TopHoldingConcentration: round1(top),
		Top5Concentration:       round1(top5),
		HerfindahlIndex:         round2(herfindahl),
		DiversificationScore:    round1(score),
	}
}

func recommend(holdings []Holding, alloc Allocation, div Diversification, riskProfile string) []Recommendation {
	targets, ok := targetAllocations[riskProfile]
	if !ok {
		targets = targetAllocations["moderate"]
	}

	var recs []Recommendation

	for class, target := range targets {
		current := alloc.ByAssetClass[class].Percentage
		diff := current - target
		if math.Abs(diff) < 10 {
			continue
		}
		verb := "Increase"
		if diff > 0 {
			verb = "Decrease"
		}
		recs = append(recs, Recommendation{
			Type:              "rebalance",
			AssetClass:        class,
			CurrentAllocation: current,
			TargetAllocation:  target,
			Description:       fmt.Sprintf("%s %s allocation from %.1f%% to %.1f%%", verb, class, current, target),
			Priority:          priorityFor(math.Abs(diff) > 20),
		})
	}

	for sector, slice := range alloc.BySector {
		if slice.Percentage > 30 {
			recs = append(recs, Recommendation{
				Type:              "sector_concentration",
				Sector:            sector,
				CurrentAllocation: slice.Percentage,
				Description:       fmt.Sprintf("Reduce concentration in %s sector from %.1f%%", sector, slice.Percentage),
				Priority:          "medium",
			})
		}
	}

	if div.TopHoldingConcentration > 20 && len(holdings) > 0 {
		largest := holdings[0]
		for _, h := range holdings[1:] {
			if h.Value > largest.Value {
				largest = h
			}
		}
		name := largest.Name
		if name == "" {
			name = largest.Symbol
		}
		recs = append(recs, Recommendation{
			Type:        "concentration",
			Description: fmt.Sprintf("Reduce position size in %s", name),
			Details:     fmt.Sprintf("Your largest position represents %.1f%% of your portfolio.", div.TopHoldingConcentration),
			Priority:    priorityFor(div.TopHoldingConcentration > 30),
		})
	}

	if div.DiversificationScore < 60 {
		recs = append(recs, Recommendation{
			Type:        "diversification",
			Description: "Improve portfolio diversification by adding more securities across different sectors and asset classes",
			Details:     fmt.Sprintf("Your diversification score is %.1f/100.", div.DiversificationScore),
			Priority:    priorityFor(div.DiversificationScore < 40),
		})
	}

	priorityOrder := map[string]int{"high": 0, "medium": 1, "low": 2}
	sort.SliceStable(recs, func(i, j int) bool {
		return priorityOrder[recs[i].Priority] < priorityOrder[recs[j].Priority]
	})
	return recs
}

func priorityFor(high bool) string {
	if high {
		return "high"
	}
	return "medium"
}

func pct(value, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return round1(value / total * 100)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func lowerOr(s, def string) string {
	if s == "" {
		return def
	}
	return strings.ToLower(s)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
