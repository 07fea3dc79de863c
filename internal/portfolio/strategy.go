package portfolio

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// InvestorProfile describes the investor requesting a strategy.
type InvestorProfile struct {
	RiskTolerance     string `json:"risk_tolerance"`
	InvestmentHorizon string `json:"investment_horizon"`
	Goals             []Goal `json:"investment_goals"`
}

// Goal is one investment goal.
type Goal struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount,omitempty"`
}

// Approach is the guidance attached to one goal.
type Approach struct {
	Goal            string   `json:"goal"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// VolatilityApproach describes how to handle market volatility.
type VolatilityApproach struct {
	Description string   `json:"description"`
	Strategies  []string `json:"strategies"`
}

// TransitionStep is one step of a portfolio transition plan.
type TransitionStep struct {
	Action      string `json:"action"`
	Change      string `json:"change"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// TransitionPlan moves a current portfolio toward the target strategy.
type TransitionPlan struct {
	CurrentAllocation  map[string]float64 `json:"current_allocation"`
	TargetAllocation   map[string]float64 `json:"target_allocation"`
	Timeline           string             `json:"timeline"`
	Steps              []TransitionStep   `json:"implementation_steps"`
	TaxConsiderations  []string           `json:"tax_considerations"`
}

// InvestmentStrategy is the generated strategy document.
type InvestmentStrategy struct {
	AssetAllocation      map[string]float64 `json:"asset_allocation"`
	GoalBasedApproaches  []Approach         `json:"goal_based_approaches"`
	VolatilityApproach   VolatilityApproach `json:"volatility_approach"`
	RebalancingFrequency string             `json:"rebalancing_frequency"`
	TaxEfficiencyFocus   string             `json:"tax_efficiency_focus"`
	TransitionPlan       *TransitionPlan    `json:"transition_plan,omitempty"`
}

// strategyAllocations maps risk tolerance and horizon to target
// weights.
var strategyAllocations = map[string]map[string]map[string]float64{
	"conservative": {
		"short":  {"stocks": 20, "bonds": 60, "cash": 20, "alternatives": 0},
		"medium": {"stocks": 30, "bonds": 60, "cash": 5, "alternatives": 5},
		"long":   {"stocks": 40, "bonds": 50, "cash": 0, "alternatives": 10},
	},
	"moderate": {
		"short":  {"stocks": 40, "bonds": 40, "cash": 15, "alternatives": 5},
		"medium": {"stocks": 60, "bonds": 30, "cash": 5, "alternatives": 5},
		"long":   {"stocks": 70, "bonds": 20, "cash": 0, "alternatives": 10},
	},
	"aggressive": {
		"short":  {"stocks": 60, "bonds": 20, "cash": 15, "alternatives": 5},
		"medium": {"stocks": 75, "bonds": 15, "cash": 5, "alternatives": 5},
		"long":   {"stocks": 85, "bonds": 5, "cash": 0, "alternatives": 10},
	},
}

var goalApproaches = map[string]Approach{
	"retirement": {
		Goal:        "Retirement Planning",
		Description: "Build a diversified portfolio focused on long-term growth and eventual income.",
		Recommendations: []string{
			"Maximize tax-advantaged retirement accounts",
			"Focus on low-cost index funds for core holdings",
			"Gradually shift to more conservative allocations as retirement approaches",
		},
	},
	"education": {
		Goal:        "Education Funding",
		Description: "Save for education expenses with a time-based approach.",
		Recommendations: []string{
			"Utilize 529 plans or education-specific savings vehicles",
			"Use age-based portfolios that become more conservative as education start date approaches",
			"Consider direct tuition payment options for tax advantages",
		},
	},
	"home_purchase": {
		Goal:        "Home Purchase",
		Description: "Build savings for down payment while managing risk based on purchase timeline.",
		Recommendations: []string{
			"Keep funds for near-term purchases (< 3 years) in high-yield savings or short-term bonds",
			"For longer timeframes, consider a more diversified approach with some equity exposure",
			"Establish separate emergency fund before allocating to down payment",
		},
	},
	"income": {
		Goal:        "Income Generation",
		Description: "Create reliable income streams from investment portfolio.",
		Recommendations: []string{
			"Focus on dividend-paying stocks and bonds",
			"Consider REITs and preferred securities for income diversification",
			"Implement a yield-focused strategy while maintaining appropriate risk levels",
		},
	},
}

var volatilityApproaches = map[string]VolatilityApproach{
	"conservative": {
		Description: "Prioritize capital preservation with selective opportunities during volatility.",
		Strategies: []string{
			"Maintain higher cash reserves (10-15%) to deploy during market corrections",
			"Focus on defensive sectors with strong balance sheets",
			"Implement stop-loss orders on individual positions (10-15% below purchase)",
			"Consider protective puts on major positions during high market uncertainty",
		},
	},
	"moderate": {
		Description: "Balance between protection and opportunity during market volatility.",
		Strategies: []string{
			"Maintain moderate cash reserves (5-10%) for opportunistic purchases",
			"Implement dollar-cost averaging during extended market downturns",
			"Utilize options for selective hedging of concentrated positions",
			"Focus on quality companies that can weather economic downturns",
		},
	},
	"aggressive": {
		Description: "View volatility primarily as an opportunity for enhanced returns.",
		Strategies: []string{
			"Maintain minimal cash reserves (3-5%) for tactical opportunities",
			"Increase position sizing during significant market corrections",
			"Consider leveraged ETFs for short-term tactical positions",
			"Utilize options for both hedging and return enhancement",
		},
	},
}

// GenerateStrategy builds an investment strategy for the profile.
// Unknown risk tolerance or horizon falls back to moderate/medium.
func GenerateStrategy(profile InvestorProfile) InvestmentStrategy {
	tolerance := strings.ToLower(profile.RiskTolerance)
	horizon := strings.ToLower(profile.InvestmentHorizon)

	byHorizon, ok := strategyAllocations[tolerance]
	if !ok {
		tolerance = "moderate"
		byHorizon = strategyAllocations[tolerance]
	}
	allocation, ok := byHorizon[horizon]
	if !ok {
		allocation = strategyAllocations["moderate"]["medium"]
	}

	var approaches []Approach
	var goalTotal float64
	for _, goal := range profile.Goals {
		goalTotal += goal.Amount
		if approach, ok := goalApproaches[strings.ToLower(goal.Type)]; ok {
			approaches = append(approaches, approach)
		}
	}

	volatility, ok := volatilityApproaches[tolerance]
	if !ok {
		volatility = volatilityApproaches["moderate"]
	}

	rebalancing := "Semi-annually"
	if tolerance == "aggressive" {
		rebalancing = "Quarterly"
	}
	taxFocus := "Medium"
	if goalTotal > 500000 {
		taxFocus = "High"
	}

	return InvestmentStrategy{
		AssetAllocation:      allocation,
		GoalBasedApproaches:  approaches,
		VolatilityApproach:   volatility,
		RebalancingFrequency: rebalancing,
		TaxEfficiencyFocus:   taxFocus,
	}
}

// BuildTransitionPlan computes the steps from the current portfolio to
// the target strategy. Differences below 5 points are left alone.
func BuildTransitionPlan(current []Holding, target InvestmentStrategy, riskTolerance string) TransitionPlan {
	currentAlloc := map[string]float64{"stocks": 0, "bonds": 0, "cash": 0, "alternatives": 0}

	var total float64
	for _, h := range current {
		total += h.Value
	}
	if total > 0 {
		for _, h := range current {
			class := strings.ToLower(h.AssetClass)
			if _, ok := currentAlloc[class]; ok {
				currentAlloc[class] += h.Value / total * 100
			}
		}
	}

	timeline := map[string]string{
		"conservative": "12-18 months",
		"moderate":     "6-12 months",
		"aggressive":   "3-6 months",
	}[strings.ToLower(riskTolerance)]
	if timeline == "" {
		timeline = "6-12 months"
	}

	var steps []TransitionStep
	for asset, targetPct := range target.AssetAllocation {
		diff := targetPct - currentAlloc[asset]
		if math.Abs(diff) < 5 {
			continue
		}
		if diff > 0 {
			steps = append(steps, TransitionStep{
				Action:      fmt.Sprintf("Increase %s allocation", asset),
				Change:      fmt.Sprintf("+%.1f%%", diff),
				Description: fmt.Sprintf("Gradually increase %s allocation through regular investments.", asset),
				Priority:    stepPriority(diff),
			})
		} else {
			steps = append(steps, TransitionStep{
				Action:      fmt.Sprintf("Decrease %s allocation", asset),
				Change:      fmt.Sprintf("%.1f%%", diff),
				Description: fmt.Sprintf("Reduce %s exposure through strategic sales or rebalancing.", asset),
				Priority:    stepPriority(-diff),
			})
		}
	}

	priorityOrder := map[string]int{"high": 0, "medium": 1, "low": 2}
	sort.SliceStable(steps, func(i, j int) bool {
		return priorityOrder[steps[i].Priority] < priorityOrder[steps[j].Priority]
	})

	return TransitionPlan{
		CurrentAllocation: currentAlloc,
		TargetAllocation:  target.AssetAllocation,
		Timeline:          timeline,
		Steps:             steps,
		TaxConsiderations: []string{
			"Consider implementing changes in tax-advantaged accounts first to minimize tax impact",
			"Prioritize selling over-valued assets or those with tax losses if reducing allocation",
			"Establish regular investment schedule to achieve target allocation over the transition period",
		},
	}
}

func stepPriority(diff float64) string {
	switch {
	case diff > 15:
		return "high"
	case diff > 10:
		return "medium"
	default:
		return "low"
	}
}
