// Package market produces the mock market data served to the agent:
// sector snapshots, volatility opportunities, and per-symbol analysis.
// Everything here is synthesized; there is no market-data fetching.
package market

import "time"

// Sector summarizes one sector ETF.
type Sector struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Volatility  float64 `json:"volatility"`
	Momentum    float64 `json:"momentum"`
	VolumeRatio float64 `json:"volume_ratio"`
	Signal      string  `json:"signal"`
}

// OptionsData describes the options market for a symbol.
type OptionsData struct {
	Available         bool    `json:"available"`
	ExpirationDate    string  `json:"expiration_date,omitempty"`
	PutCallRatio      float64 `json:"put_call_ratio,omitempty"`
	ImpliedVolatility float64 `json:"implied_volatility,omitempty"`
	TotalCallVolume   int64   `json:"total_call_volume,omitempty"`
	TotalPutVolume    int64   `json:"total_put_volume,omitempty"`
}

// Indicator is the simulated institutional-activity indicator.
type Indicator struct {
	Sentiment   string `json:"sentiment"`
	Strength    int    `json:"strength"`
	Description string `json:"description"`
}

// Strategy is one recommended trading strategy.
type Strategy struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	RiskLevel   string `json:"risk_level"`
}

// Opportunity is one volatility opportunity surfaced by the scanner.
type Opportunity struct {
	Symbol        string      `json:"symbol"`
	Sector        string      `json:"sector"`
	Volatility    float64     `json:"volatility"`
	Momentum      float64     `json:"momentum"`
	Price         float64     `json:"price"`
	Volume        int64       `json:"volume"`
	Source        string      `json:"source"`
	Options       OptionsData `json:"options_data"`
	Institutional Indicator   `json:"institutional_indicator"`
	Strategies    []Strategy  `json:"strategies"`
}

// Analysis is the full market snapshot returned by the scanner.
type Analysis struct {
	AnalysisDate  string        `json:"analysis_date"`
	Overview      Overview      `json:"market_overview"`
	Opportunities []Opportunity `json:"volatility_opportunities"`
}

// Overview groups sector-level data.
type Overview struct {
	VolatileSectors []Sector `json:"volatile_sectors"`
}

// LatestAnalysis returns the most recent market snapshot. Several API
// endpoints share it so the agent sees consistent numbers within a
// conversation.
func LatestAnalysis() Analysis {
	return Analysis{
		AnalysisDate: time.Now().Format(time.RFC3339),
		Overview: Overview{
			VolatileSectors: []Sector{
				{Symbol: "XLK", Name: "Technology", Volatility: 28.7, Momentum: 12.4, VolumeRatio: 1.45, Signal: "bullish"},
				{Symbol: "XLF", Name: "Financial", Volatility: 22.3, Momentum: -5.2, VolumeRatio: 1.34, Signal: "bearish"},
				{Symbol: "XLE", Name: "Energy", Volatility: 32.1, Momentum: 8.7, VolumeRatio: 1.67, Signal: "bullish"},
				{Symbol: "XLV", Name: "Healthcare", Volatility: 18.9, Momentum: 3.2, VolumeRatio: 1.12, Signal: "neutral"},
				{Symbol: "XLC", Name: "Communication Services", Volatility: 25.8, Momentum: 10.3, VolumeRatio: 1.39, Signal: "bullish"},
			},
		},
		Opportunities: []Opportunity{
			{
				Symbol: "NVDA", Sector: "Technology", Volatility: 42.3, Momentum: 15.7,
				Price: 926.43, Volume: 28456700, Source: "Volatile Technology stock",
				Options: OptionsData{
					Available: true, ExpirationDate: "2025-04-18", PutCallRatio: 0.65,
					ImpliedVolatility: 48.7, TotalCallVolume: 142500, TotalPutVolume: 92625,
				},
				Institutional: indicator("bullish", 8),
				Strategies: []Strategy{
					{Type: "bull_call_spread", Description: "Consider a bull call spread for NVDA based on positive momentum", RiskLevel: "moderate"},
					{Type: "momentum_long", Description: "Consider a long position in NVDA with trailing stop loss", RiskLevel: "high"},
				},
			},
			{
				Symbol: "TSLA", Sector: "Automotive", Volatility: 38.9, Momentum: 12.8,
				Price: 244.58, Volume: 31245900, Source: "High Volatility Stock",
				Options: OptionsData{
					Available: true, ExpirationDate: "2025-04-18", PutCallRatio: 0.82,
					ImpliedVolatility: 43.2, TotalCallVolume: 98700, TotalPutVolume: 80934,
				},
				Institutional: indicator("bullish", 7),
				Strategies: []Strategy{
					{Type: "momentum_swing", Description: "Consider a momentum swing trade on TSLA to capitalize on positive momentum", RiskLevel: "high"},
				},
			},
			{
				Symbol: "COIN", Sector: "Financial", Volatility: 51.6, Momentum: -8.4,
				Price: 231.17, Volume: 19873400, Source: "Volatile Financial stock",
				Options: OptionsData{
					Available: true, ExpirationDate: "2025-04-18", PutCallRatio: 1.21,
					ImpliedVolatility: 56.3, TotalCallVolume: 64200, TotalPutVolume: 77682,
				},
				Institutional: indicator("bearish", 6),
				Strategies: []Strategy{
					{Type: "bear_put_spread", Description: "Consider a bear put spread for COIN based on negative momentum", RiskLevel: "moderate"},
				},
			},
			{
				Symbol: "XOM", Sector: "Energy", Volatility: 27.4, Momentum: 6.1,
				Price: 118.92, Volume: 15234800, Source: "Volatile Energy stock",
				Options: OptionsData{
					Available: true, ExpirationDate: "2025-04-18", PutCallRatio: 0.74,
					ImpliedVolatility: 29.8, TotalCallVolume: 41300, TotalPutVolume: 30562,
				},
				Institutional: indicator("bullish", 5),
				Strategies: []Strategy{
					{Type: "covered_call", Description: "Consider a covered call strategy for XOM to generate income", RiskLevel: "low"},
				},
			},
		},
	}
}

// OpportunityFilter narrows an opportunity list. Zero values mean no
// filtering on that dimension.
type OpportunityFilter struct {
	MinVolatility     float64
	HasMinVolatility  bool
	MomentumDirection string // "positive" or "negative"
	Limit             int
}

// Filter applies the filter, preserving opportunity order.
func (f OpportunityFilter) Filter(opps []Opportunity) []Opportunity {
	out := make([]Opportunity, 0, len(opps))
	for _, opp := range opps {
		if f.HasMinVolatility && opp.Volatility < f.MinVolatility {
			continue
		}
		if f.MomentumDirection == "positive" && opp.Momentum <= 0 {
			continue
		}
		if f.MomentumDirection == "negative" && opp.Momentum >= 0 {
			continue
		}
		out = append(out, opp)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func indicator(sentiment string, strength int) Indicator {
	return Indicator{
		Sentiment:   sentiment,
		Strength:    strength,
		Description: describeIndicator(sentiment, strength),
	}
}
