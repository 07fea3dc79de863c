package market

import (
	"fmt"
	"strings"
)

// SymbolAnalysis is the full analysis of a single stock.
type SymbolAnalysis struct {
	Symbol        string      `json:"symbol"`
	Name          string      `json:"name"`
	Sector        string      `json:"sector"`
	Industry      string      `json:"industry"`
	CurrentPrice  float64     `json:"current_price"`
	PriceChange1D float64     `json:"price_change_1d"`
	PriceChange5D float64     `json:"price_change_5d"`
	PriceChange20 float64     `json:"price_change_20d"`
	Volatility    float64     `json:"volatility"`
	AverageVolume int64       `json:"average_volume"`
	MarketCap     int64       `json:"market_cap"`
	PERatio       float64     `json:"pe_ratio"`
	DividendYield float64     `json:"dividend_yield"`
	Options       OptionsData `json:"options_data"`
	Institutional Indicator   `json:"institutional_indicator"`
	Strategies    []Strategy  `json:"strategies"`
}

// knownSymbols holds curated analysis for a handful of demo tickers.
var knownSymbols = map[string]SymbolAnalysis{
	"AAPL": {
		Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Industry: "Consumer Electronics",
		CurrentPrice: 187.43, PriceChange1D: 0.75, PriceChange5D: 1.32, PriceChange20: 2.3,
		Volatility: 22.8, AverageVolume: 64287500, MarketCap: 2936518000000,
		PERatio: 29.12, DividendYield: 0.52,
		Options: OptionsData{
			Available: true, ExpirationDate: "2025-04-18", PutCallRatio: 0.82,
			ImpliedVolatility: 24.5, TotalCallVolume: 215400, TotalPutVolume: 176628,
		},
		Institutional: indicator("bullish", 6),
		Strategies: []Strategy{
			{Type: "covered_call", Description: "Consider a covered call strategy for AAPL to generate income", RiskLevel: "low"},
			{Type: "long_position", Description: "Buy AAPL shares and hold for long-term growth", RiskLevel: "moderate"},
			{Type: "protective_put", Description: "Buy AAPL shares with protective puts for downside protection", RiskLevel: "low"},
		},
	},
	"MSFT": {
		Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology", Industry: "Software",
		CurrentPrice: 406.87, PriceChange1D: 1.12, PriceChange5D: 2.45, PriceChange20: 4.2,
		Volatility: 24.1, AverageVolume: 28451200, MarketCap: 3018725000000,
		PERatio: 34.87, DividendYield: 0.73,
		Options: OptionsData{
			Available: true, ExpirationDate: "2025-04-18", PutCallRatio: 0.75,
			ImpliedVolatility: 26.8, TotalCallVolume: 143500, TotalPutVolume: 107625,
		},
		Institutional: indicator("bullish", 7),
		Strategies: []Strategy{
			{Type: "long_position", Description: "Buy MSFT shares and hold for long-term growth", RiskLevel: "moderate"},
			{Type: "bull_call_spread", Description: "Consider a bull call spread for MSFT to leverage upward momentum", RiskLevel: "moderate"},
		},
	},
	"NVDA": {
		Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Technology", Industry: "Semiconductors",
		CurrentPrice: 926.43, PriceChange1D: 2.14, PriceChange5D: 5.21, PriceChange20: 8.7,
		Volatility: 42.3, AverageVolume: 28456700, MarketCap: 2283415000000,
		PERatio: 62.34, DividendYield: 0.04,
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
}

// AnalyzeSymbol returns the analysis for a ticker. Unknown tickers get
// a generic neutral profile so the agent always has something to say.
func AnalyzeSymbol(symbol string) SymbolAnalysis {
	symbol = strings.ToUpper(symbol)
	if analysis, ok := knownSymbols[symbol]; ok {
		return analysis
	}

	return SymbolAnalysis{
		Symbol: symbol, Name: symbol + " Inc.", Sector: "Unknown", Industry: "Unknown",
		CurrentPrice: 100.00, PriceChange1D: 0.50, PriceChange5D: 1.25, PriceChange20: 2.1,
		Volatility: 30.5, AverageVolume: 10000000, MarketCap: 100000000000,
		PERatio: 25.00, DividendYield: 0.5,
		Options: OptionsData{
			Available: true, ExpirationDate: "2025-04-18", PutCallRatio: 0.80,
			ImpliedVolatility: 35.0, TotalCallVolume: 50000, TotalPutVolume: 40000,
		},
		Institutional: indicator("neutral", 5),
		Strategies: []Strategy{
			{Type: "wait_and_watch", Description: fmt.Sprintf("Monitor %s for clearer signals before taking a position", symbol), RiskLevel: "low"},
		},
	}
}
