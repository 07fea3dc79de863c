package portfolio

import "sort"

// Section is one heading/body pair of an educational article.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// Article is one piece of educational content.
type Article struct {
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Sections   []Section `json:"sections"`
	Conclusion string    `json:"conclusion"`
}

// contentLibrary maps topic -> expertise level -> article.
var contentLibrary = map[string]map[string]Article{
	"options_trading": {
		"beginner": {
			Title:   "Introduction to Options Trading",
			Summary: "Learn the basics of options contracts and how they can be used in your portfolio.",
			Sections: []Section{
				{Heading: "What are Options?", Content: "Options are financial derivatives that give the buyer the right, but not the obligation, to buy or sell an underlying asset at a predetermined price (strike price) before a specific date (expiration date). Call options provide the right to buy, while put options provide the right to sell."},
				{Heading: "Key Terms", Content: "Strike Price: The price at which the option can be exercised. Premium: The price paid to acquire an option. Expiration Date: The date after which the option becomes void. In-the-Money: When an option has intrinsic value."},
				{Heading: "Basic Strategies for Beginners", Content: "Covered Calls: Selling call options against stock you already own to generate income. Protective Puts: Buying put options to protect against downside in stocks you own, similar to insurance."},
			},
			Conclusion: "Options can be valuable tools for income generation and risk management, but require careful study before implementation.",
		},
		"intermediate": {
			Title:   "Intermediate Options Strategies",
			Summary: "Explore more advanced options strategies and their risk/reward profiles.",
			Sections: []Section{
				{Heading: "Vertical Spreads", Content: "Bull Call Spread: Buying a call option while selling a higher strike call option with the same expiration. Bear Put Spread: Buying a put option while selling a lower strike put option with the same expiration. These spreads reduce cost but cap potential profit."},
				{Heading: "Iron Condors", Content: "An iron condor combines a bull put spread with a bear call spread. This creates a range where the strategy is profitable if the underlying asset stays within that range until expiration, making it ideal for low-volatility expectations."},
				{Heading: "Greeks and Risk Management", Content: "Delta measures an option's sensitivity to changes in the underlying asset price. Theta measures time decay. Vega measures sensitivity to volatility changes. Managing these factors is crucial for options success."},
			},
			Conclusion: "Intermediate strategies allow for more precise risk/reward targeting but require more active management and understanding of option pricing factors.",
		},
		"advanced": {
			Title:   "Advanced Options Trading Techniques",
			Summary: "Master complex options strategies for volatility trading and portfolio enhancement.",
			Sections: []Section{
				{Heading: "Volatility Trading", Content: "Long Straddle: Buying both a call and put at the same strike price to profit from significant price movement in either direction. Long Strangle: Similar to a straddle but using out-of-the-money options, reducing cost but requiring larger moves."},
				{Heading: "Calendar Spreads", Content: "Selling a near-term option while buying a longer-term option at the same strike price. This strategy exploits time decay differentials and can be structured as neutral, bullish, or bearish."},
				{Heading: "Ratio Spreads and Backspreads", Content: "These involve buying and selling different quantities of options at different strikes. They create asymmetric payoff profiles that can be used for specific market outlooks and volatility expectations."},
			},
			Conclusion: "Advanced options strategies require sophisticated risk management, thorough understanding of volatility behavior, and careful position sizing.",
		},
	},
	"portfolio_diversification": {
		"beginner": {
			Title:   "Diversification Basics",
			Summary: "Learn why diversification is essential for managing investment risk.",
			Sections: []Section{
				{Heading: "What is Diversification?", Content: "Diversification means spreading investments across various asset classes and securities to reduce risk. The principle is based on the observation that different assets often respond differently to the same economic event."},
				{Heading: "Asset Classes for Diversification", Content: "Stocks: Ownership in companies, higher growth potential but more volatile. Bonds: Loans to governments or corporations, more stable but lower returns. Cash: Highly liquid assets like savings accounts or money market funds. Alternatives: Real estate, commodities, or other non-traditional investments."},
				{Heading: "Benefits of Diversification", Content: "Reduced portfolio volatility. Protection against significant losses in any single investment. More consistent returns over time. Preservation of capital during market downturns."},
			},
			Conclusion: "Proper diversification is one of the most fundamental risk management techniques for investors of all experience levels.",
		},
		"intermediate": {
			Title:   "Advanced Diversification Strategies",
			Summary: "Explore beyond basic asset classes to enhance portfolio resilience.",
			Sections: []Section{
				{Heading: "Correlation Analysis", Content: "Correlation measures how investments move in relation to each other. Low or negative correlations between assets provide the strongest diversification benefits. Modern portfolio theory uses correlation to optimize the risk/return profile of a portfolio."},
				{Heading: "Factor Diversification", Content: "Beyond asset classes, consider diversifying across risk factors such as: Value vs. Growth. Small-cap vs. Large-cap. Quality, Momentum, and Minimum Volatility factors. Geographic regions and developed vs. emerging markets."},
				{Heading: "Alternative Investments", Content: "REITs (Real Estate Investment Trusts) provide exposure to real estate. Commodities can hedge against inflation. Private equity offers exposure to non-public companies. Hedge fund strategies can provide returns uncorrelated with traditional markets."},
			},
			Conclusion: "Effective intermediate diversification requires understanding correlations between assets and economic factors affecting different markets.",
		},
		"advanced": {
			Title:   "Institutional Diversification Techniques",
			Summary: "Master sophisticated diversification approaches used by institutional investors.",
			Sections: []Section{
				{Heading: "Risk Parity Approach", Content: "Rather than allocating by dollar amount, risk parity allocates based on risk contribution. This typically involves leveraging lower-risk assets like bonds to contribute equally to portfolio risk as higher-risk assets like stocks."},
				{Heading: "Tail Risk Hedging", Content: "Specifically diversifying against extreme market events (black swans). Strategies include out-of-the-money put options, volatility investments, trend-following systems, and alternative strategies with crisis alpha."},
				{Heading: "Dynamic Asset Allocation", Content: "Adjusting diversification based on changing market conditions. This includes tactical asset allocation, risk-responsive rebalancing, and regime-based models that adapt to different economic environments."},
			},
			Conclusion: "Advanced diversification goes beyond static allocation to dynamically manage risk across multiple dimensions and market conditions.",
		},
	},
}

// EducationalContent looks up content for a topic and expertise level.
// An unknown level falls back to beginner with a note; an unknown topic
// returns ok=false along with the available topics.
type EducationalContent struct {
	Content       *Article `json:"content,omitempty"`
	RelatedTopics []string `json:"related_topics,omitempty"`
	Note          string   `json:"note,omitempty"`
}

// LookupContent resolves an article from the content library.
func LookupContent(topic, level string) (EducationalContent, bool) {
	levels, ok := contentLibrary[topic]
	if !ok {
		return EducationalContent{}, false
	}

	related := make([]string, 0, len(contentLibrary)-1)
	for t := range contentLibrary {
		if t != topic {
			related = append(related, t)
		}
	}
	sort.Strings(related)

	article, ok := levels[level]
	if !ok {
		fallback := levels["beginner"]
		return EducationalContent{
			Content:       &fallback,
			RelatedTopics: related,
			Note:          "Content for '" + level + "' level not found, providing beginner content instead.",
		}, true
	}

	return EducationalContent{Content: &article, RelatedTopics: related}, true
}

// Topics returns the sorted list of available topics.
func Topics() []string {
	topics := make([]string, 0, len(contentLibrary))
	for t := range contentLibrary {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}
