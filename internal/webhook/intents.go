package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mhanafy/agentgate/internal/agent"
	"github.com/mhanafy/agentgate/internal/config"
	"github.com/mhanafy/agentgate/internal/market"
	"github.com/mhanafy/agentgate/internal/portfolio"
	"github.com/mhanafy/agentgate/internal/richcontent"
	"github.com/mhanafy/agentgate/internal/trading"
)

// Intents bundles the dependencies shared by the conversational
// intent handlers.
type Intents struct {
	Agent    *agent.Agent
	Executor *trading.Executor
	Mode     config.ExecutionMode
}

// RegisterIntents wires the portfolio-manager intent set into the
// registry, including the fallback and welcome slots.
func RegisterIntents(reg *agent.Registry, in Intents) {
	reg.Register("market_opportunities", in.marketOpportunities)
	reg.Register("sector_analysis", in.sectorAnalysis)
	reg.Register("analyze_symbol", in.analyzeSymbol)
	reg.Register("portfolio_analysis", in.portfolioAnalysis)
	reg.Register("educational_content", in.educationalContent)
	reg.Register("approve_trades", in.approveTrades)
	reg.SetFallback(in.fallback)
	reg.SetDefault(in.welcome)
}

func (in Intents) welcome(ctx context.Context, req agent.Request) (agent.Response, error) {
	resp := agent.NewResponse("Hi! I'm your portfolio assistant. I can scan the market, analyze your portfolio, and explain investing concepts.")
	resp.Payload = richcontent.Payload(
		richcontent.Card("Portfolio Assistant", richcontent.CardOptions{
			Text: "Ask me about market opportunities, a specific stock, or your portfolio allocation.",
		}),
		richcontent.Chips("Market opportunities", "Sector analysis", "Analyze AAPL", "Options trading basics"),
	)
	return resp, nil
}

func (in Intents) marketOpportunities(ctx context.Context, req agent.Request) (agent.Response, error) {
	analysis := market.LatestAnalysis()
	filter := market.OpportunityFilter{Limit: 3}
	if dir := req.Parameters.String("momentum_direction", ""); dir != "" {
		filter.MomentumDirection = dir
	}
	opps := filter.Filter(analysis.Opportunities)

	if len(opps) == 0 {
		return agent.NewResponse("I didn't find any volatility opportunities matching that filter right now."), nil
	}

	rows := make([][]string, 0, len(opps))
	for _, o := range opps {
		rows = append(rows, []string{
			o.Symbol,
			o.Sector,
			fmt.Sprintf("%.1f%%", o.Volatility),
			fmt.Sprintf("%+.1f%%", o.Momentum),
		})
	}

	resp := agent.NewResponse(fmt.Sprintf("Here are the top %d volatility opportunities I'm tracking.", len(opps)))
	resp.Payload = richcontent.Payload(
		richcontent.Table("Volatility Opportunities", "Ranked by opportunity score",
			[]string{"Symbol", "Sector", "Volatility", "Momentum"}, rows),
		richcontent.Chips(symbolChips(opps)...),
	)
	return resp, nil
}

func (in Intents) sectorAnalysis(ctx context.Context, req agent.Request) (agent.Response, error) {
	analysis := market.LatestAnalysis()
	sectors := analysis.Overview.VolatileSectors
	insights := market.SectorInsights(sectors)

	rows := make([][]string, 0, len(sectors))
	for _, s := range sectors {
		rows = append(rows, []string{s.Name, fmt.Sprintf("%.1f%%", s.Volatility), s.Signal})
	}

	elements := []any{
		richcontent.Table("Sector Snapshot", "", []string{"Sector", "Volatility", "Signal"}, rows),
	}
	for _, ins := range insights {
		title := strings.ReplaceAll(ins.Type, "_", " ")
		elements = append(elements, richcontent.Accordion(title, "", "", ins.Description))
	}

	resp := agent.NewResponse("Here's how the sectors look today.")
	resp.Payload = richcontent.Payload(elements...)
	return resp, nil
}

func (in Intents) analyzeSymbol(ctx context.Context, req agent.Request) (agent.Response, error) {
	symbol := req.Parameters.String("symbol", "")
	if symbol == "" {
		return agent.NewResponse("Which stock would you like me to analyze?"), nil
	}

	a := market.AnalyzeSymbol(symbol)
	text := fmt.Sprintf("%s (%s) is trading at $%.2f, %+.1f%% today with %.1f%% volatility.",
		a.Name, a.Symbol, a.CurrentPrice, a.PriceChange1D, a.Volatility)

	resp := agent.NewResponse(text)
	card := richcontent.Card(fmt.Sprintf("%s · %s", a.Symbol, a.Name), richcontent.CardOptions{
		Subtitle: fmt.Sprintf("%s / %s", a.Sector, a.Industry),
		Text: fmt.Sprintf("Price $%.2f | 20d %+.1f%% | P/E %.1f | %s institutional flow",
			a.CurrentPrice, a.PriceChange20, a.PERatio, a.Institutional.Sentiment),
	})
	chips := make([]string, 0, len(a.Strategies))
	for _, s := range a.Strategies {
		chips = append(chips, strings.ReplaceAll(s.Type, "_", " "))
	}
	resp.Payload = richcontent.Payload(card, richcontent.Chips(chips...))

	// Remember the symbol so followup questions can omit it.
	resp.AddContext(in.Agent.CreateContext(req.SessionID, "symbol-followup", 5, agent.Params{"symbol": a.Symbol}))
	return resp, nil
}

func (in Intents) portfolioAnalysis(ctx context.Context, req agent.Request) (agent.Response, error) {
	risk := req.Parameters.String("risk_profile", "moderate")

	// Conversational requests carry no holdings payload, so analyze a
	// representative demo portfolio at the requested risk profile.
	result := portfolio.Analyze(demoHoldings(), risk)

	resp := agent.NewResponse(fmt.Sprintf(
		"Your portfolio scores %.1f/100 on diversification against a %s profile. I found %d recommendations.",
		result.Diversification.DiversificationScore, risk, len(result.Recommendations)))

	items := make([]richcontent.ListItem, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		items = append(items, richcontent.ListItem{
			Key:      rec.Type,
			Title:    fmt.Sprintf("[%s] %s", strings.ToUpper(rec.Priority), rec.Description),
			Subtitle: rec.Details,
		})
	}
	elements := []any{}
	if len(items) > 0 {
		elements = append(elements, richcontent.List("Recommendations", "", items))
	}
	elements = append(elements, richcontent.Chips("Investment strategy", "Rebalance portfolio", "Diversification basics"))
	resp.Payload = richcontent.Payload(elements...)
	return resp, nil
}

func (in Intents) educationalContent(ctx context.Context, req agent.Request) (agent.Response, error) {
	topic := req.Parameters.String("topic", "")
	level := req.Parameters.String("level", "beginner")

	content, ok := portfolio.LookupContent(topic, level)
	if !ok {
		resp := agent.NewResponse(fmt.Sprintf("I don't have content on %q yet. Here's what I can explain.", topic))
		chips := make([]string, 0, 2)
		for _, t := range portfolio.Topics() {
			chips = append(chips, strings.ReplaceAll(t, "_", " "))
		}
		resp.Payload = richcontent.Payload(richcontent.Chips(chips...))
		return resp, nil
	}

	article := content.Content
	text := article.Summary
	if content.Note != "" {
		text = content.Note + " " + text
	}
	resp := agent.NewResponse(text)
	elements := []any{richcontent.Card(article.Title, richcontent.CardOptions{Text: article.Summary})}
	for _, s := range article.Sections {
		elements = append(elements, richcontent.Accordion(s.Heading, "", "", s.Content))
	}
	resp.Payload = richcontent.Payload(elements...)
	return resp, nil
}

func (in Intents) approveTrades(ctx context.Context, req agent.Request) (agent.Response, error) {
	if in.Mode == config.ModeAdvisoryOnly {
		return agent.NewResponse("I'm running in advisory-only mode, so I can't execute trades. I can still prepare recommendations for you."), nil
	}

	pendingID := req.Parameters.String("pending_id", "")
	investorID := req.Parameters.String("investor_id", req.SessionID)
	if pendingID == "" {
		return agent.NewResponse("I need the pending trade id to approve. Which batch should I execute?"), nil
	}

	result, err := in.Executor.Approve(ctx, pendingID, investorID)
	if err != nil {
		if errors.Is(err, trading.ErrNotFound) {
			return agent.NewResponse("I couldn't find those pending trades. They may have expired."), nil
		}
		return agent.Response{}, err
	}

	executed := 0
	for _, tr := range result.TradesExecuted {
		if tr.Status == "executed" {
			executed++
		}
	}
	return agent.NewResponse(fmt.Sprintf("Done. %d of %d trades executed.", executed, len(result.TradesExecuted))), nil
}

func (in Intents) fallback(ctx context.Context, req agent.Request) (agent.Response, error) {
	resp := agent.NewResponse("Sorry, I'm not sure how to help with that. I can analyze markets, stocks, and portfolios.")
	resp.Payload = richcontent.Payload(
		richcontent.Chips("Market opportunities", "Sector analysis", "Portfolio analysis", "Options trading basics"),
	)
	return resp, nil
}

func symbolChips(opps []market.Opportunity) []string {
	chips := make([]string, 0, len(opps))
	for _, o := range opps {
		chips = append(chips, "Analyze "+o.Symbol)
	}
	return chips
}

// demoHoldings is the sample portfolio used when the caller supplies
// no holdings of their own.
func demoHoldings() []portfolio.Holding {
	return []portfolio.Holding{
		{Symbol: "AAPL", AssetClass: "equity", Sector: "Technology", Value: 25000},
		{Symbol: "MSFT", AssetClass: "equity", Sector: "Technology", Value: 20000},
		{Symbol: "BND", AssetClass: "fixed_income", Sector: "Fixed Income", Value: 30000},
		{Symbol: "VNQ", AssetClass: "alternatives", Sector: "Real Estate", Value: 10000},
		{Symbol: "CASH", AssetClass: "cash", Sector: "Cash", Value: 15000},
	}
}
