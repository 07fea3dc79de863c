package trading

import (
	"errors"
	"net/http"

	"github.com/mhanafy/agentgate/internal/api"
	"github.com/mhanafy/agentgate/internal/config"
	"github.com/mhanafy/agentgate/internal/portfolio"
)

// actionRequest is the POST body of the execute_portfolio_action
// endpoint.
type actionRequest struct {
	ActionType    string              `json:"action_type"`
	InvestorID    string              `json:"investor_id"`
	Trades        []Trade             `json:"trades"`
	ExecutionMode string              `json:"execution_mode"`
	PendingID     string              `json:"pending_id"`
	Holdings      []portfolio.Holding `json:"holdings"`
	RiskTolerance string              `json:"risk_tolerance"`
}

// ActionHandler dispatches portfolio actions: execute_trades,
// approve_trades, and rebalance_portfolio.
func (e *Executor) ActionHandler(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := api.DecodeBody(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	if req.ActionType == "" || req.InvestorID == "" {
		api.Error(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	switch req.ActionType {
	case "execute_trades":
		if req.Trades == nil {
			api.Error(w, http.StatusBadRequest, "Missing trades parameter")
			return
		}
		mode := config.ExecutionMode(req.ExecutionMode)
		if mode == "" {
			mode = config.ModeApprovalRequired
		}
		result, err := e.Execute(r.Context(), req.InvestorID, req.Trades, mode)
		if err != nil {
			api.Error(w, http.StatusInternalServerError, "Trade execution error: "+err.Error())
			return
		}
		api.WriteJSON(w, http.StatusOK, result)

	case "approve_trades":
		if req.PendingID == "" {
			api.Error(w, http.StatusBadRequest, "Missing pending_id parameter")
			return
		}
		result, err := e.Approve(r.Context(), req.PendingID, req.InvestorID)
		if errors.Is(err, ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Pending trades not found or expired")
			return
		}
		if err != nil {
			api.Error(w, http.StatusInternalServerError, "Trade approval error: "+err.Error())
			return
		}
		api.WriteJSON(w, http.StatusOK, result)

	case "rebalance_portfolio":
		if req.Holdings == nil {
			api.Error(w, http.StatusBadRequest, "Missing holdings parameter")
			return
		}
		riskTolerance := req.RiskTolerance
		if riskTolerance == "" {
			riskTolerance = "moderate"
		}
		analysis := portfolio.Analyze(req.Holdings, riskTolerance)
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"status":          "analysis_complete",
			"portfolio_value": analysis.PortfolioValue,
			"recommendations": analysis.Recommendations,
		})

	default:
		api.Error(w, http.StatusBadRequest, "Unsupported action type: "+req.ActionType)
	}
}
