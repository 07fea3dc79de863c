// Package webhook implements the conversational webhook surface: it
// parses inbound fulfillment requests, dispatches them through the
// intent registry, and writes the formatted response.
//
// The webhook path always answers 200 with a well-formed body. The
// calling platform expects a response document on every turn, even
// when the request is malformed or a handler fails.
package webhook

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/mhanafy/agentgate/internal/agent"
	"github.com/mhanafy/agentgate/internal/api"
)

// Handler serves webhook fulfillment requests.
type Handler struct {
	registry *agent.Registry
	log      zerolog.Logger
}

// NewHandler creates a webhook handler dispatching into registry.
func NewHandler(registry *agent.Registry, log zerolog.Logger) *Handler {
	return &Handler{registry: registry, log: log}
}

// HandleWebhook handles one fulfillment request (HTTP POST).
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read webhook body")
		h.writeResponse(w, agent.NewResponse("Sorry, I couldn't understand your request: unreadable body"))
		return
	}
	defer r.Body.Close()

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil || len(doc) == 0 {
		h.log.Warn().Err(err).Msg("webhook request body is not valid JSON")
		h.writeResponse(w, agent.NewResponse("Sorry, I couldn't understand your request: invalid JSON body"))
		return
	}

	req := agent.ParseRequest(doc)
	resp := h.registry.Dispatch(r.Context(), req)
	h.writeResponse(w, resp)
}

func (h *Handler) writeResponse(w http.ResponseWriter, resp agent.Response) {
	api.WriteJSON(w, http.StatusOK, resp.Webhook())
}

// RegisterRoutes mounts the webhook endpoint on the given router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/webhook", h.HandleWebhook)
}
