package agent

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Handler processes one canonical request. The context carries the
// request deadline; handlers doing outbound I/O should honor it.
type Handler func(ctx context.Context, req Request) (Response, error)

// Registry maps intent names to handlers, with two special slots: a
// fallback for unrecognized intents and a default for requests that
// carry no intent at all.
//
// Registration is expected at startup, but the registry is safe for
// concurrent use so tests can hot-patch handlers while dispatching.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	fallback Handler
	defaultH Handler
	log      zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		log:      log,
	}
}

// Register maps an intent name to a handler. Registering the same name
// twice overwrites the previous handler; last write wins.
func (r *Registry) Register(intentName string, h Handler) {
	r.mu.Lock()
	r.handlers[intentName] = h
	r.mu.Unlock()
	r.log.Debug().Str("intent", intentName).Msg("registered intent handler")
}

// SetFallback installs the handler invoked when an intent name is
// present but no handler is registered for it.
func (r *Registry) SetFallback(h Handler) {
	r.mu.Lock()
	r.fallback = h
	r.mu.Unlock()
}

// SetDefault installs the handler invoked when the request carries no
// intent name at all. It is never consulted for unmatched non-empty
// intents.
func (r *Registry) SetDefault(h Handler) {
	r.mu.Lock()
	r.defaultH = h
	r.mu.Unlock()
}

// Resolve looks up the handler for an intent name. Absence is a normal
// outcome, not an error.
func (r *Registry) Resolve(intentName string) (Handler, bool) {
	r.mu.RLock()
	h, ok := r.handlers[intentName]
	r.mu.RUnlock()
	return h, ok
}

// RegisteredNames returns the sorted set of registered intent names.
func (r *Registry) RegisteredNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Dispatch resolves and invokes the handler for req.
//
// Precedence is strict: an explicit match always wins over the
// fallback, the fallback wins over the not-handled diagnostic, and the
// default handler is consulted only when the intent name is empty.
// Handler errors and panics are contained here and converted into an
// apologetic but well-formed Response; the webhook must always answer
// with a body, never with a crash.
func (r *Registry) Dispatch(ctx context.Context, req Request) Response {
	r.mu.RLock()
	fallback := r.fallback
	defaultH := r.defaultH
	handler, found := r.handlers[req.IntentName]
	r.mu.RUnlock()

	log := r.log.With().Str("intent", req.IntentName).Str("session", req.SessionID).Logger()
	log.Info().Msg("dispatching request")

	if req.IntentName == "" && defaultH != nil {
		return r.invoke(ctx, defaultH, req, log)
	}

	if found {
		return r.invoke(ctx, handler, req, log)
	}

	if fallback != nil {
		log.Debug().Msg("no handler registered, using fallback")
		return r.invoke(ctx, fallback, req, log)
	}

	log.Warn().Msg("no handler registered for intent")
	return NewResponse(fmt.Sprintf("Sorry, I don't know how to handle the intent: %s", req.IntentName))
}

// invoke runs a handler under recover, mapping both returned errors and
// panics to a degraded Response.
func (r *Registry) invoke(ctx context.Context, h Handler, req Request, log zerolog.Logger) (resp Response) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("handler panicked")
			resp = NewResponse(fmt.Sprintf("Sorry, I encountered an error processing your request: %v", rec))
		}
	}()

	resp, err := h(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("handler failed")
		return NewResponse(fmt.Sprintf("Sorry, I encountered an error processing your request: %v", err))
	}
	return resp
}
