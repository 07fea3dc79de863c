// Package api implements the REST-style surface of the gateway: a
// path-based handler router with a directory listing for unknown
// paths, parameter validation, and standard JSON envelopes.
package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Version is reported in the directory response.
const Version = "1.0.0"

// API routes requests to named handlers by exact path match. Handlers
// are registered at startup; the zero set yields only the directory
// response.
type API struct {
	name     string
	handlers map[string]http.HandlerFunc
	order    []string
	log      zerolog.Logger
}

// New creates an API router with the given display name.
func New(name string, log zerolog.Logger) *API {
	return &API{
		name:     name,
		handlers: make(map[string]http.HandlerFunc),
		log:      log,
	}
}

// Register maps a path (without slashes) to a handler. Registering an
// existing path overwrites it, keeping its original listing position.
func (a *API) Register(path string, h http.HandlerFunc) {
	path = strings.Trim(path, "/")
	if _, exists := a.handlers[path]; !exists {
		a.order = append(a.order, path)
	}
	a.handlers[path] = h
	a.log.Debug().Str("path", path).Msg("registered api handler")
}

// Endpoints returns the registered paths in registration order,
// prefixed with "/".
func (a *API) Endpoints() []string {
	endpoints := make([]string, 0, len(a.order))
	for _, p := range a.order {
		endpoints = append(endpoints, "/"+p)
	}
	return endpoints
}

// ServeHTTP dispatches by exact string match on the slash-trimmed
// path. Unmatched paths, including the root, get a directory-style
// listing. A panicking handler is answered with a 500 error envelope;
// the panic does not unwind past the router.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")

	handler, ok := a.handlers[path]
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]any{
			"name":      a.name + " API",
			"version":   Version,
			"endpoints": a.Endpoints(),
		})
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			a.log.Error().Str("path", path).Interface("panic", rec).Msg("handler panicked")
			Error(w, http.StatusInternalServerError, "Internal server error")
		}
	}()

	handler(w, r)
}
