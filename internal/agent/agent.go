// Package agent implements the conversational core of the gateway: the
// canonical request/response model, the intent registry and dispatcher,
// and helpers for session contexts and follow-up events.
package agent

import (
	"fmt"
	"strings"
)

// Config identifies the deployed agent. Context names must be fully
// qualified against these values before they go on the wire.
type Config struct {
	Name      string
	ProjectID string
	Location  string
	AgentID   string
}

// Agent carries the identity used to qualify context names.
type Agent struct {
	cfg Config
}

// New creates an Agent from explicit configuration. Empty fields are
// given neutral defaults so that context names stay well-formed.
func New(cfg Config) *Agent {
	if cfg.Location == "" {
		cfg.Location = "global"
	}
	if cfg.AgentID == "" {
		cfg.AgentID = "default_agent"
	}
	return &Agent{cfg: cfg}
}

// Name returns the configured agent name.
func (a *Agent) Name() string { return a.cfg.Name }

// CreateContext builds an output context for the given session. An
// unqualified name is expanded to the full
// projects/.../sessions/{session}/contexts/{name} form; names already
// starting with "projects/" pass through untouched.
func (a *Agent) CreateContext(sessionID, name string, lifespan int, params Params) Context {
	if !strings.HasPrefix(name, "projects/") {
		name = fmt.Sprintf("projects/%s/locations/%s/agents/%s/sessions/%s/contexts/%s",
			a.cfg.ProjectID, a.cfg.Location, a.cfg.AgentID, sessionID, name)
	}
	return Context{
		Name:          name,
		LifespanCount: lifespan,
		Parameters:    params,
	}
}

// CreateFollowupEvent builds a follow-up event. The language code
// defaults to "en" when empty.
func (a *Agent) CreateFollowupEvent(name string, params Params, languageCode string) *FollowupEvent {
	if languageCode == "" {
		languageCode = "en"
	}
	return &FollowupEvent{
		Name:         name,
		LanguageCode: languageCode,
		Parameters:   params,
	}
}
