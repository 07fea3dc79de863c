package agent

import "strings"

// Params is a JSON-compatible parameter bag, as delivered in
// queryResult.parameters of a webhook request.
type Params map[string]any

// Request is the canonical form of an inbound conversational webhook
// request. It is built once per call and never mutated afterwards.
type Request struct {
	SessionID    string
	IntentName   string // empty means no intent was detected
	Parameters   Params
	QueryText    string
	LanguageCode string

	// RawPayload retains the full original document for handlers that
	// need fields outside the canonical set.
	RawPayload map[string]any
}

// String extracts a string parameter, returning def when the parameter
// is absent or not a string.
func (p Params) String(name, def string) string {
	if v, ok := p[name].(string); ok && v != "" {
		return v
	}
	return def
}

// Float extracts a numeric parameter. DialogFlow delivers all numbers
// as JSON numbers, which decode to float64.
func (p Params) Float(name string, def float64) float64 {
	if v, ok := p[name].(float64); ok {
		return v
	}
	return def
}

// ParseRequest converts a decoded webhook document into a canonical
// Request. Malformed documents degrade to empty/default fields rather
// than failing; the webhook still wants a response either way.
func ParseRequest(doc map[string]any) Request {
	req := Request{
		Parameters:   Params{},
		LanguageCode: "en",
		RawPayload:   doc,
	}
	if doc == nil {
		return req
	}

	if session, ok := doc["session"].(string); ok && session != "" {
		parts := strings.Split(session, "/")
		req.SessionID = parts[len(parts)-1]
	}

	qr, _ := doc["queryResult"].(map[string]any)
	if qr == nil {
		return req
	}

	if intent, ok := qr["intent"].(map[string]any); ok {
		if name, ok := intent["displayName"].(string); ok {
			req.IntentName = name
		}
	}
	if params, ok := qr["parameters"].(map[string]any); ok {
		req.Parameters = Params(params)
	}
	if text, ok := qr["queryText"].(string); ok {
		req.QueryText = text
	}
	if lang, ok := qr["languageCode"].(string); ok && lang != "" {
		req.LanguageCode = lang
	}

	return req
}
