package agent

// Context is a named, lifespan-counted key/value bag scoped to a
// session. The runtime owns context storage and lifespan decrements;
// this package only describes contexts on the wire.
type Context struct {
	Name          string `json:"name"`
	LifespanCount int    `json:"lifespanCount"`
	Parameters    Params `json:"parameters,omitempty"`
}

// FollowupEvent triggers another intent after the current turn.
type FollowupEvent struct {
	Name         string `json:"name"`
	LanguageCode string `json:"languageCode"`
	Parameters   Params `json:"parameters,omitempty"`
}

// Response is the canonical handler result. Handlers build it up and
// hand it to the formatter; after that it must not be modified.
type Response struct {
	FulfillmentText string
	Payload         map[string]any
	OutputContexts  []Context
	FollowupEvent   *FollowupEvent
	SessionInfo     map[string]any
}

// NewResponse returns a Response carrying only fulfillment text.
func NewResponse(text string) Response {
	return Response{FulfillmentText: text}
}

// AddContext appends an output context. Duplicate names are appended
// as-is: the wire format does not treat name as a key, and downstream
// consumers may rely on order.
func (r *Response) AddContext(c Context) {
	r.OutputContexts = append(r.OutputContexts, c)
}

// Webhook converts the response to the webhook wire document.
// fulfillmentText is always emitted; every other key is omitted when
// absent rather than serialized as null.
func (r Response) Webhook() map[string]any {
	doc := map[string]any{
		"fulfillmentText": r.FulfillmentText,
	}
	if len(r.Payload) > 0 {
		doc["payload"] = r.Payload
	}
	if len(r.OutputContexts) > 0 {
		doc["outputContexts"] = r.OutputContexts
	}
	if r.FollowupEvent != nil {
		doc["followupEventInput"] = r.FollowupEvent
	}
	if len(r.SessionInfo) > 0 {
		doc["sessionInfo"] = r.SessionInfo
	}
	return doc
}
