package dispatch

// Result statuses. Terminal navigation states are statuses, not errors:
// the cursor stays put and the caller renders the message.
const (
	StatusSuccess         = "success"
	StatusLimitReached    = "limit_reached"
	StatusStartOfDocument = "start_of_document"
	StatusNoDocument      = "no_document"
	StatusNotFound        = "not_found"
	StatusUnknownAction   = "unknown_action"
	StatusError           = "error"
)

// Result is the typed outcome of a dispatched action or query.
type Result struct {
	Status  string                 `json:"status"`
	Route   string                 `json:"route"` // action type or query route
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
