package widgetsdk

// ErrorResponse is the JSON error body returned by the service.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// SessionResponse is returned by POST /v1/sessions.
type SessionResponse struct {
	// SessionToken is "<hex ciphertext>.<hex tag>".
	SessionToken string `json:"session_token"`

	// IV is the hex nonce that must travel with SessionToken.
	IV string `json:"iv"`

	// WidgetURL is the ready-to-embed checkout URL carrying client id,
	// session token and IV.
	WidgetURL string `json:"widget_url"`
}

// Event is the message the widget posts to its parent window.
type Event struct {
	// Status is one of the Status* constants.
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Widget event statuses.
const (
	StatusAccepted         = "accepted"
	StatusMissingParameter = "missing_parameter"
	StatusUnknownClient    = "unknown_client"
	StatusOriginNotAllowed = "origin_not_allowed"
	StatusInvalidToken     = "invalid_token"
)

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	// Status is "ok" or "degraded".
	Status string `json:"status"`

	// Uptime is the service uptime, e.g. "1h23m45s".
	Uptime string `json:"uptime,omitempty"`

	Version string `json:"version,omitempty"`

	// Checks is only set by /readyz.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Registry string `json:"registry"`
}
