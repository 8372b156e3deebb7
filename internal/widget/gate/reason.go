package gate

// Reason is the terminal outcome of a gate evaluation.
type Reason int

const (
	Accept Reason = iota
	MissingParameter
	UnknownClient
	OriginNotAllowed
	InvalidToken
)

var reasonCodes = map[Reason]string{
	Accept:           "accepted",
	MissingParameter: "missing_parameter",
	UnknownClient:    "unknown_client",
	OriginNotAllowed: "origin_not_allowed",
	InvalidToken:     "invalid_token",
}

var reasonMessages = map[Reason]string{
	Accept:           "Session verified",
	MissingParameter: "Required parameters not passed",
	UnknownClient:    "Invalid credentials",
	OriginNotAllowed: "Invalid origin",
	InvalidToken:     "Invalid combination of credentials",
}

// String returns the stable status code posted to embedding pages.
func (r Reason) String() string {
	if code, ok := reasonCodes[r]; ok {
		return code
	}
	return "unknown"
}

// Message returns a display message. It never contains request data.
func (r Reason) Message() string {
	return reasonMessages[r]
}
