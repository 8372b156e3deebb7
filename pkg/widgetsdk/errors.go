package widgetsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/checkout/pkg/httpx"
)

// Error codes used in API error bodies.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidClient  = "invalid_client"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeServerError    = "server_error"
)

// APIError is an error response from the service. The server writes it with
// WriteError and the SDK decodes it back from the response.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on Code, so a decoded error compares equal to the predefined one.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDescription returns a copy of e with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	c := *e
	c.Description = desc
	return &c
}

// WriteError writes e as a JSON error response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(httpx.ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	// ErrInvalidRequest is a malformed request or a missing parameter.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidClient is an unknown client id or a wrong client secret.
	ErrInvalidClient = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidClient,
		Description: "invalid client credentials",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "not found",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "the server encountered an unexpected condition",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
