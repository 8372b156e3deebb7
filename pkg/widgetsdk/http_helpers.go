package widgetsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request with the SDKClient's HTTP client.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON decodes a JSON response into target, or returns an *APIError
// when the status is not expectedStatus.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		if apiErr := parseErrorResponse(resp, bodyBytes); apiErr != nil {
			return apiErr
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
