package widgetsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/livez")
}

// GetReadiness checks if the service is ready. A degraded service answers
// 503 with a body; the body is returned alongside the error.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/readyz")
}

func (c *SDKClient) getHealth(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusServiceUnavailable:
	default:
		return nil, parseErrorResponse(resp, body)
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		return &health, &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: "service not ready: " + health.Status,
		}
	}
	return &health, nil
}
