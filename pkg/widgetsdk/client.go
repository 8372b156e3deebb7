package widgetsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the checkout widget service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
