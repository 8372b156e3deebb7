package widgetsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// Widget URL query parameters.
const (
	ParamClientID     = "clientId"
	ParamSessionToken = "sessionToken"
	ParamIV           = "iv"
)

// CheckoutPath is the widget page served by the service.
const CheckoutPath = "/checkout"

// CreateSession authenticates with the client credentials and returns a fresh
// session token and the widget URL that carries it.
func (c *SDKClient) CreateSession(ctx context.Context, clientID, clientSecret string) (*SessionResponse, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrInvalidRequest.WithDescription("client id and client secret are required")
	}

	form := url.Values{}
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/sessions", strings.NewReader(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
		"Accept":       "application/json",
	})
	if err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := decodeJSON(resp, &session, http.StatusCreated); err != nil {
		return nil, err
	}
	return &session, nil
}

// WidgetURL builds the checkout URL for a session. Merchants that mint tokens
// themselves use it to embed the widget.
func (c *SDKClient) WidgetURL(clientID, sessionToken, iv string) (string, error) {
	return WidgetURL(c.BaseURL, clientID, sessionToken, iv)
}

// WidgetURL builds "<base>/checkout?clientId=..&sessionToken=..&iv=..".
func WidgetURL(baseURL, clientID, sessionToken, iv string) (string, error) {
	if clientID == "" || sessionToken == "" || iv == "" {
		return "", errors.New("widgetsdk: client id, session token and iv are required")
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("widgetsdk: base url must be absolute")
	}
	u.Path += CheckoutPath

	q := url.Values{}
	q.Set(ParamClientID, clientID)
	q.Set(ParamSessionToken, sessionToken)
	q.Set(ParamIV, iv)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
