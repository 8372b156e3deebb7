package widget_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/checkout/pkg/sessiontoken"
	"github.com/aussiebroadwan/checkout/pkg/widgetsdk"
)

func TestCreateSessionAndOpenWidget(t *testing.T) {
	baseURL := setupRegistryContainer(t)
	client := widgetsdk.NewSDKClient(baseURL)

	session, err := client.CreateSession(t.Context(), testClient.ClientID, testClient.ClientSecret)
	require.NoError(t, err)
	require.NotEmpty(t, session.SessionToken)
	require.Len(t, session.IV, 2*sessiontoken.IVSize)

	widgetURL, err := client.WidgetURL(testClient.ClientID, session.SessionToken, session.IV)
	require.NoError(t, err)

	p := getCheckout(t, widgetURL, shopOrigin+"/cart?step=2")
	require.Equal(t, http.StatusOK, p.status)
	require.Contains(t, p.body, `data-status="accepted"`)
	require.Contains(t, p.header.Get("Content-Security-Policy"), "frame-ancestors "+shopOrigin+";")
	require.NotEmpty(t, p.header.Get("X-Request-ID"))
}

func TestCreateSessionWrongSecret(t *testing.T) {
	baseURL := setupRegistryContainer(t)
	client := widgetsdk.NewSDKClient(baseURL)

	_, err := client.CreateSession(t.Context(), testClient.ClientID, strings.Repeat("0", 64))
	require.ErrorIs(t, err, widgetsdk.ErrInvalidClient)

	_, err = client.CreateSession(t.Context(), strings.Repeat("f", 64), testClient.ClientSecret)
	require.ErrorIs(t, err, widgetsdk.ErrInvalidClient)
}

// A token minted by the merchant back end, without calling the service,
// must be accepted.
func TestLocallyMintedTokenAccepted(t *testing.T) {
	baseURL := setupRegistryContainer(t)

	tok, err := sessiontoken.Codec{}.Issue(testClient.ClientSecret)
	require.NoError(t, err)
	widgetURL, err := widgetsdk.WidgetURL(baseURL, testClient.ClientID, tok.Wire(), tok.IVHex())
	require.NoError(t, err)

	p := getCheckout(t, widgetURL, "http://localhost:5173/")
	require.Equal(t, http.StatusOK, p.status)
	require.Contains(t, p.header.Get("Content-Security-Policy"), "frame-ancestors http://localhost:5173;")
}

func TestCheckoutRejections(t *testing.T) {
	baseURL := setupRegistryContainer(t)

	tok, err := sessiontoken.Codec{}.Issue(testClient.ClientSecret)
	require.NoError(t, err)
	valid, err := widgetsdk.WidgetURL(baseURL, testClient.ClientID, tok.Wire(), tok.IVHex())
	require.NoError(t, err)
	unknown, err := widgetsdk.WidgetURL(baseURL, strings.Repeat("f", 64), tok.Wire(), tok.IVHex())
	require.NoError(t, err)
	tampered, err := widgetsdk.WidgetURL(baseURL, testClient.ClientID, tok.Wire(), strings.Repeat("0", 32))
	require.NoError(t, err)

	tests := []struct {
		name    string
		url     string
		referer string
		status  int
		reason  string
	}{
		{"missing parameters", baseURL + "/checkout?clientId=" + testClient.ClientID, shopOrigin + "/", http.StatusBadRequest, widgetsdk.StatusMissingParameter},
		{"unknown client", unknown, shopOrigin + "/", http.StatusUnauthorized, widgetsdk.StatusUnknownClient},
		{"origin not allowed", valid, otherOrigin + "/", http.StatusForbidden, widgetsdk.StatusOriginNotAllowed},
		{"no referer", valid, "", http.StatusForbidden, widgetsdk.StatusOriginNotAllowed},
		{"tampered iv", tampered, shopOrigin + "/", http.StatusUnauthorized, widgetsdk.StatusInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := getCheckout(t, tt.url, tt.referer)
			require.Equal(t, tt.status, p.status)
			require.Contains(t, p.body, `data-status="`+tt.reason+`"`)
		})
	}
}
