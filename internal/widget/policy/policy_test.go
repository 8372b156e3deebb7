package policy_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
	"github.com/aussiebroadwan/checkout/internal/widget/policy"
	"github.com/aussiebroadwan/checkout/internal/widget/registry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testClientID = "4fa7fa681e31c2bf513bb838a691d533d219fc53957e75d1ff422fcfe6dcb057"

func newPolicy(t *testing.T) *policy.Policy {
	t.Helper()
	snap, err := registry.NewSnapshot([]domain.ClientRecord{{
		ClientID:       testClientID,
		ClientSecret:   "ab5bd52e844eb1ec74f422cb494b449a38524c30e5ab00d6156d76a91094348e",
		AllowedOrigins: []string{"http://localhost:5173", "https://shop.example.com"},
	}})
	require.NoError(t, err)
	return policy.New(snap)
}

func TestIsAllowed(t *testing.T) {
	t.Parallel()
	p := newPolicy(t)

	tests := []struct {
		name     string
		clientID string
		origin   string
		want     bool
	}{
		{"listed origin", testClientID, "http://localhost:5173", true},
		{"second listed origin", testClientID, "https://shop.example.com", true},
		{"unlisted origin", testClientID, "https://evil.example", false},
		{"trailing slash", testClientID, "http://localhost:5173/", false},
		{"case difference", testClientID, "https://SHOP.example.com", false},
		{"subdomain", testClientID, "https://pay.shop.example.com", false},
		{"scheme difference", testClientID, "http://shop.example.com", false},
		{"empty origin", testClientID, "", false},
		{"unknown client", "nope", "http://localhost:5173", false},
		{"empty client", "", "http://localhost:5173", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, p.IsAllowed(tt.clientID, tt.origin))
		})
	}
}

func TestIsAllowedWithoutRegistry(t *testing.T) {
	t.Parallel()

	require.False(t, (&policy.Policy{}).IsAllowed(testClientID, "http://localhost:5173"))
	var p *policy.Policy
	require.False(t, p.IsAllowed(testClientID, "http://localhost:5173"))
}

func TestDecide(t *testing.T) {
	t.Parallel()
	p := newPolicy(t)

	d := p.Decide(testClientID, "http://localhost:5173/cart?step=2")
	require.Equal(t, policy.OriginDecision{
		RequestOrigin: "http://localhost:5173",
		ClientID:      testClientID,
		Allowed:       true,
	}, d)
	require.Equal(t, "http://localhost:5173", d.FrameAncestor())

	d = p.Decide(testClientID, "https://evil.example/")
	require.False(t, d.Allowed)
	require.Equal(t, "https://evil.example", d.RequestOrigin)
	require.Empty(t, d.FrameAncestor())

	d = p.Decide(testClientID, "")
	require.False(t, d.Allowed)
	require.Empty(t, d.RequestOrigin)
}

func TestNewNonce(t *testing.T) {
	t.Parallel()

	a, err := policy.NewNonce()
	require.NoError(t, err)
	b, err := policy.NewNonce()
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	raw, err := base64.StdEncoding.DecodeString(a)
	require.NoError(t, err)
	parsed, err := uuid.Parse(string(raw))
	require.NoError(t, err)
	require.Equal(t, uuid.Version(4), parsed.Version())
}

func TestBuildCSPHeaderAllowed(t *testing.T) {
	t.Parallel()

	got := policy.BuildCSPHeader("bm9uY2U=", "http://localhost:5173")
	want := "default-src 'self'; " +
		"script-src 'self' 'nonce-bm9uY2U=' 'strict-dynamic'; " +
		"style-src 'self' 'nonce-bm9uY2U='; " +
		"img-src 'self' blob: data:; " +
		"font-src 'self'; " +
		"object-src 'none'; " +
		"base-uri 'self'; " +
		"form-action 'self'; " +
		"frame-ancestors http://localhost:5173; " +
		"frame-src 'self'; " +
		"upgrade-insecure-requests;"
	require.Equal(t, want, got)
}

func TestBuildCSPHeaderForbidsFraming(t *testing.T) {
	t.Parallel()

	got := policy.BuildCSPHeader("n", "")
	require.Contains(t, got, "frame-ancestors 'none';")
	require.NotContains(t, got, "\n")
	require.NotContains(t, got, "  ")
	require.Equal(t, got, strings.TrimSpace(got))
}

func TestBuildCSPHeaderIsDeterministic(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		policy.BuildCSPHeader("abc", "https://shop.example.com"),
		policy.BuildCSPHeader("abc", "https://shop.example.com"),
	)
}
