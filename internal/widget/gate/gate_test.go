package gate_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
	"github.com/aussiebroadwan/checkout/internal/widget/gate"
	"github.com/aussiebroadwan/checkout/internal/widget/notify"
	"github.com/aussiebroadwan/checkout/internal/widget/registry"
	"github.com/aussiebroadwan/checkout/pkg/sessiontoken"
	"github.com/stretchr/testify/require"
)

const (
	clientA = "9c3b8f2e4a1d4c6b8e7f0a1b2c3d4e5f"
	secretA = "ab5bd52e844eb1ec74f422cb494b449a38524c30e5ab00d6156d76a91094348e"
	clientB = "1f2e3d4c5b6a79880a1b2c3d4e5f6071"
	secretB = "0f1e2d3c4b5a69788796a5b4c3d2e1f00f1e2d3c4b5a69788796a5b4c3d2e1f0"
	shop    = "http://localhost:5173"
)

func newGate(t *testing.T) *gate.Gate {
	t.Helper()
	reg, err := registry.NewSnapshot([]domain.ClientRecord{
		{ClientID: clientA, ClientSecret: secretA, AllowedOrigins: []string{shop}},
		{ClientID: clientB, ClientSecret: secretB, AllowedOrigins: []string{"https://other.example.com"}},
	})
	require.NoError(t, err)
	return gate.New(reg)
}

func issue(t *testing.T, secret string) sessiontoken.Token {
	t.Helper()
	tok, err := sessiontoken.Codec{}.Issue(secret)
	require.NoError(t, err)
	return tok
}

func validRequest(t *testing.T) gate.Request {
	t.Helper()
	tok := issue(t, secretA)
	return gate.Request{
		ClientID:     clientA,
		SessionToken: tok.Wire(),
		IV:           tok.IVHex(),
		Referer:      shop + "/cart?step=2",
	}
}

func TestEvaluateAccept(t *testing.T) {
	t.Parallel()

	d := newGate(t).Evaluate(validRequest(t))
	require.True(t, d.Accepted())
	require.Equal(t, gate.Accept, d.Reason)
	require.Equal(t, clientA, d.ClientID)
	require.Equal(t, shop, d.Origin)
	require.Equal(t, shop, d.TargetOrigin())
	require.Equal(t, "accepted", d.Event().Status)
}

func TestGateLiteralWithoutPolicy(t *testing.T) {
	t.Parallel()

	g := &gate.Gate{Registry: newGate(t).Registry}

	d := g.Evaluate(validRequest(t))
	require.Equal(t, gate.Accept, d.Reason)

	req := validRequest(t)
	req.Referer = "https://evil.example.com/"
	require.Equal(t, gate.OriginNotAllowed, g.Evaluate(req).Reason)
}

func TestEvaluateUnknownClient(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	req := validRequest(t)
	req.ClientID = "not-registered"

	d := g.Evaluate(req)
	require.Equal(t, gate.UnknownClient, d.Reason)
	require.Empty(t, d.TargetOrigin())
}

func TestEvaluateOriginNotAllowedWithValidToken(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	req := validRequest(t)
	req.Referer = "https://evil.example.com/checkout"

	d := g.Evaluate(req)
	require.Equal(t, gate.OriginNotAllowed, d.Reason)
	require.Equal(t, "https://evil.example.com", d.Origin)
	require.Empty(t, d.TargetOrigin())
}

func TestEvaluateOriginChecks(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	tests := []struct {
		name    string
		referer string
		want    gate.Reason
	}{
		{"missing referer", "", gate.OriginNotAllowed},
		{"garbage referer", "not a url", gate.OriginNotAllowed},
		{"other port", "http://localhost:5174/", gate.OriginNotAllowed},
		{"other scheme", "https://localhost:5173/", gate.OriginNotAllowed},
		{"another client's origin", "https://other.example.com/", gate.OriginNotAllowed},
		{"path and query ignored", shop + "/a/b?c=d#e", gate.Accept},
		{"host case ignored", "http://LOCALHOST:5173/", gate.Accept},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			req.Referer = tt.referer
			require.Equal(t, tt.want, g.Evaluate(req).Reason)
		})
	}
}

func TestEvaluateSwappedTokenParts(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	req := validRequest(t)
	ct, tag, ok := strings.Cut(req.SessionToken, ".")
	require.True(t, ok)
	req.SessionToken = tag + "." + ct

	d := g.Evaluate(req)
	require.Equal(t, gate.InvalidToken, d.Reason)
	// The origin passed, so the rejection may still be posted back.
	require.Equal(t, shop, d.TargetOrigin())
}

func TestEvaluateTamperedIV(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	req := validRequest(t)
	b := []byte(req.IV)
	if b[0] == '0' {
		b[0] = '1'
	} else {
		b[0] = '0'
	}
	req.IV = string(b)

	require.Equal(t, gate.InvalidToken, g.Evaluate(req).Reason)
}

func TestEvaluateTokenForAnotherClient(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	tok := issue(t, secretB)
	req := gate.Request{
		ClientID:     clientA,
		SessionToken: tok.Wire(),
		IV:           tok.IVHex(),
		Referer:      shop,
	}
	require.Equal(t, gate.InvalidToken, g.Evaluate(req).Reason)
}

func TestEvaluateMissingParameters(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	tests := []struct {
		name   string
		mutate func(*gate.Request)
		param  string
	}{
		{"client id", func(r *gate.Request) { r.ClientID = "" }, gate.ParamClientID},
		{"session token", func(r *gate.Request) { r.SessionToken = "" }, gate.ParamSessionToken},
		{"iv", func(r *gate.Request) { r.IV = "" }, gate.ParamIV},
		{"all", func(r *gate.Request) { *r = gate.Request{Referer: shop} }, gate.ParamClientID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(&req)
			d := g.Evaluate(req)
			require.Equal(t, gate.MissingParameter, d.Reason)
			require.True(t, strings.HasSuffix(d.Message, tt.param), d.Message)
			require.Empty(t, d.TargetOrigin())
		})
	}
}

// The first failing check wins even when later checks would also fail.
func TestEvaluateOrder(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	bad := gate.Request{
		ClientID:     "unknown",
		SessionToken: "zz.zz",
		IV:           "zz",
		Referer:      "https://evil.example.com",
	}
	require.Equal(t, gate.UnknownClient, g.Evaluate(bad).Reason)

	bad.ClientID = clientA
	require.Equal(t, gate.OriginNotAllowed, g.Evaluate(bad).Reason)

	bad.Referer = shop
	require.Equal(t, gate.InvalidToken, g.Evaluate(bad).Reason)
}

func TestRequestFromHTTP(t *testing.T) {
	t.Parallel()

	q := url.Values{}
	q.Set("clientId", clientA)
	q.Set("sessionToken", "aa.bb")
	q.Set("iv", "cc")
	r := httptest.NewRequest("GET", "/checkout?"+q.Encode(), nil)
	r.Header.Set("Referer", shop+"/cart")

	require.Equal(t, gate.Request{
		ClientID:     clientA,
		SessionToken: "aa.bb",
		IV:           "cc",
		Referer:      shop + "/cart",
	}, gate.RequestFromHTTP(r))
}

type recorder struct {
	events  []notify.Event
	targets []string
	err     error
}

func (r *recorder) Publish(_ context.Context, ev notify.Event, target string) error {
	r.events = append(r.events, ev)
	r.targets = append(r.targets, target)
	return r.err
}

func TestCheckPublishesDecision(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	rec := &recorder{}

	d := g.Check(context.Background(), validRequest(t), rec)
	require.True(t, d.Accepted())
	require.Equal(t, []notify.Event{{Status: "accepted", Message: d.Message}}, rec.events)
	require.Equal(t, []string{shop}, rec.targets)

	req := validRequest(t)
	req.Referer = "https://evil.example.com"
	d = g.Check(context.Background(), req, rec)
	require.Equal(t, gate.OriginNotAllowed, d.Reason)
	require.Equal(t, "", rec.targets[1], "rejected origins never become a post target")
}

func TestCheckIgnoresPublishFailure(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	rec := &recorder{err: errors.New("boom")}

	d := g.Check(context.Background(), validRequest(t), rec)
	require.True(t, d.Accepted())
	require.Len(t, rec.events, 1)

	d = g.Check(context.Background(), validRequest(t), nil)
	require.True(t, d.Accepted())
}

func TestReasonStrings(t *testing.T) {
	t.Parallel()

	require.Equal(t, "accepted", gate.Accept.String())
	require.Equal(t, "missing_parameter", gate.MissingParameter.String())
	require.Equal(t, "unknown_client", gate.UnknownClient.String())
	require.Equal(t, "origin_not_allowed", gate.OriginNotAllowed.String())
	require.Equal(t, "invalid_token", gate.InvalidToken.String())
	require.Equal(t, "unknown", gate.Reason(99).String())
}
