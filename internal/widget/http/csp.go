package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/checkout/internal/widget/gate"
	"github.com/aussiebroadwan/checkout/internal/widget/policy"
	"github.com/aussiebroadwan/checkout/pkg/httpx"
	"github.com/aussiebroadwan/checkout/pkg/slogx"
)

const (
	// NonceHeader carries the per-request CSP nonce to downstream handlers.
	NonceHeader = "X-Nonce"
	CSPHeader   = "Content-Security-Policy"
)

type nonceKey struct{}

// NonceFromContext returns the CSP nonce set by CSPMiddleware, or "".
func NonceFromContext(ctx context.Context) string {
	s, _ := ctx.Value(nonceKey{}).(string)
	return s
}

// CSPMiddleware mints a nonce for every request and sets the
// Content-Security-Policy on the response. frame-ancestors names the
// referer's origin only when it is allowed for the clientId in the query.
// The nonce and the policy are also set on the request for downstream
// handlers.
func CSPMiddleware(p *policy.Policy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce, err := policy.NewNonce()
			if err != nil {
				slogx.FromContext(r.Context()).Error("failed to generate csp nonce", "error", err)
				httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
				return
			}

			decision := p.Decide(r.URL.Query().Get(gate.ParamClientID), r.Referer())
			csp := policy.BuildCSPHeader(nonce, decision.FrameAncestor())

			w.Header().Set(CSPHeader, csp)
			r.Header.Set(NonceHeader, nonce)
			r.Header.Set(CSPHeader, csp)

			ctx := context.WithValue(r.Context(), nonceKey{}, nonce)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
