package http

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/aussiebroadwan/checkout/internal/widget/gate"
	"github.com/aussiebroadwan/checkout/internal/widget/notify"
	"github.com/aussiebroadwan/checkout/pkg/httpx"
	"github.com/aussiebroadwan/checkout/pkg/slogx"
)

var checkoutPage = template.Must(template.New("checkout").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Checkout</title>
<style nonce="{{.Nonce}}">body{font-family:system-ui,sans-serif;margin:0;display:flex;min-height:100vh;align-items:center;justify-content:center}</style>
</head>
<body data-status="{{.Status}}">
<main id="checkout">
{{- if .Accepted}}
<h1>Debit Card Checkout</h1>
{{- else}}
<h1>{{.Message}}</h1>
{{- end}}
</main>
{{- if .Script}}
<script nonce="{{.Nonce}}">{{.Script}}</script>
{{- end}}
</body>
</html>
`))

type checkoutView struct {
	Nonce    string
	Status   string
	Message  string
	Accepted bool
	Script   template.JS
}

// CheckoutHandler serves the embeddable checkout page behind the gate.
type CheckoutHandler struct {
	Gate *gate.Gate

	// Audit receives every decision in addition to the page itself.
	Audit notify.Notifier
}

// ServeHTTP godoc
//
//	@Summary		Checkout widget page
//	@Description	Embeddable checkout page. The request passes only when all parameters are present, the client is registered,
//	@Description	the Referer origin is on the client's allow-list and the session token verifies under the client secret.
//	@Description	The page posts {status, message} to the parent window when the origin was allowed.
//	@Tags			Widget
//	@Produce		html
//	@Param			clientId		query		string	true	"Client identifier"
//	@Param			sessionToken	query		string	true	"Session token: hex(ciphertext).hex(tag)"
//	@Param			iv				query		string	true	"Hex IV issued with the session token"
//	@Param			Referer			header		string	true	"URL of the embedding page"
//	@Success		200				{string}	string	"checkout page"
//	@Failure		400				{string}	string	"missing parameter"
//	@Failure		401				{string}	string	"unknown client or invalid token"
//	@Failure		403				{string}	string	"origin not allowed"
//	@Header			200				{string}	Content-Security-Policy	"per-request policy with nonce and frame-ancestors"
//	@Router			/checkout [get]
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	page := notify.NewPage()
	d := h.Gate.Check(ctx, gate.RequestFromHTTP(r), notify.Multi(page, h.Audit))

	script, err := page.Script()
	if err != nil {
		log.Error("failed to render widget event script", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	var buf bytes.Buffer
	err = checkoutPage.Execute(&buf, checkoutView{
		Nonce:    NonceFromContext(ctx),
		Status:   d.Reason.String(),
		Message:  d.Message,
		Accepted: d.Accepted(),
		Script:   script,
	})
	if err != nil {
		log.Error("failed to render checkout page", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusFor(d.Reason))
	_, _ = w.Write(buf.Bytes())
}

func statusFor(reason gate.Reason) int {
	switch reason {
	case gate.Accept:
		return http.StatusOK
	case gate.MissingParameter:
		return http.StatusBadRequest
	case gate.OriginNotAllowed:
		return http.StatusForbidden
	default:
		return http.StatusUnauthorized
	}
}
