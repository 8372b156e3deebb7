// Package gate turns an inbound widget request into a single accept/reject
// decision: required parameters, then client lookup, then origin, then the
// session token, stopping at the first failure.
package gate

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/checkout/internal/widget/notify"
	"github.com/aussiebroadwan/checkout/internal/widget/policy"
	"github.com/aussiebroadwan/checkout/internal/widget/registry"
	"github.com/aussiebroadwan/checkout/pkg/sessiontoken"
	"github.com/aussiebroadwan/checkout/pkg/slogx"
)

// Query parameter names consumed from the widget URL.
const (
	ParamClientID     = "clientId"
	ParamSessionToken = "sessionToken"
	ParamIV           = "iv"
)

// Request is the transport-independent input of the gate.
type Request struct {
	ClientID     string
	SessionToken string
	IV           string
	Referer      string
}

// RequestFromHTTP reads the gate inputs from query parameters and the
// Referer header.
func RequestFromHTTP(r *http.Request) Request {
	q := r.URL.Query()
	return Request{
		ClientID:     q.Get(ParamClientID),
		SessionToken: q.Get(ParamSessionToken),
		IV:           q.Get(ParamIV),
		Referer:      r.Referer(),
	}
}

// missing returns the name of the first absent parameter, or "".
func (r Request) missing() string {
	switch {
	case r.ClientID == "":
		return ParamClientID
	case r.SessionToken == "":
		return ParamSessionToken
	case r.IV == "":
		return ParamIV
	}
	return ""
}

// Decision is the gate outcome, shaped so a notifier can forward it as is.
type Decision struct {
	Reason   Reason
	ClientID string
	// Origin is the referer-derived origin; it may be set on rejections.
	Origin string
	// OriginAllowed reports whether the origin check ran and passed.
	OriginAllowed bool
	Message       string
}

// Accepted reports whether the request passed every check.
func (d Decision) Accepted() bool { return d.Reason == Accept }

// Event returns the payload for the embedding page.
func (d Decision) Event() notify.Event {
	return notify.Event{Status: d.Reason.String(), Message: d.Message}
}

// TargetOrigin is the origin the decision may be posted to: the request
// origin when it passed the allow-list, otherwise "".
func (d Decision) TargetOrigin() string {
	if !d.OriginAllowed {
		return ""
	}
	return d.Origin
}

// Gate evaluates requests. All fields are read-only after construction, so
// one Gate serves concurrent requests. A nil Policy checks origins against
// Registry.
type Gate struct {
	Registry registry.Registry
	Policy   *policy.Policy
	Codec    sessiontoken.Codec
}

// New returns a Gate that checks origins and tokens against reg.
func New(reg registry.Registry) *Gate {
	return &Gate{
		Registry: reg,
		Policy:   policy.New(reg),
	}
}

// Evaluate runs the checks in order and returns the first failure, or Accept.
func (g *Gate) Evaluate(req Request) Decision {
	if name := req.missing(); name != "" {
		return Decision{
			Reason:   MissingParameter,
			ClientID: req.ClientID,
			Origin:   policy.OriginFromReferer(req.Referer),
			Message:  MissingParameter.Message() + ": " + name,
		}
	}

	rec, err := g.Registry.Lookup(req.ClientID)
	if err != nil {
		return g.reject(UnknownClient, req, false)
	}

	origin := g.policy().Decide(rec.ClientID, req.Referer)
	if !origin.Allowed {
		return g.reject(OriginNotAllowed, req, false)
	}

	if !g.Codec.VerifyWire(req.SessionToken, req.IV, rec.ClientSecret) {
		return g.reject(InvalidToken, req, true)
	}

	return Decision{
		Reason:        Accept,
		ClientID:      rec.ClientID,
		Origin:        origin.RequestOrigin,
		OriginAllowed: true,
		Message:       Accept.Message(),
	}
}

func (g *Gate) policy() *policy.Policy {
	if g.Policy == nil {
		return policy.New(g.Registry)
	}
	return g.Policy
}

func (g *Gate) reject(reason Reason, req Request, originAllowed bool) Decision {
	return Decision{
		Reason:        reason,
		ClientID:      req.ClientID,
		Origin:        policy.OriginFromReferer(req.Referer),
		OriginAllowed: originAllowed,
		Message:       reason.Message(),
	}
}

// Check evaluates req and publishes the decision to n, if non-nil. A failed
// publish is logged and does not change the decision.
func (g *Gate) Check(ctx context.Context, req Request, n notify.Notifier) Decision {
	d := g.Evaluate(req)

	log := slogx.FromContext(ctx).With(
		"client_id", d.ClientID,
		"origin", d.Origin,
		"reason", d.Reason.String(),
	)
	if d.Accepted() {
		log.Info("widget session accepted")
	} else {
		log.Warn("widget session rejected")
	}

	if n != nil {
		err := n.Publish(ctx, d.Event(), d.TargetOrigin())
		switch {
		case err == nil:
		case errors.Is(err, notify.ErrNoTarget):
			log.Debug("widget event not posted", "err", err)
		default:
			log.Warn("publish widget event failed", "err", err)
		}
	}
	return d
}
