// Package policy decides whether an embedding page may load the widget and
// renders the matching Content-Security-Policy.
package policy

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
	"github.com/aussiebroadwan/checkout/internal/widget/registry"
	"github.com/google/uuid"
)

// FrameNone is the frame-ancestors source used when no origin is allowed.
const FrameNone = "'none'"

// OriginDecision is the per-request outcome of the origin check.
type OriginDecision struct {
	RequestOrigin string
	ClientID      string
	Allowed       bool
}

// FrameAncestor returns the origin to permit as a framing parent, or "" when
// framing must be refused.
func (d OriginDecision) FrameAncestor() string {
	if !d.Allowed {
		return ""
	}
	return d.RequestOrigin
}

// Policy checks request origins against a client registry.
type Policy struct {
	Registry registry.Registry
}

// New returns a Policy backed by reg.
func New(reg registry.Registry) *Policy {
	return &Policy{Registry: reg}
}

// OriginFromReferer derives the calling page's origin from a Referer value.
func OriginFromReferer(referer string) string {
	return domain.OriginOf(referer)
}

// IsAllowed reports whether clientID is registered and origin is an exact
// member of its allow-list. Missing origins are never allowed.
func (p *Policy) IsAllowed(clientID, origin string) bool {
	if origin == "" || p == nil || p.Registry == nil {
		return false
	}
	rec, err := p.Registry.Lookup(clientID)
	if err != nil {
		return false
	}
	return rec.AllowsOrigin(origin)
}

// Decide runs the origin check for a request's client id and Referer header.
func (p *Policy) Decide(clientID, referer string) OriginDecision {
	origin := OriginFromReferer(referer)
	return OriginDecision{
		RequestOrigin: origin,
		ClientID:      clientID,
		Allowed:       p.IsAllowed(clientID, origin),
	}
}

// NewNonce returns a fresh CSP nonce: the base64 encoding of a random
// (crypto/rand backed) version 4 UUID string.
func NewNonce() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("policy: generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(id.String())), nil
}

const cspTemplate = `
    default-src 'self';
    script-src 'self' 'nonce-{nonce}' 'strict-dynamic';
    style-src 'self' 'nonce-{nonce}';
    img-src 'self' blob: data:;
    font-src 'self';
    object-src 'none';
    base-uri 'self';
    form-action 'self';
    frame-ancestors {ancestor};
    frame-src 'self';
    upgrade-insecure-requests;
`

// BuildCSPHeader renders the Content-Security-Policy value. frame-ancestors
// is frameAncestor when set and 'none' otherwise. Runs of whitespace are
// collapsed to single spaces.
func BuildCSPHeader(nonce, frameAncestor string) string {
	ancestor := frameAncestor
	if ancestor == "" {
		ancestor = FrameNone
	}
	csp := strings.NewReplacer("{nonce}", nonce, "{ancestor}", ancestor).Replace(cspTemplate)
	return strings.Join(strings.Fields(csp), " ")
}
