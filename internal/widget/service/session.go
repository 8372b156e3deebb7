package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/checkout/internal/widget/registry"
	"github.com/aussiebroadwan/checkout/pkg/sessiontoken"
	"github.com/aussiebroadwan/checkout/pkg/slogx"
	"github.com/aussiebroadwan/checkout/pkg/widgetsdk"
)

// ErrInvalidCredentials covers both an unknown client id and a wrong secret.
var ErrInvalidCredentials = errors.New("invalid client credentials")

// Session is an issued session token with the widget URL that carries it.
type Session struct {
	Token     sessiontoken.Token
	WidgetURL string
}

// SessionService mints session tokens for authenticated merchant back ends.
type SessionService struct {
	Registry  registry.Registry
	Codec     sessiontoken.Codec
	PublicURL string
}

// Issue authenticates clientID/secret against the registry and returns a new
// session token. Log lines rely on the context logger for the client id.
func (s *SessionService) Issue(ctx context.Context, clientID, secret string) (Session, error) {
	l := slogx.FromContext(ctx)

	rec, err := s.Registry.Lookup(clientID)
	if err != nil {
		l.Warn("session requested for unknown client")
		return Session{}, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(rec.ClientSecret), []byte(secret)) != 1 {
		l.Warn("session requested with wrong secret")
		return Session{}, ErrInvalidCredentials
	}

	tok, err := s.Codec.Issue(rec.ClientSecret)
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}

	widgetURL, err := widgetsdk.WidgetURL(s.PublicURL, rec.ClientID, tok.Wire(), tok.IVHex())
	if err != nil {
		return Session{}, fmt.Errorf("build widget url: %w", err)
	}

	l.Info("session issued")
	return Session{Token: tok, WidgetURL: widgetURL}, nil
}
