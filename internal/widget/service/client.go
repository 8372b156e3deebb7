package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
	"github.com/aussiebroadwan/checkout/internal/widget/registry"
	"github.com/aussiebroadwan/checkout/internal/widget/store"
	"github.com/aussiebroadwan/checkout/pkg/cryptox"
	"github.com/aussiebroadwan/checkout/pkg/slogx"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidClient  = errors.New("invalid client")
)

type ClientService struct {
	Store store.Store
}

// CreateClient provisions a client with a fresh id and secret. The returned
// client carries the plaintext secret; it is the only time it is shown.
func (s *ClientService) CreateClient(ctx context.Context, name string, origins []string) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	creds, err := cryptox.GenerateClientCredentials()
	if err != nil {
		l.Error("failed to generate client credentials", "error", err)
		return domain.Client{}, err
	}

	c := domain.Client{
		ClientRecord: domain.ClientRecord{
			ClientID:       creds.ClientID,
			ClientSecret:   creds.ClientSecret,
			AllowedOrigins: dedupe(origins),
		},
		Name: name,
	}
	if err := registry.Validate(c.ClientRecord); err != nil {
		return domain.Client{}, fmt.Errorf("%w: %v", ErrInvalidClient, err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Clients().CreateClient(ctx, c)
	})
	if err != nil {
		l.Error("failed to create client", "error", err)
		return domain.Client{}, err
	}

	l.Info("client created successfully",
		"client_id", c.ClientID,
		"name", name,
		"origins", len(c.AllowedOrigins),
		"secret_fingerprint", cryptox.FingerprintToken(c.ClientSecret),
	)
	return c, nil
}

// GetClient returns a client, secret included.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (domain.Client, error) {
	c, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Client{}, ErrClientNotFound
	}
	return c, err
}

// ListClients returns all clients, oldest first.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	l := slogx.FromContext(ctx)

	err := s.Store.Clients().DeleteClient(ctx, clientID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrClientNotFound
	}
	if err != nil {
		l.Error("failed to delete client", "error", err, "client_id", clientID)
		return err
	}

	l.Info("client deleted successfully", "client_id", clientID)
	return nil
}

// RenameClient changes the display name of a client.
func (s *ClientService) RenameClient(ctx context.Context, clientID, name string) error {
	l := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidClient)
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Clients().UpdateClientName(ctx, clientID, name)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrClientNotFound
	}
	if err != nil {
		l.Error("failed to rename client", "error", err, "client_id", clientID)
		return err
	}

	l.Info("client renamed", "client_id", clientID, "name", name)
	return nil
}

// HasClients reports whether any client has been provisioned.
func (s *ClientService) HasClients(ctx context.Context) (bool, error) {
	empty, err := s.Store.Clients().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// SetAllowedOrigins replaces the client's allow-list. Every entry must be a
// serialized origin; duplicates are dropped.
func (s *ClientService) SetAllowedOrigins(ctx context.Context, clientID string, origins []string) error {
	l := slogx.FromContext(ctx)

	origins = dedupe(origins)
	for _, o := range origins {
		if !domain.IsOrigin(o) {
			return fmt.Errorf("%w: %q is not a serialized origin", ErrInvalidClient, o)
		}
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Clients().ReplaceAllowedOrigins(ctx, clientID, origins)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrClientNotFound
	}
	if err != nil {
		l.Error("failed to update allowed origins", "error", err, "client_id", clientID)
		return err
	}

	l.Info("allowed origins updated", "client_id", clientID, "origins", origins)
	return nil
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
