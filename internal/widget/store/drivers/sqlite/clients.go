package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
	"github.com/aussiebroadwan/checkout/pkg/cryptox"
)

type clientsRepo struct {
	q *queries
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row, err := r.q.GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return r.mapClient(ctx, row)
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.q.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		c, err := r.mapClient(ctx, row)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	sealed, err := cryptox.SealSecret(c.ClientID, c.ClientSecret)
	if err != nil {
		return fmt.Errorf("seal client secret: %w", err)
	}

	now := time.Now().UTC()
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	err = r.q.CreateClient(ctx, clientRow{
		ID:           c.ClientID,
		Name:         c.Name,
		SecretSealed: sealed,
		CreatedAt:    createdAt,
		UpdatedAt:    now,
	})
	if err != nil {
		return mapConstraint(err)
	}
	return r.insertOrigins(ctx, c.ClientID, c.AllowedOrigins)
}

func (r *clientsRepo) ReplaceAllowedOrigins(ctx context.Context, clientID string, origins []string) error {
	if err := requireAffected(r.q.TouchClient(ctx, clientID, time.Now().UTC())); err != nil {
		return err
	}
	if err := r.q.DeleteClientOrigins(ctx, clientID); err != nil {
		return err
	}
	return r.insertOrigins(ctx, clientID, origins)
}

func (r *clientsRepo) UpdateClientName(ctx context.Context, clientID, name string) error {
	return requireAffected(r.q.UpdateClientName(ctx, clientID, name, time.Now().UTC()))
}

func (r *clientsRepo) DeleteClient(ctx context.Context, clientID string) error {
	return requireAffected(r.q.DeleteClient(ctx, clientID))
}

func (r *clientsRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.CountClients(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *clientsRepo) insertOrigins(ctx context.Context, clientID string, origins []string) error {
	for i, origin := range origins {
		if err := r.q.InsertClientOrigin(ctx, clientID, origin, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *clientsRepo) mapClient(ctx context.Context, row clientRow) (domain.Client, error) {
	secret, err := cryptox.OpenSecret(row.ID, row.SecretSealed)
	if err != nil {
		return domain.Client{}, fmt.Errorf("open secret for client %s: %w", row.ID, err)
	}
	origins, err := r.q.ListClientOrigins(ctx, row.ID)
	if err != nil {
		return domain.Client{}, err
	}
	if origins == nil {
		origins = []string{}
	}
	return domain.Client{
		ClientRecord: domain.ClientRecord{
			ClientID:       row.ID,
			ClientSecret:   secret,
			AllowedOrigins: origins,
		},
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
