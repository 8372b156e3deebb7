package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories, so a transaction can only be opened from the root
// and never from inside another one.
type Store interface {
	Clients() Clients

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Clients persists widget clients. Secrets cross this interface in plain
// text; drivers seal them at rest.
type Clients interface {
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// ListClients returns all clients ordered by creation date (oldest first).
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts a client and its allowed origins. Returns
	// ErrAlreadyExists when the id is taken.
	CreateClient(ctx context.Context, c domain.Client) error

	// ReplaceAllowedOrigins swaps the whole allow-list and bumps updated_at.
	ReplaceAllowedOrigins(ctx context.Context, clientID string, origins []string) error

	UpdateClientName(ctx context.Context, clientID, name string) error

	// DeleteClient cascades to the client's origins.
	DeleteClient(ctx context.Context, clientID string) error

	IsEmpty(ctx context.Context) (bool, error)
}
