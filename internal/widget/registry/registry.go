// Package registry holds the read-only lookup from client id to client
// record. A Snapshot is built once at startup and never mutated, so lookups
// from concurrent requests need no locking.
package registry

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
)

var (
	// ErrNotFound is returned for unknown, empty or malformed client ids.
	ErrNotFound = errors.New("registry: client not found")
	// ErrDuplicateClient reports two records with the same client id.
	ErrDuplicateClient = errors.New("registry: duplicate client id")
)

// Registry resolves client ids to their records.
type Registry interface {
	Lookup(clientID string) (domain.ClientRecord, error)
}

// Snapshot is an immutable, map-backed Registry.
type Snapshot struct {
	clients map[string]domain.ClientRecord
}

// NewSnapshot validates and copies the records into a new Snapshot.
func NewSnapshot(records []domain.ClientRecord) (*Snapshot, error) {
	clients := make(map[string]domain.ClientRecord, len(records))
	for i, rec := range records {
		if err := Validate(rec); err != nil {
			return nil, fmt.Errorf("registry: client %d: %w", i, err)
		}
		if _, dup := clients[rec.ClientID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateClient, rec.ClientID)
		}
		clients[rec.ClientID] = rec.Clone()
	}
	return &Snapshot{clients: clients}, nil
}

// Lookup returns a copy of the record so callers cannot mutate the snapshot.
func (s *Snapshot) Lookup(clientID string) (domain.ClientRecord, error) {
	if s == nil || clientID == "" {
		return domain.ClientRecord{}, ErrNotFound
	}
	rec, ok := s.clients[clientID]
	if !ok {
		return domain.ClientRecord{}, ErrNotFound
	}
	return rec.Clone(), nil
}

// Len returns the number of registered clients.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.clients)
}

// Records returns copies of every record, in no particular order.
func (s *Snapshot) Records() []domain.ClientRecord {
	if s == nil {
		return nil
	}
	out := make([]domain.ClientRecord, 0, len(s.clients))
	for _, rec := range s.clients {
		out = append(out, rec.Clone())
	}
	return out
}
