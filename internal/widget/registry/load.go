package registry

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
	"gopkg.in/yaml.v3"
)

// File is the YAML registry document:
//
//	clients:
//	  - client_id: 4fa7fa68...
//	    client_secret: ab5bd52e...
//	    allowed_origins:
//	      - http://localhost:5173
type File struct {
	Clients []domain.ClientRecord `yaml:"clients"`
}

// LoadYAML decodes a registry document and builds a Snapshot from it.
// Unknown fields are rejected so typos do not silently drop origins.
func LoadYAML(r io.Reader) (*Snapshot, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("registry: decode yaml: %w", err)
	}
	return NewSnapshot(f.Clients)
}

// LoadYAMLFile opens path and calls LoadYAML.
func LoadYAMLFile(path string) (*Snapshot, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s: %w", path, err)
	}
	defer fh.Close()
	return LoadYAML(fh)
}

// WriteYAML encodes records as a registry document.
func WriteYAML(w io.Writer, records []domain.ClientRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Clients: records}); err != nil {
		return fmt.Errorf("registry: encode yaml: %w", err)
	}
	return enc.Close()
}

// ClientSource lists provisioned clients, e.g. store.Clients.
type ClientSource interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// LoadSource reads every client from src once and builds a Snapshot.
func LoadSource(ctx context.Context, src ClientSource) (*Snapshot, error) {
	clients, err := src.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry: list clients: %w", err)
	}
	records := make([]domain.ClientRecord, len(clients))
	for i, c := range clients {
		records[i] = c.ClientRecord
	}
	return NewSnapshot(records)
}
