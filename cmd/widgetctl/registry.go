package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
	"github.com/aussiebroadwan/checkout/internal/widget/registry"
)

// registryExport writes every stored client as a registry file that the
// service can load with WIDGET_REGISTRY_FILE.
func registryExport(ctx context.Context, args []string, out io.Writer) error {
	fs, sf := newFlagSet("registry export")
	outPath := fs.String("out", "", "write to this file instead of stdout")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	svc, closeFn, err := sf.clientService()
	if err != nil {
		return err
	}
	defer closeFn()

	clients, err := svc.ListClients(ctx)
	if err != nil {
		return err
	}
	records := make([]domain.ClientRecord, len(clients))
	for i, c := range clients {
		records[i] = c.ClientRecord
	}

	// Refuse to export something the service would reject on load.
	if _, err := registry.NewSnapshot(records); err != nil {
		return err
	}

	if *outPath == "" {
		return registry.WriteYAML(out, records)
	}

	fh, err := os.OpenFile(*outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := registry.WriteYAML(fh, records); err != nil {
		_ = fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "exported %d client(s) to %s\n", len(records), *outPath)
	return nil
}
