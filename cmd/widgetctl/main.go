// widgetctl administers the checkout widget service: it provisions clients
// in the service database, mints and checks session tokens, and exports the
// client registry as YAML.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/aussiebroadwan/checkout/internal/widget/app"
	"github.com/aussiebroadwan/checkout/internal/widget/service"
	"github.com/aussiebroadwan/checkout/internal/widget/store"
	"github.com/aussiebroadwan/checkout/pkg/cryptox"
)

const usage = `widgetctl administers the checkout widget service.

Usage:
  widgetctl client create --name NAME [--origin ORIGIN]...
  widgetctl client list [--show-secrets]
  widgetctl client delete CLIENT_ID
  widgetctl client rename CLIENT_ID --name NAME
  widgetctl client origins CLIENT_ID [--origin ORIGIN]...
  widgetctl token issue CLIENT_ID [--public-url URL]
  widgetctl token verify CLIENT_ID --token TOKEN --iv IV
  widgetctl token inspect CLIENT_ID --token TOKEN --iv IV
  widgetctl registry export [--out FILE]

Every command accepts --db (default $WIDGET_DATABASE_FILE or widget.db) and
--master-key-path (default $WIDGET_MASTER_KEY_PATH).
`

// errUsage is returned for malformed command lines.
var errUsage = errors.New("invalid usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 2 {
		if len(args) == 1 && (args[0] == "-h" || args[0] == "--help" || args[0] == "help") {
			fmt.Fprint(out, usage)
			return nil
		}
		return errUsage
	}

	group, name, rest := args[0], args[1], args[2:]
	switch group + " " + name {
	case "client create":
		return clientCreate(ctx, rest, out)
	case "client list":
		return clientList(ctx, rest, out)
	case "client delete":
		return clientDelete(ctx, rest, out)
	case "client rename":
		return clientRename(ctx, rest, out)
	case "client origins":
		return clientOrigins(ctx, rest, out)
	case "token issue":
		return tokenIssue(ctx, rest, out)
	case "token verify":
		return tokenVerify(ctx, rest, out)
	case "token inspect":
		return tokenInspect(ctx, rest, out)
	case "registry export":
		return registryExport(ctx, rest, out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, group+" "+name)
	}
}

// storeFlags are shared by every command.
type storeFlags struct {
	dbPath        string
	masterKeyPath string
}

func newFlagSet(name string) (*pflag.FlagSet, *storeFlags) {
	sf := &storeFlags{}
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&sf.dbPath, "db", envOr("WIDGET_DATABASE_FILE", "widget.db"), "path to the SQLite database")
	fs.StringVar(&sf.masterKeyPath, "master-key-path", os.Getenv("WIDGET_MASTER_KEY_PATH"), "master key file used to seal client secrets")
	return fs, sf
}

func parse(fs *pflag.FlagSet, args []string, positional int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != positional {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", errUsage, fs.Name(), positional, fs.NArg())
	}
	return fs.Args(), nil
}

// open returns a store with migrations applied. The caller closes it.
// Secrets sealed under an ephemeral key could never be read back, so a
// master key is mandatory here.
func (sf *storeFlags) open() (store.Store, error) {
	switch {
	case sf.masterKeyPath != "":
		cryptox.SetMasterKeyPath(sf.masterKeyPath)
	case os.Getenv(cryptox.MasterKeyEnv) == "":
		return nil, fmt.Errorf("a master key is required: set --master-key-path or %s", cryptox.MasterKeyEnv)
	}
	return app.OpenStore(sf.dbPath)
}

func (sf *storeFlags) clientService() (*service.ClientService, func(), error) {
	st, err := sf.open()
	if err != nil {
		return nil, nil, err
	}
	return &service.ClientService{Store: st}, func() { _ = st.Close() }, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
