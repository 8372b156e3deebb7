package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func clientCreate(ctx context.Context, args []string, out io.Writer) error {
	fs, sf := newFlagSet("client create")
	name := fs.String("name", "", "display name of the client")
	origins := fs.StringArray("origin", nil, "allowed embedding origin, e.g. https://shop.example.com (repeatable)")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if strings.TrimSpace(*name) == "" {
		return fmt.Errorf("%w: --name is required", errUsage)
	}

	svc, closeFn, err := sf.clientService()
	if err != nil {
		return err
	}
	defer closeFn()

	c, err := svc.CreateClient(ctx, *name, *origins)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "client_id:     %s\n", c.ClientID)
	fmt.Fprintf(out, "client_secret: %s\n", c.ClientSecret)
	fmt.Fprintf(out, "origins:       %s\n", strings.Join(c.AllowedOrigins, " "))
	fmt.Fprintln(out, "Store the secret now; it is not shown again by create.")
	return nil
}

func clientList(ctx context.Context, args []string, out io.Writer) error {
	fs, sf := newFlagSet("client list")
	showSecrets := fs.Bool("show-secrets", false, "print client secrets")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	svc, closeFn, err := sf.clientService()
	if err != nil {
		return err
	}
	defer closeFn()

	has, err := svc.HasClients(ctx)
	if err != nil {
		return err
	}
	if !has {
		fmt.Fprintln(out, "no clients")
		return nil
	}

	clients, err := svc.ListClients(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if *showSecrets {
		fmt.Fprintln(tw, "CLIENT ID\tNAME\tSECRET\tORIGINS\tCREATED")
	} else {
		fmt.Fprintln(tw, "CLIENT ID\tNAME\tORIGINS\tCREATED")
	}
	for _, c := range clients {
		origins := strings.Join(c.AllowedOrigins, ",")
		created := c.CreatedAt.UTC().Format("2006-01-02 15:04")
		if *showSecrets {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ClientID, c.Name, c.ClientSecret, origins, created)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ClientID, c.Name, origins, created)
		}
	}
	return tw.Flush()
}

func clientDelete(ctx context.Context, args []string, out io.Writer) error {
	fs, sf := newFlagSet("client delete")
	pos, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	svc, closeFn, err := sf.clientService()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := svc.DeleteClient(ctx, pos[0]); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %s\n", pos[0])
	return nil
}

func clientRename(ctx context.Context, args []string, out io.Writer) error {
	fs, sf := newFlagSet("client rename")
	name := fs.String("name", "", "new display name")
	pos, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*name) == "" {
		return fmt.Errorf("%w: --name is required", errUsage)
	}

	svc, closeFn, err := sf.clientService()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := svc.RenameClient(ctx, pos[0], *name); err != nil {
		return err
	}
	fmt.Fprintf(out, "renamed %s to %q\n", pos[0], strings.TrimSpace(*name))
	return nil
}

func clientOrigins(ctx context.Context, args []string, out io.Writer) error {
	fs, sf := newFlagSet("client origins")
	origins := fs.StringArray("origin", nil, "allowed embedding origin (repeatable); none clears the list")
	pos, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	svc, closeFn, err := sf.clientService()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := svc.SetAllowedOrigins(ctx, pos[0], *origins); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s origins: %s\n", pos[0], strings.Join(*origins, " "))
	return nil
}
