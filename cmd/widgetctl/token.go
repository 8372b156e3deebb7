package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aussiebroadwan/checkout/pkg/sessiontoken"
	"github.com/aussiebroadwan/checkout/pkg/widgetsdk"
)

// errInvalidToken makes "token verify" exit non-zero for a bad token.
var errInvalidToken = errors.New("token is not valid for this client")

func clientSecret(ctx context.Context, sf *storeFlags, clientID string) (string, error) {
	svc, closeFn, err := sf.clientService()
	if err != nil {
		return "", err
	}
	defer closeFn()

	c, err := svc.GetClient(ctx, clientID)
	if err != nil {
		return "", err
	}
	return c.ClientSecret, nil
}

func tokenIssue(ctx context.Context, args []string, out io.Writer) error {
	fs, sf := newFlagSet("token issue")
	publicURL := fs.String("public-url", envOr("WIDGET_PUBLIC_URL", "http://localhost:8080"), "base URL of the widget service")
	pos, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	secret, err := clientSecret(ctx, sf, pos[0])
	if err != nil {
		return err
	}

	tok, err := sessiontoken.Codec{}.Issue(secret)
	if err != nil {
		return err
	}
	widgetURL, err := widgetsdk.WidgetURL(*publicURL, pos[0], tok.Wire(), tok.IVHex())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "session_token: %s\n", tok.Wire())
	fmt.Fprintf(out, "iv:            %s\n", tok.IVHex())
	fmt.Fprintf(out, "widget_url:    %s\n", widgetURL)
	return nil
}

func tokenVerify(ctx context.Context, args []string, out io.Writer) error {
	fs, sf := newFlagSet("token verify")
	wire := fs.String("token", "", "session token (hex ciphertext . hex tag)")
	iv := fs.String("iv", "", "hex IV issued with the token")
	pos, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	secret, err := clientSecret(ctx, sf, pos[0])
	if err != nil {
		return err
	}

	if !(sessiontoken.Codec{}).VerifyWire(*wire, *iv, secret) {
		fmt.Fprintln(out, "invalid")
		return errInvalidToken
	}
	fmt.Fprintln(out, "valid")
	return nil
}

func tokenInspect(ctx context.Context, args []string, out io.Writer) error {
	fs, sf := newFlagSet("token inspect")
	wire := fs.String("token", "", "session token (hex ciphertext . hex tag)")
	iv := fs.String("iv", "", "hex IV issued with the token")
	pos, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	tok, err := sessiontoken.Parse(*wire, *iv)
	if err != nil {
		return err
	}
	secret, err := clientSecret(ctx, sf, pos[0])
	if err != nil {
		return err
	}

	issued, err := sessiontoken.Codec{}.IssuedAt(tok, secret)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "issued_at: %s\n", issued.UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(out, "age:       %s\n", time.Since(issued).Round(time.Second))
	return nil
}
