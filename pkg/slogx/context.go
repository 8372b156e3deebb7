package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithClientID tags the contextual logger with the widget client id so every
// later line for the request carries it.
func WithClientID(ctx context.Context, clientID string) context.Context {
	l := FromContext(ctx)
	return WithContext(ctx, l.With("client_id", clientID))
}
