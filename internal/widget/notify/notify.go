// Package notify carries gate outcomes to whoever embeds the widget. The
// browser-facing form is a window.postMessage to the parent page; other
// notifiers (audit logging) receive the same events.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/checkout/pkg/slogx"
)

// ErrNoTarget is returned when an event has no origin it may be posted to.
var ErrNoTarget = errors.New("notify: no target origin")

// Event is the payload posted to the embedding page.
type Event struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Notifier publishes events. targetOrigin is the only origin allowed to
// receive the event; it is empty when the embedding origin failed the check.
type Notifier interface {
	Publish(ctx context.Context, ev Event, targetOrigin string) error
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, ev Event, targetOrigin string) error

func (f Func) Publish(ctx context.Context, ev Event, targetOrigin string) error {
	return f(ctx, ev, targetOrigin)
}

// Audit logs every event, including ones without a target. A nil Logger
// means the request logger from the context.
type Audit struct {
	Logger *slog.Logger
}

func (a Audit) Publish(ctx context.Context, ev Event, targetOrigin string) error {
	logger := a.Logger
	if logger == nil {
		logger = slogx.FromContext(ctx)
	}
	logger.InfoContext(ctx, "widget event",
		"status", ev.Status,
		"message", ev.Message,
		"target_origin", targetOrigin,
	)
	return nil
}

type multi []Notifier

// Multi fans an event out to every non-nil notifier and joins their errors.
func Multi(notifiers ...Notifier) Notifier {
	out := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m multi) Publish(ctx context.Context, ev Event, targetOrigin string) error {
	var errs []error
	for _, n := range m {
		if err := n.Publish(ctx, ev, targetOrigin); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
