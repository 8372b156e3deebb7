package notify_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aussiebroadwan/checkout/internal/widget/notify"
	"github.com/stretchr/testify/require"
)

func TestPageRendersPostMessage(t *testing.T) {
	t.Parallel()

	page := notify.NewPage()
	err := page.Publish(context.Background(), notify.Event{Status: "accepted", Message: "ok"}, "http://localhost:5173")
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())

	js, err := page.Script()
	require.NoError(t, err)
	require.Equal(t,
		`window.parent.postMessage({"message":"ok","status":"accepted"}, "http://localhost:5173");`+"\n",
		string(js),
	)
}

func TestPageRefusesMissingTarget(t *testing.T) {
	t.Parallel()

	page := notify.NewPage()
	err := page.Publish(context.Background(), notify.Event{Status: "origin_not_allowed"}, "")
	require.ErrorIs(t, err, notify.ErrNoTarget)
	require.Zero(t, page.Len())

	js, err := page.Script()
	require.NoError(t, err)
	require.Empty(t, js)
}

func TestPageEscapesScriptBreakout(t *testing.T) {
	t.Parallel()

	page := notify.NewPage()
	require.NoError(t, page.Publish(context.Background(),
		notify.Event{Status: "x", Message: "</script><script>alert(1)</script>"},
		"https://shop.example.com",
	))

	js, err := page.Script()
	require.NoError(t, err)
	require.NotContains(t, string(js), "</script>")
	require.NotContains(t, string(js), "<")
}

func TestAuditLogsEvent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	audit := notify.Audit{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	require.NoError(t, audit.Publish(context.Background(), notify.Event{Status: "invalid_token", Message: "bad"}, ""))
	out := buf.String()
	require.Contains(t, out, "status=invalid_token")
	require.Contains(t, out, `target_origin=""`)
}

func TestMultiFansOutAndJoinsErrors(t *testing.T) {
	t.Parallel()

	var calls []string
	ok := notify.Func(func(_ context.Context, ev notify.Event, _ string) error {
		calls = append(calls, "ok:"+ev.Status)
		return nil
	})
	boom := errors.New("boom")
	failing := notify.Func(func(_ context.Context, ev notify.Event, _ string) error {
		calls = append(calls, "fail:"+ev.Status)
		return boom
	})

	n := notify.Multi(ok, nil, failing, ok)
	err := n.Publish(context.Background(), notify.Event{Status: "accepted"}, "https://a.example")

	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"ok:accepted", "fail:accepted", "ok:accepted"}, calls)
	require.True(t, strings.HasPrefix(calls[0], "ok"))
}
