package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"sync"

	canonicaljson "github.com/gibson042/canonicaljson-go"
)

type posted struct {
	ev     Event
	target string
}

// Page collects the events for one response and renders them as
// window.parent.postMessage calls for a nonce'd inline script. A Page must
// not be shared between requests.
type Page struct {
	mu     sync.Mutex
	events []posted
}

// NewPage returns an empty collector.
func NewPage() *Page {
	return &Page{}
}

// Publish queues ev for targetOrigin. Events without a target are refused:
// posting with "*" would leak the outcome to any embedder.
func (p *Page) Publish(_ context.Context, ev Event, targetOrigin string) error {
	if targetOrigin == "" {
		return ErrNoTarget
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, posted{ev: ev, target: targetOrigin})
	return nil
}

// Len returns the number of queued events.
func (p *Page) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// Script renders the queued events as JavaScript statements. The payload is
// canonical JSON so identical events always render identical bytes.
func (p *Page) Script() (template.JS, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	for _, e := range p.events {
		payload, err := canonicaljson.Marshal(e.ev)
		if err != nil {
			return "", fmt.Errorf("notify: encode event: %w", err)
		}
		target, err := json.Marshal(e.target)
		if err != nil {
			return "", fmt.Errorf("notify: encode target: %w", err)
		}
		fmt.Fprintf(&b, "window.parent.postMessage(%s, %s);\n", jsSafe(payload), jsSafe(target))
	}
	return template.JS(b.String()), nil
}

// jsSafe escapes the characters that could end a <script> element or break
// out of a JavaScript string when JSON is inlined into HTML.
func jsSafe(b []byte) string {
	r := strings.NewReplacer(
		"<", `\u003c`,
		">", `\u003e`,
		"&", `\u0026`,
		"\u2028", `\u2028`,
		"\u2029", `\u2029`,
	)
	return r.Replace(string(b))
}
