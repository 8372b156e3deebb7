package domain

import (
	"slices"
	"time"
)

// ClientRecord is a registered widget client: the shared secret its back end
// uses to mint session tokens and the page origins allowed to embed the
// widget. Records are read-only once loaded into a registry.
type ClientRecord struct {
	ClientID       string   `json:"client_id" yaml:"client_id" validate:"required,printascii,max=128"`
	ClientSecret   string   `json:"client_secret" yaml:"client_secret" validate:"required,min=32,printascii"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" validate:"dive,origin"`
}

// AllowsOrigin reports whether origin is byte-for-byte one of the allowed
// origins. An empty origin is never allowed.
func (c ClientRecord) AllowsOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	return slices.Contains(c.AllowedOrigins, origin)
}

// Clone returns a copy that shares no slices with c.
func (c ClientRecord) Clone() ClientRecord {
	c.AllowedOrigins = slices.Clone(c.AllowedOrigins)
	return c
}

// Client is the stored form of a ClientRecord, with bookkeeping fields.
type Client struct {
	ClientRecord

	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
