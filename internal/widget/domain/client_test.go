package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
	"github.com/stretchr/testify/require"
)

func TestAllowsOriginIsExact(t *testing.T) {
	t.Parallel()

	rec := domain.ClientRecord{
		ClientID:       "client",
		AllowedOrigins: []string{"http://localhost:5173", "https://shop.example.com"},
	}

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:5173", true},
		{"https://shop.example.com", true},
		{"", false},
		{"http://localhost:5174", false},
		{"http://localhost:5173/", false},
		{"HTTPS://shop.example.com", false},
		{"https://Shop.example.com", false},
		{"https://sub.shop.example.com", false},
		{"http://shop.example.com", false},
		{"https://shop.example.com:443", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, rec.AllowsOrigin(tt.origin), tt.origin)
	}
}

func TestCloneDoesNotShareOrigins(t *testing.T) {
	t.Parallel()

	rec := domain.ClientRecord{AllowedOrigins: []string{"https://a.example"}}
	cp := rec.Clone()
	cp.AllowedOrigins[0] = "https://b.example"

	require.Equal(t, "https://a.example", rec.AllowedOrigins[0])
}
