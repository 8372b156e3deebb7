package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateHexToken(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"128-bit token", TokenSize128},
		{"256-bit token", TokenSize256},
		{"custom size", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateHexToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.size*2)

			raw, err := hex.DecodeString(token)
			require.NoError(t, err)
			require.Equal(t, hex.EncodeToString(raw), token, "token should be lowercase hex")

			// Verify token is unique (generate another and compare)
			token2, err := GenerateHexToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}
}

func TestGenerateHexToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateHexToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestGenerateClientCredentials(t *testing.T) {
	creds, err := GenerateClientCredentials()
	require.NoError(t, err)
	require.Len(t, creds.ClientID, 64)
	require.Len(t, creds.ClientSecret, 64)
	require.NotEqual(t, creds.ClientID, creds.ClientSecret)
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("test-token-1")
	fp1b := FingerprintToken("test-token-1")
	fp2 := FingerprintToken("test-token-2")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2, "different tokens should have different fingerprints")
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}
