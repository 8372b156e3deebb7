package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy.
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (64 hex chars). Client ids and
	// client secrets use this size.
	TokenSize256 = 32
)

// GenerateHexToken creates a cryptographically secure random token of the
// specified byte length, returned as lowercase hex.
func GenerateHexToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// ClientCredentials is a freshly generated client id and secret pair.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
}

// GenerateClientCredentials returns a 256-bit id and a 256-bit secret, both
// hex encoded. The secret's first 32 characters become the session token key,
// so it must never be shortened.
func GenerateClientCredentials() (ClientCredentials, error) {
	id, err := GenerateHexToken(TokenSize256)
	if err != nil {
		return ClientCredentials{}, err
	}
	secret, err := GenerateHexToken(TokenSize256)
	if err != nil {
		return ClientCredentials{}, err
	}
	return ClientCredentials{ClientID: id, ClientSecret: secret}, nil
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token,
// base64url encoded (43 chars). Used to refer to secrets in logs without
// revealing them.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
