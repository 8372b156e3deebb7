// Package sessiontoken implements the checkout session token: an AES-256-GCM
// encryption of the issuance timestamp under a key taken from the client
// secret.
//
// Wire format: the session token is "<hex ciphertext>.<hex auth tag>" and the
// 16-byte IV travels separately as hex. All hex is lowercase.
package sessiontoken

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// KeySize is the AES-256 key length taken from the client secret.
	KeySize = 32
	// IVSize is the GCM nonce length used by issued tokens.
	IVSize = 16
	// TagSize is the GCM authentication tag length.
	TagSize = 16
	// Separator joins ciphertext and tag on the wire.
	Separator = "."
)

var (
	// ErrMalformed reports a token or IV that does not follow the wire format.
	ErrMalformed = errors.New("sessiontoken: malformed token")
	// ErrSecretTooShort reports a client secret with fewer than KeySize bytes.
	ErrSecretTooShort = errors.New("sessiontoken: client secret too short")
	// ErrSecretNotASCII reports a client secret with non-ASCII bytes.
	ErrSecretNotASCII = errors.New("sessiontoken: client secret must be ascii")
	// ErrAuthentication reports a tag mismatch: wrong key, wrong IV or tampering.
	ErrAuthentication = errors.New("sessiontoken: authentication failed")
)

// Token is an issued session token. It is never mutated after issuance.
type Token struct {
	Ciphertext []byte
	Tag        []byte
	IV         []byte
}

// Wire returns the session token value: hex(ciphertext) + "." + hex(tag).
func (t Token) Wire() string {
	return hex.EncodeToString(t.Ciphertext) + Separator + hex.EncodeToString(t.Tag)
}

// IVHex returns the IV as lowercase hex, carried next to the wire token.
func (t Token) IVHex() string {
	return hex.EncodeToString(t.IV)
}

// Parse decodes a wire token and its IV. Anything other than exactly one
// separator, non-empty lowercase even-length hex, a 16-byte tag and a
// 16-byte IV is rejected with ErrMalformed.
func Parse(wire, ivHex string) (Token, error) {
	ctHex, tagHex, ok := strings.Cut(wire, Separator)
	if !ok {
		return Token{}, fmt.Errorf("%w: missing separator", ErrMalformed)
	}
	if strings.Contains(tagHex, Separator) {
		return Token{}, fmt.Errorf("%w: too many separators", ErrMalformed)
	}

	ct, err := decodeHex(ctHex)
	if err != nil {
		return Token{}, fmt.Errorf("%w: ciphertext: %v", ErrMalformed, err)
	}
	if len(ct) == 0 {
		return Token{}, fmt.Errorf("%w: empty ciphertext", ErrMalformed)
	}

	tag, err := decodeHex(tagHex)
	if err != nil {
		return Token{}, fmt.Errorf("%w: tag: %v", ErrMalformed, err)
	}
	if len(tag) != TagSize {
		return Token{}, fmt.Errorf("%w: tag must be %d bytes, got %d", ErrMalformed, TagSize, len(tag))
	}

	iv, err := decodeHex(ivHex)
	if err != nil {
		return Token{}, fmt.Errorf("%w: iv: %v", ErrMalformed, err)
	}
	if len(iv) != IVSize {
		return Token{}, fmt.Errorf("%w: iv must be %d bytes, got %d", ErrMalformed, IVSize, len(iv))
	}

	return Token{Ciphertext: ct, Tag: tag, IV: iv}, nil
}

// decodeHex accepts lowercase hex only; hex.DecodeString alone would also
// take upper case.
func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.New("odd length hex")
	}
	for i := range len(s) {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return nil, fmt.Errorf("invalid hex character at offset %d", i)
		}
	}
	return hex.DecodeString(s)
}
