package sessiontoken

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"
)

// Codec issues and verifies session tokens. The zero value is ready to use
// and is safe for concurrent use; it holds no per-token state.
type Codec struct {
	// Rand is the IV source. Defaults to crypto/rand.
	Rand io.Reader
	// Now stamps issued tokens. Defaults to time.Now.
	Now func() time.Time
}

// DeriveKey returns the AES-256 key for a client secret: the first KeySize
// bytes of the secret's raw text, not its hex-decoded value. Existing
// integrations depend on this derivation. They slice characters rather than
// bytes, so the two only agree for ASCII secrets; anything else is
// ErrSecretNotASCII.
func DeriveKey(secret string) ([]byte, error) {
	if len(secret) < KeySize {
		return nil, ErrSecretTooShort
	}
	for i := range len(secret) {
		if secret[i] >= utf8.RuneSelf {
			return nil, ErrSecretNotASCII
		}
	}
	key := make([]byte, KeySize)
	copy(key, secret)
	return key, nil
}

// Issue encrypts the current Unix time in milliseconds, as a decimal string,
// under a fresh 16-byte IV.
func (c Codec) Issue(secret string) (Token, error) {
	aead, err := newAEAD(secret)
	if err != nil {
		return Token{}, err
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(c.random(), iv); err != nil {
		return Token{}, fmt.Errorf("sessiontoken: generate iv: %w", err)
	}

	plaintext := strconv.FormatInt(c.now().UnixMilli(), 10)
	sealed := aead.Seal(nil, iv, []byte(plaintext), nil)
	split := len(sealed) - TagSize

	return Token{
		Ciphertext: sealed[:split],
		Tag:        sealed[split:],
		IV:         iv,
	}, nil
}

// Verify reports whether the token decrypts and authenticates under the
// secret. The embedded timestamp is not checked: a token does not expire.
func (c Codec) Verify(t Token, secret string) bool {
	_, err := open(t, secret)
	return err == nil
}

// VerifyWire parses and verifies a wire token in one step. Every failure,
// parse or cryptographic, is reported as false.
func (c Codec) VerifyWire(wire, ivHex, secret string) bool {
	t, err := Parse(wire, ivHex)
	if err != nil {
		return false
	}
	return c.Verify(t, secret)
}

// IssuedAt decrypts the token and returns the timestamp it carries. It is a
// diagnostic helper; acceptance decisions must use Verify.
func (c Codec) IssuedAt(t Token, secret string) (time.Time, error) {
	plaintext, err := open(t, secret)
	if err != nil {
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(string(plaintext), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp payload", ErrMalformed)
	}
	return time.UnixMilli(ms), nil
}

func (c Codec) random() io.Reader {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.Reader
}

func (c Codec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func newAEAD(secret string) (cipher.AEAD, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("sessiontoken: create cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, fmt.Errorf("sessiontoken: create gcm: %w", err)
	}
	return aead, nil
}

// open never panics: lengths are checked before the AEAD sees the input.
func open(t Token, secret string) ([]byte, error) {
	if len(t.IV) != IVSize || len(t.Tag) != TagSize || len(t.Ciphertext) == 0 {
		return nil, ErrMalformed
	}
	aead, err := newAEAD(secret)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(t.Ciphertext)+len(t.Tag))
	sealed = append(sealed, t.Ciphertext...)
	sealed = append(sealed, t.Tag...)

	plaintext, err := aead.Open(nil, t.IV, sealed, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}
