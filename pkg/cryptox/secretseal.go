package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// MasterKeyEnv is consulted when no master key path is configured.
const MasterKeyEnv = "WIDGET_MASTER_KEY"

const sealInfo = "checkout-widget client-secret seal v1"

var (
	masterKeyOnce sync.Once
	masterKey     []byte
	masterKeyErr  error
	masterKeyPath string = "" // Can be set via SetMasterKeyPath before first use
)

// ErrSealedTooShort reports sealed data shorter than a nonce.
var ErrSealedTooShort = errors.New("cryptox: sealed data too short")

// SetMasterKeyPath configures where to load the master key from.
// This must be called before any seal/open operations.
func SetMasterKeyPath(path string) {
	masterKeyPath = path
}

// loadMasterKey derives a 32-byte AES-256 key with HKDF-SHA256 from either:
// 1. File specified by masterKeyPath (if set)
// 2. WIDGET_MASTER_KEY environment variable
// 3. A random key for development (sealed secrets do not survive restart)
func loadMasterKey() ([]byte, error) {
	var keyMaterial []byte

	switch {
	case masterKeyPath != "":
		data, err := os.ReadFile(masterKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read master key file: %w", err)
		}
		keyMaterial = data
	case os.Getenv(MasterKeyEnv) != "":
		keyMaterial = []byte(os.Getenv(MasterKeyEnv))
	default:
		keyMaterial = make([]byte, 32)
		if _, err := rand.Read(keyMaterial); err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral master key: %w", err)
		}
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, keyMaterial, nil, []byte(sealInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive master key: %w", err)
	}
	return key, nil
}

func getMasterKey() ([]byte, error) {
	masterKeyOnce.Do(func() {
		masterKey, masterKeyErr = loadMasterKey()
	})
	return masterKey, masterKeyErr
}

func masterAEAD() (cipher.AEAD, error) {
	key, err := getMasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// SealSecret encrypts a client secret for storage using AES-256-GCM under
// the master key. The client id is bound as associated data so a sealed
// secret cannot be moved to another client row.
// Output format: [12-byte nonce][ciphertext][16-byte tag]
func SealSecret(clientID, secret string) ([]byte, error) {
	gcm, err := masterAEAD()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, []byte(secret), []byte(clientID)), nil
}

// OpenSecret reverses SealSecret.
func OpenSecret(clientID string, sealed []byte) (string, error) {
	gcm, err := masterAEAD()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize {
		return "", ErrSealedTooShort
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, []byte(clientID))
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}
	return string(plaintext), nil
}

// ResetMasterKeyForTesting resets the master key singleton for testing purposes.
// This should ONLY be used in tests.
func ResetMasterKeyForTesting() {
	masterKeyOnce = sync.Once{}
	masterKey = nil
	masterKeyErr = nil
}
