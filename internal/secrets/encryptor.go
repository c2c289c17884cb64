// Package secrets provides AES-256-GCM encryption for the shared API
// secret so it can be stored at rest in env files or deployment config
// instead of plaintext.
//
// Each encryption uses a fresh random nonce, so encrypting the same
// secret twice produces different ciphertexts. The encryptor is safe for
// concurrent use.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// Static salt keeps key derivation deterministic across restarts.
var keySalt = []byte("coinpay-go-secret-salt")

// Encryptor encrypts and decrypts short secret strings with AES-256-GCM.
type Encryptor struct {
	key []byte
}

// NewEncryptor derives a 32-byte AES key from the passphrase with PBKDF2
// and returns an encryptor. The passphrase must not be empty.
func NewEncryptor(passphrase string) (*Encryptor, error) {
	if passphrase == "" {
		return nil, errors.New("secrets: encryption passphrase cannot be empty")
	}

	key := pbkdf2.Key([]byte(passphrase), keySalt, 10000, 32, sha256.New)
	return &Encryptor{key: key}, nil
}

// Encrypt seals plaintext and returns base64(nonce || ciphertext). An
// empty plaintext returns an empty string.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", fmt.Errorf("secrets: failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("secrets: failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("secrets: failed to create nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Tampered or truncated ciphertexts fail the
// GCM authentication check and return an error.
func (e *Encryptor) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("secrets: failed to decode ciphertext: %w", err)
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", fmt.Errorf("secrets: failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("secrets: failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("secrets: ciphertext too short")
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("secrets: failed to decrypt: %w", err)
	}

	return string(plaintext), nil
}
