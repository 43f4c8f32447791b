package auth

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

var ErrCiphertext = errors.New("invalid ciphertext")

// TokenCipher protects upstream bearer tokens before they reach durable storage.
type TokenCipher interface {
	Seal(plaintext string) (string, error)
	Open(ciphertext string) (string, error)
}

// XChaChaCipher encrypts tokens with XChaCha20-Poly1305. The key is derived
// from the configured session secret, so rotating the secret revokes every
// stored token at once.
type XChaChaCipher struct {
	aead cipher.AEAD
}

// NewXChaChaCipher derives a 256-bit key from the secret and builds the AEAD.
func NewXChaChaCipher(secret string) (*XChaChaCipher, error) {
	key := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, err
	}
	return &XChaChaCipher{aead: aead}, nil
}

// Seal encrypts the token with a random nonce and encodes the result.
func (c *XChaChaCipher) Seal(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decodes and decrypts a previously sealed token.
func (c *XChaChaCipher) Open(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrCiphertext
	}
	if len(raw) < c.aead.NonceSize() {
		return "", ErrCiphertext
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrCiphertext
	}
	return string(plain), nil
}
