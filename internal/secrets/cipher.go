// Package secrets implements at-rest protection for redacted and hashed
// fields: reversible AES-GCM encryption under a configured symmetric key,
// PBKDF2 one-way hashing, and the sentinel discipline used on update and
// read paths.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mwops/mwops/domain/model"
)

// Cipher encrypts and decrypts redacted field values. The 256-bit AES key
// is derived from the configured key string; a Cipher is immutable and
// safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives a Cipher from the configured symmetric key. An empty
// key is a configuration error: redacted-field operations cannot run
// without one.
func NewCipher(key string) (*Cipher, error) {
	if key == "" {
		return nil, &model.EncryptionError{Op: "init", Err: errors.New("secret key is not configured")}
	}
	sum := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, &model.EncryptionError{Op: "init", Err: err}
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, &model.EncryptionError{Op: "init", Err: err}
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext into a self-contained base64 token
// (nonce || ciphertext).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", &model.EncryptionError{Op: "encrypt", Err: err}
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt. Wrong-key or corrupted input
// fails explicitly with an EncryptionError.
func (c *Cipher) Decrypt(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", &model.EncryptionError{Op: "decrypt", Err: fmt.Errorf("malformed ciphertext: %w", err)}
	}
	if len(raw) < c.aead.NonceSize() {
		return "", &model.EncryptionError{Op: "decrypt", Err: errors.New("ciphertext too short")}
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", &model.EncryptionError{Op: "decrypt", Err: err}
	}
	return string(plain), nil
}

// ReEncrypt decrypts a token under the old cipher and encrypts the
// plaintext under the new one. Used by key rotation.
func ReEncrypt(oldC, newC *Cipher, token string) (string, error) {
	plain, err := oldC.Decrypt(token)
	if err != nil {
		return "", err
	}
	return newC.Encrypt(plain)
}
