// ABOUTME: Password-based authenticated encryption for note content.
// ABOUTME: PBKDF2-SHA256 key derivation with AES-256-GCM sealing.

package crypto

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

const (
	saltLen    = 16
	nonceLen   = 12
	keyLen     = 32 // AES-256
	iterations = 100_000
)

// ErrInvalidPassword is returned for every decryption failure: wrong
// password, tampered ciphertext, or an envelope that does not parse. The
// cases are deliberately indistinguishable.
var ErrInvalidPassword = errors.New("invalid password or corrupted data")

// deriveKey stretches a password into an AES-256 key. PBKDF2 with a high
// iteration count keeps brute-force guessing expensive.
func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)
}

// Encrypt seals plaintext under a key derived from password. Every call
// draws a fresh salt and nonce, so identical inputs produce different
// envelopes. The envelope layout is salt || nonce || ciphertext+tag,
// base64-encoded; salt and nonce are not secret and travel with it.
func Encrypt(plaintext, password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create GCM: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	envelope := make([]byte, 0, saltLen+nonceLen+len(sealed))
	envelope = append(envelope, salt...)
	envelope = append(envelope, nonce...)
	envelope = append(envelope, sealed...)

	return base64.StdEncoding.EncodeToString(envelope), nil
}

// Decrypt opens an envelope produced by Encrypt. It re-derives the key from
// the password and the envelope's salt and verifies the authentication tag;
// any failure yields ErrInvalidPassword and never partial plaintext.
func Decrypt(envelope, password string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", ErrInvalidPassword
	}
	if len(raw) < saltLen+nonceLen {
		return "", ErrInvalidPassword
	}

	salt := raw[:saltLen]
	nonce := raw[saltLen : saltLen+nonceLen]
	sealed := raw[saltLen+nonceLen:]

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return "", ErrInvalidPassword
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", ErrInvalidPassword
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrInvalidPassword
	}
	return string(plaintext), nil
}
