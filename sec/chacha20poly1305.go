package sec

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Read https://pkg.go.dev/golang.org/x/crypto/chacha20poly1305

var ErrCiphertextTooShort = errors.New("sec: ciphertext too short")

type XChaCha20Poly1305Cipher struct {
	aead       cipher.AEAD
	encodeFunc func([]byte) string          // e.g. base64.RawURLEncoding.EncodeToString, hex.EncodeToString
	decodeFunc func(string) ([]byte, error) // e.g. base64.RawURLEncoding.DecodeString, hex.DecodeString
}

func NewXChaCha20Poly1305Cipher(
	key []byte,
	encodeFunc func([]byte) string,
	decodeFunc func(string) ([]byte, error),
) (*XChaCha20Poly1305Cipher, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &XChaCha20Poly1305Cipher{
		aead:       aead,
		encodeFunc: encodeFunc,
		decodeFunc: decodeFunc,
	}, nil
}

func NewXChaCha20Poly1305CipherBase64(key []byte) (*XChaCha20Poly1305Cipher, error) {
	return NewXChaCha20Poly1305Cipher(
		key,
		base64.RawURLEncoding.EncodeToString,
		base64.RawURLEncoding.DecodeString,
	)
}

// NewXChaCha20Poly1305CipherFromKeyString takes the key as configured: base64 (std or raw url) of 32 bytes
func NewXChaCha20Poly1305CipherFromKeyString(encodedKey string) (*XChaCha20Poly1305Cipher, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		if key, err = base64.RawURLEncoding.DecodeString(encodedKey); err != nil {
			return nil, fmt.Errorf("key is not base64: %w", err)
		}
	}
	return NewXChaCha20Poly1305CipherBase64(key)
}

// Seal returns nonce||ciphertext. additionalData binds the ciphertext to a context, e.g. a record key
func (c *XChaCha20Poly1305Cipher) Seal(plaintext, additionalData []byte) ([]byte, error) {
	// Generate a random nonce every time, and leave capacity for the ciphertext
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return c.aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

func (c *XChaCha20Poly1305Cipher) Open(sealed, additionalData []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize+c.aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}
	// Split nonce and ciphertext
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	// Decrypt the message and check it wasn't tampered with
	return c.aead.Open(nil, nonce, ciphertext, additionalData)
}

func (c *XChaCha20Poly1305Cipher) EncryptEncode(plaintext []byte) (string, error) {
	sealed, err := c.Seal(plaintext, nil)
	if err != nil {
		return "", err
	}
	return c.encodeFunc(sealed), nil
}

func (c *XChaCha20Poly1305Cipher) DecodeDecrypt(encodedCiphertext string) ([]byte, error) {
	// Decode
	data, err := c.decodeFunc(encodedCiphertext)
	if err != nil {
		return nil, err
	}
	return c.Open(data, nil)
}
