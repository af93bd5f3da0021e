package store

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/zeptools/invoicer/sec"
)

// Sealed encrypts values at rest with XChaCha20-Poly1305.
// The key is bound as additional data, so a value moved to another key fails to open.
type Sealed struct {
	Backend
	cipher *sec.XChaCha20Poly1305Cipher
}

func NewSealed(inner Backend, cipher *sec.XChaCha20Poly1305Cipher) *Sealed {
	return &Sealed{Backend: inner, cipher: cipher}
}

func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.Backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.open(key, v)
}

func (s *Sealed) Put(ctx context.Context, key string, value []byte) error {
	sealed, err := s.cipher.Seal(value, []byte(key))
	if err != nil {
		return err
	}
	return s.Backend.Put(ctx, key, []byte(base64.RawURLEncoding.EncodeToString(sealed)))
}

func (s *Sealed) All(ctx context.Context) (map[string][]byte, error) {
	all, err := s.Backend.All(ctx)
	if err != nil {
		return nil, err
	}
	for k, v := range all {
		if all[k], err = s.open(k, v); err != nil {
			return nil, err
		}
	}
	return all, nil
}

func (s *Sealed) open(key string, v []byte) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(string(v))
	if err != nil {
		return nil, fmt.Errorf("store: sealed value for %s: %w", key, err)
	}
	plain, err := s.cipher.Open(raw, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("store: open sealed value for %s: %w", key, err)
	}
	return plain, nil
}
