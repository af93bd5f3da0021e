package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("store: saved invoice not found")
	ErrNoNumber = errors.New("store: invoice number is required to save")
)

// Backend keeps opaque values by key. Get returns ErrNotFound for a missing key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) (map[string][]byte, error)
}
