package store

import (
	"context"

	"github.com/zeptools/invoicer/db/kvdb"
)

const DefaultKVHashKey = "invoicer:saved"

// KV keeps every record as one field of a single hash
type KV struct {
	Client  kvdb.Client
	HashKey string
}

var _ Backend = (*KV)(nil)

func NewKV(client kvdb.Client, hashKey string) *KV {
	if hashKey == "" {
		hashKey = DefaultKVHashKey
	}
	return &KV{Client: client, HashKey: hashKey}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	v, found, err := k.Client.GetField(ctx, k.HashKey, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (k *KV) Put(ctx context.Context, key string, value []byte) error {
	return k.Client.SetField(ctx, k.HashKey, key, string(value))
}

func (k *KV) Delete(ctx context.Context, key string) error {
	n, err := k.Client.RemoveFields(ctx, k.HashKey, key)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (k *KV) All(ctx context.Context) (map[string][]byte, error) {
	fields, err := k.Client.GetAllFields(ctx, k.HashKey)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(fields))
	for f, v := range fields {
		out[f] = []byte(v)
	}
	return out, nil
}
