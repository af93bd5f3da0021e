package kvdb

import (
	"context"
	"errors"
)

type Client interface {
	Init() error
	Close() error
	GetConf() *Conf
	Ping(ctx context.Context) error

	//---- Hash Ops ----

	SetField(ctx context.Context, key string, field string, value any) error
	GetField(ctx context.Context, key string, field string) (string, bool, error) // val, found, err
	// RemoveFields removes the specified fields in a hash key. Returns the number of fields actually removed.
	RemoveFields(ctx context.Context, key string, fields ...string) (int64, error)
	GetAllFields(ctx context.Context, key string) (map[string]string, error)
}

// ClientFactory constructs a Client from Conf; impls register one per Conf.Type
type ClientFactory func(conf *Conf) (Client, error)

var registry = map[string]ClientFactory{}

func RegisterFactory(kvType string, factory ClientFactory) {
	registry[kvType] = factory
}

func New(conf *Conf) (Client, error) {
	factory, ok := registry[conf.Type]
	if !ok {
		return nil, errors.New("kvdb: unsupported type: " + conf.Type)
	}
	return factory(conf)
}
