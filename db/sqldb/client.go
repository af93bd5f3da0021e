package sqldb

import (
	"context"
	"fmt"
	"log"
	"sort"
)

type Client interface {
	Handle // promoted: a client is a handle on its own pool
	Init() error
	Close() error
	GetConf() *Conf
	GetDSN() string
	Ping(ctx context.Context) error
	// DBType names the dialect: the key into PlaceholderPrefixForDBType and the raw statement file extension
	DBType() string
}

// ClientFactory constructs a Client from Conf.
// Driver packages register one from init(), so a blank import enables a type.
type ClientFactory func(conf *Conf) (Client, error)

var registry = map[string]ClientFactory{}

func RegisterFactory(dbType string, factory ClientFactory) {
	registry[dbType] = factory
}

// Types lists the registered database types
func Types() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func New(dbType string, conf *Conf) (Client, error) {
	factory, ok := registry[dbType]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q, registered: %v", dbType, Types())
	}
	log.Printf("[INFO][SQLDB] new client for %s", conf)
	return factory(conf)
}
