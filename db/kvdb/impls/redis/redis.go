package redis

import (
	"context"
	"errors"
	"log"

	"github.com/zeptools/invoicer/db/kvdb"

	lowimpl "github.com/redis/go-redis/v9"
)

const KVType = "redis"

func init() {
	kvdb.RegisterFactory(KVType, func(conf *kvdb.Conf) (kvdb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

type Client struct {
	Conf *kvdb.Conf

	// implementation details, not exported
	internal *lowimpl.Client
}

// Ensure redis.Client implements kvdb.Client interface
var _ kvdb.Client = (*Client)(nil)

func (c *Client) Init() error {
	c.internal = lowimpl.NewClient(&lowimpl.Options{
		Addr:     c.Conf.Addr(),
		Password: c.Conf.PW,
		DB:       c.Conf.DB,
	})
	log.Printf("[INFO][REDIS] client initialized for %s db %d", c.Conf.Addr(), c.Conf.DB)
	return nil
}

func (c *Client) Close() error {
	if c.internal == nil {
		return nil
	}
	return c.internal.Close()
}

func (c *Client) GetConf() *kvdb.Conf {
	return c.Conf
}

func (c *Client) Ping(ctx context.Context) error {
	if c.internal == nil {
		return errors.New("redis client not initialized")
	}
	return c.internal.Ping(ctx).Err()
}

//---- Hash Ops ----

func (c *Client) SetField(ctx context.Context, key string, field string, value any) error {
	return c.internal.HSet(ctx, key, field, value).Err()
}

func (c *Client) GetField(ctx context.Context, key string, field string) (string, bool, error) { // val, found, err
	val, err := c.internal.HGet(ctx, key, field).Result()
	if errors.Is(err, lowimpl.Nil) {
		return "", false, nil // key or field missing
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *Client) RemoveFields(ctx context.Context, key string, fields ...string) (int64, error) {
	return c.internal.HDel(ctx, key, fields...).Result()
}

// GetAllFields returns a map {field:value} from a hash data with all fields in it
// [NOTE] returns an empty map even if key is not found. not error
func (c *Client) GetAllFields(ctx context.Context, key string) (map[string]string, error) {
	return c.internal.HGetAll(ctx, key).Result()
}
