package valkey

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by GetJSON when the key is not cached.
var ErrMiss = errors.New("cache miss")

// Cache is a small TTL cache on Valkey (:6379).
//
// Valkey speaks the redis protocol, so the redis client is used as is.
type Cache interface {
	// GetJSON reads the cached value into v. Returns ErrMiss when absent.
	GetJSON(ctx context.Context, key string, v any) error

	// SetJSON caches v as JSON under key for ttl.
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error

	// Invalidate drops keys.
	Invalidate(ctx context.Context, keys ...string) error

	// Healthz pings the server.
	Healthz(ctx context.Context) error

	Close() error
}

type cache struct {
	rdb *redis.Client
}

// New connects to Valkey at addr ("valkey:6379").
func New(addr string) Cache {
	return &cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *cache) GetJSON(ctx context.Context, key string, v any) error {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	return json.Unmarshal(b, v)
}

func (c *cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

func (c *cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *cache) Healthz(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *cache) Close() error {
	return c.rdb.Close()
}

// Key builds a deterministic cache key from a namespace and a payload.
//
// The payload is serialized to JSON and hashed, so structurally equal
// queries share one key regardless of who built them.
func Key(namespace string, payload any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return fmt.Sprintf("axon:%s:%s", namespace, hex.EncodeToString(sum[:])), nil
}
