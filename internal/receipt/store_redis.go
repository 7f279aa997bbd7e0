package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"Storefront/internal/cart"
)

const (
	redisNamespace = "storefront"
	redisTimeout   = 2 * time.Second
)

type redisCmdable interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	ZRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisStore keeps each receipt as a JSON value and indexes ids in a sorted
// set scored by issue time.
type RedisStore struct {
	store redisCmdable
}

func NewRedisStore(c *redis.Client) *RedisStore {
	return &RedisStore{store: c}
}

// DialRedis parses a redis:// URL and verifies the server answers.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	c := redis.NewClient(opts)

	pctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err := c.Ping(pctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return c, nil
}

func receiptKey(id string) string { return redisNamespace + ":receipt:" + id }

func indexKey() string { return redisNamespace + ":receipts" }

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx).Err()
}

func (s *RedisStore) Save(ctx context.Context, r cart.Receipt) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode receipt %s: %w", r.ID, err)
	}

	ok, err := s.store.SetNX(ctx, receiptKey(r.ID), raw, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicateReceipt
	}

	return s.store.ZAdd(ctx, indexKey(), redis.Z{
		Score:  float64(r.IssuedAt.UnixMilli()),
		Member: r.ID,
	}).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (cart.Receipt, bool, error) {
	raw, err := s.store.Get(ctx, receiptKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Receipt{}, false, nil
	}
	if err != nil {
		return cart.Receipt{}, false, err
	}

	var r cart.Receipt
	if err := json.Unmarshal(raw, &r); err != nil {
		return cart.Receipt{}, false, fmt.Errorf("decode receipt %s: %w", id, err)
	}
	return r, true, nil
}

func (s *RedisStore) List(ctx context.Context) ([]cart.Receipt, error) {
	ids, err := s.store.ZRange(ctx, indexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]cart.Receipt, 0, len(ids))
	for _, id := range ids {
		r, ok, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}
