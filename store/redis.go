package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps artifacts as plain redis string keys.
type RedisStore struct {
	client *redis.Client
}

var _ Store = &RedisStore{}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

func (r *RedisStore) Save(ctx context.Context, name string, data []byte) error {
	return r.client.Set(ctx, name, data, 0).Err()
}

func (r *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, name).Result()
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}
