package kvstore

import (
	"context"
	"time"

	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "storefront:"

type redisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStoreWithClient stores entries as plain redis strings under keyPrefix.
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) repository.KVStore {
	if keyPrefix == "" {
		keyPrefix = defaultRedisKeyPrefix
	}

	return &redisStore{client: client, keyPrefix: keyPrefix}
}

// NewRedisStore connects to addr and verifies the connection.
func NewRedisStore(ctx context.Context, opts *redis.Options, keyPrefix string) (repository.KVStore, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrap(err, "failed to connect to redis")
	}

	return NewRedisStoreWithClient(client, keyPrefix), nil
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", key)
	}

	return value, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to write %s", key)
	}

	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return errors.Wrapf(err, "failed to delete %s", key)
	}

	return nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
