package repositoryImp

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"

	"kaard/pkg/session/repository"
)

const redisPrefix = "kaard:"

type redisStore struct{ rdb *redis.Client }

func NewRedis(rdb *redis.Client) repository.Store { return &redisStore{rdb: rdb} }

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, redisPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores without expiry; the flag lives until logout.
func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, redisPrefix+key, value, 0).Err()
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = redisPrefix + k
	}
	return s.rdb.Del(ctx, full...).Err()
}
