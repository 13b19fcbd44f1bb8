package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore - Redis 기반 KV 저장소
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore - Redis 저장소 생성
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Load - Redis GET
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save - Redis SET (만료 없음 - 명시적으로 지울 때까지 유지)
func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

// Delete - Redis DEL
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
