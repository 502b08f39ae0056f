package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 2 * time.Second

// RedisStorage 基于 Redis 字符串的存储，key 不设过期
type RedisStorage struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisStorage 创建 Redis 存储，timeout<=0 时使用默认值
func NewRedisStorage(client *redis.Client, timeout time.Duration) *RedisStorage {
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}
	return &RedisStorage{client: client, timeout: timeout}
}

// GetItem 读取 key
func (s *RedisStorage) GetItem(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// SetItem 覆盖写入 key
func (s *RedisStorage) SetItem(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Set(ctx, key, value, 0).Err()
}

// RemoveItem 删除 key
func (s *RedisStorage) RemoveItem(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Del(ctx, key).Err()
}
