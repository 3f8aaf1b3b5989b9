package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"instudio/pkg/circuitbreaker"
	"instudio/pkg/logger"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON-encoded values under string keys.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	InvalidatePrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
}

type RedisCache struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  logger.Logger
	prefix  string
}

func NewRedisCache(client *redis.Client, log logger.Logger, prefix string) Cache {
	breaker := circuitbreaker.New(circuitbreaker.Settings{
		Name:        "redis",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("Circuit breaker state changed", map[string]interface{}{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	})

	return &RedisCache{
		client:  client,
		breaker: breaker,
		logger:  log,
		prefix:  prefix,
	}
}

func (r *RedisCache) makeKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Cache value could not be marshalled", map[string]interface{}{"key": key, "error": err.Error()})
		return err
	}

	fullKey := r.makeKey(key)
	err = r.breaker.Execute(func() error {
		return r.client.Set(ctx, fullKey, data, expiration).Err()
	})
	if err != nil {
		r.logger.Error("Cache set failed", map[string]interface{}{"key": fullKey, "error": err.Error()})
		return err
	}

	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	fullKey := r.makeKey(key)

	var data string
	err := r.breaker.Execute(func() error {
		var err error
		data, err = r.client.Get(ctx, fullKey).Result()
		return err
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		r.logger.Error("Cache get failed", map[string]interface{}{"key": fullKey, "error": err.Error()})
		return err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		r.logger.Error("Cache value could not be unmarshalled", map[string]interface{}{"key": fullKey, "error": err.Error()})
		return err
	}

	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	fullKey := r.makeKey(key)
	err := r.breaker.Execute(func() error {
		return r.client.Del(ctx, fullKey).Err()
	})
	if err != nil {
		r.logger.Error("Cache delete failed", map[string]interface{}{"key": fullKey, "error": err.Error()})
		return err
	}

	return nil
}

func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	fullKey := r.makeKey(key)

	var count int64
	err := r.breaker.Execute(func() error {
		var err error
		count, err = r.client.Exists(ctx, fullKey).Result()
		return err
	})
	if err != nil {
		r.logger.Error("Cache exists failed", map[string]interface{}{"key": fullKey, "error": err.Error()})
		return false, err
	}

	return count > 0, nil
}

// InvalidatePrefix walks matching keys with SCAN rather than KEYS.
func (r *RedisCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	pattern := r.makeKey(prefix) + "*"

	return r.breaker.Execute(func() error {
		iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
		keys := make([]string, 0)
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			r.logger.Error("Cache scan failed", map[string]interface{}{"pattern": pattern, "error": err.Error()})
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return r.client.Del(ctx, keys...).Err()
	})
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
