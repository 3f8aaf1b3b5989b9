package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"instudio/pkg/logger"
	"instudio/pkg/metrics"
)

const (
	ProductPrefix     = "product"
	ProductByIDKey    = "product:id:%s"
	TokenBlacklistKey = "token:blacklist:%s"
	ShortExpiration   = 5 * time.Minute
	MediumExpiration  = 30 * time.Minute
	LongExpiration    = 2 * time.Hour
)

type CacheStrategy interface {
	// ReadThrough serves dest from the cache, falling back to fetchFunc
	// and storing its result on a miss.
	ReadThrough(ctx context.Context, key string, dest interface{}, fetchFunc func() (interface{}, error), expiration time.Duration) error
}

type CacheManager struct {
	cache  Cache
	logger logger.Logger
}

func NewCacheManager(cache Cache, logger logger.Logger) CacheStrategy {
	return &CacheManager{
		cache:  cache,
		logger: logger,
	}
}

func (cm *CacheManager) ReadThrough(ctx context.Context, key string, dest interface{}, fetchFunc func() (interface{}, error), expiration time.Duration) error {
	err := cm.cache.Get(ctx, key, dest)
	if err == nil {
		metrics.RecordCacheHit()
		return nil
	}
	metrics.RecordCacheMiss()

	if !errors.Is(err, ErrCacheMiss) {
		// Cache trouble is not a request failure; go to the source.
		cm.logger.Warn("Cache read failed, using source", map[string]interface{}{"key": key, "error": err.Error()})
	}

	data, err := fetchFunc()
	if err != nil {
		return err
	}

	if err := cm.cache.Set(ctx, key, data, expiration); err != nil {
		cm.logger.Warn("Cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	return copyData(data, dest)
}

func ProductCacheKey(productID string) string {
	return fmt.Sprintf(ProductByIDKey, productID)
}

func TokenBlacklistCacheKey(tokenID string) string {
	return fmt.Sprintf(TokenBlacklistKey, tokenID)
}

func copyData(src, dest interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
