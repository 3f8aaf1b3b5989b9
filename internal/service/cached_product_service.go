package service

import (
	"context"

	"instudio/internal/domain"
	"instudio/pkg/cache"
	"instudio/pkg/logger"
)

// CachedProductService serves Get through the cache and drops the cached
// entry whenever the product changes.
type CachedProductService struct {
	domain.ProductService
	cache        cache.Cache
	cacheManager cache.CacheStrategy
	logger       logger.Logger
}

func NewCachedProductService(
	productService domain.ProductService,
	cacheInstance cache.Cache,
	cacheManager cache.CacheStrategy,
	logger logger.Logger,
) *CachedProductService {
	return &CachedProductService{
		ProductService: productService,
		cache:          cacheInstance,
		cacheManager:   cacheManager,
		logger:         logger,
	}
}

func (s *CachedProductService) Get(ctx context.Context, id string) (*domain.ProductResponse, error) {
	var product *domain.ProductResponse
	err := s.cacheManager.ReadThrough(ctx, cache.ProductCacheKey(id), &product, func() (interface{}, error) {
		return s.ProductService.Get(ctx, id)
	}, cache.MediumExpiration)
	if err != nil {
		if domain.KindOf(err) != domain.KindInternal {
			return nil, err
		}
		s.logger.WarnContext(ctx, "Product cache read failed, loading directly", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		return s.ProductService.Get(ctx, id)
	}
	return product, nil
}

func (s *CachedProductService) Update(ctx context.Context, productID, userID string, req domain.UpdateProductRequest) (*domain.ProductResponse, error) {
	product, err := s.ProductService.Update(ctx, productID, userID, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, productID)
	return product, nil
}

func (s *CachedProductService) Delete(ctx context.Context, productID, userID string) error {
	if err := s.ProductService.Delete(ctx, productID, userID); err != nil {
		return err
	}
	s.invalidate(ctx, productID)
	return nil
}

func (s *CachedProductService) invalidate(ctx context.Context, productID string) {
	if err := s.cache.Delete(ctx, cache.ProductCacheKey(productID)); err != nil {
		s.logger.WarnContext(ctx, "Failed to invalidate product cache", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
	}
}
