package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/estore-next/internal/cache"
	"github.com/estore-next/internal/logger"
	"github.com/estore-next/internal/models"
	"github.com/estore-next/internal/repository"
)

// CatalogService 商品、优惠券与配送方式的只读目录
type CatalogService struct {
	productRepo  repository.ProductRepository
	couponRepo   repository.CouponRepository
	shippingRepo repository.ShippingMethodRepository
	maxSuggest   int
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, couponRepo repository.CouponRepository, shippingRepo repository.ShippingMethodRepository, maxSuggest int) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		couponRepo:   couponRepo,
		shippingRepo: shippingRepo,
		maxSuggest:   maxSuggest,
	}
}

// Products 返回完整商品目录，优先读取缓存
func (s *CatalogService) Products() ([]models.Product, error) {
	ctx := context.Background()
	var cached []models.Product
	hit, cacheErr := cache.GetCatalogProducts(ctx, &cached)
	if cacheErr == nil && hit {
		return cached, nil
	}
	if cacheErr != nil {
		logger.Debugw("catalog_cache_get_failed", "kind", "products", "error", cacheErr)
	}

	products, err := s.productRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	if err := cache.SetCatalogProducts(ctx, products); err != nil {
		logger.Warnw("catalog_cache_set_failed", "kind", "products", "error", err)
	}
	return products, nil
}

// GetProduct 获取商品详情
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Search 搜索商品目录
func (s *CatalogService) Search(query string, filters SearchFilters) (SearchResult, error) {
	products, err := s.Products()
	if err != nil {
		return SearchResult{}, err
	}
	return Search(products, query, filters), nil
}

// Facets 返回完整目录的分面统计
func (s *CatalogService) Facets() (Facets, error) {
	ctx := context.Background()
	var cached Facets
	hit, cacheErr := cache.GetCatalogFacets(ctx, &cached)
	if cacheErr == nil && hit {
		return cached, nil
	}
	if cacheErr != nil {
		logger.Debugw("catalog_cache_get_failed", "kind", "facets", "error", cacheErr)
	}
	products, err := s.Products()
	if err != nil {
		return Facets{}, err
	}
	facets := ComputeFacets(products)
	if err := cache.SetCatalogFacets(ctx, facets); err != nil {
		logger.Warnw("catalog_cache_set_failed", "kind", "facets", "error", err)
	}
	return facets, nil
}

// Suggestions 搜索建议
func (s *CatalogService) Suggestions(query string) ([]SearchSuggestion, error) {
	if strings.TrimSpace(query) == "" {
		return []SearchSuggestion{}, nil
	}
	products, err := s.Products()
	if err != nil {
		return nil, err
	}
	return Suggestions(products, query, s.maxSuggest), nil
}

// Coupons 优惠券目录
func (s *CatalogService) Coupons() ([]models.Coupon, error) {
	return s.couponRepo.List()
}

// ShippingMethods 配送方式目录
func (s *CatalogService) ShippingMethods() ([]models.ShippingMethod, error) {
	return s.shippingRepo.List()
}

// ShippingMethod 按ID获取配送方式
func (s *CatalogService) ShippingMethod(id string) (*models.ShippingMethod, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrShippingMethodNotFound
	}
	method, err := s.shippingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ErrShippingMethodNotFound
	}
	return method, nil
}

// InvalidateCache 清除目录缓存（重新导入目录后调用）
func (s *CatalogService) InvalidateCache(ctx context.Context) error {
	return cache.InvalidateCatalog(ctx)
}
