package cache

import (
	"context"
	"time"
)

const (
	catalogProductsKey = "catalog:products"
	catalogFacetsKey   = "catalog:facets"
	catalogCacheTTL    = 5 * time.Minute
)

// GetCatalogProducts 读取商品目录缓存
func GetCatalogProducts(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, catalogProductsKey, dest)
}

// SetCatalogProducts 写入商品目录缓存
func SetCatalogProducts(ctx context.Context, products interface{}) error {
	return SetJSON(ctx, catalogProductsKey, products, catalogCacheTTL)
}

// GetCatalogFacets 读取分面统计缓存
func GetCatalogFacets(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, catalogFacetsKey, dest)
}

// SetCatalogFacets 写入分面统计缓存
func SetCatalogFacets(ctx context.Context, facets interface{}) error {
	return SetJSON(ctx, catalogFacetsKey, facets, catalogCacheTTL)
}

// InvalidateCatalog 清除目录相关缓存
func InvalidateCatalog(ctx context.Context) error {
	if err := Del(ctx, catalogProductsKey); err != nil {
		return err
	}
	return Del(ctx, catalogFacetsKey)
}
