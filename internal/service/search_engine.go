package service

import (
	"sort"
	"strings"

	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/models"
)

// SearchFilters 搜索筛选条件
type SearchFilters struct {
	Category string        `json:"category"`
	Brands   []string      `json:"brands"`
	PriceMin *models.Money `json:"price_min,omitempty"`
	PriceMax *models.Money `json:"price_max,omitempty"`
	Rating   float64       `json:"rating"`
	InStock  bool          `json:"in_stock"`
	Sort     string        `json:"sort"`
}

// FacetCount 分面计数
type FacetCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Facets 分类与品牌分面
type Facets struct {
	Categories []FacetCount `json:"categories"`
	Brands     []FacetCount `json:"brands"`
}

// SearchResult 搜索结果
type SearchResult struct {
	Items  []models.Product `json:"items"`
	Total  int              `json:"total"`
	Facets Facets           `json:"facets"`
}

// NormalizeSort 未知排序键按 relevance 处理
func NormalizeSort(key string) string {
	switch strings.TrimSpace(key) {
	case constants.SortPriceAsc:
		return constants.SortPriceAsc
	case constants.SortPriceDesc:
		return constants.SortPriceDesc
	case constants.SortRating:
		return constants.SortRating
	case constants.SortSales:
		return constants.SortSales
	case constants.SortNewest:
		return constants.SortNewest
	default:
		return constants.SortRelevance
	}
}

// Search 依次执行文本匹配、分类、品牌、价格、评分、库存过滤，最后稳定排序；不修改入参
func Search(products []models.Product, query string, filters SearchFilters) SearchResult {
	items := FilterProducts(products, query, filters)
	SortProducts(items, filters.Sort)
	return SearchResult{
		Items:  items,
		Total:  len(items),
		Facets: ComputeFacets(products),
	}
}

// FilterProducts 只做过滤，返回新切片并保持目录顺序
func FilterProducts(products []models.Product, query string, filters SearchFilters) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	category := strings.TrimSpace(filters.Category)
	brands := make(map[string]struct{}, len(filters.Brands))
	for _, brand := range filters.Brands {
		if brand = strings.TrimSpace(brand); brand != "" {
			brands[brand] = struct{}{}
		}
	}

	out := make([]models.Product, 0, len(products))
	for i := range products {
		product := &products[i]
		if needle != "" && !matchesQuery(product, needle) {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		if len(brands) > 0 {
			if _, ok := brands[product.Brand]; !ok {
				continue
			}
		}
		if filters.PriceMin != nil && product.Price.Cmp(*filters.PriceMin) < 0 {
			continue
		}
		if filters.PriceMax != nil && product.Price.Cmp(*filters.PriceMax) > 0 {
			continue
		}
		if filters.Rating > 0 && product.Rating < filters.Rating {
			continue
		}
		if filters.InStock && !product.InStock() {
			continue
		}
		out = append(out, *product)
	}
	return out
}

func matchesQuery(product *models.Product, needle string) bool {
	if strings.Contains(strings.ToLower(product.Name), needle) {
		return true
	}
	for _, tag := range product.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// SortProducts 按排序键原地稳定排序，relevance 保持原顺序
func SortProducts(items []models.Product, key string) {
	var less func(a, b *models.Product) bool
	switch NormalizeSort(key) {
	case constants.SortPriceAsc:
		less = func(a, b *models.Product) bool { return a.Price.Cmp(b.Price) < 0 }
	case constants.SortPriceDesc:
		less = func(a, b *models.Product) bool { return a.Price.Cmp(b.Price) > 0 }
	case constants.SortRating:
		less = func(a, b *models.Product) bool { return a.Rating > b.Rating }
	case constants.SortSales:
		less = func(a, b *models.Product) bool { return a.Sales > b.Sales }
	case constants.SortNewest:
		less = func(a, b *models.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return less(&items[i], &items[j])
	})
}

// ComputeFacets 基于完整目录统计分类与品牌数量，按数量降序、名称升序输出
func ComputeFacets(products []models.Product) Facets {
	categories := make(map[string]int)
	brands := make(map[string]int)
	for i := range products {
		if products[i].Category != "" {
			categories[products[i].Category]++
		}
		if products[i].Brand != "" {
			brands[products[i].Brand]++
		}
	}
	return Facets{
		Categories: sortedFacets(categories),
		Brands:     sortedFacets(brands),
	}
}

func sortedFacets(counts map[string]int) []FacetCount {
	out := make([]FacetCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, FacetCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
