package service

import (
	"sort"
	"strings"

	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/models"
)

const defaultMaxSuggestions = 8

// SearchSuggestion 搜索建议项
type SearchSuggestion struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

var popularSearches = []string{
	"iPhone", "笔记本电脑", "运动鞋", "无线耳机", "连衣裙",
	"护肤品", "咖啡", "背包", "手表", "游戏手柄",
}

// PopularSearches 热门搜索词
func PopularSearches() []string {
	out := make([]string, len(popularSearches))
	copy(out, popularSearches)
	return out
}

// Suggestions 基于目录生成建议：商品名、分类、品牌中包含查询词的项，Count 为对应商品数
func Suggestions(products []models.Product, query string, limit int) []SearchSuggestion {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []SearchSuggestion{}
	}
	if limit <= 0 {
		limit = defaultMaxSuggestions
	}

	seen := make(map[string]struct{})
	var out []SearchSuggestion
	add := func(kind, text string, count int) {
		key := kind + ":" + text
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, SearchSuggestion{ID: key, Text: text, Type: kind, Count: count})
	}

	for i := range products {
		if strings.Contains(strings.ToLower(products[i].Name), needle) {
			add(constants.SuggestionTypeProduct, products[i].Name, len(FilterProducts(products, products[i].Name, SearchFilters{})))
		}
	}
	facets := ComputeFacets(products)
	for _, facet := range facets.Categories {
		if strings.Contains(strings.ToLower(facet.Name), needle) {
			add(constants.SuggestionTypeCategory, facet.Name, facet.Count)
		}
	}
	for _, facet := range facets.Brands {
		if strings.Contains(strings.ToLower(facet.Name), needle) {
			add(constants.SuggestionTypeBrand, facet.Name, facet.Count)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		return []SearchSuggestion{}
	}
	return out
}
