package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/models"
)

func productIDs(items []models.Product) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestSearchQueryMatchesName(t *testing.T) {
	result := Search(testCatalog(), "iPhone", SearchFilters{})
	if result.Total != 1 || result.Items[0].ID != 1 {
		t.Fatalf("expected only iPhone, got %v", productIDs(result.Items))
	}
	lower := Search(testCatalog(), "iphone", SearchFilters{})
	if lower.Total != 1 {
		t.Fatalf("match must be case-insensitive, got %d", lower.Total)
	}
}

func TestSearchQueryMatchesTag(t *testing.T) {
	result := Search(testCatalog(), "笔记本", SearchFilters{})
	if !reflect.DeepEqual(productIDs(result.Items), []uint{2}) {
		t.Fatalf("expected tag match on MacBook, got %v", productIDs(result.Items))
	}
	apple := Search(testCatalog(), "apple", SearchFilters{})
	if !reflect.DeepEqual(productIDs(apple.Items), []uint{1}) {
		t.Fatalf("brand is not searched, only tag 'Apple' on iPhone should match, got %v", productIDs(apple.Items))
	}
}

func TestSearchEmptyQueryKeepsAll(t *testing.T) {
	for _, query := range []string{"", "   "} {
		if got := Search(testCatalog(), query, SearchFilters{}); got.Total != 3 {
			t.Fatalf("query %q should keep all, got %d", query, got.Total)
		}
	}
}

func TestSearchFilters(t *testing.T) {
	catalog := testCatalog()
	cases := []struct {
		name    string
		filters SearchFilters
		want    []uint
	}{
		{"category", SearchFilters{Category: "电脑办公"}, []uint{2}},
		{"brands", SearchFilters{Brands: []string{"Apple", "Sony"}}, []uint{1, 2, 3}},
		{"unknown brand", SearchFilters{Brands: []string{"Sony"}}, []uint{}},
		{"price range inclusive", SearchFilters{PriceMin: moneyRef("1999"), PriceMax: moneyRef("8999")}, []uint{2, 3}},
		{"price min only", SearchFilters{PriceMin: moneyRef("9000")}, []uint{1}},
		{"rating", SearchFilters{Rating: 4.8}, []uint{1, 2}},
		{"in stock", SearchFilters{InStock: true}, []uint{1, 2}},
		{"combined", SearchFilters{Brands: []string{"Apple"}, InStock: true, Sort: constants.SortPriceAsc}, []uint{2, 1}},
	}
	for _, tc := range cases {
		got := productIDs(Search(catalog, "", tc.filters).Items)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestSearchSortKeys(t *testing.T) {
	catalog := testCatalog()
	cases := map[string][]uint{
		constants.SortRelevance: {1, 2, 3},
		constants.SortPriceAsc:  {3, 2, 1},
		constants.SortPriceDesc: {1, 2, 3},
		constants.SortRating:    {2, 1, 3},
		constants.SortSales:     {3, 1, 2},
		constants.SortNewest:    {3, 2, 1},
		"bogus":                 {1, 2, 3},
	}
	for key, want := range cases {
		got := productIDs(Search(catalog, "", SearchFilters{Sort: key}).Items)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("sort %s: expected %v, got %v", key, want, got)
		}
	}
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	catalog := testCatalog()
	before := productIDs(catalog)
	Search(catalog, "", SearchFilters{Sort: constants.SortPriceAsc})
	if !reflect.DeepEqual(productIDs(catalog), before) {
		t.Fatalf("input catalog was reordered")
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	catalog := models.DemoProducts()
	filters := SearchFilters{Brands: []string{"Apple", "Sony"}, Rating: 4.5, Sort: constants.SortRating}
	first := Search(catalog, "耳机", filters)
	second := Search(catalog, "耳机", filters)
	if !reflect.DeepEqual(productIDs(first.Items), productIDs(second.Items)) {
		t.Fatalf("same filters produced different results")
	}
	again := Search(first.Items, "耳机", filters)
	if !reflect.DeepEqual(productIDs(again.Items), productIDs(first.Items)) {
		t.Fatalf("re-applying filters to result changed it: %v vs %v", productIDs(again.Items), productIDs(first.Items))
	}
}

func TestSortIsStable(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var items []models.Product
	for i := 0; i < 30; i++ {
		items = append(items, models.Product{
			ID:        uint(i + 1),
			Price:     models.NewMoney(int64(i % 4)),
			Rating:    float64(i % 3),
			Sales:     i % 5,
			CreatedAt: base.Add(time.Duration(i%2) * time.Hour),
		})
	}
	for _, key := range []string{constants.SortPriceAsc, constants.SortPriceDesc, constants.SortRating, constants.SortSales, constants.SortNewest} {
		sorted := make([]models.Product, len(items))
		copy(sorted, items)
		SortProducts(sorted, key)
		resorted := make([]models.Product, len(sorted))
		copy(resorted, sorted)
		SortProducts(resorted, key)
		if !reflect.DeepEqual(productIDs(sorted), productIDs(resorted)) {
			t.Fatalf("sort %s not stable on re-sort", key)
		}
		// 相同键保持原有相对顺序（ID 递增）
		for i := 1; i < len(sorted); i++ {
			a, b := sorted[i-1], sorted[i]
			if sameSortKey(key, a, b) && a.ID > b.ID {
				t.Fatalf("sort %s reordered equal keys: %d before %d", key, a.ID, b.ID)
			}
		}
	}
}

func sameSortKey(key string, a, b models.Product) bool {
	switch key {
	case constants.SortPriceAsc, constants.SortPriceDesc:
		return a.Price.Cmp(b.Price) == 0
	case constants.SortRating:
		return a.Rating == b.Rating
	case constants.SortSales:
		return a.Sales == b.Sales
	default:
		return a.CreatedAt.Equal(b.CreatedAt)
	}
}

func TestComputeFacetsUsesFullCatalog(t *testing.T) {
	catalog := models.DemoProducts()
	result := Search(catalog, "iPhone", SearchFilters{InStock: true})
	if result.Total != 1 {
		t.Fatalf("expected filtered result of 1, got %d", result.Total)
	}
	var apple int
	for _, facet := range result.Facets.Brands {
		if facet.Name == "Apple" {
			apple = facet.Count
		}
	}
	if apple != 3 {
		t.Fatalf("facets must be computed over unfiltered catalog, Apple=%d", apple)
	}
	if result.Facets.Brands[0].Name != "Apple" {
		t.Fatalf("brands facet should be sorted by count desc, got %+v", result.Facets.Brands)
	}
	for i := 1; i < len(result.Facets.Categories); i++ {
		prev, cur := result.Facets.Categories[i-1], result.Facets.Categories[i]
		if prev.Count < cur.Count || (prev.Count == cur.Count && prev.Name > cur.Name) {
			t.Fatalf("categories facet not ordered: %+v", result.Facets.Categories)
		}
	}
}

func TestSuggestions(t *testing.T) {
	catalog := models.DemoProducts()
	suggestions := Suggestions(catalog, "耳机", 0)
	if len(suggestions) == 0 {
		t.Fatalf("expected suggestions for 耳机")
	}
	for _, s := range suggestions {
		if s.Type != constants.SuggestionTypeProduct && s.Type != constants.SuggestionTypeCategory && s.Type != constants.SuggestionTypeBrand {
			t.Fatalf("unexpected suggestion type %s", s.Type)
		}
		if s.Count <= 0 {
			t.Fatalf("suggestion %s has no count", s.Text)
		}
	}
	apple := Suggestions(catalog, "apple", 8)
	if len(apple) != 1 || apple[0].Type != constants.SuggestionTypeBrand || apple[0].Count != 3 {
		t.Fatalf("expected single Apple brand suggestion, got %+v", apple)
	}
	if got := Suggestions(catalog, "  ", 8); len(got) != 0 {
		t.Fatalf("blank query should have no suggestions")
	}
	if got := Suggestions(catalog, "a", 2); len(got) != 2 {
		t.Fatalf("limit not applied, got %d", len(got))
	}
}

func TestPopularSearchesReturnsCopy(t *testing.T) {
	list := PopularSearches()
	if len(list) != 10 || list[0] != "iPhone" {
		t.Fatalf("unexpected popular searches %v", list)
	}
	list[0] = "changed"
	if PopularSearches()[0] != "iPhone" {
		t.Fatalf("popular searches must not be mutable by callers")
	}
}
