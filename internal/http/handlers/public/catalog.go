package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/estore-next/internal/http/response"
	"github.com/estore-next/internal/models"
	"github.com/estore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 搜索/筛选/排序商品
func (h *Handler) ListProducts(c *gin.Context) {
	filters, ok := parseSearchFilters(c)
	if !ok {
		return
	}
	result, err := h.CatalogService.Search(c.Query("query"), filters)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, result)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseProductIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.CatalogService.GetProduct(id)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// GetFacets 全目录分面统计
func (h *Handler) GetFacets(c *gin.Context) {
	facets, err := h.CatalogService.Facets()
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, facets)
}

// ListShippingMethods 配送方式列表
func (h *Handler) ListShippingMethods(c *gin.Context) {
	methods, err := h.CatalogService.ShippingMethods()
	if err != nil {
		respondError(c, response.CodeInternal, "error.shipping_fetch_failed", err)
		return
	}
	response.Success(c, methods)
}

// ListCoupons 优惠券列表；带 subtotal 时按门槛拆分可用与暂不可用
func (h *Handler) ListCoupons(c *gin.Context) {
	coupons, err := h.CatalogService.Coupons()
	if err != nil {
		respondError(c, response.CodeInternal, "error.coupon_fetch_failed", err)
		return
	}
	rawSubtotal := strings.TrimSpace(c.Query("subtotal"))
	if rawSubtotal == "" {
		response.Success(c, coupons)
		return
	}
	subtotal, err := models.ParseMoney(rawSubtotal)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.amount_invalid", nil)
		return
	}
	usable, later := service.PartitionCoupons(service.ActiveCoupons(coupons, time.Now()), subtotal)
	response.Success(c, gin.H{
		"usable_coupons":      usable,
		"unavailable_coupons": later,
	})
}

func parseSearchFilters(c *gin.Context) (service.SearchFilters, bool) {
	filters := service.SearchFilters{
		Category: strings.TrimSpace(c.Query("category")),
		Sort:     service.NormalizeSort(c.Query("sort")),
	}
	for _, raw := range c.QueryArray("brands") {
		for _, brand := range strings.Split(raw, ",") {
			if brand = strings.TrimSpace(brand); brand != "" {
				filters.Brands = append(filters.Brands, brand)
			}
		}
	}
	for _, bound := range []struct {
		param string
		dest  **models.Money
	}{
		{"price_min", &filters.PriceMin},
		{"price_max", &filters.PriceMax},
	} {
		raw := strings.TrimSpace(c.Query(bound.param))
		if raw == "" {
			continue
		}
		amount, err := models.ParseMoney(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.amount_invalid", nil)
			return filters, false
		}
		*bound.dest = &amount
	}
	if raw := strings.TrimSpace(c.Query("rating")); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || rating < 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return filters, false
		}
		filters.Rating = rating
	}
	if raw := strings.TrimSpace(c.Query("in_stock")); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return filters, false
		}
		filters.InStock = inStock
	}
	return filters, true
}
