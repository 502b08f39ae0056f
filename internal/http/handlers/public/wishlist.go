package public

import (
	"github.com/estore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WishlistRequest 收藏请求
type WishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist 收藏列表
func (h *Handler) GetWishlist(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"items": device.Wishlist.Items(),
		"count": device.Wishlist.ItemCount(),
	})
}

// AddWishlistItem 收藏商品，重复收藏不报错
func (h *Handler) AddWishlistItem(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.GetProduct(req.ProductID)
	if err != nil {
		respondProductError(c, err)
		return
	}
	added, err := device.Wishlist.Add(product)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{
		"added":       added,
		"in_wishlist": true,
		"count":       device.Wishlist.ItemCount(),
	})
}

// ToggleWishlistItem 切换收藏状态
func (h *Handler) ToggleWishlistItem(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	productID, ok := parseProductIDParam(c, "product_id")
	if !ok {
		return
	}
	product, err := h.CatalogService.GetProduct(productID)
	if err != nil {
		respondProductError(c, err)
		return
	}
	inWishlist, err := device.Wishlist.Toggle(product)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{
		"in_wishlist": inWishlist,
		"count":       device.Wishlist.ItemCount(),
	})
}

// RemoveWishlistItem 取消收藏
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	productID, ok := parseProductIDParam(c, "product_id")
	if !ok {
		return
	}
	device.Wishlist.Remove(productID)
	response.Success(c, gin.H{
		"in_wishlist": false,
		"count":       device.Wishlist.ItemCount(),
	})
}

// ClearWishlist 清空收藏
func (h *Handler) ClearWishlist(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	device.Wishlist.Clear()
	response.Success(c, gin.H{"cleared": true})
}
