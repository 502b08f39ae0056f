package public

import (
	"github.com/estore-next/internal/http/response"
	"github.com/estore-next/internal/models"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 加入购物车请求
type CartItemRequest struct {
	ProductID uint           `json:"product_id" binding:"required"`
	Quantity  int            `json:"quantity"`
	Variant   models.Variant `json:"variant"`
}

// CartQuantityRequest 修改数量请求；<=0 删除该行
type CartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车及汇总
func (h *Handler) GetCart(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	response.Success(c, device.Cart.Summary())
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.GetProduct(req.ProductID)
	if err != nil {
		respondProductError(c, err)
		return
	}
	line, err := device.Cart.AddItem(product, req.Quantity, req.Variant)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{
		"item": line,
		"cart": device.Cart.Summary(),
	})
}

// UpdateCartItem 修改行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.quantity_invalid", err)
		return
	}
	device.Cart.UpdateQuantity(c.Param("id"), *req.Quantity)
	response.Success(c, device.Cart.Summary())
}

// DeleteCartItem 删除行
func (h *Handler) DeleteCartItem(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	device.Cart.RemoveItem(c.Param("id"))
	response.Success(c, device.Cart.Summary())
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	device.Cart.ClearCart()
	response.Success(c, device.Cart.Summary())
}

// ToggleCartItem 切换行勾选
func (h *Handler) ToggleCartItem(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	device.Cart.ToggleSelectItem(c.Param("id"))
	response.Success(c, device.Cart.Summary())
}

// SelectAllCartItems 全选
func (h *Handler) SelectAllCartItems(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	device.Cart.SelectAll()
	response.Success(c, device.Cart.Summary())
}

// UnselectAllCartItems 取消全选
func (h *Handler) UnselectAllCartItems(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	device.Cart.UnselectAll()
	response.Success(c, device.Cart.Summary())
}

// ToggleAllCartItems 已全选时取消，否则全选
func (h *Handler) ToggleAllCartItems(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	device.Cart.ToggleSelectAll()
	response.Success(c, device.Cart.Summary())
}
