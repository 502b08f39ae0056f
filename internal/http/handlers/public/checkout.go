package public

import (
	"github.com/estore-next/internal/http/response"
	"github.com/estore-next/internal/models"
	"github.com/estore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutPreviewRequest 结算预览请求
type CheckoutPreviewRequest struct {
	ShippingMethodID string `json:"shipping_method_id"`
	CouponCode       string `json:"coupon_code"`
}

// CheckoutSubmitRequest 提交订单请求；address_id 优先于 address
type CheckoutSubmitRequest struct {
	AddressID        string          `json:"address_id"`
	Address          *models.Address `json:"address"`
	ShippingMethodID string          `json:"shipping_method_id"`
	CouponCode       string          `json:"coupon_code"`
}

// PreviewCheckout 结算金额预览
func (h *Handler) PreviewCheckout(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	var req CheckoutPreviewRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}
	preview, err := device.Checkout.Preview(req.ShippingMethodID, req.CouponCode)
	if err != nil {
		respondCheckoutPreviewError(c, err)
		return
	}
	response.Success(c, preview)
}

// SubmitCheckout 提交勾选的购物车行
func (h *Handler) SubmitCheckout(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	var req CheckoutSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	receipt, err := device.Checkout.Submit(c.Request.Context(), service.SubmitInput{
		Session:          getSession(c),
		AddressID:        req.AddressID,
		Address:          req.Address,
		ShippingMethodID: req.ShippingMethodID,
		CouponCode:       req.CouponCode,
	})
	if err != nil {
		respondCheckoutSubmitError(c, err)
		return
	}
	response.Success(c, gin.H{
		"order": receipt,
		"cart":  device.Cart.Summary(),
	})
}
