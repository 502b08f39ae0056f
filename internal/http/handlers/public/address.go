package public

import (
	"github.com/estore-next/internal/http/response"
	"github.com/estore-next/internal/models"

	"github.com/gin-gonic/gin"
)

// ListAddresses 地址簿
func (h *Handler) ListAddresses(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"items":   device.Addresses.List(),
		"default": device.Addresses.Default(),
	})
}

// AddAddress 新增地址
func (h *Handler) AddAddress(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	var req models.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	address, err := device.Addresses.Add(req)
	if err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	if err := device.Addresses.Remove(c.Param("id")); err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetDefaultAddress 设为默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	if err := device.Addresses.SetDefault(c.Param("id")); err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, device.Addresses.Default())
}
