package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/estore-next/internal/models"

	"go.uber.org/zap"
)

// CheckoutCatalog 结算所需的静态目录
type CheckoutCatalog interface {
	Coupons() ([]models.Coupon, error)
	ShippingMethod(id string) (*models.ShippingMethod, error)
}

// CheckoutPreview 结算预览
type CheckoutPreview struct {
	Items          []models.CartLineItem  `json:"items"`
	ShippingMethod *models.ShippingMethod `json:"shipping_method,omitempty"`
	Coupon         *models.Coupon         `json:"coupon,omitempty"`
	Summary        PriceSummary           `json:"summary"`
	Usable         []models.Coupon        `json:"usable_coupons"`
	NotYetUsable   []models.Coupon        `json:"unavailable_coupons"`
}

// SubmitInput 提交订单输入；AddressID 优先于 Address
type SubmitInput struct {
	Session          *Session
	AddressID        string
	Address          *models.Address
	ShippingMethodID string
	CouponCode       string
}

// CheckoutService 设备结算流程，同一时间只允许一个提交在进行
type CheckoutService struct {
	deviceID  string
	cart      *CartStore
	addresses *AddressBook
	catalog   CheckoutCatalog
	submitter OrderSubmitter
	log       *zap.SugaredLogger
	pending   atomic.Bool
	now       func() time.Time
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(deviceID string, cart *CartStore, addresses *AddressBook, catalog CheckoutCatalog, submitter OrderSubmitter, log *zap.SugaredLogger) *CheckoutService {
	return &CheckoutService{
		deviceID:  deviceID,
		cart:      cart,
		addresses: addresses,
		catalog:   catalog,
		submitter: submitter,
		log:       componentLogger(log, "checkout"),
		now:       time.Now,
	}
}

// Pending 是否有提交正在进行
func (s *CheckoutService) Pending() bool {
	return s.pending.Load()
}

// Preview 按勾选行计算金额，并拆分可用/暂不可用优惠券
func (s *CheckoutService) Preview(shippingMethodID, couponCode string) (*CheckoutPreview, error) {
	items := s.cart.SelectedItems()
	subtotal := CartSelectedTotal(items)

	var method *models.ShippingMethod
	if strings.TrimSpace(shippingMethodID) != "" {
		m, err := s.catalog.ShippingMethod(shippingMethodID)
		if err != nil {
			return nil, err
		}
		method = m
	}
	coupons, err := s.catalog.Coupons()
	if err != nil {
		return nil, err
	}
	var coupon *models.Coupon
	if strings.TrimSpace(couponCode) != "" {
		coupon, err = ApplyCouponCode(coupons, couponCode, subtotal, s.now())
		if err != nil {
			return nil, err
		}
	}
	usable, notYetUsable := PartitionCoupons(ActiveCoupons(coupons, s.now()), subtotal)
	return &CheckoutPreview{
		Items:          items,
		ShippingMethod: method,
		Coupon:         coupon,
		Summary:        CalculateTotal(subtotal, method, coupon),
		Usable:         usable,
		NotYetUsable:   notYetUsable,
	}, nil
}

// ActiveCoupons 过滤出已启用且未过期的优惠券
func ActiveCoupons(coupons []models.Coupon, now time.Time) []models.Coupon {
	out := make([]models.Coupon, 0, len(coupons))
	for _, coupon := range coupons {
		if coupon.IsActive && !coupon.Expired(now) {
			out = append(out, coupon)
		}
	}
	return out
}

// Submit 提交勾选行；失败时购物车保持不变，成功后移除已提交的行
func (s *CheckoutService) Submit(ctx context.Context, input SubmitInput) (*OrderReceipt, error) {
	if input.Session == nil || strings.TrimSpace(input.Session.ID) == "" {
		return nil, ErrUnauthorized
	}
	if !s.pending.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer s.pending.Store(false)

	items := s.cart.SelectedItems()
	if len(items) == 0 {
		return nil, ErrNoSelectedItems
	}

	hasAddress := strings.TrimSpace(input.AddressID) != "" || input.Address != nil
	if !hasAddress || strings.TrimSpace(input.ShippingMethodID) == "" {
		return nil, ErrCheckoutFieldsMissing
	}
	address, err := s.resolveAddress(input)
	if err != nil {
		return nil, err
	}
	method, err := s.catalog.ShippingMethod(input.ShippingMethodID)
	if err != nil {
		return nil, err
	}

	subtotal := CartSelectedTotal(items)
	var coupon *models.Coupon
	if strings.TrimSpace(input.CouponCode) != "" {
		coupons, err := s.catalog.Coupons()
		if err != nil {
			return nil, err
		}
		coupon, err = ApplyCouponCode(coupons, input.CouponCode, subtotal, s.now())
		if err != nil {
			return nil, err
		}
	}
	summary := CalculateTotal(subtotal, method, coupon)

	receipt, err := s.submitter.SubmitOrder(ctx, OrderRequest{
		UserID:         input.Session.ID,
		DeviceID:       s.deviceID,
		Items:          items,
		Address:        *address,
		ShippingMethod: *method,
		Coupon:         coupon,
		Summary:        summary,
	})
	if err != nil {
		s.log.Warnw("order_submit_failed",
			"device_id", s.deviceID,
			"user_id", input.Session.ID,
			"items", len(items),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrOrderSubmitFailed, err)
	}

	s.cart.ConsumeItems(items)
	return receipt, nil
}

func (s *CheckoutService) resolveAddress(input SubmitInput) (*models.Address, error) {
	if id := strings.TrimSpace(input.AddressID); id != "" {
		return s.addresses.Get(id)
	}
	address := trimAddress(*input.Address)
	if len(address.MissingFields()) > 0 {
		return nil, ErrAddressInvalid
	}
	return &address, nil
}
