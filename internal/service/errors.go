package service

import "errors"

// 通用
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// 商品与购物车
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductOutOfStock   = errors.New("product out of stock")
	ErrProductFetchFailed  = errors.New("product fetch failed")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrWishlistItemMissing = errors.New("wishlist item not found")
)

// 优惠券
var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInactive  = errors.New("coupon inactive")
	ErrCouponExpired   = errors.New("coupon expired")
	ErrCouponMinAmount = errors.New("coupon min amount not reached")
)

// 结算
var (
	ErrNoSelectedItems         = errors.New("no selected items")
	ErrCheckoutFieldsMissing   = errors.New("address or shipping method missing")
	ErrAddressInvalid          = errors.New("address invalid")
	ErrAddressNotFound         = errors.New("address not found")
	ErrShippingMethodNotFound  = errors.New("shipping method not found")
	ErrSubmitInProgress        = errors.New("order submission in progress")
	ErrOrderSubmitFailed       = errors.New("order submit failed")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderFetchFailed        = errors.New("order fetch failed")
	ErrOrderStatusInvalid      = errors.New("order status invalid")
	ErrOrderConfirmFailed      = errors.New("order confirm failed")
	ErrCheckoutCatalogMismatch = errors.New("checkout catalog unavailable")
)

// 认证
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrRegisterFields     = errors.New("register fields missing")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidToken       = errors.New("invalid token")
)

// 设备
var (
	ErrDeviceIDInvalid = errors.New("device id invalid")
)
