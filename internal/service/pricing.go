package service

import (
	"strings"
	"time"

	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/models"

	"github.com/shopspring/decimal"
)

// PriceSummary 结算金额明细
type PriceSummary struct {
	Subtotal     models.Money `json:"subtotal"`
	ShippingCost models.Money `json:"shipping_cost"`
	Discount     models.Money `json:"discount"`
	Total        models.Money `json:"total"`
}

// ShippingCost 运费，未选择配送方式时为 0
func ShippingCost(method *models.ShippingMethod) models.Money {
	if method == nil {
		return models.NewMoney(0)
	}
	return method.Price
}

// IsEligible 小计是否达到使用门槛
func IsEligible(coupon *models.Coupon, subtotal models.Money) bool {
	if coupon == nil {
		return false
	}
	return subtotal.Cmp(coupon.MinOrder) >= 0
}

// CalculateDiscount 计算优惠金额；固定券不超过小计，折扣券不超过封顶
func CalculateDiscount(coupon *models.Coupon, subtotal models.Money) models.Money {
	zero := models.NewMoney(0)
	if coupon == nil || !IsEligible(coupon, subtotal) {
		return zero
	}
	switch coupon.Type {
	case constants.CouponTypeFixed:
		if coupon.Value.Cmp(subtotal) > 0 {
			return subtotal
		}
		if coupon.Value.Cmp(zero) < 0 {
			return zero
		}
		return coupon.Value
	case constants.CouponTypePercentage:
		raw := subtotal.Decimal.Mul(coupon.Value.Decimal).Div(decimal.NewFromInt(100))
		discount := models.NewMoneyFromDecimal(raw)
		if coupon.MaxDiscount != nil && discount.Cmp(*coupon.MaxDiscount) > 0 {
			discount = *coupon.MaxDiscount
		}
		if discount.Cmp(subtotal) > 0 {
			discount = subtotal
		}
		if discount.Cmp(zero) < 0 {
			return zero
		}
		return discount
	default:
		return zero
	}
}

// CalculateTotal 汇总小计、运费与优惠
func CalculateTotal(subtotal models.Money, method *models.ShippingMethod, coupon *models.Coupon) PriceSummary {
	shipping := ShippingCost(method)
	discount := CalculateDiscount(coupon, subtotal)
	total := subtotal.Add(shipping).Sub(discount)
	if total.Cmp(models.NewMoney(0)) < 0 {
		total = models.NewMoney(0)
	}
	return PriceSummary{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Discount:     discount,
		Total:        total,
	}
}

// PartitionCoupons 按门槛拆分为可用与暂不可用，保持目录顺序
func PartitionCoupons(coupons []models.Coupon, subtotal models.Money) (usable []models.Coupon, notYetUsable []models.Coupon) {
	usable = make([]models.Coupon, 0, len(coupons))
	notYetUsable = make([]models.Coupon, 0, len(coupons))
	for _, coupon := range coupons {
		if IsEligible(&coupon, subtotal) {
			usable = append(usable, coupon)
		} else {
			notYetUsable = append(notYetUsable, coupon)
		}
	}
	return usable, notYetUsable
}

// FindCoupon 按优惠码查找（忽略大小写与首尾空白）
func FindCoupon(coupons []models.Coupon, code string) (*models.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCouponNotFound
	}
	for i := range coupons {
		if strings.EqualFold(coupons[i].Code, code) {
			coupon := coupons[i]
			return &coupon, nil
		}
	}
	return nil, ErrCouponNotFound
}

// ApplyCouponCode 校验手动输入的优惠码
func ApplyCouponCode(coupons []models.Coupon, code string, subtotal models.Money, now time.Time) (*models.Coupon, error) {
	coupon, err := FindCoupon(coupons, code)
	if err != nil {
		return nil, err
	}
	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if coupon.Expired(now) {
		return nil, ErrCouponExpired
	}
	if !IsEligible(coupon, subtotal) {
		return nil, ErrCouponMinAmount
	}
	return coupon, nil
}
