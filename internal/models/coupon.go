package models

import (
	"time"
)

// Coupon 优惠券（静态参考数据）
type Coupon struct {
	ID          string     `gorm:"primarykey;type:varchar(64)" json:"id"`                 // 主键
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`                      // 优惠码
	Name        string     `gorm:"type:varchar(100)" json:"name"`                         // 名称
	Description string     `gorm:"type:varchar(255)" json:"description"`                  // 说明
	Type        string     `gorm:"type:varchar(20);not null" json:"type"`                 // 类型（fixed/percentage）
	Value       Money      `gorm:"type:decimal(20,2);not null" json:"value"`              // 金额或百分比
	MinOrder    Money      `gorm:"type:decimal(20,2);not null;default:0" json:"min_order"` // 使用门槛
	MaxDiscount *Money     `gorm:"type:decimal(20,2)" json:"max_discount,omitempty"`      // 折扣封顶（仅百分比券）
	ExpiresAt   *time.Time `gorm:"index" json:"expires_at,omitempty"`                     // 过期时间
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`                // 是否启用
	SortOrder   int        `gorm:"not null;default:0" json:"-"`                           // 展示顺序
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}

// Expired 判断在指定时间是否已过期
func (c *Coupon) Expired(now time.Time) bool {
	return c != nil && c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}
