package models

import (
	"time"
)

// Order 已提交的订单记录
type Order struct {
	ID               uint        `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo          string      `gorm:"uniqueIndex;not null" json:"order_no"`                        // 订单编号
	UserID           string      `gorm:"type:varchar(64);index;not null" json:"user_id"`              // 会话用户ID
	DeviceID         string      `gorm:"type:varchar(64);index" json:"device_id"`                     // 下单设备
	Status           string      `gorm:"type:varchar(20);index;not null" json:"status"`               // 订单状态
	Currency         string      `gorm:"type:varchar(10);not null" json:"currency"`                   // 币种
	Subtotal         Money       `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`       // 商品小计
	ShippingCost     Money       `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_cost"`  // 运费
	Discount         Money       `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`       // 优惠金额
	Total            Money       `gorm:"type:decimal(20,2);not null;default:0" json:"total"`          // 应付金额
	CouponCode       string      `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`               // 优惠码
	ShippingMethodID string      `gorm:"type:varchar(64);not null" json:"shipping_method_id"`         // 配送方式
	AddressJSON      AddressJSON `gorm:"type:json" json:"address"`                                    // 收货地址快照
	ConfirmedAt      *time.Time  `gorm:"index" json:"confirmed_at,omitempty"`                         // 确认时间
	CreatedAt        time.Time   `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt        time.Time   `json:"updated_at"`                                                  // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项
type OrderItem struct {
	ID        uint    `gorm:"primarykey" json:"id"`                                 // 主键
	OrderID   uint    `gorm:"index;not null" json:"order_id"`                       // 订单ID
	ProductID uint    `gorm:"index;not null" json:"product_id"`                     // 商品ID
	Name      string  `gorm:"type:varchar(200);not null" json:"name"`               // 名称快照
	Price     Money   `gorm:"type:decimal(20,2);not null;default:0" json:"price"`   // 单价快照
	Quantity  int     `gorm:"not null" json:"quantity"`                             // 数量
	Image     string  `gorm:"type:varchar(500)" json:"image"`                       // 图片快照
	Variant   Variant `gorm:"type:json" json:"variant"`                             // 规格选择
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
