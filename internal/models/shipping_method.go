package models

// ShippingMethod 配送方式（静态目录）
type ShippingMethod struct {
	ID            string `gorm:"primarykey;type:varchar(64)" json:"id"`          // 主键
	Name          string `gorm:"type:varchar(100);not null" json:"name"`         // 名称
	Description   string `gorm:"type:varchar(255)" json:"description"`           // 说明
	Price         Money  `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 运费
	EstimatedDays string `gorm:"type:varchar(50)" json:"estimated_days"`         // 预计送达
	Icon          string `gorm:"type:varchar(50)" json:"icon"`                   // 图标
	SortOrder     int    `gorm:"not null;default:0" json:"-"`                    // 展示顺序
}

// TableName 指定表名
func (ShippingMethod) TableName() string {
	return "shipping_methods"
}
