package models

import (
	"time"
)

// Product 商品（对购物核心只读）
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name           string         `gorm:"type:varchar(200);not null;index" json:"name"`              // 名称
	Description    string         `gorm:"type:text" json:"description"`                              // 描述
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 售价
	OriginalPrice  *Money         `gorm:"type:decimal(20,2)" json:"original_price,omitempty"`        // 原价
	Images         StringArray    `gorm:"type:json" json:"images"`                                   // 图片
	Category       string         `gorm:"type:varchar(100);not null;index" json:"category"`          // 分类名
	CategoryID     uint           `gorm:"not null;default:0;index" json:"category_id"`               // 分类ID
	Brand          string         `gorm:"type:varchar(100);not null;default:'';index" json:"brand"`  // 品牌
	Rating         float64        `gorm:"not null;default:0" json:"rating"`                          // 评分
	Reviews        int            `gorm:"not null;default:0" json:"reviews"`                         // 评论数
	Stock          int            `gorm:"not null;default:0" json:"stock"`                           // 库存
	Sales          int            `gorm:"not null;default:0" json:"sales"`                           // 销量
	Badge          string         `gorm:"type:varchar(50)" json:"badge,omitempty"`                   // 角标
	Specifications Specifications `gorm:"type:json" json:"specifications"`                           // 规格
	Features       StringArray    `gorm:"type:json" json:"features"`                                 // 卖点
	Tags           StringArray    `gorm:"type:json" json:"tags"`                                     // 标签
	SortOrder      int            `gorm:"not null;default:0;index" json:"-"`                         // 目录顺序（relevance 排序依据）
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// FirstImage 返回首图，无图时为空
func (p *Product) FirstImage() string {
	if p == nil || len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// InStock 是否有货
func (p *Product) InStock() bool {
	return p != nil && p.Stock > 0
}
