package models

// CartLineItem 购物车行（设备本地保存，不入库）
type CartLineItem struct {
	ID        string  `json:"id"`         // 行ID，与商品ID无关
	ProductID uint    `json:"product_id"` // 商品ID
	Name      string  `json:"name"`       // 加购时的名称快照
	Price     Money   `json:"price"`      // 加购时的价格快照
	Image     string  `json:"image"`      // 加购时的首图快照
	Quantity  int     `json:"quantity"`   // 数量，始终在 [1, MaxStock]
	Variant   Variant `json:"variant"`    // 规格选择
	MaxStock  int     `json:"max_stock"`  // 数量上限
	Selected  bool    `json:"selected"`   // 是否勾选结算
}

// LineTotal 行小计
func (i CartLineItem) LineTotal() Money {
	return i.Price.Times(i.Quantity)
}

// SameLine 判断是否为可合并的同一行（商品与规格均一致）
func (i CartLineItem) SameLine(productID uint, variant Variant) bool {
	return i.ProductID == productID && i.Variant.Equal(variant)
}
