package service

import "github.com/estore-next/internal/models"

// CartSummary 购物车派生值快照
type CartSummary struct {
	Items            []models.CartLineItem `json:"items"`
	ItemCount        int                   `json:"item_count"`
	Total            models.Money          `json:"total"`
	SelectedCount    int                   `json:"selected_count"`
	SelectedTotal    models.Money          `json:"selected_total"`
	IsAllSelected    bool                  `json:"is_all_selected"`
	HasSelectedItems bool                  `json:"has_selected_items"`
}

// SummarizeCart 一次计算全部派生值
func SummarizeCart(items []models.CartLineItem) CartSummary {
	out := make([]models.CartLineItem, len(items))
	copy(out, items)
	return CartSummary{
		Items:            out,
		ItemCount:        CartItemCount(items),
		Total:            CartTotal(items),
		SelectedCount:    CartSelectedCount(items),
		SelectedTotal:    CartSelectedTotal(items),
		IsAllSelected:    IsAllSelected(items),
		HasSelectedItems: HasSelectedItems(items),
	}
}

// CartItemCount 全部行数量之和
func CartItemCount(items []models.CartLineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// CartTotal 全部行小计之和
func CartTotal(items []models.CartLineItem) models.Money {
	total := models.NewMoney(0)
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CartSelectedCount 勾选行数量之和
func CartSelectedCount(items []models.CartLineItem) int {
	count := 0
	for _, item := range items {
		if item.Selected {
			count += item.Quantity
		}
	}
	return count
}

// CartSelectedTotal 勾选行小计之和
func CartSelectedTotal(items []models.CartLineItem) models.Money {
	total := models.NewMoney(0)
	for _, item := range items {
		if item.Selected {
			total = total.Add(item.LineTotal())
		}
	}
	return total
}

// SelectedCartItems 勾选行，保持原顺序
func SelectedCartItems(items []models.CartLineItem) []models.CartLineItem {
	selected := make([]models.CartLineItem, 0, len(items))
	for _, item := range items {
		if item.Selected {
			selected = append(selected, item)
		}
	}
	return selected
}

// IsAllSelected 非空且全部勾选
func IsAllSelected(items []models.CartLineItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !item.Selected {
			return false
		}
	}
	return true
}

// HasSelectedItems 至少一行勾选
func HasSelectedItems(items []models.CartLineItem) bool {
	for _, item := range items {
		if item.Selected {
			return true
		}
	}
	return false
}

// IsInCart 商品任意规格在购物车中即为 true
func IsInCart(items []models.CartLineItem, productID uint) bool {
	return FindCartItem(items, productID) != nil
}

// FindCartItem 返回该商品的第一行
func FindCartItem(items []models.CartLineItem, productID uint) *models.CartLineItem {
	for i := range items {
		if items[i].ProductID == productID {
			item := items[i]
			return &item
		}
	}
	return nil
}

// FindCartItemByVariant 返回商品与规格完全一致的行
func FindCartItemByVariant(items []models.CartLineItem, productID uint, variant models.Variant) *models.CartLineItem {
	for i := range items {
		if items[i].SameLine(productID, variant) {
			item := items[i]
			return &item
		}
	}
	return nil
}
