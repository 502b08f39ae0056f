package service

import (
	"strings"
	"sync"

	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/models"
	"github.com/estore-next/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartStore 设备购物车状态容器，每次变更后整体写回存储
type CartStore struct {
	mu      sync.Mutex
	storage storage.Storage
	key     string
	log     *zap.SugaredLogger
	items   []models.CartLineItem
	newID   func() string
}

// NewCartStore 创建购物车并从存储恢复，key 为空时使用默认 key
func NewCartStore(s storage.Storage, key string, log *zap.SugaredLogger) *CartStore {
	if strings.TrimSpace(key) == "" {
		key = constants.StorageKeyCart
	}
	store := &CartStore{
		storage: s,
		key:     key,
		log:     componentLogger(log, "cart"),
		items:   []models.CartLineItem{},
		newID:   uuid.NewString,
	}
	store.Load()
	return store
}

// Load 从存储恢复购物车，数据损坏时以空购物车启动
func (c *CartStore) Load() {
	var items []models.CartLineItem
	loaded := loadJSON(c.storage, c.key, &items, c.log)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !loaded {
		c.items = []models.CartLineItem{}
		return
	}
	c.items = normalizeCartLines(items)
}

// normalizeCartLines 丢弃无法满足数量约束的行，并把数量夹回 [1, MaxStock]
func normalizeCartLines(items []models.CartLineItem) []models.CartLineItem {
	out := make([]models.CartLineItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" || item.MaxStock <= 0 {
			continue
		}
		item.Quantity = clampQuantity(item.Quantity, item.MaxStock)
		out = append(out, item)
	}
	return out
}

func clampQuantity(quantity, maxStock int) int {
	if quantity < 1 {
		quantity = 1
	}
	if quantity > maxStock {
		quantity = maxStock
	}
	return quantity
}

// AddItem 加入购物车；同商品同规格合并数量，数量上限取商品当前库存
func (c *CartStore) AddItem(product *models.Product, quantity int, variant models.Variant) (models.CartLineItem, error) {
	if product == nil {
		return models.CartLineItem{}, ErrProductNotFound
	}
	if product.Stock <= 0 {
		return models.CartLineItem{}, ErrProductOutOfStock
	}
	if quantity <= 0 {
		quantity = 1
	}
	// 先截到库存，合并求和不会溢出
	if quantity > product.Stock {
		quantity = product.Stock
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if !c.items[i].SameLine(product.ID, variant) {
			continue
		}
		c.items[i].MaxStock = product.Stock
		c.items[i].Quantity = clampQuantity(c.items[i].Quantity+quantity, product.Stock)
		line := c.items[i]
		c.persistLocked()
		return line, nil
	}

	line := models.CartLineItem{
		ID:        c.newID(),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.FirstImage(),
		Quantity:  clampQuantity(quantity, product.Stock),
		Variant:   variant.Clone(),
		MaxStock:  product.Stock,
		Selected:  true,
	}
	c.items = append(c.items, line)
	c.persistLocked()
	return line, nil
}

// RemoveItem 删除行，行不存在时不做任何事
func (c *CartStore) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexLocked(id); idx >= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
		c.persistLocked()
	}
}

// ConsumeItems 按已提交数量扣减对应行；扣减后 <=0 的行删除，提交期间被加量的行保留余量
func (c *CartStore) ConsumeItems(lines []models.CartLineItem) {
	if len(lines) == 0 {
		return
	}
	submitted := make(map[string]int, len(lines))
	for _, line := range lines {
		submitted[line.ID] += line.Quantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := false
	kept := c.items[:0]
	for _, item := range c.items {
		qty, ok := submitted[item.ID]
		if !ok {
			kept = append(kept, item)
			continue
		}
		changed = true
		if item.Quantity > qty {
			item.Quantity -= qty
			kept = append(kept, item)
		}
	}
	if changed {
		c.items = kept
		c.persistLocked()
	}
}

// UpdateQuantity 修改数量；<=0 删除该行，超过上限时取上限
func (c *CartStore) UpdateQuantity(id string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(id)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	} else {
		c.items[idx].Quantity = clampQuantity(quantity, c.items[idx].MaxStock)
	}
	c.persistLocked()
}

// ClearCart 清空购物车
func (c *CartStore) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []models.CartLineItem{}
	c.persistLocked()
}

// ToggleSelectItem 切换单行勾选
func (c *CartStore) ToggleSelectItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexLocked(id); idx >= 0 {
		c.items[idx].Selected = !c.items[idx].Selected
		c.persistLocked()
	}
}

// SelectAll 全选
func (c *CartStore) SelectAll() {
	c.setAllSelected(true)
}

// UnselectAll 全不选
func (c *CartStore) UnselectAll() {
	c.setAllSelected(false)
}

// ToggleSelectAll 已全选时取消全选，否则全选
func (c *CartStore) ToggleSelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setAllSelectedLocked(!IsAllSelected(c.items))
}

func (c *CartStore) setAllSelected(selected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setAllSelectedLocked(selected)
}

func (c *CartStore) setAllSelectedLocked(selected bool) {
	for i := range c.items {
		c.items[i].Selected = selected
	}
	c.persistLocked()
}

// Items 返回行列表副本
func (c *CartStore) Items() []models.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartLineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Summary 返回全部派生值
func (c *CartStore) Summary() CartSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SummarizeCart(c.items)
}

// ItemCount 全部数量
func (c *CartStore) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CartItemCount(c.items)
}

// Total 全部金额
func (c *CartStore) Total() models.Money {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CartTotal(c.items)
}

// SelectedItems 勾选行
func (c *CartStore) SelectedItems() []models.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SelectedCartItems(c.items)
}

// SelectedTotal 勾选金额
func (c *CartStore) SelectedTotal() models.Money {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CartSelectedTotal(c.items)
}

// IsInCart 商品是否在购物车中（任意规格）
func (c *CartStore) IsInCart(productID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return IsInCart(c.items, productID)
}

// GetItem 按商品ID查找第一行
func (c *CartStore) GetItem(productID uint) *models.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FindCartItem(c.items, productID)
}

// GetItemByVariant 按商品ID与规格精确查找
func (c *CartStore) GetItemByVariant(productID uint, variant models.Variant) *models.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FindCartItemByVariant(c.items, productID, variant)
}

func (c *CartStore) indexLocked(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *CartStore) persistLocked() {
	saveJSON(c.storage, c.key, c.items, c.log)
}
