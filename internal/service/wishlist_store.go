package service

import (
	"strings"
	"sync"
	"time"

	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/models"
	"github.com/estore-next/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WishlistStore 设备收藏夹，同一商品最多一条
type WishlistStore struct {
	mu      sync.Mutex
	storage storage.Storage
	key     string
	log     *zap.SugaredLogger
	items   []models.WishlistItem
	now     func() time.Time
}

// NewWishlistStore 创建收藏夹并从存储恢复
func NewWishlistStore(s storage.Storage, key string, log *zap.SugaredLogger) *WishlistStore {
	if strings.TrimSpace(key) == "" {
		key = constants.StorageKeyWishlist
	}
	store := &WishlistStore{
		storage: s,
		key:     key,
		log:     componentLogger(log, "wishlist"),
		items:   []models.WishlistItem{},
		now:     time.Now,
	}
	store.Load()
	return store
}

// Load 从存储恢复，重复商品只保留第一条
func (w *WishlistStore) Load() {
	var items []models.WishlistItem
	loaded := loadJSON(w.storage, w.key, &items, w.log)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = []models.WishlistItem{}
	if !loaded {
		return
	}
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.Product.ID]; ok {
			continue
		}
		seen[item.Product.ID] = struct{}{}
		w.items = append(w.items, item)
	}
}

// Add 收藏商品，已收藏时不做任何事；返回是否新增
func (w *WishlistStore) Add(product *models.Product) (bool, error) {
	if product == nil {
		return false, ErrProductNotFound
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.indexLocked(product.ID) >= 0 {
		return false, nil
	}
	w.items = append(w.items, models.WishlistItem{
		ID:      uuid.NewString(),
		Product: *product,
		AddedAt: w.now(),
	})
	w.persistLocked()
	return true, nil
}

// Remove 取消收藏
func (w *WishlistStore) Remove(productID uint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if idx := w.indexLocked(productID); idx >= 0 {
		w.items = append(w.items[:idx], w.items[idx+1:]...)
		w.persistLocked()
	}
}

// Toggle 切换收藏状态，返回切换后是否已收藏
func (w *WishlistStore) Toggle(product *models.Product) (bool, error) {
	if product == nil {
		return false, ErrProductNotFound
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if idx := w.indexLocked(product.ID); idx >= 0 {
		w.items = append(w.items[:idx], w.items[idx+1:]...)
		w.persistLocked()
		return false, nil
	}
	w.items = append(w.items, models.WishlistItem{
		ID:      uuid.NewString(),
		Product: *product,
		AddedAt: w.now(),
	})
	w.persistLocked()
	return true, nil
}

// IsInWishlist 是否已收藏
func (w *WishlistStore) IsInWishlist(productID uint) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexLocked(productID) >= 0
}

// Clear 清空收藏夹
func (w *WishlistStore) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = []models.WishlistItem{}
	w.persistLocked()
}

// ItemCount 收藏数量
func (w *WishlistStore) ItemCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Items 收藏列表副本，按收藏先后排列
func (w *WishlistStore) Items() []models.WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.WishlistItem, len(w.items))
	copy(out, w.items)
	return out
}

func (w *WishlistStore) indexLocked(productID uint) int {
	for i := range w.items {
		if w.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (w *WishlistStore) persistLocked() {
	saveJSON(w.storage, w.key, w.items, w.log)
}
