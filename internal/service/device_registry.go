package service

import (
	"strings"
	"sync"
	"time"

	"github.com/estore-next/internal/logger"
	"github.com/estore-next/internal/storage"
)

const maxDeviceIDLength = 64

// DeviceStorage 按设备提供隔离存储
type DeviceStorage interface {
	ForDevice(deviceID string) storage.Storage
}

// DeviceCatalog 设备状态依赖的目录能力
type DeviceCatalog interface {
	CatalogSource
	CheckoutCatalog
}

// DeviceState 单个设备的全部状态容器
type DeviceState struct {
	ID        string
	Cart      *CartStore
	Wishlist  *WishlistStore
	History   *SearchHistory
	Addresses *AddressBook
	Search    *SearchSession
	Checkout  *CheckoutService

	lastSeen time.Time
	refs     int
}

// DeviceRegistryOptions 设备状态参数
type DeviceRegistryOptions struct {
	SearchDebounce time.Duration
	MaxHistory     int
}

// DeviceRegistry 懒加载设备状态，同一设备始终返回同一组容器
type DeviceRegistry struct {
	mu        sync.Mutex
	storage   DeviceStorage
	catalog   DeviceCatalog
	submitter OrderSubmitter
	opts      DeviceRegistryOptions
	devices   map[string]*DeviceState
	now       func() time.Time
}

// NewDeviceRegistry 创建设备注册表
func NewDeviceRegistry(deviceStorage DeviceStorage, catalog DeviceCatalog, submitter OrderSubmitter, opts DeviceRegistryOptions) *DeviceRegistry {
	return &DeviceRegistry{
		storage:   deviceStorage,
		catalog:   catalog,
		submitter: submitter,
		opts:      opts,
		devices:   make(map[string]*DeviceState),
		now:       time.Now,
	}
}

// ValidDeviceID 设备ID仅允许字母、数字、- 与 _，长度 1-64
func ValidDeviceID(deviceID string) bool {
	if deviceID == "" || len(deviceID) > maxDeviceIDLength {
		return false
	}
	for _, r := range deviceID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// Get 获取设备状态，首次访问时从存储恢复
func (r *DeviceRegistry) Get(deviceID string) (*DeviceState, error) {
	return r.lookup(deviceID, false)
}

// Acquire 获取设备状态并标记为使用中，使用方结束后必须调用 Release；使用中的设备不会被 EvictIdle 释放
func (r *DeviceRegistry) Acquire(deviceID string) (*DeviceState, error) {
	return r.lookup(deviceID, true)
}

// Release 结束一次 Acquire
func (r *DeviceRegistry) Release(state *DeviceState) {
	if state == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if state.refs > 0 {
		state.refs--
	}
	state.lastSeen = r.now()
}

func (r *DeviceRegistry) lookup(deviceID string, hold bool) (*DeviceState, error) {
	deviceID = strings.TrimSpace(deviceID)
	if !ValidDeviceID(deviceID) {
		return nil, ErrDeviceIDInvalid
	}
	r.mu.Lock()
	if state, ok := r.devices[deviceID]; ok {
		r.touchLocked(state, hold)
		r.mu.Unlock()
		return state, nil
	}
	r.mu.Unlock()

	// 存储读取在锁外进行，慢后端只阻塞当前设备
	loaded := r.load(deviceID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if state, ok := r.devices[deviceID]; ok {
		loaded.Search.Close()
		r.touchLocked(state, hold)
		return state, nil
	}
	r.devices[deviceID] = loaded
	r.touchLocked(loaded, hold)
	return loaded, nil
}

func (r *DeviceRegistry) touchLocked(state *DeviceState, hold bool) {
	state.lastSeen = r.now()
	if hold {
		state.refs++
	}
}

func (r *DeviceRegistry) load(deviceID string) *DeviceState {
	scoped := r.storage.ForDevice(deviceID)
	log := logger.SW("device_id", deviceID)
	cart := NewCartStore(scoped, "", log.Named("cart"))
	addresses := NewAddressBook(scoped, log.Named("address_book"))
	state := &DeviceState{
		ID:        deviceID,
		Cart:      cart,
		Wishlist:  NewWishlistStore(scoped, "", log.Named("wishlist")),
		History:   NewSearchHistory(scoped, r.opts.MaxHistory, log.Named("search_history")),
		Addresses: addresses,
		Search:    NewSearchSession(r.catalog, r.opts.SearchDebounce, log.Named("search_session")),
		Checkout:  NewCheckoutService(deviceID, cart, addresses, r.catalog, r.submitter, log.Named("checkout")),
	}
	log.Debugw("device_state_loaded", "cart_lines", len(cart.Items()))
	return state
}

// Len 已加载的设备数
func (r *DeviceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.devices)
}

// EvictIdle 释放超过 idle 未访问且未被持有的设备状态（数据已在存储中），返回释放数量
func (r *DeviceRegistry) EvictIdle(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, state := range r.devices {
		if state.refs > 0 || state.Checkout.Pending() || !state.lastSeen.Before(cutoff) {
			continue
		}
		state.Search.Close()
		delete(r.devices, id)
		evicted++
	}
	return evicted
}

// Close 停止所有设备的防抖定时器
func (r *DeviceRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, state := range r.devices {
		state.Search.Close()
	}
}
