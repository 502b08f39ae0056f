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

// AddressBook 设备收货地址簿，至多一个默认地址
type AddressBook struct {
	mu        sync.Mutex
	storage   storage.Storage
	key       string
	log       *zap.SugaredLogger
	addresses []models.Address
}

// NewAddressBook 创建地址簿并从存储恢复
func NewAddressBook(s storage.Storage, log *zap.SugaredLogger) *AddressBook {
	book := &AddressBook{
		storage:   s,
		key:       constants.StorageKeyAddresses,
		log:       componentLogger(log, "address_book"),
		addresses: []models.Address{},
	}
	book.Load()
	return book
}

// Load 从存储恢复
func (b *AddressBook) Load() {
	var addresses []models.Address
	loaded := loadJSON(b.storage, b.key, &addresses, b.log)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.addresses = []models.Address{}
	if loaded {
		b.addresses = addresses
		b.ensureDefaultLocked()
	}
}

// Add 新增地址；首个地址或 IsDefault 为 true 时设为默认
func (b *AddressBook) Add(address models.Address) (models.Address, error) {
	address = trimAddress(address)
	if len(address.MissingFields()) > 0 {
		return models.Address{}, ErrAddressInvalid
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	address.ID = uuid.NewString()
	if len(b.addresses) == 0 {
		address.IsDefault = true
	}
	if address.IsDefault {
		for i := range b.addresses {
			b.addresses[i].IsDefault = false
		}
	}
	b.addresses = append(b.addresses, address)
	saveJSON(b.storage, b.key, b.addresses, b.log)
	return address, nil
}

// List 地址列表副本
func (b *AddressBook) List() []models.Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Address, len(b.addresses))
	copy(out, b.addresses)
	return out
}

// Get 按ID查找地址
func (b *AddressBook) Get(id string) (*models.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if idx := b.indexLocked(id); idx >= 0 {
		address := b.addresses[idx]
		return &address, nil
	}
	return nil, ErrAddressNotFound
}

// Default 返回默认地址，地址簿为空时返回 nil
func (b *AddressBook) Default() *models.Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.addresses {
		if b.addresses[i].IsDefault {
			address := b.addresses[i]
			return &address
		}
	}
	return nil
}

// Remove 删除地址，删除默认地址时首个地址成为默认
func (b *AddressBook) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.indexLocked(id)
	if idx < 0 {
		return ErrAddressNotFound
	}
	b.addresses = append(b.addresses[:idx], b.addresses[idx+1:]...)
	b.ensureDefaultLocked()
	saveJSON(b.storage, b.key, b.addresses, b.log)
	return nil
}

// SetDefault 设置默认地址
func (b *AddressBook) SetDefault(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.indexLocked(id)
	if idx < 0 {
		return ErrAddressNotFound
	}
	for i := range b.addresses {
		b.addresses[i].IsDefault = i == idx
	}
	saveJSON(b.storage, b.key, b.addresses, b.log)
	return nil
}

func (b *AddressBook) ensureDefaultLocked() {
	if len(b.addresses) == 0 {
		return
	}
	found := false
	for i := range b.addresses {
		if b.addresses[i].IsDefault {
			if found {
				b.addresses[i].IsDefault = false
			}
			found = true
		}
	}
	if !found {
		b.addresses[0].IsDefault = true
	}
}

func (b *AddressBook) indexLocked(id string) int {
	for i := range b.addresses {
		if b.addresses[i].ID == id {
			return i
		}
	}
	return -1
}

func trimAddress(address models.Address) models.Address {
	address.Name = strings.TrimSpace(address.Name)
	address.Phone = strings.TrimSpace(address.Phone)
	address.Province = strings.TrimSpace(address.Province)
	address.City = strings.TrimSpace(address.City)
	address.District = strings.TrimSpace(address.District)
	address.Street = strings.TrimSpace(address.Street)
	address.ZipCode = strings.TrimSpace(address.ZipCode)
	return address
}
