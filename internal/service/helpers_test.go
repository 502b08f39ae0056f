package service

import (
	"errors"
	"sync"
	"time"

	"github.com/estore-next/internal/models"
	"github.com/estore-next/internal/storage"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var errStorageDown = errors.New("storage quota exceeded")

// failingStorage 读写均失败的存储
type failingStorage struct {
	mu     sync.Mutex
	writes int
}

func (f *failingStorage) GetItem(string) ([]byte, bool, error) {
	return nil, false, errStorageDown
}

func (f *failingStorage) SetItem(string, []byte) error {
	f.mu.Lock()
	f.writes++
	f.mu.Unlock()
	return errStorageDown
}

func (f *failingStorage) RemoveItem(string) error {
	return errStorageDown
}

var _ storage.Storage = (*failingStorage)(nil)

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func testProduct(id uint, name string, price string, stock int) *models.Product {
	return &models.Product{
		ID:     id,
		Name:   name,
		Price:  models.MustMoney(price),
		Images: models.StringArray{"/img/" + name + ".jpg"},
		Stock:  stock,
	}
}

func testCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "iPhone 15 Pro Max", Price: models.MustMoney("9999"), Category: "手机数码", Brand: "Apple", Rating: 4.8, Stock: 50, Sales: 1280, Tags: models.StringArray{"手机", "Apple"}, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "MacBook Air M3", Price: models.MustMoney("8999"), Category: "电脑办公", Brand: "Apple", Rating: 4.9, Stock: 30, Sales: 890, Tags: models.StringArray{"笔记本电脑"}, CreatedAt: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Name: "AirPods Pro 3", Price: models.MustMoney("1999"), Category: "数码配件", Brand: "Apple", Rating: 4.7, Stock: 0, Sales: 2100, Tags: models.StringArray{"耳机"}, CreatedAt: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
	}
}

func moneyRef(raw string) *models.Money {
	m := models.MustMoney(raw)
	return &m
}

// staticCatalog 内存目录，供会话与结算测试使用
type staticCatalog struct {
	products []models.Product
	coupons  []models.Coupon
	methods  []models.ShippingMethod
	err      error
}

func newStaticCatalog() *staticCatalog {
	return &staticCatalog{
		products: testCatalog(),
		coupons:  models.DemoCoupons(),
		methods:  models.DemoShippingMethods(),
	}
}

func (c *staticCatalog) Products() ([]models.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.products, nil
}

func (c *staticCatalog) Coupons() ([]models.Coupon, error) {
	return c.coupons, nil
}

func (c *staticCatalog) ShippingMethod(id string) (*models.ShippingMethod, error) {
	for i := range c.methods {
		if c.methods[i].ID == id {
			method := c.methods[i]
			return &method, nil
		}
	}
	return nil, ErrShippingMethodNotFound
}
