package provider

import (
	"errors"
	"time"

	"github.com/estore-next/internal/cache"
	"github.com/estore-next/internal/config"
	"github.com/estore-next/internal/logger"
	"github.com/estore-next/internal/models"
	"github.com/estore-next/internal/queue"
	"github.com/estore-next/internal/repository"
	"github.com/estore-next/internal/service"
	"github.com/estore-next/internal/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	RedisClient *redis.Client

	// Repositories
	ProductRepo        repository.ProductRepository
	CouponRepo         repository.CouponRepository
	ShippingMethodRepo repository.ShippingMethodRepository
	OrderRepo          repository.OrderRepository
	StoredRecordRepo   repository.StoredRecordRepository

	// Services
	StorageFactory *storage.Factory
	CatalogService *service.CatalogService
	OrderService   *service.OrderService
	AuthService    *service.AuthService
	DeviceRegistry *service.DeviceRegistry
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c, err := Build(cfg, models.DB, queueClient, cache.Client())
	if err != nil {
		logger.Errorw("provider_init_failed", "error", err)
		panic(err)
	}
	return c
}

// Build 使用给定的数据库与客户端组装容器
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, redisClient *redis.Client) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if db == nil {
		return nil, errors.New("database not initialized")
	}
	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
		RedisClient: redisClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	c.ProductRepo = repository.NewProductRepository(c.DB)
	c.CouponRepo = repository.NewCouponRepository(c.DB)
	c.ShippingMethodRepo = repository.NewShippingMethodRepository(c.DB)
	c.OrderRepo = repository.NewOrderRepository(c.DB)
	c.StoredRecordRepo = repository.NewStoredRecordRepository(c.DB)
}

func (c *Container) initServices() error {
	factory, err := storage.NewFactory(c.Config.Storage, c.StoredRecordRepo, c.RedisClient)
	if err != nil {
		return err
	}
	c.StorageFactory = factory

	authService, err := service.NewAuthService(c.Config.JWT)
	if err != nil {
		return err
	}
	c.AuthService = authService

	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CouponRepo, c.ShippingMethodRepo, c.Config.Search.MaxSuggestions)
	c.OrderService = service.NewOrderService(c.DB, c.OrderRepo, c.QueueClient, service.OrderServiceOptions{
		Currency:    c.Config.Checkout.Currency,
		SubmitDelay: time.Duration(c.Config.Checkout.SubmitDelayMS) * time.Millisecond,
	})
	c.DeviceRegistry = service.NewDeviceRegistry(c.StorageFactory, c.CatalogService, c.OrderService, service.DeviceRegistryOptions{
		SearchDebounce: time.Duration(c.Config.Search.DebounceMS) * time.Millisecond,
		MaxHistory:     c.Config.Search.MaxHistory,
	})
	logger.Debugw("provider_services_ready",
		"storage_driver", c.StorageFactory.Driver(),
		"queue_enabled", c.QueueClient.Enabled(),
	)
	return nil
}

// Close 释放容器持有的资源
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DeviceRegistry != nil {
		c.DeviceRegistry.Close()
	}
	return c.QueueClient.Close()
}
