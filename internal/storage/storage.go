package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/estore-next/internal/config"
	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/repository"

	"github.com/redis/go-redis/v9"
)

// ErrUnsupportedDriver 存储驱动不支持
var ErrUnsupportedDriver = errors.New("unsupported storage driver")

// Storage 设备本地键值存储（整值覆盖写）
type Storage interface {
	// GetItem 读取 key，不存在时 ok 为 false
	GetItem(key string) (value []byte, ok bool, err error)
	// SetItem 覆盖写入 key
	SetItem(key string, value []byte) error
	// RemoveItem 删除 key，不存在时忽略
	RemoveItem(key string) error
}

// Factory 按设备创建隔离的存储视图
type Factory struct {
	base   Storage
	prefix string
	driver string
}

// NewFactory 根据配置选择存储后端
func NewFactory(cfg config.StorageConfig, records repository.StoredRecordRepository, client *redis.Client) (*Factory, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	var base Storage
	switch driver {
	case "", constants.StorageDriverMemory:
		driver = constants.StorageDriverMemory
		base = NewMemoryStorage()
	case constants.StorageDriverDatabase:
		if records == nil {
			return nil, fmt.Errorf("%w: database driver requires a record repository", ErrUnsupportedDriver)
		}
		base = NewRecordStorage(records)
	case constants.StorageDriverRedis:
		if client == nil {
			return nil, fmt.Errorf("%w: redis driver requires redis.enabled", ErrUnsupportedDriver)
		}
		base = NewRedisStorage(client, 0)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}
	return &Factory{base: base, prefix: strings.TrimSpace(cfg.Prefix), driver: driver}, nil
}

// Driver 返回当前后端名称
func (f *Factory) Driver() string {
	return f.driver
}

// ForDevice 返回设备专属存储，所有 key 以 <prefix>:<deviceID>: 开头
func (f *Factory) ForDevice(deviceID string) Storage {
	if f.prefix == "" {
		return WithPrefix(f.base, deviceID)
	}
	return WithPrefix(f.base, f.prefix+":"+deviceID)
}

type prefixed struct {
	base   Storage
	prefix string
}

// WithPrefix 为底层存储的 key 统一加前缀
func WithPrefix(base Storage, prefix string) Storage {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return base
	}
	return &prefixed{base: base, prefix: prefix + ":"}
}

func (p *prefixed) GetItem(key string) ([]byte, bool, error) {
	return p.base.GetItem(p.prefix + key)
}

func (p *prefixed) SetItem(key string, value []byte) error {
	return p.base.SetItem(p.prefix+key, value)
}

func (p *prefixed) RemoveItem(key string) error {
	return p.base.RemoveItem(p.prefix + key)
}
