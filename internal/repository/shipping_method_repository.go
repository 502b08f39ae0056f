package repository

import (
	"errors"

	"github.com/estore-next/internal/models"

	"gorm.io/gorm"
)

// ShippingMethodRepository 配送方式数据访问接口
type ShippingMethodRepository interface {
	List() ([]models.ShippingMethod, error)
	GetByID(id string) (*models.ShippingMethod, error)
}

// GormShippingMethodRepository GORM 实现
type GormShippingMethodRepository struct {
	db *gorm.DB
}

// NewShippingMethodRepository 创建配送方式仓库
func NewShippingMethodRepository(db *gorm.DB) *GormShippingMethodRepository {
	return &GormShippingMethodRepository{db: db}
}

// List 按展示顺序返回配送方式
func (r *GormShippingMethodRepository) List() ([]models.ShippingMethod, error) {
	var methods []models.ShippingMethod
	if err := r.db.Order("sort_order asc, id asc").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// GetByID 根据ID获取配送方式，不存在时返回 nil
func (r *GormShippingMethodRepository) GetByID(id string) (*models.ShippingMethod, error) {
	if id == "" {
		return nil, nil
	}
	var method models.ShippingMethod
	if err := r.db.Where("id = ?", id).First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}
