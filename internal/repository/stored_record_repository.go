package repository

import (
	"errors"
	"time"

	"github.com/estore-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoredRecordRepository 设备存储记录数据访问接口
type StoredRecordRepository interface {
	Get(key string) (*models.StoredRecord, error)
	Put(key string, value string) error
	Delete(key string) error
}

// GormStoredRecordRepository GORM 实现
type GormStoredRecordRepository struct {
	db *gorm.DB
}

// NewStoredRecordRepository 创建存储记录仓库
func NewStoredRecordRepository(db *gorm.DB) *GormStoredRecordRepository {
	return &GormStoredRecordRepository{db: db}
}

// Get 读取记录，不存在时返回 nil
func (r *GormStoredRecordRepository) Get(key string) (*models.StoredRecord, error) {
	var record models.StoredRecord
	if err := r.db.Where("storage_key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Put 覆盖写入记录
func (r *GormStoredRecordRepository) Put(key string, value string) error {
	record := models.StoredRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}

// Delete 删除记录，不存在时忽略
func (r *GormStoredRecordRepository) Delete(key string) error {
	return r.db.Where("storage_key = ?", key).Delete(&models.StoredRecord{}).Error
}
