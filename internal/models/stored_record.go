package models

import "time"

// StoredRecord 设备本地存储的持久化镜像（整条 JSON 覆盖写）
type StoredRecord struct {
	Key       string    `gorm:"primarykey;column:storage_key;type:varchar(255)" json:"key"` // 存储 key
	Value     string    `gorm:"type:text;not null" json:"value"`         // JSON 内容
	UpdatedAt time.Time `json:"updated_at"`                              // 更新时间
}

// TableName 指定表名
func (StoredRecord) TableName() string {
	return "stored_records"
}
