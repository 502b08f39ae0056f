package storage

import "github.com/estore-next/internal/repository"

// RecordStorage 基于 stored_records 表的持久化存储
type RecordStorage struct {
	repo repository.StoredRecordRepository
}

// NewRecordStorage 创建数据库存储
func NewRecordStorage(repo repository.StoredRecordRepository) *RecordStorage {
	return &RecordStorage{repo: repo}
}

// GetItem 读取 key
func (s *RecordStorage) GetItem(key string) ([]byte, bool, error) {
	record, err := s.repo.Get(key)
	if err != nil {
		return nil, false, err
	}
	if record == nil {
		return nil, false, nil
	}
	return []byte(record.Value), true, nil
}

// SetItem 覆盖写入 key
func (s *RecordStorage) SetItem(key string, value []byte) error {
	return s.repo.Put(key, string(value))
}

// RemoveItem 删除 key
func (s *RecordStorage) RemoveItem(key string) error {
	return s.repo.Delete(key)
}
