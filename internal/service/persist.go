package service

import (
	"encoding/json"

	"github.com/estore-next/internal/logger"
	"github.com/estore-next/internal/storage"

	"go.uber.org/zap"
)

func componentLogger(log *zap.SugaredLogger, component string) *zap.SugaredLogger {
	if log != nil {
		return log
	}
	return logger.Named(component)
}

// loadJSON 从设备存储恢复状态；数据缺失返回 false，损坏或读取失败记录日志后同样返回 false
func loadJSON(s storage.Storage, key string, dest interface{}, log *zap.SugaredLogger) bool {
	if s == nil {
		return false
	}
	raw, ok, err := s.GetItem(key)
	if err != nil {
		log.Warnw("storage_read_failed", "key", key, "error", err)
		return false
	}
	if !ok || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warnw("storage_decode_failed", "key", key, "error", err)
		return false
	}
	return true
}

// saveJSON 整值覆盖写入设备存储，失败只记录日志，内存状态保持不变
func saveJSON(s storage.Storage, key string, value interface{}, log *zap.SugaredLogger) {
	if s == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warnw("storage_encode_failed", "key", key, "error", err)
		return
	}
	if err := s.SetItem(key, raw); err != nil {
		log.Warnw("storage_write_failed", "key", key, "error", err)
	}
}

func removeKey(s storage.Storage, key string, log *zap.SugaredLogger) {
	if s == nil {
		return
	}
	if err := s.RemoveItem(key); err != nil {
		log.Warnw("storage_remove_failed", "key", key, "error", err)
	}
}
