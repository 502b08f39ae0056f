package service

import (
	"strings"
	"sync"

	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/storage"

	"go.uber.org/zap"
)

const defaultMaxSearchHistory = 10

// SearchHistory 最近搜索词，最新在前且不重复
type SearchHistory struct {
	mu      sync.Mutex
	storage storage.Storage
	key     string
	limit   int
	log     *zap.SugaredLogger
	entries []string
}

// NewSearchHistory 创建搜索历史，limit<=0 时使用默认上限
func NewSearchHistory(s storage.Storage, limit int, log *zap.SugaredLogger) *SearchHistory {
	if limit <= 0 {
		limit = defaultMaxSearchHistory
	}
	h := &SearchHistory{
		storage: s,
		key:     constants.StorageKeySearchHistory,
		limit:   limit,
		log:     componentLogger(log, "search_history"),
		entries: []string{},
	}
	h.Load()
	return h
}

// Load 从存储恢复
func (h *SearchHistory) Load() {
	var entries []string
	loaded := loadJSON(h.storage, h.key, &entries, h.log)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = []string{}
	if !loaded {
		return
	}
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		h.entries = append(h.entries, entry)
		if len(h.entries) == h.limit {
			break
		}
	}
}

func pushHistory(entries []string, query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}
	next := make([]string, 0, len(entries)+1)
	next = append(next, query)
	for _, entry := range entries {
		if entry != query {
			next = append(next, entry)
		}
	}
	if len(next) > limit {
		next = next[:limit]
	}
	return next
}

// Add 记录一次搜索，空白查询忽略
func (h *SearchHistory) Add(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = pushHistory(h.entries, query, h.limit)
	saveJSON(h.storage, h.key, h.entries, h.log)
}

// Remove 删除单条记录
func (h *SearchHistory) Remove(query string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := make([]string, 0, len(h.entries))
	for _, entry := range h.entries {
		if entry != query {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(h.entries) {
		return
	}
	h.entries = kept
	saveJSON(h.storage, h.key, h.entries, h.log)
}

// Clear 清空并删除存储 key
func (h *SearchHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = []string{}
	removeKey(h.storage, h.key, h.log)
}

// List 历史副本，最新在前
func (h *SearchHistory) List() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
