package service

import (
	"sync"
	"time"

	"github.com/estore-next/internal/models"

	"go.uber.org/zap"
)

const defaultSearchDebounce = 300 * time.Millisecond

// CatalogSource 提供搜索所需的商品目录
type CatalogSource interface {
	Products() ([]models.Product, error)
}

// SearchSnapshot 会话最近一次结果
type SearchSnapshot struct {
	Revision uint64        `json:"revision"`
	Query    string        `json:"query"`
	Filters  SearchFilters `json:"filters"`
	Pending  bool          `json:"pending"`
	Result   SearchResult  `json:"result"`
}

// SearchSession 防抖搜索会话：每次 Update 取消未触发的定时器并重新计时，触发时只执行一次管线
type SearchSession struct {
	mu       sync.Mutex
	catalog  CatalogSource
	delay    time.Duration
	log      *zap.SugaredLogger
	timer    *time.Timer
	seq      uint64
	revision uint64
	query    string
	filters  SearchFilters
	result   SearchResult
	closed   bool
	onRun    func(SearchSnapshot)
}

// NewSearchSession 创建防抖会话，delay<=0 时使用 300ms
func NewSearchSession(catalog CatalogSource, delay time.Duration, log *zap.SugaredLogger) *SearchSession {
	if delay <= 0 {
		delay = defaultSearchDebounce
	}
	return &SearchSession{
		catalog: catalog,
		delay:   delay,
		log:     componentLogger(log, "search_session"),
		result:  SearchResult{Items: []models.Product{}},
	}
}

// OnRun 注册管线执行完成后的回调（测试与监听用）
func (s *SearchSession) OnRun(fn func(SearchSnapshot)) {
	s.mu.Lock()
	s.onRun = fn
	s.mu.Unlock()
}

// Update 记录最新条件并重新计时，后写覆盖先写
func (s *SearchSession) Update(query string, filters SearchFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.query = query
	s.filters = filters
	s.seq++
	seq := s.seq
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.fire(seq)
	})
}

// Flush 立即执行管线并取消未触发的定时器
func (s *SearchSession) Flush() SearchSnapshot {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()
	s.fire(seq)
	return s.Snapshot()
}

// Snapshot 返回最近一次结果
func (s *SearchSession) Snapshot() SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close 停止未触发的定时器，之后的 Update 不再生效
func (s *SearchSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *SearchSession) snapshotLocked() SearchSnapshot {
	return SearchSnapshot{
		Revision: s.revision,
		Query:    s.query,
		Filters:  s.filters,
		Pending:  s.timer != nil,
		Result:   s.result,
	}
}

func (s *SearchSession) fire(seq uint64) {
	s.mu.Lock()
	if seq != s.seq {
		// 已被更新的条件取代
		s.mu.Unlock()
		return
	}
	query, filters := s.query, s.filters
	s.mu.Unlock()

	products, err := s.catalog.Products()
	if err != nil {
		s.log.Warnw("search_session_catalog_failed", "error", err)
		s.mu.Lock()
		if seq == s.seq {
			s.timer = nil
		}
		s.mu.Unlock()
		return
	}
	result := Search(products, query, filters)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.revision++
	s.result = result
	s.timer = nil
	snapshot := s.snapshotLocked()
	onRun := s.onRun
	s.mu.Unlock()

	s.log.Debugw("search_session_flushed", "revision", snapshot.Revision, "query", query, "total", result.Total)
	if onRun != nil {
		onRun(snapshot)
	}
}
