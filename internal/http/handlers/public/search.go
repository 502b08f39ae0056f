package public

import (
	"strings"

	"github.com/estore-next/internal/http/response"
	"github.com/estore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchHistoryRequest 搜索历史请求
type SearchHistoryRequest struct {
	Query string `json:"query" binding:"required"`
}

// SearchSessionRequest 搜索会话更新请求；Submit 为 true 时立即执行并记入历史
type SearchSessionRequest struct {
	Query   string                `json:"query"`
	Filters service.SearchFilters `json:"filters"`
	Submit  bool                  `json:"submit"`
}

// GetSuggestions 搜索建议
func (h *Handler) GetSuggestions(c *gin.Context) {
	suggestions, err := h.CatalogService.Suggestions(c.Query("q"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.search_failed", err)
		return
	}
	response.Success(c, suggestions)
}

// GetPopularSearches 热门搜索
func (h *Handler) GetPopularSearches(c *gin.Context) {
	response.Success(c, service.PopularSearches())
}

// GetSearchHistory 设备搜索历史
func (h *Handler) GetSearchHistory(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	response.Success(c, device.History.List())
}

// AddSearchHistory 记录搜索词
func (h *Handler) AddSearchHistory(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	var req SearchHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	device.History.Add(req.Query)
	response.Success(c, device.History.List())
}

// DeleteSearchHistory 删除单条搜索历史
func (h *Handler) DeleteSearchHistory(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	device.History.Remove(c.Param("query"))
	response.Success(c, device.History.List())
}

// ClearSearchHistory 清空搜索历史
func (h *Handler) ClearSearchHistory(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	device.History.Clear()
	response.Success(c, gin.H{"cleared": true})
}

// UpdateSearchSession 更新搜索输入，默认走防抖
func (h *Handler) UpdateSearchSession(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	var req SearchSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	req.Filters.Sort = service.NormalizeSort(req.Filters.Sort)
	device.Search.Update(req.Query, req.Filters)
	if !req.Submit {
		response.Success(c, device.Search.Snapshot())
		return
	}
	if query := strings.TrimSpace(req.Query); query != "" {
		device.History.Add(query)
	}
	snapshot := device.Search.Flush()
	requestLog(c).Debugw("search_session_submitted",
		"device_id", device.ID,
		"revision", snapshot.Revision,
		"total", snapshot.Result.Total,
	)
	response.Success(c, snapshot)
}

// GetSearchSession 读取最近一次搜索结果
func (h *Handler) GetSearchSession(c *gin.Context) {
	device, ok := getDevice(c)
	if !ok {
		return
	}
	response.Success(c, device.Search.Snapshot())
}
