package public

import "github.com/estore-next/internal/provider"

// Handler 前台/公开接口处理器入口
// 说明：设备维度的接口依赖 DeviceMiddleware 注入的设备状态。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
