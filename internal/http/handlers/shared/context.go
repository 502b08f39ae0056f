package shared

import (
	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/http/response"
	"github.com/estore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDevice 从上下文读取设备状态，缺失时直接写入错误响应。
func GetDevice(c *gin.Context) (*service.DeviceState, bool) {
	value, exists := c.Get(constants.DeviceContextKey)
	if !exists {
		RespondError(c, response.CodeBadRequest, "error.device_id_missing", nil)
		return nil, false
	}
	device, ok := value.(*service.DeviceState)
	if !ok || device == nil {
		RespondError(c, response.CodeBadRequest, "error.device_id_invalid", nil)
		return nil, false
	}
	return device, true
}

// GetSession 读取当前会话，未登录返回 nil。
func GetSession(c *gin.Context) *service.Session {
	value, exists := c.Get(constants.SessionContextKey)
	if !exists {
		return nil
	}
	session, ok := value.(*service.Session)
	if !ok {
		return nil
	}
	return session
}

// RequireSession 读取当前会话，未登录时写入 401。
func RequireSession(c *gin.Context) (*service.Session, bool) {
	session := GetSession(c)
	if session == nil {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return nil, false
	}
	return session, true
}
