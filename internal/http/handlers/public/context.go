package public

import (
	"strconv"

	handlershared "github.com/estore-next/internal/http/handlers/shared"
	"github.com/estore-next/internal/http/response"
	"github.com/estore-next/internal/service"

	"github.com/gin-gonic/gin"
)

func getDevice(c *gin.Context) (*service.DeviceState, bool) {
	return handlershared.GetDevice(c)
}

func getSession(c *gin.Context) *service.Session {
	return handlershared.GetSession(c)
}

func requireSession(c *gin.Context) (*service.Session, bool) {
	return handlershared.RequireSession(c)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// parseProductIDParam 解析路径中的商品ID
func parseProductIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}
