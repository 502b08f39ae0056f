package public

import (
	"time"

	"github.com/estore-next/internal/http/response"
	"github.com/estore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SessionResponse 登录/注册响应
type SessionResponse struct {
	User      *service.Session `json:"user"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// Login 邮箱密码登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	session, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err, "error.login_failed")
		return
	}
	response.Success(c, SessionResponse{User: session, Token: token, ExpiresAt: expiresAt})
}

// Register 注册并直接登录
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	session, err := h.AuthService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondAuthError(c, err, "error.register_failed")
		return
	}
	token, expiresAt, err := h.AuthService.GenerateJWT(session)
	if err != nil {
		respondError(c, response.CodeInternal, "error.register_failed", err)
		return
	}
	response.Success(c, SessionResponse{User: session, Token: token, ExpiresAt: expiresAt})
}

// GetMe 当前会话
func (h *Handler) GetMe(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	response.Success(c, session)
}
