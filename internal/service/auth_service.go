package service

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/estore-next/internal/config"
	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultSessionExpireHours = 30 * 24
	minPasswordLength         = 6
	demoPassword              = "password123"
)

// Session 结算与订单只依赖会话是否存在及其基础信息
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role"`
}

type credentialUser struct {
	Session
	passwordHash string
}

// SessionClaims 会话 JWT 声明
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService 模拟凭证提供方：内置两个演示账号，注册用户只保存在内存
type AuthService struct {
	cfg    config.JWTConfig
	mu     sync.RWMutex
	users  map[string]*credentialUser
	nextID int
}

// NewAuthService 创建认证服务并写入演示账号
func NewAuthService(cfg config.JWTConfig) (*AuthService, error) {
	s := &AuthService{
		cfg:    cfg,
		users:  make(map[string]*credentialUser),
		nextID: 1,
	}
	demo := []Session{
		{Name: "管理员", Email: "admin@example.com", Role: constants.RoleAdmin, Image: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400"},
		{Name: "普通用户", Email: "user@example.com", Role: constants.RoleUser, Image: "https://images.unsplash.com/photo-1494790108755-2616b612b098?w=400"},
	}
	for _, user := range demo {
		if _, err := s.addUser(user, demoPassword); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *AuthService) addUser(session Session, password string) (*credentialUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(session.Email)
	if _, exists := s.users[key]; exists {
		return nil, ErrEmailExists
	}
	session.ID = strconv.Itoa(s.nextID)
	s.nextID++
	user := &credentialUser{Session: session, passwordHash: string(hash)}
	s.users[key] = user
	return user, nil
}

// Register 注册新用户，所有字段必填且密码至少 6 位
func (s *AuthService) Register(email, password, name string) (*Session, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, ErrRegisterFields
	}
	if len([]rune(password)) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	user, err := s.addUser(Session{Email: email, Name: name, Role: constants.RoleUser}, password)
	if err != nil {
		return nil, err
	}
	logger.Infow("auth_user_registered", "user_id", user.ID, "email", user.Email)
	session := user.Session
	return &session, nil
}

// Login 校验邮箱密码并签发会话 token
func (s *AuthService) Login(email, password string) (*Session, string, time.Time, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	s.mu.RLock()
	user := s.users[normalizeEmail(email)]
	s.mu.RUnlock()
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.passwordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	session := user.Session
	token, expiresAt, err := s.GenerateJWT(&session)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return &session, token, expiresAt, nil
}

// GenerateJWT 生成会话 token
func (s *AuthService) GenerateJWT(session *Session) (string, time.Time, error) {
	hours := s.cfg.ExpireHours
	if hours <= 0 {
		hours = defaultSessionExpireHours
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	claims := SessionClaims{
		UserID: session.ID,
		Email:  session.Email,
		Name:   session.Name,
		Role:   session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken 解析会话 token
func (s *AuthService) ParseToken(tokenString string) (*Session, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &Session{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
