package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"moments/config"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// JWTService 提供 JWT 生成与校验能力
// 使用对称密钥 HS256，用户ID存放在 Subject，用户名和角色放入 Data
type JWTService struct {
	secretKey   []byte
	issuer      string
	expireAfter time.Duration
	roles       RoleResolver
}

// RoleResolver 查询用户当前角色，用户不存在时返回错误
type RoleResolver interface {
	CurrentRole(userID uint) (string, error)
}

// SetRoleResolver 设置后中间件以存储中的角色为准，令牌中的角色只作为签发时的快照
func (s *JWTService) SetRoleResolver(r RoleResolver) {
	s.roles = r
}

// refreshRole 用当前角色覆盖令牌中的管理员标记
func (s *JWTService) refreshRole(caller *Caller) error {
	if s.roles == nil {
		return nil
	}
	role, err := s.roles.CurrentRole(caller.UserID)
	if err != nil {
		return err
	}
	caller.IsAdmin = role == roleAdmin
	return nil
}

const roleAdmin = "ADMIN"

// CustomClaims 自定义声明载荷
type CustomClaims struct {
	Data map[string]interface{} `json:"data,omitempty"`
	jwtv5.RegisteredClaims
}

// Caller 当前请求的调用者身份，由中间件构建后显式传入各个服务
type Caller struct {
	UserID   uint
	Username string
	IsAdmin  bool
}

// ID 匿名调用者返回 0
func (c *Caller) ID() uint {
	if c == nil {
		return 0
	}
	return c.UserID
}

// NewJWTService 创建 JWT 服务
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secretKey:   []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		expireAfter: cfg.ExpireTime,
	}
}

// GenerateToken 生成访问令牌
func (s *JWTService) GenerateToken(userID uint, username, role string) (string, error) {
	if userID == 0 {
		return "", errors.New("userID is required")
	}

	now := time.Now()
	claims := &CustomClaims{
		Data: map[string]interface{}{
			"username": username,
			"role":     role,
		},
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(s.expireAfter)),
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// ValidateToken 校验并解析令牌
func (s *JWTService) ValidateToken(tokenString string) (*CustomClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}
	claims := &CustomClaims{}
	parsedToken, err := jwtv5.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwtv5.Token) (interface{}, error) {
			if token.Method != jwtv5.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secretKey, nil
		},
		jwtv5.WithIssuer(s.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}
	if !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ParseCaller 校验令牌并转换为调用者身份
func (s *JWTService) ParseCaller(tokenString string) (*Caller, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims.Caller()
}

// Caller 从声明中提取调用者身份
func (c *CustomClaims) Caller() (*Caller, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("invalid subject %q", c.Subject)
	}
	caller := &Caller{UserID: uint(id)}
	if c.Data != nil {
		if u, ok := c.Data["username"].(string); ok {
			caller.Username = u
		}
		if r, ok := c.Data["role"].(string); ok {
			caller.IsAdmin = r == roleAdmin
		}
	}
	return caller, nil
}
