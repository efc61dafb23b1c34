package jwt

import (
	"strings"

	"moments/pkg/logger"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextCallerKey 调用者身份在gin.Context中的键名
const ContextCallerKey = "caller"

// bearerToken 从 Authorization 头中取出 Bearer 令牌
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// AuthMiddleware JWT认证中间件
// 从请求头中提取Authorization: Bearer <token>，验证后将 Caller 存入gin.Context
func (s *JWTService) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "缺少或格式错误的Authorization请求头")
			c.Abort()
			return
		}

		caller, err := s.ParseCaller(tokenString)
		if err != nil {
			logger.Warn("JWT验证失败",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			response.Unauthorized(c, "token无效或已过期")
			c.Abort()
			return
		}
		if err := s.refreshRole(caller); err != nil {
			logger.Warn("查询用户角色失败",
				zap.Uint("user_id", caller.UserID),
				zap.Error(err),
			)
			response.Unauthorized(c, "用户不存在或已被删除")
			c.Abort()
			return
		}

		c.Set(ContextCallerKey, caller)
		c.Next()
	}
}

// OptionalAuthMiddleware 可选认证：令牌缺失或无效时按匿名访问处理
func (s *JWTService) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if caller, err := s.ParseCaller(tokenString); err == nil && s.refreshRole(caller) == nil {
				c.Set(ContextCallerKey, caller)
			}
		}
		c.Next()
	}
}

// AdminMiddleware 要求调用者为管理员，需放在 AuthMiddleware 之后
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := GetCaller(c)
		if caller == nil || !caller.IsAdmin {
			response.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCaller 从gin.Context中获取调用者，匿名时返回nil
func GetCaller(c *gin.Context) *Caller {
	if v, exists := c.Get(ContextCallerKey); exists {
		if caller, ok := v.(*Caller); ok {
			return caller
		}
	}
	return nil
}
