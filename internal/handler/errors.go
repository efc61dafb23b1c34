package handler

import (
	"errors"
	"strconv"

	"moments/internal/service"
	"moments/pkg/logger"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleError 将服务层错误映射为HTTP响应
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrNotFriends):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		logger.Error("请求处理失败",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		response.ErrorWithDetails(c, 500, "服务器内部错误", err)
	}
}

// paramID 解析路径参数中的ID，失败时写入400并返回false
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "无效的"+name)
		return 0, false
	}
	return uint(id), true
}

// queryID 解析查询参数中的ID
func queryID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "无效的"+name)
		return 0, false
	}
	return uint(id), true
}
