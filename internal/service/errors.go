package service

import (
	"errors"
	"fmt"

	"moments/internal/repository"
)

// 服务层哨兵错误，handler 通过 errors.Is 映射为 HTTP 状态码
var (
	ErrNotFound           = errors.New("资源不存在")
	ErrForbidden          = errors.New("无权执行该操作")
	ErrInvalidInput       = errors.New("参数无效")
	ErrNotFriends         = errors.New("对方不是你的好友")
	ErrConflict           = errors.New("资源已存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
)

// invalid 包装参数错误并附带说明
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// notFound 将仓储层的未找到错误转换为 ErrNotFound，其他错误附带上下文返回
func notFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("查询%s失败: %w", what, err)
}
