package storage

import (
	"context"
	"fmt"
	"io"

	"moments/config"
)

// Storage 对象存储
type Storage interface {
	// Upload 上传对象到 folder 下，返回可公开访问的URL
	Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	// Delete 根据 Upload 返回的URL删除对象
	Delete(ctx context.Context, url string) error
}

// New 根据配置创建存储实现
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicBaseURL)
	case "cloudinary":
		return NewCloudinaryStorage(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	default:
		return nil, fmt.Errorf("不支持的存储类型: %s", cfg.Type)
	}
}
