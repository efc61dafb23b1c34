package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"moments/pkg/logger"
	"moments/pkg/storage"

	"go.uber.org/zap"
)

// 上传目录
const (
	FolderImages      = "images"
	FolderAvatars     = "avatars"
	FolderBackgrounds = "backgrounds"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// FileService 图片上传服务
type FileService struct {
	store   storage.Storage
	maxSize int64
}

// NewFileService 创建FileService实例，maxSize 为单个文件大小上限（字节）
func NewFileService(store storage.Storage, maxSize int64) *FileService {
	return &FileService{store: store, maxSize: maxSize}
}

// UploadImage 校验类型与大小后上传到指定目录，返回公开URL
func (s *FileService) UploadImage(ctx context.Context, folder, filename, contentType string, size int64, r io.Reader) (string, error) {
	switch folder {
	case FolderImages, FolderAvatars, FolderBackgrounds:
	default:
		return "", invalid("未知的上传目录: %s", folder)
	}
	if size <= 0 {
		return "", invalid("文件为空")
	}
	if size > s.maxSize {
		return "", invalid("文件大小不能超过%dMB", s.maxSize/1024/1024)
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !allowedImageTypes[contentType] {
		return "", invalid("不支持的文件类型: %s", contentType)
	}

	url, err := s.store.Upload(ctx, folder, filename, r)
	if err != nil {
		logger.Error("上传文件失败", zap.String("folder", folder), zap.String("filename", filename), zap.Error(err))
		return "", fmt.Errorf("上传文件失败: %w", err)
	}
	return url, nil
}

// Delete 根据URL删除已上传的文件
func (s *FileService) Delete(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return invalid("URL不能为空")
	}
	if err := s.store.Delete(ctx, url); err != nil {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}
