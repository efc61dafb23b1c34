package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryStorage Cloudinary 图片存储
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage 创建 Cloudinary 存储
func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("初始化Cloudinary失败: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func boolPtr(b bool) *bool { return &b }

func (s *CloudinaryStorage) Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         "moments/" + folder,
		PublicID:       uuid.NewString(),
		UniqueFilename: boolPtr(false),
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("上传到Cloudinary失败: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("上传到Cloudinary失败: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, url string) error {
	publicID, ok := publicIDFromURL(url)
	if !ok {
		return fmt.Errorf("无法解析Cloudinary URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("删除Cloudinary资源失败: %w", err)
	}
	return nil
}

// publicIDFromURL 从 .../image/upload/v123/moments/images/xxx.jpg 中取出 moments/images/xxx
func publicIDFromURL(url string) (string, bool) {
	idx := strings.Index(url, "/upload/")
	if idx < 0 {
		return "", false
	}
	rest := url[idx+len("/upload/"):]
	if parts := strings.SplitN(rest, "/", 2); len(parts) == 2 && strings.HasPrefix(parts[0], "v") {
		rest = parts[1]
	}
	if dot := strings.LastIndex(rest, "."); dot > 0 {
		rest = rest[:dot]
	}
	return rest, rest != ""
}
