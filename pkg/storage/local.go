package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage 本地磁盘存储，文件名使用UUID
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage 创建本地存储，目录不存在时自动创建
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir 存储根目录，供静态文件服务使用
func (s *LocalStorage) Dir() string { return s.dir }

func (s *LocalStorage) Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	if err := os.MkdirAll(filepath.Join(s.dir, folder), 0755); err != nil {
		return "", fmt.Errorf("创建存储目录失败: %w", err)
	}

	f, err := os.Create(filepath.Join(s.dir, folder, name))
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	return s.baseURL + "/" + path.Join(folder, name), nil
}

func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	rel := strings.TrimPrefix(url, s.baseURL+"/")
	if rel == url || strings.Contains(rel, "..") {
		return fmt.Errorf("不属于本存储的URL: %s", url)
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
