package service

import (
	"errors"
	"fmt"
	"strings"

	"moments/internal/model"
	"moments/internal/repository"
)

// TagService 标签服务
type TagService struct {
	repo *repository.TagRepository
}

func NewTagService(repo *repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) List() ([]*model.Tag, error) {
	return s.repo.List()
}

func (s *TagService) Get(id uint) (*model.Tag, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "标签")
	}
	return t, nil
}

// Create 按名称创建标签，同名标签已存在时直接返回
func (s *TagService) Create(name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("标签名不能为空")
	}
	existing, err := s.repo.GetByName(name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询标签失败: %w", err)
	}
	t := &model.Tag{Name: name}
	if err := s.repo.Create(t); err != nil {
		return nil, fmt.Errorf("创建标签失败: %w", err)
	}
	return t, nil
}

// Delete 删除标签及其文章关联
func (s *TagService) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return notFound(err, "标签")
	}
	return s.repo.Delete(id)
}
