package service

import (
	"fmt"
	"strings"

	"moments/internal/model"
	"moments/internal/repository"
)

// CategoryInput 分类的可编辑字段
type CategoryInput struct {
	Name      string
	IconURL   string
	SortOrder int
}

// CategoryService 分类服务
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List() ([]*model.Category, error) {
	return s.repo.List()
}

func (s *CategoryService) Get(id uint) (*model.Category, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "分类")
	}
	return c, nil
}

func (s *CategoryService) Create(in CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("分类名不能为空")
	}
	c := &model.Category{Name: name, IconURL: in.IconURL, SortOrder: in.SortOrder}
	if err := s.repo.Create(c); err != nil {
		return nil, fmt.Errorf("创建分类失败: %w", err)
	}
	return c, nil
}

func (s *CategoryService) Update(id uint, in CategoryInput) (*model.Category, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "分类")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("分类名不能为空")
	}
	c.Name = name
	c.IconURL = in.IconURL
	c.SortOrder = in.SortOrder
	if err := s.repo.Update(c); err != nil {
		return nil, fmt.Errorf("更新分类失败: %w", err)
	}
	return c, nil
}

// Delete 删除分类，引用它的文章分类被置空
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return notFound(err, "分类")
	}
	return s.repo.Delete(id)
}
