package repository

import (
	"moments/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据仓储
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建CategoryRepository实例
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List() ([]*model.Category, error) {
	var list []*model.Category
	err := r.db.Order("sort_order ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *CategoryRepository) GetByID(id uint) (*model.Category, error) {
	var c model.Category
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CategoryRepository) Create(c *model.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) Update(c *model.Category) error {
	return r.db.Save(c).Error
}

// Delete 置空引用该分类的文章后删除分类
func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := NewPostRepository(tx).ClearCategory(id); err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
}
