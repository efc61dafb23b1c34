package repository

import (
	"moments/internal/model"

	"gorm.io/gorm"
)

// TagRepository 标签数据仓储
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建TagRepository实例
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List() ([]*model.Tag, error) {
	var tags []*model.Tag
	err := r.db.Order("id ASC").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) GetByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (r *TagRepository) GetByName(name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

// CountByIDs 统计给定ID中存在的标签数量
func (r *TagRepository) CountByIDs(ids []uint) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.db.Model(&model.Tag{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *TagRepository) Create(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

// Delete 先删除文章关联再删除标签
func (r *TagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, id).Error
	})
}
