package repository

import (
	"moments/internal/model"

	"gorm.io/gorm"
)

// CommentRepository 评论数据仓储
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建CommentRepository实例
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(c *model.Comment) error {
	return r.db.Create(c).Error
}

func (r *CommentRepository) GetByID(id uint) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// ListByPost 文章的全部评论，按时间正序
func (r *CommentRepository) ListByPost(postID uint) ([]*model.Comment, error) {
	var list []*model.Comment
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&list).Error
	return list, err
}

// ListByPostAndPosition 文章某个位置上的评论
func (r *CommentRepository) ListByPostAndPosition(postID uint, position int) ([]*model.Comment, error) {
	var list []*model.Comment
	err := r.db.Where("post_id = ? AND position = ?", postID, position).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *CommentRepository) UpdateContent(id uint, content string) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).Update("content", content).Error
}

func (r *CommentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Comment{}, id).Error
}

func (r *CommentRepository) ListAll() ([]*model.Comment, error) {
	var list []*model.Comment
	err := r.db.Order("id DESC").Find(&list).Error
	return list, err
}
