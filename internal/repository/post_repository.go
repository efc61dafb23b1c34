package repository

import (
	"moments/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository 文章数据仓储，负责文章、媒体与标签关联
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建PostRepository实例
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Transaction 在同一个数据库事务中执行 fn，fn 返回错误时整体回滚
func (r *PostRepository) Transaction(fn func(tx *PostRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&PostRepository{db: tx})
	})
}

// withDetails 预加载媒体（按 sort_order, id 排序）和标签
func (r *PostRepository) withDetails() *gorm.DB {
	return r.db.
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tag.id ASC")
		})
}

// Create 只插入文章行，媒体与标签由调用方单独写入
func (r *PostRepository) Create(post *model.BlogPost) error {
	return r.db.Omit(clause.Associations).Create(post).Error
}

// Update 覆盖文章行的全部字段
func (r *PostRepository) Update(post *model.BlogPost) error {
	return r.db.Omit(clause.Associations).Save(post).Error
}

func (r *PostRepository) GetByID(id uint) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// GetDetail 获取文章及其媒体和标签
func (r *PostRepository) GetDetail(id uint) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.withDetails().First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// ListPublished 全部已发布文章，新的在前
func (r *PostRepository) ListPublished() ([]*model.BlogPost, error) {
	var posts []*model.BlogPost
	err := r.withDetails().
		Where("status = ?", model.PostPublished).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// ListPublishedByVisibility 指定可见性的已发布文章
func (r *PostRepository) ListPublishedByVisibility(visibility string) ([]*model.BlogPost, error) {
	var posts []*model.BlogPost
	err := r.withDetails().
		Where("status = ? AND visibility = ?", model.PostPublished, visibility).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// ListPublishedByUser 某作者的已发布文章
func (r *PostRepository) ListPublishedByUser(userID uint) ([]*model.BlogPost, error) {
	var posts []*model.BlogPost
	err := r.withDetails().
		Where("user_id = ? AND status = ?", userID, model.PostPublished).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// ListDrafts 某作者的草稿，最近更新的在前
func (r *PostRepository) ListDrafts(userID uint) ([]*model.BlogPost, error) {
	var posts []*model.BlogPost
	err := r.withDetails().
		Where("user_id = ? AND status = ?", userID, model.PostDraft).
		Order("updated_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// ListAll 全部文章（含草稿），管理端使用
func (r *PostRepository) ListAll() ([]*model.BlogPost, error) {
	var posts []*model.BlogPost
	err := r.withDetails().Order("id DESC").Find(&posts).Error
	return posts, err
}

// ReplaceMedia 删除文章现有媒体后插入新的媒体列表
func (r *PostRepository) ReplaceMedia(postID uint, media []model.BlogMedia) error {
	if err := r.DeleteMedia(postID); err != nil {
		return err
	}
	return r.InsertMedia(postID, media)
}

// InsertMedia 为文章插入媒体，ID 由数据库分配
func (r *PostRepository) InsertMedia(postID uint, media []model.BlogMedia) error {
	if len(media) == 0 {
		return nil
	}
	rows := make([]model.BlogMedia, len(media))
	for i, m := range media {
		m.ID = 0
		m.PostID = postID
		rows[i] = m
	}
	return r.db.Create(&rows).Error
}

func (r *PostRepository) DeleteMedia(postID uint) error {
	return r.db.Where("post_id = ?", postID).Delete(&model.BlogMedia{}).Error
}

// ReplaceTags 用新的标签集合替换文章的标签关联
func (r *PostRepository) ReplaceTags(postID uint, tagIDs []uint) error {
	if err := r.DeleteTagLinks(postID); err != nil {
		return err
	}
	return r.InsertTagLinks(postID, tagIDs)
}

// InsertTagLinks 插入标签关联，tagIDs 应已去重
func (r *PostRepository) InsertTagLinks(postID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]model.PostTag, len(tagIDs))
	for i, tagID := range tagIDs {
		links[i] = model.PostTag{PostID: postID, TagID: tagID}
	}
	return r.db.Create(&links).Error
}

func (r *PostRepository) DeleteTagLinks(postID uint) error {
	return r.db.Where("post_id = ?", postID).Delete(&model.PostTag{}).Error
}

// DeleteCascade 依次删除媒体、标签关联、评论和文章本身
func (r *PostRepository) DeleteCascade(postID uint) error {
	if err := r.DeleteMedia(postID); err != nil {
		return err
	}
	if err := r.DeleteTagLinks(postID); err != nil {
		return err
	}
	if err := r.db.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.BlogPost{}, postID).Error
}

// ClearCategory 将引用该分类的文章分类置空
func (r *PostRepository) ClearCategory(categoryID uint) error {
	return r.db.Model(&model.BlogPost{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
}
