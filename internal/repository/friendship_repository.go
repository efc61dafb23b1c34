package repository

import (
	"moments/internal/model"

	"gorm.io/gorm"
)

// FriendshipRepository 好友关系数据仓储
// 关系是有方向的记录，但按用户对查询时总是检查两个方向
type FriendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository 创建FriendshipRepository实例
func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) Create(f *model.Friendship) error {
	return r.db.Create(f).Error
}

func (r *FriendshipRepository) GetByID(id uint) (*model.Friendship, error) {
	var f model.Friendship
	if err := r.db.First(&f, id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// FindBetween 查找两个用户之间任意方向的关系记录，优先返回最早的一条
func (r *FriendshipRepository) FindBetween(a, b uint) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.Where(
		"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		a, b, b, a,
	).Order("id ASC").First(&f).Error
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// ExistsWithStatus 两个用户之间是否存在指定状态的关系（双向检查）
func (r *FriendshipRepository) ExistsWithStatus(a, b uint, status string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		Where("status = ?", status).
		Count(&count).Error
	return count > 0, err
}

func (r *FriendshipRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.Friendship{}).Where("id = ?", id).Update("status", status).Error
}

// DeleteDirected 只删除 userID -> friendID 方向的记录
func (r *FriendshipRepository) DeleteDirected(userID, friendID uint) error {
	return r.db.Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&model.Friendship{}).Error
}

func (r *FriendshipRepository) DeleteByID(id uint) error {
	return r.db.Delete(&model.Friendship{}, id).Error
}

// ListByUser 用户作为任意一方的全部关系
func (r *FriendshipRepository) ListByUser(userID uint) ([]*model.Friendship, error) {
	var list []*model.Friendship
	err := r.db.Where("user_id = ? OR friend_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// ListByUserAndStatus 用户作为任意一方且处于指定状态的关系
func (r *FriendshipRepository) ListByUserAndStatus(userID uint, status string) ([]*model.Friendship, error) {
	var list []*model.Friendship
	err := r.db.Where("(user_id = ? OR friend_id = ?) AND status = ?", userID, userID, status).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

// ListIncoming 发给该用户的指定状态的请求
func (r *FriendshipRepository) ListIncoming(userID uint, status string) ([]*model.Friendship, error) {
	var list []*model.Friendship
	err := r.db.Where("friend_id = ? AND status = ?", userID, status).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *FriendshipRepository) ListAll() ([]*model.Friendship, error) {
	var list []*model.Friendship
	err := r.db.Order("id ASC").Find(&list).Error
	return list, err
}
