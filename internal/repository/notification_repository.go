package repository

import (
	"moments/internal/model"

	"gorm.io/gorm"
)

// NotificationRepository 通知数据仓储
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建NotificationRepository实例
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) GetByID(id uint) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

// ListByUser 用户的通知，新的在前
func (r *NotificationRepository) ListByUser(userID uint) ([]*model.Notification, error) {
	var list []*model.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *NotificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkAsRead(id uint) error {
	return r.db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllAsRead(userID uint) error {
	return r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) Delete(id uint) error {
	return r.db.Delete(&model.Notification{}, id).Error
}
