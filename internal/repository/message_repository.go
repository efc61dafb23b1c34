package repository

import (
	"moments/internal/model"

	"gorm.io/gorm"
)

// MessageRepository 私信数据仓储
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建MessageRepository实例
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create 创建消息
func (r *MessageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

// GetByID 根据ID获取消息
func (r *MessageRepository) GetByID(id uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

// GetConversation 获取两个用户之间的私信（双向），按时间正序
func (r *MessageRepository) GetConversation(userID, otherID uint) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, otherID, otherID, userID,
	).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// GetUnreadMessages 获取用户未读消息
func (r *MessageRepository) GetUnreadMessages(userID uint) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where("receiver_id = ? AND is_read = ?", userID, false).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// MarkConversationAsRead 将 senderID 发给 userID 的消息全部标记为已读
func (r *MessageRepository) MarkConversationAsRead(userID, senderID uint) (int64, error) {
	res := r.db.Model(&model.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", userID, senderID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *MessageRepository) Delete(id uint) error {
	return r.db.Delete(&model.Message{}, id).Error
}
