package model

import "time"

// 通知类型
const (
	NotificationComment       = "COMMENT"
	NotificationFriendRequest = "FRIEND_REQUEST"
	NotificationNewPost       = "NEW_POST"
	NotificationMessage       = "MESSAGE"
)

// Notification 站内通知，RelatedID 依类型指向评论/好友关系/文章/私信
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;comment:接收者ID" json:"user_id"`
	Type      string    `gorm:"type:varchar(32);not null;comment:通知类型" json:"type"`
	Content   string    `gorm:"type:varchar(500);comment:通知内容" json:"content"`
	RelatedID uint      `gorm:"comment:关联ID" json:"related_id"`
	IsRead    bool      `gorm:"default:false;index;comment:是否已读" json:"is_read"`
	CreatedAt time.Time `gorm:"comment:创建时间" json:"created_at"`
}

func (Notification) TableName() string { return "notification" }
