package model

import "time"

// Message 好友之间的私信
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index;comment:发送者ID" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index;comment:接收者ID" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null;comment:消息内容" json:"content"`
	IsRead     bool      `gorm:"default:false;comment:是否已读" json:"is_read"`
	CreatedAt  time.Time `gorm:"comment:创建时间" json:"created_at"`
	UpdatedAt  time.Time `gorm:"comment:更新时间" json:"updated_at"`
}

func (Message) TableName() string { return "message" }
