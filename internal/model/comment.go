package model

import "time"

// Comment 文章评论，Position 为评论在正文中的段落位置
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index;comment:文章ID" json:"post_id"`
	UserID    uint      `gorm:"not null;index;comment:评论者ID" json:"user_id"`
	Content   string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	Position  *int      `gorm:"index;comment:评论位置" json:"position"`
	CreatedAt time.Time `gorm:"comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"comment:更新时间" json:"updated_at"`
}

func (Comment) TableName() string { return "comment" }
