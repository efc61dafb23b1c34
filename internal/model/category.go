package model

import "time"

// Category 文章分类
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(64);not null;uniqueIndex;comment:分类名" json:"name"`
	IconURL   string    `gorm:"type:varchar(255);comment:图标URL" json:"icon_url"`
	SortOrder int       `gorm:"default:0;comment:排序" json:"sort_order"`
	CreatedAt time.Time `gorm:"comment:创建时间" json:"created_at"`
}

func (Category) TableName() string { return "category" }
