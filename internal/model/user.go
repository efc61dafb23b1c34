package model

import "time"

// 用户角色
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User 用户模型
// 用户名唯一，密码仅存储哈希
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex;comment:用户名" json:"username"`
	Email        string    `gorm:"type:varchar(128);index;comment:邮箱" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null;comment:密码哈希" json:"-"`
	Nickname     string    `gorm:"type:varchar(64);comment:昵称" json:"nickname"`
	Avatar       string    `gorm:"type:varchar(255);comment:头像URL" json:"avatar"`
	Background   string    `gorm:"type:varchar(255);comment:背景图URL" json:"background"`
	Bio          string    `gorm:"type:varchar(500);comment:个人简介" json:"bio"`
	Role         string    `gorm:"type:varchar(16);not null;default:'USER';comment:角色" json:"role"`
	CreatedAt    time.Time `gorm:"comment:创建时间" json:"created_at"`
	UpdatedAt    time.Time `gorm:"comment:更新时间" json:"updated_at"`
}

func (User) TableName() string { return "user" }

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// DisplayName 通知中使用的展示名：昵称 > 用户名 > "用户"
func (u *User) DisplayName() string {
	if u == nil {
		return "用户"
	}
	if u.Nickname != "" {
		return u.Nickname
	}
	if u.Username != "" {
		return u.Username
	}
	return "用户"
}
