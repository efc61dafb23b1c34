package model

import "time"

// 好友关系状态
// PENDING 可迁移到 ACCEPTED 或 REJECTED，后两者为终态
const (
	FriendshipPending  = "PENDING"
	FriendshipAccepted = "ACCEPTED"
	FriendshipRejected = "REJECTED"
)

// Friendship 好友关系，UserID 为发起方，FriendID 为接收方
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_friendship_pair;comment:发起方用户ID" json:"user_id"`
	FriendID  uint      `gorm:"not null;index:idx_friendship_pair;index;comment:接收方用户ID" json:"friend_id"`
	Status    string    `gorm:"type:varchar(16);not null;default:'PENDING';comment:关系状态" json:"status"`
	CreatedAt time.Time `gorm:"comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"comment:更新时间" json:"updated_at"`
}

func (Friendship) TableName() string { return "friendship" }

// OtherParty 返回关系中另一方的用户ID
func (f *Friendship) OtherParty(userID uint) uint {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}

// ValidFriendshipStatus 判断状态值是否合法
func ValidFriendshipStatus(status string) bool {
	switch status {
	case FriendshipPending, FriendshipAccepted, FriendshipRejected:
		return true
	}
	return false
}
