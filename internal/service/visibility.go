package service

import (
	"moments/internal/model"
	"moments/pkg/jwt"
)

// FriendChecker 判断两个用户是否为好友
type FriendChecker func(a, b uint) bool

// CanView 判断 viewer 能否查看文章，viewer 为 nil 表示匿名访问
// 未知的可见性一律不可见
func CanView(post *model.BlogPost, viewer *jwt.Caller, areFriends FriendChecker) bool {
	if post == nil {
		return false
	}
	if viewer != nil && viewer.UserID == post.UserID {
		return true
	}
	switch post.Visibility {
	case model.VisibilityPublic:
		return true
	case model.VisibilityPrivate:
		return false
	case model.VisibilityFriends:
		if viewer == nil || areFriends == nil {
			return false
		}
		return areFriends(post.UserID, viewer.UserID)
	default:
		return false
	}
}

// FilterVisible 过滤出 viewer 可见的文章，保持原有顺序
// 同一作者的好友关系在一次过滤中只查询一次
func FilterVisible(posts []*model.BlogPost, viewer *jwt.Caller, areFriends FriendChecker) []*model.BlogPost {
	var cached FriendChecker
	if areFriends != nil {
		cache := make(map[uint]bool)
		cached = func(a, b uint) bool {
			if v, ok := cache[a]; ok {
				return v
			}
			v := areFriends(a, b)
			cache[a] = v
			return v
		}
	}

	out := make([]*model.BlogPost, 0, len(posts))
	for _, p := range posts {
		if CanView(p, viewer, cached) {
			out = append(out, p)
		}
	}
	return out
}
