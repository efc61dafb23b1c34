package service

import (
	"errors"
	"fmt"

	"moments/internal/model"
	"moments/internal/repository"
	"moments/pkg/jwt"
	"moments/pkg/logger"

	"go.uber.org/zap"
)

// FriendshipService 好友关系状态机
// PENDING -> ACCEPTED / REJECTED，只有接收方可以处理请求
type FriendshipService struct {
	repo     *repository.FriendshipRepository
	notifier *NotificationService
}

// NewFriendshipService 创建FriendshipService实例
func NewFriendshipService(repo *repository.FriendshipRepository, notifier *NotificationService) *FriendshipService {
	return &FriendshipService{repo: repo, notifier: notifier}
}

// SendRequest 发送好友请求
// 两人之间已存在任意方向、任意状态的记录时原样返回该记录
func (s *FriendshipService) SendRequest(userID, friendID uint) (*model.Friendship, error) {
	if userID == 0 || friendID == 0 {
		return nil, invalid("用户ID不能为空")
	}
	if userID == friendID {
		return nil, invalid("不能添加自己为好友")
	}

	existing, err := s.repo.FindBetween(userID, friendID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询好友关系失败: %w", err)
	}

	f := &model.Friendship{
		UserID:   userID,
		FriendID: friendID,
		Status:   model.FriendshipPending,
	}
	if err := s.repo.Create(f); err != nil {
		return nil, fmt.Errorf("创建好友请求失败: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyFriendRequest(friendID, userID, f.ID)
	}
	return f, nil
}

// Accept 接受好友请求
func (s *FriendshipService) Accept(friendshipID, actingUserID uint) (*model.Friendship, error) {
	return s.transition(friendshipID, actingUserID, model.FriendshipAccepted)
}

// Reject 拒绝好友请求
func (s *FriendshipService) Reject(friendshipID, actingUserID uint) (*model.Friendship, error) {
	return s.transition(friendshipID, actingUserID, model.FriendshipRejected)
}

// transition 仅当记录处于 PENDING 且操作者是接收方时迁移状态，否则原样返回
func (s *FriendshipService) transition(friendshipID, actingUserID uint, target string) (*model.Friendship, error) {
	f, err := s.repo.GetByID(friendshipID)
	if err != nil {
		return nil, notFound(err, "好友关系")
	}
	if f.Status != model.FriendshipPending || f.FriendID != actingUserID {
		return f, nil
	}
	if err := s.repo.UpdateStatus(f.ID, target); err != nil {
		return nil, fmt.Errorf("更新好友关系失败: %w", err)
	}
	f.Status = target
	logger.Info("好友请求已处理",
		zap.Uint("friendship_id", f.ID),
		zap.Uint("user_id", actingUserID),
		zap.String("status", target),
	)
	return f, nil
}

// AreFriends 两人之间是否存在 ACCEPTED 记录（不区分方向）
func (s *FriendshipService) AreFriends(a, b uint) bool {
	if a == 0 || b == 0 {
		return false
	}
	ok, err := s.repo.ExistsWithStatus(a, b, model.FriendshipAccepted)
	if err != nil {
		logger.Error("查询好友关系失败", zap.Uint("user_id", a), zap.Uint("friend_id", b), zap.Error(err))
		return false
	}
	return ok
}

// Delete 删除 userID -> friendID 方向的记录，反方向记录不受影响
func (s *FriendshipService) Delete(userID, friendID uint) error {
	if err := s.repo.DeleteDirected(userID, friendID); err != nil {
		return fmt.Errorf("删除好友关系失败: %w", err)
	}
	return nil
}

// Get 根据ID获取好友关系
func (s *FriendshipService) Get(id uint) (*model.Friendship, error) {
	f, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "好友关系")
	}
	return f, nil
}

// ListByUser 用户参与的全部关系
func (s *FriendshipService) ListByUser(userID uint) ([]*model.Friendship, error) {
	return s.repo.ListByUser(userID)
}

// ListFriends 用户的好友ID列表，按关系建立顺序去重
func (s *FriendshipService) ListFriends(userID uint) ([]uint, error) {
	list, err := s.repo.ListByUserAndStatus(userID, model.FriendshipAccepted)
	if err != nil {
		return nil, err
	}
	return otherParties(list, userID), nil
}

// ListPendingIncoming 发给用户、等待处理的请求
func (s *FriendshipService) ListPendingIncoming(userID uint) ([]*model.Friendship, error) {
	return s.repo.ListIncoming(userID, model.FriendshipPending)
}

// ListAll 管理员查看全部关系
func (s *FriendshipService) ListAll(caller *jwt.Caller) ([]*model.Friendship, error) {
	if !isAdmin(caller) {
		return nil, ErrForbidden
	}
	return s.repo.ListAll()
}

// AdminCreate 管理员直接创建指定状态的关系，不发送通知
func (s *FriendshipService) AdminCreate(caller *jwt.Caller, userID, friendID uint, status string) (*model.Friendship, error) {
	if !isAdmin(caller) {
		return nil, ErrForbidden
	}
	if userID == 0 || friendID == 0 || userID == friendID {
		return nil, invalid("用户ID无效")
	}
	if status == "" {
		status = model.FriendshipPending
	}
	if !model.ValidFriendshipStatus(status) {
		return nil, invalid("未知的关系状态: %s", status)
	}
	f := &model.Friendship{UserID: userID, FriendID: friendID, Status: status}
	if err := s.repo.Create(f); err != nil {
		return nil, fmt.Errorf("创建好友关系失败: %w", err)
	}
	return f, nil
}

// AdminUpdateStatus 管理员修改关系状态，不受状态机约束
func (s *FriendshipService) AdminUpdateStatus(caller *jwt.Caller, id uint, status string) (*model.Friendship, error) {
	if !isAdmin(caller) {
		return nil, ErrForbidden
	}
	if !model.ValidFriendshipStatus(status) {
		return nil, invalid("未知的关系状态: %s", status)
	}
	f, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "好友关系")
	}
	if err := s.repo.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("更新好友关系失败: %w", err)
	}
	f.Status = status
	return f, nil
}

// AdminDeleteByID 管理员按ID删除关系
func (s *FriendshipService) AdminDeleteByID(caller *jwt.Caller, id uint) error {
	if !isAdmin(caller) {
		return ErrForbidden
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return notFound(err, "好友关系")
	}
	return s.repo.DeleteByID(id)
}

// otherParties 取出每条关系中另一方的用户ID并去重
func otherParties(list []*model.Friendship, userID uint) []uint {
	seen := make(map[uint]struct{}, len(list))
	ids := make([]uint, 0, len(list))
	for _, f := range list {
		other := f.OtherParty(userID)
		if other == userID {
			continue
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids
}

func isAdmin(caller *jwt.Caller) bool {
	return caller != nil && caller.IsAdmin
}
