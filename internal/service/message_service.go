package service

import (
	"errors"
	"fmt"

	"moments/internal/model"
	"moments/internal/repository"
	"moments/pkg/jwt"
	"moments/pkg/logger"
	"moments/pkg/sanitize"

	"go.uber.org/zap"
)

// MessageService 好友私信服务
type MessageService struct {
	repo        *repository.MessageRepository
	friendships *FriendshipService
	notifier    *NotificationService
	pusher      Pusher
}

// NewMessageService 创建MessageService实例
func NewMessageService(
	repo *repository.MessageRepository,
	friendships *FriendshipService,
	notifier *NotificationService,
	pusher Pusher,
) *MessageService {
	if pusher == nil {
		pusher = nopPusher{}
	}
	return &MessageService{
		repo:        repo,
		friendships: friendships,
		notifier:    notifier,
		pusher:      pusher,
	}
}

// Send 发送私信，双方必须是好友
// 成功后实时推送给接收者并生成 MESSAGE 通知
func (s *MessageService) Send(senderID, receiverID uint, content string) (*model.Message, error) {
	if senderID == 0 || receiverID == 0 {
		return nil, invalid("用户ID不能为空")
	}
	if senderID == receiverID {
		return nil, invalid("不能给自己发送私信")
	}
	content = sanitize.PlainText(content)
	if content == "" {
		return nil, invalid("消息内容不能为空")
	}
	if !s.friendships.AreFriends(senderID, receiverID) {
		return nil, ErrNotFriends
	}

	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.repo.Create(msg); err != nil {
		return nil, fmt.Errorf("保存私信失败: %w", err)
	}

	if err := s.pusher.PushChat(receiverID, msg); err != nil {
		logger.Warn("推送私信失败",
			zap.Uint("user_id", receiverID),
			zap.Uint("message_id", msg.ID),
			zap.Error(err),
		)
	}
	s.notifier.NotifyMessage(receiverID, senderID, msg.ID, content)
	return msg, nil
}

// ReceiveChat 处理 WebSocket 上收到的私信帧，非好友之间的消息被丢弃
func (s *MessageService) ReceiveChat(senderID, receiverID uint, content string) error {
	_, err := s.Send(senderID, receiverID, content)
	if errors.Is(err, ErrNotFriends) {
		logger.Debug("非好友私信已丢弃", zap.Uint("sender_id", senderID), zap.Uint("receiver_id", receiverID))
		return nil
	}
	return err
}

// History 与好友之间的聊天记录
func (s *MessageService) History(userID, friendID uint) ([]*model.Message, error) {
	if friendID == 0 {
		return nil, invalid("好友ID不能为空")
	}
	if !s.friendships.AreFriends(userID, friendID) {
		return nil, ErrNotFriends
	}
	return s.repo.GetConversation(userID, friendID)
}

// Unread 用户的未读私信
func (s *MessageService) Unread(userID uint) ([]*model.Message, error) {
	return s.repo.GetUnreadMessages(userID)
}

// MarkAsRead 将某个发送者发来的私信全部标记为已读，返回更新条数
func (s *MessageService) MarkAsRead(userID, senderID uint) (int64, error) {
	if senderID == 0 {
		return 0, invalid("发送者ID不能为空")
	}
	return s.repo.MarkConversationAsRead(userID, senderID)
}

// Delete 删除私信，仅发送者可操作
func (s *MessageService) Delete(caller *jwt.Caller, messageID uint) error {
	msg, err := s.repo.GetByID(messageID)
	if err != nil {
		return notFound(err, "私信")
	}
	if msg.SenderID != caller.ID() {
		return ErrForbidden
	}
	return s.repo.Delete(messageID)
}
