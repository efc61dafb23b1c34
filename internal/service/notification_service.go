package service

import (
	"fmt"
	"html"
	"strconv"

	"moments/internal/model"
	"moments/internal/repository"
	"moments/pkg/jwt"
	"moments/pkg/logger"

	"go.uber.org/zap"
)

// 私信预览最多保留的字符数
const messagePreviewRunes = 50

// 标题为空时使用的占位
const untitledPost = "未命名文章"

// NotificationService 通知扇出
// 每条通知先落库再实时推送；单个接收者的失败只记录日志，不影响其他接收者
type NotificationService struct {
	repo           *repository.NotificationRepository
	userRepo       *repository.UserRepository
	friendshipRepo *repository.FriendshipRepository
	pusher         Pusher
	mailer         Mailer
}

// NewNotificationService 创建NotificationService实例，pusher/mailer 为 nil 时不推送、不发邮件
func NewNotificationService(
	repo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	friendshipRepo *repository.FriendshipRepository,
	pusher Pusher,
	mailer Mailer,
) *NotificationService {
	if pusher == nil {
		pusher = nopPusher{}
	}
	if mailer == nil {
		mailer = nopMailer{}
	}
	return &NotificationService{
		repo:           repo,
		userRepo:       userRepo,
		friendshipRepo: friendshipRepo,
		pusher:         pusher,
		mailer:         mailer,
	}
}

// NotifyComment 通知文章作者有新评论，自己评论自己的文章不通知
func (s *NotificationService) NotifyComment(postOwnerID, commenterID, commentID uint, postTitle string) {
	if postOwnerID == commenterID {
		return
	}
	content := fmt.Sprintf("%s 评论了你的文章 \"%s\"", s.displayName(commenterID), titleOrDefault(postTitle))
	s.deliver(postOwnerID, model.NotificationComment, content, commentID)
}

// NotifyFriendRequest 通知对方收到好友请求
func (s *NotificationService) NotifyFriendRequest(targetID, requesterID, friendshipID uint) {
	content := fmt.Sprintf("%s 向你发送了好友请求", s.displayName(requesterID))
	s.deliver(targetID, model.NotificationFriendRequest, content, friendshipID)
}

// NotifyNewPost 通知作者的全部好友有新文章，有邮箱的好友同时收到邮件
func (s *NotificationService) NotifyNewPost(authorID, postID uint, postTitle string) {
	list, err := s.friendshipRepo.ListByUserAndStatus(authorID, model.FriendshipAccepted)
	if err != nil {
		logger.Error("查询好友列表失败，新文章通知未发送",
			zap.Uint("user_id", authorID),
			zap.Uint("post_id", postID),
			zap.Error(err),
		)
		return
	}
	recipients := otherParties(list, authorID)
	if len(recipients) == 0 {
		return
	}

	authorName := s.displayName(authorID)
	title := titleOrDefault(postTitle)
	content := fmt.Sprintf("%s 发布了新日志 \"%s\"", authorName, title)

	for _, recipientID := range recipients {
		s.deliver(recipientID, model.NotificationNewPost, content, postID)
	}
	s.mailNewPost(recipients, authorName, title, postID)
}

// NotifyMessage 通知接收者收到私信，内容预览超过50个字符时截断
func (s *NotificationService) NotifyMessage(receiverID, senderID, messageID uint, content string) {
	text := fmt.Sprintf("%s 给你发送了私信: \"%s\"", s.displayName(senderID), truncatePreview(content))
	s.deliver(receiverID, model.NotificationMessage, text, messageID)
}

// deliver 持久化并推送一条通知
func (s *NotificationService) deliver(userID uint, typ, content string, relatedID uint) {
	n := &model.Notification{
		UserID:    userID,
		Type:      typ,
		Content:   content,
		RelatedID: relatedID,
	}
	if err := s.repo.Create(n); err != nil {
		logger.Error("保存通知失败",
			zap.Uint("user_id", userID),
			zap.String("type", typ),
			zap.Uint("related_id", relatedID),
			zap.Error(err),
		)
		return
	}
	if err := s.pusher.PushNotification(userID, n); err != nil {
		logger.Warn("推送通知失败",
			zap.Uint("user_id", userID),
			zap.Uint("notification_id", n.ID),
			zap.Error(err),
		)
	}
}

func (s *NotificationService) mailNewPost(recipients []uint, authorName, title string, postID uint) {
	users, err := s.userRepo.GetByIDs(recipients)
	if err != nil {
		logger.Error("查询好友邮箱失败", zap.Uint("post_id", postID), zap.Error(err))
		return
	}
	subject := fmt.Sprintf("💌 %s 发布了新日志", authorName)
	link := s.mailer.BaseURL() + "/post/" + strconv.FormatUint(uint64(postID), 10)
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		body := fmt.Sprintf(
			`<p>%s，你好：</p><p>%s 发布了新日志《%s》。</p><p><a href="%s">点击查看</a></p>`,
			html.EscapeString(u.DisplayName()),
			html.EscapeString(authorName),
			html.EscapeString(title),
			link,
		)
		s.mailer.SendAsync(u.Email, subject, body)
	}
}

// displayName 用户展示名，查询失败时使用默认值
func (s *NotificationService) displayName(userID uint) string {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return (*model.User)(nil).DisplayName()
	}
	return u.DisplayName()
}

func titleOrDefault(title string) string {
	if title == "" {
		return untitledPost
	}
	return title
}

// truncatePreview 按字符截断，超过上限时追加 "..."
func truncatePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= messagePreviewRunes {
		return content
	}
	return string(runes[:messagePreviewRunes]) + "..."
}

// List 调用者的通知列表
func (s *NotificationService) List(caller *jwt.Caller) ([]*model.Notification, error) {
	return s.repo.ListByUser(caller.ID())
}

// UnreadCount 调用者的未读通知数
func (s *NotificationService) UnreadCount(caller *jwt.Caller) (int64, error) {
	return s.repo.CountUnread(caller.ID())
}

// MarkAsRead 标记单条通知为已读，仅接收者可操作
func (s *NotificationService) MarkAsRead(caller *jwt.Caller, id uint) error {
	if _, err := s.owned(caller, id); err != nil {
		return err
	}
	return s.repo.MarkAsRead(id)
}

// MarkAllAsRead 标记调用者全部通知为已读
func (s *NotificationService) MarkAllAsRead(caller *jwt.Caller) error {
	return s.repo.MarkAllAsRead(caller.ID())
}

// Delete 删除通知，仅接收者可操作
func (s *NotificationService) Delete(caller *jwt.Caller, id uint) error {
	if _, err := s.owned(caller, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *NotificationService) owned(caller *jwt.Caller, id uint) (*model.Notification, error) {
	n, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "通知")
	}
	if n.UserID != caller.ID() {
		return nil, ErrForbidden
	}
	return n, nil
}
