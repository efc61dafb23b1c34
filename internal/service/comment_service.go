package service

import (
	"fmt"

	"moments/internal/model"
	"moments/internal/repository"
	"moments/pkg/jwt"
	"moments/pkg/sanitize"
)

// CommentService 评论服务
type CommentService struct {
	repo     *repository.CommentRepository
	posts    *PostService
	notifier *NotificationService
}

// NewCommentService 创建CommentService实例
func NewCommentService(repo *repository.CommentRepository, posts *PostService, notifier *NotificationService) *CommentService {
	return &CommentService{repo: repo, posts: posts, notifier: notifier}
}

// Create 发表评论，文章必须对调用者可见；通知文章作者
func (s *CommentService) Create(caller *jwt.Caller, postID uint, content string, position *int) (*model.Comment, error) {
	if caller == nil {
		return nil, ErrForbidden
	}
	content = sanitize.PlainText(content)
	if content == "" {
		return nil, invalid("评论内容不能为空")
	}
	post, err := s.posts.GetVisibleByID(postID, caller)
	if err != nil {
		return nil, err
	}

	c := &model.Comment{
		PostID:   post.ID,
		UserID:   caller.UserID,
		Content:  content,
		Position: position,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, fmt.Errorf("保存评论失败: %w", err)
	}

	s.notifier.NotifyComment(post.UserID, caller.UserID, c.ID, post.Title)
	return c, nil
}

// ListByPost 文章下的评论，文章对 viewer 不可见时返回 ErrNotFound
func (s *CommentService) ListByPost(postID uint, viewer *jwt.Caller) ([]*model.Comment, error) {
	if _, err := s.posts.GetVisibleByID(postID, viewer); err != nil {
		return nil, err
	}
	return s.repo.ListByPost(postID)
}

// ListByPostAndPosition 文章某个位置上的评论
func (s *CommentService) ListByPostAndPosition(postID uint, position int, viewer *jwt.Caller) ([]*model.Comment, error) {
	if _, err := s.posts.GetVisibleByID(postID, viewer); err != nil {
		return nil, err
	}
	return s.repo.ListByPostAndPosition(postID, position)
}

// Update 修改评论内容，仅评论者本人可操作
func (s *CommentService) Update(caller *jwt.Caller, id uint, content string) (*model.Comment, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "评论")
	}
	if caller == nil || c.UserID != caller.UserID {
		return nil, ErrForbidden
	}
	content = sanitize.PlainText(content)
	if content == "" {
		return nil, invalid("评论内容不能为空")
	}
	if err := s.repo.UpdateContent(id, content); err != nil {
		return nil, fmt.Errorf("更新评论失败: %w", err)
	}
	c.Content = content
	return c, nil
}

// Delete 删除评论，评论者本人或管理员可操作
func (s *CommentService) Delete(caller *jwt.Caller, id uint) error {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return notFound(err, "评论")
	}
	if !canModify(caller, c.UserID) {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}

// AdminList 管理员查看全部评论
func (s *CommentService) AdminList(caller *jwt.Caller) ([]*model.Comment, error) {
	if !isAdmin(caller) {
		return nil, ErrForbidden
	}
	return s.repo.ListAll()
}
