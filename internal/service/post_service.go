package service

import (
	"fmt"
	"strings"

	"moments/internal/model"
	"moments/internal/repository"
	"moments/pkg/jwt"
	"moments/pkg/logger"
	"moments/pkg/sanitize"

	"go.uber.org/zap"
)

// PostInput 创建/更新文章的输入
// Media、TagIDs 为 nil 表示更新时保持不变，非 nil（包括空切片）表示整体替换
type PostInput struct {
	CategoryID *uint
	Title      string
	Content    string
	Weather    string
	Mood       string
	Location   string
	Visibility string
	Status     string
	Media      []model.BlogMedia
	TagIDs     []uint
}

// PostService 文章聚合：文章、媒体、标签关联作为一个整体读写
type PostService struct {
	repo        *repository.PostRepository
	tagRepo     *repository.TagRepository
	friendships *FriendshipService
	notifier    *NotificationService
}

// NewPostService 创建PostService实例
func NewPostService(
	repo *repository.PostRepository,
	tagRepo *repository.TagRepository,
	friendships *FriendshipService,
	notifier *NotificationService,
) *PostService {
	return &PostService{
		repo:        repo,
		tagRepo:     tagRepo,
		friendships: friendships,
		notifier:    notifier,
	}
}

// Create 在一个事务中写入文章、媒体和标签关联，已发布的文章提交后通知好友
func (s *PostService) Create(caller *jwt.Caller, in PostInput) (*model.BlogPost, error) {
	if caller == nil {
		return nil, ErrForbidden
	}
	visibility, status, err := normalizeState(in.Visibility, in.Status)
	if err != nil {
		return nil, err
	}
	if err := validateMedia(in.Media); err != nil {
		return nil, err
	}
	tagIDs, err := s.checkTags(in.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &model.BlogPost{UserID: caller.UserID}
	applyInput(post, in, visibility, status)

	err = s.repo.Transaction(func(tx *repository.PostRepository) error {
		if err := tx.Create(post); err != nil {
			return err
		}
		if err := tx.InsertMedia(post.ID, in.Media); err != nil {
			return err
		}
		return tx.InsertTagLinks(post.ID, tagIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("创建文章失败: %w", err)
	}

	logger.Info("文章已创建",
		zap.Uint("post_id", post.ID),
		zap.Uint("user_id", caller.UserID),
		zap.String("status", post.Status),
	)
	if announced(post) {
		s.notifier.NotifyNewPost(post.UserID, post.ID, post.Title)
	}
	return s.repo.GetDetail(post.ID)
}

// Update 覆盖文章字段，按需替换媒体与标签；仅作者或管理员可操作
// 可见性与状态为空时保持不变，草稿变为发布时提交后通知好友
func (s *PostService) Update(caller *jwt.Caller, postID uint, in PostInput) (*model.BlogPost, error) {
	post, err := s.repo.GetByID(postID)
	if err != nil {
		return nil, notFound(err, "文章")
	}
	if !canModify(caller, post.UserID) {
		return nil, ErrForbidden
	}
	// 未提交的可见性与状态沿用原值
	visibility, status := in.Visibility, in.Status
	if strings.TrimSpace(visibility) == "" {
		visibility = post.Visibility
	}
	if strings.TrimSpace(status) == "" {
		status = post.Status
	}
	visibility, status, err = normalizeState(visibility, status)
	if err != nil {
		return nil, err
	}
	if err := validateMedia(in.Media); err != nil {
		return nil, err
	}
	var tagIDs []uint
	if in.TagIDs != nil {
		if tagIDs, err = s.checkTags(in.TagIDs); err != nil {
			return nil, err
		}
	}

	wasDraft := post.Status == model.PostDraft
	applyInput(post, in, visibility, status)

	err = s.repo.Transaction(func(tx *repository.PostRepository) error {
		if err := tx.Update(post); err != nil {
			return err
		}
		if in.Media != nil {
			if err := tx.ReplaceMedia(post.ID, in.Media); err != nil {
				return err
			}
		}
		if in.TagIDs != nil {
			if err := tx.ReplaceTags(post.ID, tagIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("更新文章失败: %w", err)
	}

	if wasDraft && announced(post) {
		s.notifier.NotifyNewPost(post.UserID, post.ID, post.Title)
	}
	return s.repo.GetDetail(post.ID)
}

// Delete 在一个事务中删除媒体、标签关联、评论和文章；仅作者或管理员可操作
func (s *PostService) Delete(caller *jwt.Caller, postID uint) error {
	post, err := s.repo.GetByID(postID)
	if err != nil {
		return notFound(err, "文章")
	}
	if !canModify(caller, post.UserID) {
		return ErrForbidden
	}
	err = s.repo.Transaction(func(tx *repository.PostRepository) error {
		return tx.DeleteCascade(postID)
	})
	if err != nil {
		return fmt.Errorf("删除文章失败: %w", err)
	}
	logger.Info("文章已删除", zap.Uint("post_id", postID), zap.Uint("user_id", caller.ID()))
	return nil
}

// GetVisible 全部已发布文章中 viewer 可见的部分
// 匿名访问只查询公开文章，不需要判断好友关系
func (s *PostService) GetVisible(viewer *jwt.Caller) ([]*model.BlogPost, error) {
	if viewer == nil {
		return s.repo.ListPublishedByVisibility(model.VisibilityPublic)
	}
	posts, err := s.repo.ListPublished()
	if err != nil {
		return nil, err
	}
	return FilterVisible(posts, viewer, s.friendships.AreFriends), nil
}

// GetVisibleByUser 某作者的已发布文章中 viewer 可见的部分
func (s *PostService) GetVisibleByUser(ownerID uint, viewer *jwt.Caller) ([]*model.BlogPost, error) {
	posts, err := s.repo.ListPublishedByUser(ownerID)
	if err != nil {
		return nil, err
	}
	return FilterVisible(posts, viewer, s.friendships.AreFriends), nil
}

// GetVisibleByID 获取单篇文章，不可见与不存在同样返回 ErrNotFound
// 草稿只有作者本人可见
func (s *PostService) GetVisibleByID(postID uint, viewer *jwt.Caller) (*model.BlogPost, error) {
	post, err := s.repo.GetDetail(postID)
	if err != nil {
		return nil, notFound(err, "文章")
	}
	if post.Status == model.PostDraft && viewer.ID() != post.UserID {
		return nil, fmt.Errorf("文章: %w", ErrNotFound)
	}
	if !CanView(post, viewer, s.friendships.AreFriends) {
		return nil, fmt.Errorf("文章: %w", ErrNotFound)
	}
	return post, nil
}

// ListDrafts 调用者的草稿
func (s *PostService) ListDrafts(caller *jwt.Caller) ([]*model.BlogPost, error) {
	return s.repo.ListDrafts(caller.ID())
}

// LatestDraft 调用者最近编辑的草稿
func (s *PostService) LatestDraft(caller *jwt.Caller) (*model.BlogPost, error) {
	drafts, err := s.repo.ListDrafts(caller.ID())
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("草稿: %w", ErrNotFound)
	}
	return drafts[0], nil
}

// AdminList 管理员查看全部文章（含草稿）
func (s *PostService) AdminList(caller *jwt.Caller) ([]*model.BlogPost, error) {
	if !isAdmin(caller) {
		return nil, ErrForbidden
	}
	return s.repo.ListAll()
}

// checkTags 去重并确认标签均存在
func (s *PostService) checkTags(ids []uint) ([]uint, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return unique, nil
	}
	count, err := s.tagRepo.CountByIDs(unique)
	if err != nil {
		return nil, fmt.Errorf("查询标签失败: %w", err)
	}
	if count != int64(len(unique)) {
		return nil, invalid("存在无效的标签ID")
	}
	return unique, nil
}

// announced 已发布且非私密的文章才通知好友
func announced(post *model.BlogPost) bool {
	return post.Status == model.PostPublished && post.Visibility != model.VisibilityPrivate
}

func applyInput(post *model.BlogPost, in PostInput, visibility, status string) {
	post.CategoryID = in.CategoryID
	post.Title = strings.TrimSpace(in.Title)
	post.Content = sanitize.RichText(in.Content)
	post.Weather = in.Weather
	post.Mood = in.Mood
	post.Location = in.Location
	post.Visibility = visibility
	post.Status = status
}

// normalizeState 补全默认值（PUBLIC / PUBLISHED）并校验取值
func normalizeState(visibility, status string) (string, string, error) {
	visibility = strings.ToUpper(strings.TrimSpace(visibility))
	status = strings.ToUpper(strings.TrimSpace(status))
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	if status == "" {
		status = model.PostPublished
	}
	switch visibility {
	case model.VisibilityPublic, model.VisibilityFriends, model.VisibilityPrivate:
	default:
		return "", "", invalid("未知的可见性: %s", visibility)
	}
	switch status {
	case model.PostDraft, model.PostPublished:
	default:
		return "", "", invalid("未知的文章状态: %s", status)
	}
	return visibility, status, nil
}

func validateMedia(media []model.BlogMedia) error {
	for i := range media {
		if strings.TrimSpace(media[i].MediaURL) == "" {
			return invalid("第%d个媒体缺少URL", i+1)
		}
		switch media[i].MediaType {
		case "":
			media[i].MediaType = model.MediaImage
		case model.MediaImage, model.MediaVideo:
		default:
			return invalid("未知的媒体类型: %s", media[i].MediaType)
		}
		if media[i].Scale == 0 {
			media[i].Scale = 1
		}
	}
	return nil
}

func canModify(caller *jwt.Caller, ownerID uint) bool {
	return caller != nil && (caller.UserID == ownerID || caller.IsAdmin)
}

// dedupe 去除重复和为0的ID，保持首次出现的顺序
func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

