package service

import (
	"errors"
	"sync"
	"testing"

	"moments/internal/model"
	"moments/internal/repository"
	"moments/pkg/jwt"
	"moments/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordingPusher struct {
	mu            sync.Mutex
	fail          bool
	notifications map[uint][]*model.Notification
	chats         map[uint][]*model.Message
}

func newRecordingPusher() *recordingPusher {
	return &recordingPusher{
		notifications: make(map[uint][]*model.Notification),
		chats:         make(map[uint][]*model.Message),
	}
}

func (p *recordingPusher) PushNotification(userID uint, n *model.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("push failed")
	}
	p.notifications[userID] = append(p.notifications[userID], n)
	return nil
}

func (p *recordingPusher) PushChat(userID uint, msg *model.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("push failed")
	}
	p.chats[userID] = append(p.chats[userID], msg)
	return nil
}

func (p *recordingPusher) notificationCount(userID uint) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.notifications[userID])
}

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) SendAsync(to, subject, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
}

func (m *recordingMailer) BaseURL() string { return "http://localhost:5173" }

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.to)
	}
	return out
}

type testEnv struct {
	db            *gorm.DB
	pusher        *recordingPusher
	mailer        *recordingMailer
	users         *repository.UserRepository
	friendships   *FriendshipService
	notifications *NotificationService
	posts         *PostService
	comments      *CommentService
	messages      *MessageService
	tags          *TagService
	categories    *CategoryService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 每个连接都是独立的内存库，只保留一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, model.Migrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.InitNop()
	db := newTestDB(t)

	env := &testEnv{
		db:     db,
		pusher: newRecordingPusher(),
		mailer: &recordingMailer{},
		users:  repository.NewUserRepository(db),
	}
	friendshipRepo := repository.NewFriendshipRepository(db)
	tagRepo := repository.NewTagRepository(db)

	env.notifications = NewNotificationService(
		repository.NewNotificationRepository(db), env.users, friendshipRepo, env.pusher, env.mailer,
	)
	env.friendships = NewFriendshipService(friendshipRepo, env.notifications)
	env.posts = NewPostService(repository.NewPostRepository(db), tagRepo, env.friendships, env.notifications)
	env.comments = NewCommentService(repository.NewCommentRepository(db), env.posts, env.notifications)
	env.messages = NewMessageService(repository.NewMessageRepository(db), env.friendships, env.notifications, env.pusher)
	env.tags = NewTagService(tagRepo)
	env.categories = NewCategoryService(repository.NewCategoryRepository(db))
	return env
}

func (e *testEnv) createUser(t *testing.T, username, nickname, email string) *model.User {
	t.Helper()
	u := &model.User{
		Username:     username,
		Nickname:     nickname,
		Email:        email,
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, e.users.Create(u))
	return u
}

// befriend 由 a 发起请求并由 b 接受
func (e *testEnv) befriend(t *testing.T, a, b *model.User) *model.Friendship {
	t.Helper()
	f, err := e.friendships.SendRequest(a.ID, b.ID)
	require.NoError(t, err)
	f, err = e.friendships.Accept(f.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, model.FriendshipAccepted, f.Status)
	return f
}

func (e *testEnv) notificationsOf(t *testing.T, userID uint, typ string) []*model.Notification {
	t.Helper()
	var list []*model.Notification
	require.NoError(t, e.db.Where("user_id = ? AND type = ?", userID, typ).Order("id ASC").Find(&list).Error)
	return list
}

func (e *testEnv) count(t *testing.T, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}

func callerOf(u *model.User) *jwt.Caller {
	return &jwt.Caller{UserID: u.ID, Username: u.Username, IsAdmin: u.Role == model.RoleAdmin}
}

var adminCaller = &jwt.Caller{UserID: 9999, Username: "root", IsAdmin: true}
