package handler

import (
	"moments/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	User         *UserHandler
	Post         *PostHandler
	Friendship   *FriendshipHandler
	Comment      *CommentHandler
	Message      *MessageHandler
	Notification *NotificationHandler
	Tag          *TagHandler
	Category     *CategoryHandler
	File         *FileHandler
	Admin        *AdminHandler
}

// RegisterRoutes 注册 /api/v1 下的全部路由
func RegisterRoutes(r gin.IRouter, h *Handlers, jwtSvc *jwt.JWTService) {
	auth := jwtSvc.AuthMiddleware()
	optional := jwtSvc.OptionalAuthMiddleware()

	api := r.Group("/api/v1")

	// 用户
	users := api.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.GET("/profile", auth, h.User.GetProfile)
		users.PUT("/profile", auth, h.User.UpdateProfile)
		users.GET("/online", auth, h.User.OnlineUsers)
		users.GET("/:id", h.User.GetUser)
	}

	// 文章
	posts := api.Group("/posts")
	{
		posts.GET("", optional, h.Post.List)
		posts.GET("/:id", optional, h.Post.Get)
		posts.POST("", auth, h.Post.Create)
		posts.PUT("/:id", auth, h.Post.Update)
		posts.DELETE("/:id", auth, h.Post.Delete)
	}

	// 草稿
	drafts := api.Group("/drafts", auth)
	{
		drafts.GET("", h.Post.ListDrafts)
		drafts.GET("/latest", h.Post.LatestDraft)
	}

	// 好友
	api.GET("/friendships/check", h.Friendship.Check)
	friendships := api.Group("/friendships", auth)
	{
		friendships.POST("/request", h.Friendship.SendRequest)
		friendships.PUT("/:id/accept", h.Friendship.Accept)
		friendships.PUT("/:id/reject", h.Friendship.Reject)
		friendships.GET("", h.Friendship.List)
		friendships.GET("/friends", h.Friendship.Friends)
		friendships.GET("/pending", h.Friendship.Pending)
		friendships.DELETE("/friend/:friendId", h.Friendship.Delete)
	}

	// 评论
	comments := api.Group("/comments")
	{
		comments.GET("/post/:postId", optional, h.Comment.ListByPost)
		comments.GET("/post/:postId/position/:position", optional, h.Comment.ListByPosition)
		comments.POST("", auth, h.Comment.Create)
		comments.PUT("/:id", auth, h.Comment.Update)
		comments.DELETE("/:id", auth, h.Comment.Delete)
	}

	// 私信
	messages := api.Group("/messages", auth)
	{
		messages.POST("/send", h.Message.Send)
		messages.GET("/history", h.Message.History)
		messages.GET("/unread", h.Message.Unread)
		messages.PUT("/read", h.Message.MarkAsRead)
		messages.DELETE("/:id", h.Message.Delete)
	}

	// 通知
	notifications := api.Group("/notifications", auth)
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread/count", h.Notification.UnreadCount)
		notifications.PUT("/read-all", h.Notification.MarkAllAsRead)
		notifications.PUT("/:id/read", h.Notification.MarkAsRead)
		notifications.DELETE("/:id", h.Notification.Delete)
	}

	// 标签与分类：读公开，写需登录
	tags := api.Group("/tags")
	{
		tags.GET("", h.Tag.List)
		tags.GET("/:id", h.Tag.Get)
		tags.POST("", auth, h.Tag.Create)
		tags.DELETE("/:id", auth, h.Tag.Delete)
	}
	categories := api.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", auth, h.Category.Create)
		categories.PUT("/:id", auth, h.Category.Update)
		categories.DELETE("/:id", auth, h.Category.Delete)
	}

	// 文件
	files := api.Group("/files", auth)
	{
		files.POST("/upload", h.File.UploadImage)
		files.POST("/upload/avatar", h.File.UploadAvatar)
		files.POST("/upload/background", h.File.UploadBackground)
		files.DELETE("", h.File.Delete)
	}

	// 管理端
	admin := api.Group("/admin", auth, jwt.AdminMiddleware())
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.POST("/users", h.Admin.CreateUser)
		admin.PUT("/users/:id/role", h.Admin.UpdateUserRole)
		admin.PUT("/users/:id/reset-password", h.Admin.ResetPassword)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)

		admin.GET("/posts", h.Admin.ListPosts)
		admin.DELETE("/posts/:id", h.Admin.DeletePost)

		admin.GET("/comments", h.Admin.ListComments)
		admin.DELETE("/comments/:id", h.Admin.DeleteComment)

		admin.GET("/friendships", h.Admin.ListFriendships)
		admin.POST("/friendships", h.Admin.CreateFriendship)
		admin.PUT("/friendships/:id/status", h.Admin.UpdateFriendshipStatus)
		admin.DELETE("/friendships/:id", h.Admin.DeleteFriendship)
	}
}
