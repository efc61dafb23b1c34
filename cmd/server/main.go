package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moments/config"
	"moments/internal/handler"
	"moments/internal/model"
	"moments/internal/repository"
	"moments/internal/service"
	dbPkg "moments/pkg/db"
	"moments/pkg/jwt"
	"moments/pkg/logger"
	"moments/pkg/mail"
	redisPkg "moments/pkg/redis"
	"moments/pkg/response"
	"moments/pkg/storage"
	"moments/pkg/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// 0. 读取 .env（可选）
	_ = godotenv.Load()

	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== Our Moments 启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("database_host", cfg.Database.Host),
		zap.String("database_name", cfg.Database.Database),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("mail_enabled", cfg.Mail.Enabled),
		zap.String("storage_type", cfg.Storage.Type),
	)

	// 3. 初始化数据库连接
	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	if err := model.Migrate(db); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 4. Redis 在线状态（可选）
	var (
		redisClient *goredis.Client
		presence    *redisPkg.Presence
	)
	if cfg.Redis.Enabled {
		redisClient, err = redisPkg.InitRedis(cfg.Redis)
		if err != nil {
			log.Fatal("Redis连接失败", zap.Error(err))
		}
		defer redisClient.Close()
		presence = redisPkg.NewPresence(redisClient)
		log.Info("Redis连接成功")
	}

	// 5. 基础设施
	jwtSvc := jwt.NewJWTService(cfg.JWT)
	wsManager := websocket.NewManager()
	mailer := mail.NewMailer(cfg.Mail)
	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatal("初始化对象存储失败", zap.Error(err))
	}

	// 6. 仓储 -> 服务 -> 处理器
	userRepo := repository.NewUserRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	tagRepo := repository.NewTagRepository(db)

	notificationSvc := service.NewNotificationService(repository.NewNotificationRepository(db), userRepo, friendshipRepo, wsManager, mailer)
	friendshipSvc := service.NewFriendshipService(friendshipRepo, notificationSvc)
	userSvc := service.NewUserService(userRepo, jwtSvc)
	jwtSvc.SetRoleResolver(userSvc)
	postSvc := service.NewPostService(repository.NewPostRepository(db), tagRepo, friendshipSvc, notificationSvc)
	commentSvc := service.NewCommentService(repository.NewCommentRepository(db), postSvc, notificationSvc)
	messageSvc := service.NewMessageService(repository.NewMessageRepository(db), friendshipSvc, notificationSvc, wsManager)
	fileSvc := service.NewFileService(store, cfg.Storage.MaxFileSize)

	// presence 为 nil 指针时必须以 nil 接口传入
	var (
		onlineLister handler.OnlineLister
		tracker      websocket.PresenceTracker
	)
	if presence != nil {
		onlineLister = presence
		tracker = presence
	}

	handlers := &handler.Handlers{
		User:         handler.NewUserHandler(userSvc, onlineLister),
		Post:         handler.NewPostHandler(postSvc),
		Friendship:   handler.NewFriendshipHandler(friendshipSvc),
		Comment:      handler.NewCommentHandler(commentSvc),
		Message:      handler.NewMessageHandler(messageSvc),
		Notification: handler.NewNotificationHandler(notificationSvc),
		Tag:          handler.NewTagHandler(service.NewTagService(tagRepo)),
		Category:     handler.NewCategoryHandler(service.NewCategoryService(repository.NewCategoryRepository(db))),
		File:         handler.NewFileHandler(fileSvc),
		Admin:        handler.NewAdminHandler(userSvc, postSvc, commentSvc, friendshipSvc),
	}
	wsHandler := websocket.NewHandler(wsManager, jwtSvc, messageSvc, tracker, cfg.WebSocket)

	// 7. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 8. 创建Gin路由
	router := gin.New()
	router.Use(logger.RecoveryMiddleware())
	router.Use(logger.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	setupBasicRoutes(router, redisClient, wsManager)
	handler.RegisterRoutes(router, handlers, jwtSvc)
	router.GET("/ws", wsHandler.ServeWS)

	// 本地存储时直接提供静态文件
	if local, ok := store.(*storage.LocalStorage); ok {
		router.Static("/uploads", local.Dir())
	}

	// 9. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 10. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupBasicRoutes 健康检查等基础路由
func setupBasicRoutes(router *gin.Engine, redisClient *goredis.Client, wsManager *websocket.Manager) {
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		}
		redisStatus := "disabled"
		if redisClient != nil {
			redisStatus = "ok"
			if err := redisPkg.HealthCheck(c.Request.Context(), redisClient); err != nil {
				redisStatus = "down"
			}
		}
		response.Success(c, gin.H{
			"status":       status,
			"redis":        redisStatus,
			"online_users": wsManager.OnlineCount(),
			"time":         time.Now().Format(time.RFC3339),
		})
	})
}
