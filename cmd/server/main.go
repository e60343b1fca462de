package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/config"
	"fittrack/internal/handler"
	"fittrack/internal/model"
	"fittrack/internal/repository"
	"fittrack/internal/service"
	dbPkg "fittrack/pkg/db"
	"fittrack/pkg/jwt"
	"fittrack/pkg/logger"
	redisPkg "fittrack/pkg/redis"
	"fittrack/pkg/response"
	"fittrack/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== FitTrack 启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.String("database_user", cfg.Database.Username),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.String("log_level", cfg.Log.Level),
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

	// 3.1 自动迁移表结构
	if err := dbPkg.AutoMigrate(
		&model.User{},
		&model.Workout{},
		&model.WorkoutActivity{},
		&model.FriendRequest{},
		&model.Friendship{},
	); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 3.2 初始化Redis（通知和动态流缓存是尽力而为的，连接失败只降级不退出）
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		log.Warn("Redis连接失败，通知待取列表和动态流缓存不可用", zap.Error(err))
	} else {
		redisPkg.SetFeedCacheConfig(cfg.Feed.CacheTTL)
		log.Info("Redis连接成功")
	}
	defer func() {
		if err := redisPkg.Close(); err != nil {
			log.Error("关闭Redis连接失败", zap.Error(err))
		}
	}()

	// 3.3 初始化业务服务
	jwtSvc := jwt.NewJWTService(cfg.JWT)
	userRepo := repository.NewUserRepository(db)
	friendRequestRepo := repository.NewFriendRequestRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)

	userSvc := service.NewUserService(userRepo, jwtSvc, cfg.Search)
	friendSvc := service.NewFriendService(friendRequestRepo, friendshipRepo, userRepo, service.NewPushNotifier())
	feedSvc := service.NewFeedService(friendshipRepo, workoutRepo, userRepo, cfg.Feed)
	workoutSvc := service.NewWorkoutService(workoutRepo, friendshipRepo)

	userHandler := handler.NewUserHandler(userSvc)
	friendHandler := handler.NewFriendHandler(friendSvc)
	feedHandler := handler.NewFeedHandler(feedSvc)
	workoutHandler := handler.NewWorkoutHandler(workoutSvc)

	// 4. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	router := gin.New()

	// 注入jwt_config和ws_config到Gin context，供WebSocket使用
	router.Use(func(c *gin.Context) {
		c.Set("jwt_config", cfg.JWT)
		c.Set("ws_config", cfg.WebSocket)
		c.Next()
	})

	// 使用中间件
	router.Use(logger.LoggerMiddleware())      // 自定义日志中间件
	router.Use(logger.ErrorLoggerMiddleware()) // 错误日志中间件

	// 6. 设置基础路由
	setupBasicRoutes(router)

	// 6.1 业务路由
	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			// 公开接口（无需认证）
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			// 需要认证的接口
			authUsers := users.Group("")
			authUsers.Use(jwtSvc.AuthMiddleware()) // 应用JWT中间件
			{
				authUsers.GET("/profile", userHandler.GetProfile)
				authUsers.PUT("/profile", userHandler.UpdateProfile)
				authUsers.GET("/search", userHandler.Search)
			}
		}

		// 好友路由（需要认证）
		friends := v1.Group("/friends")
		friends.Use(jwtSvc.AuthMiddleware())
		{
			friends.POST("/requests", friendHandler.CreateRequest)                // 发起好友请求
			friends.GET("/requests", friendHandler.ListRequests)                  // 待处理请求列表
			friends.PUT("/requests/:request_id", friendHandler.RespondToRequest)  // 接受/拒绝请求
			friends.DELETE("/requests/:request_id", friendHandler.CancelRequest)  // 撤回请求
			friends.GET("", friendHandler.ListFriends)                            // 好友列表
			friends.DELETE("/:friendship_id", friendHandler.Unfriend)             // 解除好友
		}

		// 训练记录路由（需要认证）
		workouts := v1.Group("/workouts")
		workouts.Use(jwtSvc.AuthMiddleware())
		{
			workouts.POST("", workoutHandler.LogWorkout)                  // 记录训练
			workouts.GET("", workoutHandler.ListOwn)                      // 本人训练列表
			workouts.DELETE("/:workout_id", workoutHandler.DeleteWorkout) // 删除训练
		}

		// 动态流路由（需要认证）
		feed := v1.Group("/feed")
		feed.Use(jwtSvc.AuthMiddleware())
		{
			feed.GET("", feedHandler.GetFeed) // 聚合动态流
		}
	}

	// WebSocket路由（通知推送）
	router.GET("/ws", websocket.WsHandler)

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	// 设置关闭超时
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 关闭HTTP服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupBasicRoutes 设置基础路由
func setupBasicRoutes(router *gin.Engine) {
	// 健康检查
	// 完整url为：http://localhost:8080/health
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		}
		response.Success(c, gin.H{
			"status":  status,
			"message": "FitTrack运行状态",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// 根路径
	// 完整url为：http://localhost:8080/
	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "欢迎使用FitTrack",
			"version": "1.0.0",
		})
	})
}
