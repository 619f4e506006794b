package main

import (
	"log"
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vannt010391/staff-management/internal/config"
	"github.com/vannt010391/staff-management/internal/constants"
	"github.com/vannt010391/staff-management/internal/database"
	"github.com/vannt010391/staff-management/internal/handlers"
	"github.com/vannt010391/staff-management/internal/logging"
	"github.com/vannt010391/staff-management/internal/middleware"
	"github.com/vannt010391/staff-management/internal/policy"
	"github.com/vannt010391/staff-management/internal/repository"
	"github.com/vannt010391/staff-management/internal/services"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := database.Connect(cfg); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logger.Fatal("Failed to add indexes", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal("Failed to create upload directory", zap.Error(err))
	}

	r := gin.New()
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())

	// Session store on Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		cfg.RedisPassword,
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		logger.Fatal("Failed to create Redis store", zap.Error(err))
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Redis client for the unread-count cache, sharing the session Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.RedisPassword,
	})
	unreadCache := services.NewUnreadCountCache(redisClient, logger)

	// Repositories
	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	notifier := services.NewDBNotifier(notificationRepo, unreadCache, logger)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, notifier, logger)
	reviewService := services.NewReviewService(reviewRepo, taskRepo, notifier, logger)
	notificationService := services.NewNotificationService(notificationRepo, unreadCache)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	departmentHandler := handlers.NewDepartmentHandler()
	projectHandler := handlers.NewProjectHandler(taskService)
	topicHandler := handlers.NewTopicHandler()
	designRuleHandler := handlers.NewDesignRuleHandler()
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewTaskCommentHandler(notifier)
	fileHandler := handlers.NewTaskFileHandler(cfg.UploadDir, notifier, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Staff Management API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.POST("/change-password", middleware.RequireAuth(), authHandler.ChangePassword)
			auth.POST("/register", middleware.RequireAuth(), middleware.RequirePolicy(policy.ActionManageUsers), authHandler.Register)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireAuth(), middleware.RequirePolicy(policy.ActionManageUsers))
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.POST("/:id/toggle-active", userHandler.ToggleActive)
			users.DELETE("/:id", middleware.RequirePolicy(policy.ActionDeleteUsers), userHandler.DeleteUser)
		}

		departments := api.Group("/departments")
		departments.Use(middleware.RequireAuth(), middleware.RequirePolicy(policy.ActionManageDepartments))
		{
			departments.GET("", departmentHandler.ListDepartments)
			departments.POST("", departmentHandler.CreateDepartment)
			departments.GET("/:id", departmentHandler.GetDepartment)
			departments.PATCH("/:id", departmentHandler.UpdateDepartment)
			departments.DELETE("/:id", departmentHandler.DeleteDepartment)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/statistics", projectHandler.GetStatistics)
			projects.GET("/:id/topics", topicHandler.ListTopics)
			projects.GET("/:id/design-rules", designRuleHandler.ListDesignRules)

			manage := projects.Group("")
			manage.Use(middleware.RequirePolicy(policy.ActionManageProjects))
			{
				manage.POST("", projectHandler.CreateProject)
				manage.PATCH("/:id", projectHandler.UpdateProject)
				manage.POST("/:id/topics", middleware.RequirePolicy(policy.ActionManageTopics), topicHandler.CreateTopic)
				manage.POST("/:id/topics/reorder", middleware.RequirePolicy(policy.ActionManageTopics), topicHandler.ReorderTopics)
				manage.POST("/:id/design-rules", middleware.RequirePolicy(policy.ActionManageDesignRules), designRuleHandler.CreateDesignRule)
				manage.POST("/:id/design-rules/reorder", middleware.RequirePolicy(policy.ActionManageDesignRules), designRuleHandler.ReorderDesignRules)
			}
			projects.DELETE("/:id", middleware.RequirePolicy(policy.ActionDeleteProject), projectHandler.DeleteProject)
		}

		topics := api.Group("/topics")
		topics.Use(middleware.RequireAuth(), middleware.RequirePolicy(policy.ActionManageTopics))
		{
			topics.PATCH("/:id", topicHandler.UpdateTopic)
			topics.DELETE("/:id", topicHandler.DeleteTopic)
		}

		designRules := api.Group("/design-rules")
		designRules.Use(middleware.RequireAuth(), middleware.RequirePolicy(policy.ActionManageDesignRules))
		{
			designRules.PATCH("/:id", designRuleHandler.UpdateDesignRule)
			designRules.DELETE("/:id", designRuleHandler.DeleteDesignRule)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", middleware.RequirePolicy(policy.ActionCreateTask), taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequirePolicy(policy.ActionDeleteTask), taskHandler.DeleteTask)
			tasks.POST("/:id/assign", middleware.RequirePolicy(policy.ActionAssignTask), taskHandler.AssignTask)
			tasks.POST("/:id/status", taskHandler.ChangeStatus)

			tasks.GET("/:id/comments", middleware.RequireTaskAccess(), commentHandler.ListComments)
			tasks.POST("/:id/comments", middleware.RequireTaskAccess(), commentHandler.CreateComment)
			tasks.DELETE("/:id/comments/:comment_id", middleware.RequireTaskAccess(), commentHandler.DeleteComment)

			tasks.GET("/:id/files", middleware.RequireTaskAccess(), fileHandler.ListFiles)
			tasks.POST("/:id/files", middleware.RequireTaskAccess(), fileHandler.UploadFile)
			tasks.GET("/:id/files/:file_id", middleware.RequireTaskAccess(), fileHandler.DownloadFile)
			tasks.DELETE("/:id/files/:file_id", middleware.RequireTaskAccess(), fileHandler.DeleteFile)
		}

		reviews := api.Group("/reviews")
		reviews.Use(middleware.RequireAuth(), middleware.RequirePolicy(policy.ActionReviewTask))
		{
			reviews.GET("", reviewHandler.ListReviews)
			reviews.POST("", reviewHandler.CreateReview)
			reviews.GET("/:id", reviewHandler.GetReview)
			reviews.GET("/:id/criteria", reviewHandler.GetCriteria)
			reviews.PATCH("/:id", reviewHandler.UpdateReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread", notificationHandler.ListUnread)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.POST("/:id/mark-read", notificationHandler.MarkRead)
			notifications.POST("/:id/mark-unread", notificationHandler.MarkUnread)
			notifications.POST("/mark-all-read", notificationHandler.MarkAllRead)
		}
	}

	logger.Info("Server starting", zap.String("addr", cfg.ServerAddr))
	if err := r.Run(cfg.ServerAddr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
