package main

import (
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/habit-board-api/internal/config"
	"github.com/yukikurage/habit-board-api/internal/constants"
	"github.com/yukikurage/habit-board-api/internal/database"
	"github.com/yukikurage/habit-board-api/internal/handlers"
	"github.com/yukikurage/habit-board-api/internal/middleware"
	"github.com/yukikurage/habit-board-api/internal/repository"
	"github.com/yukikurage/habit-board-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	isProduction := cfg.GinMode == "release"
	if isProduction {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// All calendar-day arithmetic (streaks, daily credit guard) anchors to
	// this one location.
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logrus.WithError(err).Fatalf("Invalid timezone %q", cfg.Timezone)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create Redis session store")
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Redis client for the leaderboard cache
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	leaderboardService := services.NewLeaderboardService(userRepo, rdb)
	postService := services.NewPostService(postRepo, leaderboardService, loc)
	commentService := services.NewCommentService(commentRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService)
	commentHandler := handlers.NewCommentHandler(commentService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Habit Board API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Habit and progress routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.PUT("/me/habit", userHandler.SetHabit)
			users.PUT("/me/goal", userHandler.SetGoal)
			users.GET("/me/progress", userHandler.GetProgress)
		}

		// Board routes (protected)
		posts := api.Group("/posts")
		posts.Use(middleware.RequireAuth())
		{
			posts.GET("", postHandler.ListPosts)
			posts.POST("", postHandler.CreatePost)
			posts.GET("/:id", postHandler.GetPost)
			posts.DELETE("/:id", middleware.RequireUser(), postHandler.DeletePost)
			posts.POST("/:id/approve", middleware.RequireUser(), middleware.RequireTeacher(), postHandler.ApprovePost)

			posts.GET("/:id/comments", commentHandler.ListComments)
			posts.POST("/:id/comments", commentHandler.AddComment)
			posts.DELETE("/:id/comments/:commentID", middleware.RequireUser(), commentHandler.DeleteComment)
		}

		// Leaderboard (protected)
		api.GET("/leaderboard", middleware.RequireAuth(), leaderboardHandler.GetLeaderboard)
	}

	// Start server
	logrus.Infof("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
