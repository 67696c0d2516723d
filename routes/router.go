package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/config"
	"inkwell/controllers"
	"inkwell/middleware"
	"inkwell/repository"
	"inkwell/utils"
)

// SetupRouter wires middleware, controllers and route groups.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(utils.GinLogger())
	router.Use(utils.GinRecovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.PageViewRecorder(db))

	posts := repository.NewPostStore(db)
	comments := repository.NewCommentStore(db)
	categories := repository.NewCategoryStore(db)
	tags := repository.NewTagStore(db)
	stats := repository.NewStatsStore(db)
	users := repository.NewUserStore(db)

	blog := controllers.NewBlogController(posts, comments, categories, tags, stats)
	comment := controllers.NewCommentController(posts, comments)
	auth := controllers.NewAuthController(users)
	adminPost := controllers.NewAdminPostController(posts, comments, categories)
	adminComment := controllers.NewAdminCommentController(comments)
	adminCategory := controllers.NewAdminCategoryController(categories)
	adminTag := controllers.NewAdminTagController(tags)
	dashboard := controllers.NewDashboardController(stats, posts, comments)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/posts", blog.Index)
		api.GET("/posts/:slug", blog.Show)
		api.POST("/posts/:slug/comments", middleware.RateLimitMiddleware(), comment.Store)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", middleware.RateLimitMiddleware(), auth.Login)
			authGroup.GET("/me", middleware.AuthRequired(), auth.Me)
			authGroup.POST("/logout", middleware.AuthRequired(), auth.Logout)
		}

		admin := api.Group("/admin", middleware.AuthRequired())
		{
			admin.GET("/dashboard", dashboard.Index)

			admin.GET("/posts", adminPost.Index)
			admin.POST("/posts", adminPost.Store)
			admin.GET("/posts/:id", adminPost.Show)
			admin.PUT("/posts/:id", adminPost.Update)
			admin.DELETE("/posts/:id", adminPost.Destroy)

			admin.GET("/comments", adminComment.Index)
			admin.GET("/comments/:id", adminComment.Show)
			admin.PUT("/comments/:id", adminComment.Update)
			admin.DELETE("/comments/:id", adminComment.Destroy)

			admin.GET("/categories", adminCategory.Index)
			admin.POST("/categories", adminCategory.Store)
			admin.GET("/categories/:id", adminCategory.Show)
			admin.PUT("/categories/:id", adminCategory.Update)
			admin.DELETE("/categories/:id", adminCategory.Destroy)

			admin.GET("/tags", adminTag.Index)
			admin.POST("/tags", adminTag.Store)
			admin.GET("/tags/:id", adminTag.Show)
			admin.PUT("/tags/:id", adminTag.Update)
			admin.DELETE("/tags/:id", adminTag.Destroy)
		}
	}

	router.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return router
}
