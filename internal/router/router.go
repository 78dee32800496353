package router

import (
	"net/http"
	"time"

	"github.com/campusforge/recruit-backend/internal/config"
	"github.com/campusforge/recruit-backend/internal/handler"
	"github.com/campusforge/recruit-backend/internal/middleware"
	"github.com/campusforge/recruit-backend/internal/response"
	"github.com/campusforge/recruit-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Question   *handler.QuestionHandler
	Submission *handler.SubmissionHandler
	Setting    *handler.SettingHandler
	File       *handler.FileHandler
	Sheet      *handler.SheetHandler
	Analytics  *handler.AnalyticsHandler
	Events     *handler.EventsHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for public intake and auth routes (30 requests per
	// minute per IP).
	publicLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Public Group ───────────────────────────────────────────────
	assessment := router.Group("/api/v1/assessment")
	{
		assessment.POST("/validate", publicLimiter.Middleware(), handlers.Question.ValidateAnswers)
		assessment.GET("/config", handlers.Question.AssessmentConfig)
	}

	questions := router.Group("/api/v1/questions")
	{
		questions.GET("", handlers.Question.ListQuestions)
		questions.GET("/categories", handlers.Question.ListCategories)
	}

	// Public intake: anonymous submissions and uploads are allowed, but a
	// signed-in applicant's records get attributed to them.
	router.POST("/api/v1/submissions",
		publicLimiter.Middleware(),
		middleware.OptionalAuth(authService),
		handlers.Submission.CreateSubmission,
	)
	router.POST("/api/v1/files",
		publicLimiter.Middleware(),
		middleware.OptionalAuth(authService),
		handlers.File.Upload,
	)

	// ─── 2. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(publicLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh", handlers.Auth.Refresh)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 3. Authenticated Group ────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))
	{
		api.PATCH("/users/me", handlers.User.UpdateProfile)

		api.GET("/submissions", handlers.Submission.ListSubmissions)
		api.GET("/submissions/:id", handlers.Submission.GetSubmission)
		api.PATCH("/submissions/:id", handlers.Submission.UpdateSubmission)
		api.DELETE("/submissions/:id", handlers.Submission.DeleteSubmission)

		api.GET("/files", handlers.File.ListMyFiles)
		api.GET("/files/:id", handlers.File.GetFile)
		api.DELETE("/files/:id", handlers.File.DeleteFile)
	}

	// ─── 4. WebSocket Group (Admin) ────────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdmin(authService))
	{
		ws.GET("/admin/submissions", handlers.Events.LiveSubmissions)
	}

	// ─── 5. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdmin(authService))
	{
		// Account management
		adminAPI.GET("/users", handlers.User.ListUsers)
		adminAPI.GET("/users/:id", handlers.User.GetUser)
		adminAPI.PUT("/users/:id/roles", handlers.User.AssignRoles)

		// Question bank
		adminAPI.POST("/questions", handlers.Question.CreateQuestion)
		adminAPI.POST("/questions/bulk", handlers.Question.BulkCreateQuestions)
		adminAPI.GET("/questions/:id", handlers.Question.GetQuestion)
		adminAPI.PATCH("/questions/:id", handlers.Question.UpdateQuestion)
		adminAPI.DELETE("/questions/:id", handlers.Question.DeleteQuestion)

		// Submission review pipeline
		adminAPI.PUT("/submissions/:id/status", handlers.Submission.SetStatus)
		adminAPI.POST("/submissions/:id/reviews", handlers.Submission.AddReview)
		adminAPI.PATCH("/submissions/:id/metadata", handlers.Submission.UpdateMetadata)
		adminAPI.POST("/submissions/bulk/status", handlers.Submission.BulkSetStatus)
		adminAPI.POST("/submissions/bulk/delete", handlers.Submission.BulkDelete)
		adminAPI.POST("/submissions/export", handlers.Submission.ExportCSV)
		adminAPI.POST("/submissions/:id/notify", handlers.Submission.Notify)

		// Shortlist sheet
		sheetGroup := adminAPI.Group("/sheet")
		{
			sheetGroup.POST("", handlers.Sheet.AddEntry)
			sheetGroup.GET("", handlers.Sheet.ListEntries)
			sheetGroup.GET("/export", handlers.Sheet.Export)
			sheetGroup.GET("/:id", handlers.Sheet.GetEntry)
			sheetGroup.PATCH("/:id", handlers.Sheet.UpdateEntry)
			sheetGroup.DELETE("/:id", handlers.Sheet.RemoveEntry)
			sheetGroup.POST("/bulk/update", handlers.Sheet.BulkUpdate)
			sheetGroup.POST("/bulk/delete", handlers.Sheet.BulkRemove)
		}

		// App settings
		settingsGroup := adminAPI.Group("/settings")
		{
			settingsGroup.GET("", handlers.Setting.GetSettings)
			settingsGroup.PUT("", handlers.Setting.UpdateSettings)
		}

		// Dashboard analytics
		adminAPI.GET("/analytics/dashboard", handlers.Analytics.Dashboard)
		adminAPI.GET("/analytics/trends", handlers.Analytics.Trends)
	}

	return router
}
