package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lakshaya-counselling/assessment-backend/internal/config"
	"github.com/lakshaya-counselling/assessment-backend/internal/handler"
	"github.com/lakshaya-counselling/assessment-backend/internal/middleware"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/response"
	"github.com/lakshaya-counselling/assessment-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth           *handler.AuthHandler
	UserPortal     *handler.UserPortalHandler
	AdminCandidate *handler.AdminCandidateHandler
	Admin          *handler.AdminHandler
	AdminAccount   *handler.AdminAccountHandler
	Contact        *handler.ContactHandler
	WS             *handler.WSHandler
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
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally. Question payloads compress well.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for unauthenticated surfaces (30 requests per minute per IP).
	publicLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 0. Public Group (No Auth, Rate Limited) ───────────────────────
	publicAPI := router.Group("/api/v1")
	publicAPI.Use(publicLimiter.Middleware())
	{
		publicAPI.POST("/contact", handlers.Contact.Submit)
	}

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", publicLimiter.Middleware(), handlers.Auth.Register)
		auth.POST("/login", publicLimiter.Middleware(), handlers.Auth.Login)
		auth.POST("/admin/login", publicLimiter.Middleware(), handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireUserJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.Me)
		auth.PUT("/me", middleware.RequireUserJWT(authService), handlers.Auth.UpdateProfile)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.AdminMe)
	}

	// ─── 2. Candidate Group (JWT + Single Device) ──────────────────────
	userAPI := router.Group("/api/v1/user")
	userAPI.Use(
		middleware.RequireUserJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		userAPI.GET("/tests", handlers.UserPortal.ListTests)
		userAPI.GET("/tests/:testType/questions",
			middleware.PrivateCache(300),
			handlers.UserPortal.GetQuestions)
		userAPI.POST("/tests/submit", handlers.UserPortal.Submit)
		userAPI.GET("/tests/:testType/progress", handlers.UserPortal.GetProgress)
		userAPI.PUT("/tests/:testType/progress", handlers.UserPortal.SaveProgress)
		userAPI.GET("/results", handlers.UserPortal.ListResults)
		userAPI.GET("/results/:id", handlers.UserPortal.GetResult)
	}

	// ─── 3. WebSocket Group (Candidate WS Auth) ────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/user/tests/:testType/stream", handlers.WS.TestSessionStream)
	}

	// ─── 4. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Candidate management
		adminAPI.GET("/candidates",
			middleware.RequirePermission(model.PermissionCandidatesRead),
			handlers.AdminCandidate.List,
		)
		adminAPI.GET("/candidates/:id",
			middleware.RequirePermission(model.PermissionCandidatesRead),
			handlers.AdminCandidate.Get,
		)
		adminAPI.PUT("/candidates/:id/tests",
			middleware.RequirePermission(model.PermissionCandidatesAssign),
			handlers.AdminCandidate.AssignTests,
		)
		adminAPI.PUT("/candidates/:id/tests/:testType/reset",
			middleware.RequirePermission(model.PermissionCandidatesAssign),
			handlers.AdminCandidate.ResetTestStatus,
		)
		adminAPI.POST("/candidates/:id/reset-session",
			middleware.RequirePermission(model.PermissionCandidatesWrite),
			handlers.AdminCandidate.ResetSession,
		)
		adminAPI.DELETE("/candidates/:id",
			middleware.RequirePermission(model.PermissionCandidatesWrite),
			handlers.AdminCandidate.Delete,
		)

		// Results
		adminAPI.GET("/results",
			middleware.RequirePermission(model.PermissionResultsRead),
			handlers.Admin.ListResults,
		)
		adminAPI.GET("/results/:id",
			middleware.RequirePermission(model.PermissionResultsRead),
			handlers.Admin.GetResult,
		)

		// Invitations
		adminAPI.POST("/invitations",
			middleware.RequirePermission(model.PermissionInvitesSend),
			handlers.Admin.SendInvitation,
		)
		adminAPI.GET("/invitations",
			middleware.RequirePermission(model.PermissionInvitesSend),
			handlers.Admin.ListInvitations,
		)

		// Contact messages
		adminAPI.GET("/contact-messages",
			middleware.RequireAnyPermission(model.PermissionCandidatesRead, model.PermissionInvitesSend),
			handlers.Admin.ListContactMessages,
		)
		adminAPI.DELETE("/contact-messages/:id",
			middleware.RequirePermission(model.PermissionCandidatesWrite),
			handlers.Admin.DeleteContactMessage,
		)

		// Admin account management
		adminAPI.GET("/accounts",
			middleware.RequirePermission(model.PermissionAdminsRead),
			handlers.AdminAccount.ListAdmins,
		)
		adminAPI.POST("/accounts",
			middleware.RequirePermission(model.PermissionAdminsWrite),
			handlers.AdminAccount.CreateAdmin,
		)
		adminAPI.PUT("/accounts/:id",
			middleware.RequirePermission(model.PermissionAdminsWrite),
			handlers.AdminAccount.UpdateAdmin,
		)
		adminAPI.DELETE("/accounts/:id",
			middleware.RequirePermission(model.PermissionAdminsWrite),
			handlers.AdminAccount.DeleteAdmin,
		)

		// Role management
		adminAPI.GET("/roles",
			middleware.RequirePermission(model.PermissionRolesRead),
			handlers.AdminAccount.ListRoles,
		)
		adminAPI.POST("/roles",
			middleware.RequirePermission(model.PermissionRolesWrite),
			handlers.AdminAccount.CreateRole,
		)
		adminAPI.PUT("/roles/:id",
			middleware.RequirePermission(model.PermissionRolesWrite),
			handlers.AdminAccount.UpdateRole,
		)
		adminAPI.DELETE("/roles/:id",
			middleware.RequirePermission(model.PermissionRolesWrite),
			handlers.AdminAccount.DeleteRole,
		)

		// Catalog maintenance
		adminAPI.POST("/tests/:testType/refresh-questions",
			middleware.RequirePermission(model.PermissionAdminsWrite),
			handlers.Admin.RefreshQuestions,
		)

		// Dashboard — open to all admins
		adminAPI.GET("/dashboard", handlers.Admin.Dashboard)
	}

	return router
}
