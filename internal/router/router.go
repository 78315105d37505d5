package router

import (
	"github.com/gin-gonic/gin"

	"findmydocs/internal/domain"
	"findmydocs/internal/handler"
	"findmydocs/internal/middleware"
	"findmydocs/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	requestH *handler.RequestHandler,
	notificationH *handler.NotificationHandler,
	registrationH *handler.RegistrationHandler,
	userH *handler.UserHandler,
	fileH *handler.FileHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)
	auth.POST("/register", authH.Register)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Document request workflow
	requests := protected.Group("/requests")
	requests.POST("", requestH.Submit)
	requests.GET("", middleware.RequireRole(domain.RoleAdmin), requestH.List)
	requests.GET("/pending", requestH.ListPending)
	requests.GET("/mine", requestH.ListMine)
	requests.GET("/user/:id", middleware.RequireRole(domain.RoleAdmin), requestH.ListByUser)
	requests.GET("/:id", requestH.GetByID)
	requests.POST("/:id/approve", requestH.Approve)
	requests.POST("/:id/reject", requestH.Reject)
	requests.DELETE("/:id", requestH.Delete)

	// Notification feed
	notifications := protected.Group("/notifications")
	notifications.GET("", notificationH.List)
	notifications.PATCH("/:id/read", notificationH.MarkRead)
	notifications.DELETE("/:id", notificationH.Delete)
	notifications.DELETE("", notificationH.DeleteAll)

	// Registration review (admin only)
	registrations := protected.Group("/registrations")
	registrations.Use(middleware.RequireRole(domain.RoleAdmin))
	registrations.GET("", registrationH.List)
	registrations.POST("/:id/approve", registrationH.Approve)
	registrations.POST("/:id/reject", registrationH.Reject)

	// User management
	users := protected.Group("/users")
	users.GET("/me", userH.Me)
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Attachments
	files := protected.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("/:id", fileH.GetByID)
	files.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), fileH.Delete)

	return r
}
