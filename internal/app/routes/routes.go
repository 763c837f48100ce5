package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/controllers"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	itemController *controllers.ItemController,
	messageController *controllers.MessageController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
	authLimiter *middleware.LimiterStore,
) {
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// --- Auth route ---
	// One endpoint for signup, login and profile update. Anonymous
	// callers are allowed; a token, when present, scopes updates.
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimitAuth(authLimiter), authMiddleware.OptionalJWTAuth())
	{
		auth.POST("", authController.Handle)
	}

	// --- Public routes ---
	// The feed and messaging carry an optional token so admins get
	// the unfiltered views.
	public := api.Group("")
	public.Use(authMiddleware.OptionalJWTAuth())
	{
		public.GET("/items", itemController.List)
		public.POST("/items", itemController.Create)
		public.GET("/messages", messageController.List)
		public.POST("/messages", messageController.Send)
	}

	// --- Member routes ---
	// Edits require a token but not the admin role; the controller
	// restricts non-admins to status changes on their own reports.
	member := api.Group("")
	member.Use(authMiddleware.JWTAuth())
	{
		member.PUT("/items", itemController.Update)
	}

	// --- Admin routes ---
	admin := api.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.AdminOnly())
	{
		admin.PATCH("/items", itemController.Verify)
		admin.DELETE("/items", itemController.Delete)
		admin.GET("/users", userController.List)
	}
}
