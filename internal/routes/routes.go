package routes

import (
	"github.com/gin-gonic/gin"

	"courses-api/internal/controllers"
	"courses-api/internal/middleware"
	"courses-api/internal/service"
)

type Dependencies struct {
	AuthService      service.AuthService
	UserController   *controllers.UserController
	CourseController *controllers.CourseController
	QRCodeController *controllers.QRCodeController
	HealthController *controllers.HealthController

	// RateLimiter is optional; nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the gin engine with every route of the API
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Recovery(), middleware.ErrorHandler())
	router.NoRoute(middleware.NotFound)

	// Health check endpoint (no rate limiting)
	if deps.HealthController != nil {
		router.GET("/health", deps.HealthController.Health)
	}

	api := router.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.LimitMiddleware())
	}

	requireAuth := middleware.BasicAuth(deps.AuthService)

	users := api.Group("/users")
	{
		users.GET("", requireAuth, deps.UserController.GetCurrentUser)
		users.POST("", deps.UserController.CreateUser)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", deps.CourseController.ListCourses)
		courses.GET("/:id", deps.CourseController.GetCourse)
		courses.POST("", requireAuth, deps.CourseController.CreateCourse)
		courses.PUT("/:id", requireAuth, deps.CourseController.UpdateCourse)
		courses.DELETE("/:id", requireAuth, deps.CourseController.DeleteCourse)

		if deps.QRCodeController != nil {
			courses.GET("/:id/qrcode", deps.QRCodeController.GenerateCourseQRCode)
		}
	}

	return router
}
