package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courses-api/internal/middleware"
	"courses-api/internal/models"
	"courses-api/internal/service"
)

type UserController struct {
	authService service.AuthService
}

func NewUserController(authService service.AuthService) *UserController {
	return &UserController{
		authService: authService,
	}
}

// GetCurrentUser handles GET /api/users
func (uc *UserController) GetCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewUserResponse(middleware.CurrentUser(c)))
}

// CreateUser handles POST /api/users
func (uc *UserController) CreateUser(c *gin.Context) {
	var req models.UserRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := uc.authService.Register(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/")
	c.Status(http.StatusCreated)
}
