package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"courses-api/internal/entities"
	"courses-api/internal/logging"
	"courses-api/internal/service"
)

const currentUserKey = "current_user"

// BasicAuth authenticates the Authorization header and stores the user in the
// gin context. Rejections get a fixed body; the reason only reaches the log.
func BasicAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user, err := authService.Authenticate(ctx, c.GetHeader("Authorization"))
		if err != nil {
			var authErr *service.AuthenticationError
			if errors.As(err, &authErr) {
				logging.Ctx(ctx).Warn().Str("reason", authErr.Reason).Str("path", c.Request.URL.Path).Msg("Authentication failed")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message": "Access Denied",
				})
				return
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user set by BasicAuth, or nil on public routes.
func CurrentUser(c *gin.Context) *entities.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}
