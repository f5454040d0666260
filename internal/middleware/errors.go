package middleware

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"courses-api/internal/logging"
)

var internalServerError = gin.H{"message": "Internal Server Error"}

// ErrorHandler turns errors attached with c.Error into a generic 500. Handlers
// that already wrote a response are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		logging.Ctx(c.Request.Context()).Error().
			Err(c.Errors.Last().Err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")

		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusInternalServerError, internalServerError)
	}
}

// Recovery converts panics into the same 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logging.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, internalServerError)
	})
}

// NotFound answers unmatched routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Route Not Found"})
}
