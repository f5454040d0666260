package controllers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"courses-api/internal/service"
	"courses-api/internal/validation"
)

const invalidJSONMessage = "Request body must be valid JSON"

// bindJSON decodes the request body into dest. An empty body decodes as {} so
// that validation reports the missing fields. On failure it writes a 400 and
// returns false.
func bindJSON(c *gin.Context, dest any) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}

	if err := binding.JSON.BindBody(body, dest); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"errors": []string{invalidJSONMessage},
		})
		return false
	}
	return true
}

// respondError maps service errors to responses. Anything unrecognized is
// handed to the error middleware, which answers 500.
func respondError(c *gin.Context, err error) {
	var verr *validation.Errors
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"errors": verr.Messages(),
		})
	case errors.Is(err, service.ErrForbidden):
		c.AbortWithStatus(http.StatusForbidden)
	default:
		_ = c.Error(err)
		c.Abort()
	}
}

func parseCourseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
