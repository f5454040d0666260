package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"courses-api/internal/middleware"
	"courses-api/internal/models"
	"courses-api/internal/service"
)

type CourseController struct {
	courseService service.CourseService
}

func NewCourseController(courseService service.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// ListCourses handles GET /api/courses
func (cc *CourseController) ListCourses(c *gin.Context) {
	courses, err := cc.courseService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewCourseResponses(courses))
}

// GetCourse handles GET /api/courses/:id. Unknown and non-numeric ids answer
// 200 with a null body.
func (cc *CourseController) GetCourse(c *gin.Context) {
	id, ok := parseCourseID(c)
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}

	course, err := cc.courseService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewCourseResponse(course))
}

// CreateCourse handles POST /api/courses
func (cc *CourseController) CreateCourse(c *gin.Context) {
	var req models.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := cc.courseService.Create(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/courses/%d", course.ID))
	c.Status(http.StatusCreated)
}

// UpdateCourse handles PUT /api/courses/:id
func (cc *CourseController) UpdateCourse(c *gin.Context) {
	var req models.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	// A non-numeric id is ignored and left as 0. No row has id 0, so the
	// service's lookup fails and the error middleware answers 500.
	id, _ := parseCourseID(c)

	if err := cc.courseService.Update(c.Request.Context(), middleware.CurrentUser(c), id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteCourse handles DELETE /api/courses/:id
func (cc *CourseController) DeleteCourse(c *gin.Context) {
	// As in UpdateCourse, a non-numeric id becomes 0 and the lookup of
	// course 0 produces the 500.
	id, _ := parseCourseID(c)

	if err := cc.courseService.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
