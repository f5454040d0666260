package models

import "courses-api/internal/entities"

// CourseResponse represents a course with its creator embedded
type CourseResponse struct {
	ID              int64        `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	EstimatedTime   *string      `json:"estimatedTime"`
	MaterialsNeeded *string      `json:"materialsNeeded"`
	Creator         UserResponse `json:"creator"`
}

// NewCourseResponse returns nil for a nil course so handlers can render JSON null.
func NewCourseResponse(course *entities.Course) *CourseResponse {
	if course == nil {
		return nil
	}

	resp := &CourseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   course.EstimatedTime,
		MaterialsNeeded: course.MaterialsNeeded,
	}
	if course.Creator != nil {
		resp.Creator = NewUserResponse(course.Creator)
	}
	return resp
}

func NewCourseResponses(courses []*entities.Course) []*CourseResponse {
	responses := make([]*CourseResponse, len(courses))
	for i, course := range courses {
		responses[i] = NewCourseResponse(course)
	}
	return responses
}
