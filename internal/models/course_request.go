package models

// CourseRequest represents the request body for creating or updating a course.
// Title is free text even though legacy clients documented it as a number.
type CourseRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

func (r *CourseRequest) Fields() map[string]string {
	fields := map[string]string{
		"title":       r.Title,
		"description": r.Description,
	}
	if r.EstimatedTime != nil {
		fields["estimatedTime"] = *r.EstimatedTime
	}
	if r.MaterialsNeeded != nil {
		fields["materialsNeeded"] = *r.MaterialsNeeded
	}
	return fields
}
