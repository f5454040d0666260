package entities

import "time"

// Course represents a course entity in the database
type Course struct {
	ID              int64
	Title           string
	Description     string
	EstimatedTime   *string // Pointer allows nil (column is nullable)
	MaterialsNeeded *string
	UserID          int64
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Creator is filled by queries that join users; nil otherwise.
	Creator *User
}
