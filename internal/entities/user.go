package entities

import "time"

// User represents a user entity in the database
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	EmailAddress string
	Password     string `json:"-"` // bcrypt hash, never serialized
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
