package domain

import (
	"errors"
	"time"
)

// Instructor is a principal who signs up directly and owns courses.
// Immutable after signup except for password reset (not implemented).
type Instructor struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the instructor for persistence. Returns an error describing the first validation failure.
func (i *Instructor) Validate() error {
	if i.Email == "" {
		return errors.New("email is required")
	}
	if i.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}
