package domain

import (
	"errors"
	"time"
)

// Course is owned by an instructor. Name is the cross-reference key used for
// membership and activity lookup; the schema does not make it globally unique.
type Course struct {
	ID           string
	InstructorID string
	Name         string
	Description  string
	// ResourceKey is the object-store key of the course resource file.
	// Generated server-side; never accepted from clients.
	ResourceKey string
	CreatedAt   time.Time
}

// Validate validates the course for persistence. Returns an error describing the first validation failure.
func (c *Course) Validate() error {
	if c.Name == "" {
		return errors.New("course name is required")
	}
	if c.InstructorID == "" {
		return errors.New("instructor id is required")
	}
	return nil
}
