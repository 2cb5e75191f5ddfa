package domain

import (
	"errors"
	"time"
)

// Activity is a learning activity attached to a course by name.
type Activity struct {
	ID              string
	CourseName      string
	Title           string
	InstructorEmail string
	// MaterialsKey is the object-store key of the activity materials file.
	MaterialsKey string
	Instructions string
	IdealAnswer  string
	Published    bool
	CreatedAt    time.Time
}

// Validate validates the activity for persistence. Returns an error describing the first validation failure.
func (a *Activity) Validate() error {
	if a.CourseName == "" {
		return errors.New("course name is required")
	}
	if a.Title == "" {
		return errors.New("title is required")
	}
	if a.Instructions == "" {
		return errors.New("instructions are required")
	}
	if a.IdealAnswer == "" {
		return errors.New("ideal answer is required")
	}
	return nil
}
