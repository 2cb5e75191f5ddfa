package domain

import (
	"errors"
	"time"
)

// Submission is a student's answer to an activity, keyed by course name and
// activity title like the activity itself.
type Submission struct {
	ID           string
	CourseName   string
	Title        string
	StudentName  string
	Instructions string
	IdealAnswer  string
	Answer       string
	CreatedAt    time.Time
}

// Validate validates the submission for persistence. Returns an error describing the first validation failure.
func (s *Submission) Validate() error {
	if s.CourseName == "" {
		return errors.New("course name is required")
	}
	if s.Title == "" {
		return errors.New("title is required")
	}
	if s.Answer == "" {
		return errors.New("answer is required")
	}
	return nil
}
