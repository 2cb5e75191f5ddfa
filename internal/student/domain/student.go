package domain

import (
	"errors"
	"time"
)

// Student is a principal created at first enrollment. Courses holds the
// course-name membership set; names appear at most once.
type Student struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Courses      []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the student for persistence. Returns an error describing the first validation failure.
func (s *Student) Validate() error {
	if s.Email == "" {
		return errors.New("email is required")
	}
	if s.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// HasCourse reports whether the student is already a member of courseName.
func (s *Student) HasCourse(courseName string) bool {
	for _, c := range s.Courses {
		if c == courseName {
			return true
		}
	}
	return false
}
