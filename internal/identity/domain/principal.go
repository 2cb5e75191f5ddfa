package domain

import (
	instructordomain "learnai/backend/internal/instructor/domain"
	studentdomain "learnai/backend/internal/student/domain"
)

// Kind tags which identity collection a principal belongs to.
type Kind string

const (
	KindNone       Kind = ""
	KindInstructor Kind = "instructor"
	KindStudent    Kind = "student"
)

// Principal is the tagged-variant result of resolving an email across the two
// identity collections. Exactly one of Instructor/Student is non-nil when Kind
// is not KindNone.
type Principal struct {
	Kind       Kind
	Instructor *instructordomain.Instructor
	Student    *studentdomain.Student
}

// ID returns the principal id for the active variant, or "" for KindNone.
func (p Principal) ID() string {
	switch p.Kind {
	case KindInstructor:
		return p.Instructor.ID
	case KindStudent:
		return p.Student.ID
	}
	return ""
}

// PasswordHash returns the stored credential hash for the active variant, or "" for KindNone.
func (p Principal) PasswordHash() string {
	switch p.Kind {
	case KindInstructor:
		return p.Instructor.PasswordHash
	case KindStudent:
		return p.Student.PasswordHash
	}
	return ""
}
