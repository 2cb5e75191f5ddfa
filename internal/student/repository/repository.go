package repository

import (
	"context"

	"learnai/backend/internal/student/domain"
)

// Repository defines persistence for students and their course memberships.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	// Create persists the student and the initial membership set.
	Create(ctx context.Context, s *domain.Student) error
	// AddCourse appends courseName to the student's membership set.
	// Adding a name that is already present is a no-op.
	AddCourse(ctx context.Context, studentID, courseName string) error
}
