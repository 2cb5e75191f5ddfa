package repository

import (
	"context"

	"learnai/backend/internal/course/domain"
)

// Repository defines persistence for courses.
type Repository interface {
	Create(ctx context.Context, c *domain.Course) error
	// GetByName returns the first course with the given name, or nil if none.
	// Name is not unique by schema; callers accept first-match semantics.
	GetByName(ctx context.Context, name string) (*domain.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*domain.Course, error)
	ListByNames(ctx context.Context, names []string) ([]*domain.Course, error)
}
