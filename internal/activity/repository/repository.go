package repository

import (
	"context"

	"learnai/backend/internal/activity/domain"
)

// Repository defines persistence for learning activities.
type Repository interface {
	Create(ctx context.Context, a *domain.Activity) error
	List(ctx context.Context) ([]*domain.Activity, error)
	ListByCourse(ctx context.Context, courseName string) ([]*domain.Activity, error)
	// GetByCourseAndTitle returns the activity, or nil if not found.
	GetByCourseAndTitle(ctx context.Context, courseName, title string) (*domain.Activity, error)
}
