package repository

import (
	"context"

	"learnai/backend/internal/submission/domain"
)

// Repository defines persistence for submissions.
type Repository interface {
	Create(ctx context.Context, s *domain.Submission) error
	ListByCourseAndTitle(ctx context.Context, courseName, title string) ([]*domain.Submission, error)
}
