package repository

import (
	"context"
	"database/sql"
	"time"

	"learnai/backend/internal/submission/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a submission repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the submission. The submission must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Submission) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO submissions (id, course_name, title, student_name, instructions, ideal_answer, answer, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.CourseName, s.Title, s.StudentName, s.Instructions, s.IdealAnswer, s.Answer, s.CreatedAt)
	return err
}

// ListByCourseAndTitle returns all submissions for the activity identified by
// (courseName, title), oldest first.
func (r *PostgresRepository) ListByCourseAndTitle(ctx context.Context, courseName, title string) ([]*domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, course_name, title, student_name, instructions, ideal_answer, answer, created_at
		 FROM submissions WHERE course_name = $1 AND title = $2 ORDER BY created_at`,
		courseName, title)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Submission
	for rows.Next() {
		var s domain.Submission
		if err := rows.Scan(&s.ID, &s.CourseName, &s.Title, &s.StudentName,
			&s.Instructions, &s.IdealAnswer, &s.Answer, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
