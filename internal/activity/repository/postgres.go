package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"learnai/backend/internal/activity/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an activity repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const activityColumns = `id, course_name, title, instructor_email, materials_key, instructions, ideal_answer, published, created_at`

// Create persists the activity. The activity must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (`+activityColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.CourseName, a.Title, a.InstructorEmail, a.MaterialsKey,
		a.Instructions, a.IdealAnswer, a.Published, a.CreatedAt)
	return err
}

// List returns all activities, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

// ListByCourse returns all activities for courseName, newest first.
func (r *PostgresRepository) ListByCourse(ctx context.Context, courseName string) ([]*domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE course_name = $1 ORDER BY created_at DESC`,
		courseName)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

// GetByCourseAndTitle returns the activity, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByCourseAndTitle(ctx context.Context, courseName, title string) (*domain.Activity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities
		 WHERE course_name = $1 AND title = $2 ORDER BY created_at LIMIT 1`,
		courseName, title)
	var a domain.Activity
	err := row.Scan(&a.ID, &a.CourseName, &a.Title, &a.InstructorEmail, &a.MaterialsKey,
		&a.Instructions, &a.IdealAnswer, &a.Published, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func collectActivities(rows *sql.Rows) ([]*domain.Activity, error) {
	defer rows.Close()
	var out []*domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.CourseName, &a.Title, &a.InstructorEmail, &a.MaterialsKey,
			&a.Instructions, &a.IdealAnswer, &a.Published, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
