package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"learnai/backend/internal/course/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a course repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the course. The course must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Course) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO courses (id, instructor_id, name, description, resource_key, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.InstructorID, c.Name, c.Description, c.ResourceKey, c.CreatedAt)
	return err
}

// GetByName returns the first course with the given name, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, instructor_id, name, description, resource_key, created_at
		 FROM courses WHERE name = $1 ORDER BY created_at LIMIT 1`, name)
	var c domain.Course
	err := row.Scan(&c.ID, &c.InstructorID, &c.Name, &c.Description, &c.ResourceKey, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListByInstructor returns all courses owned by instructorID, newest first.
func (r *PostgresRepository) ListByInstructor(ctx context.Context, instructorID string) ([]*domain.Course, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, instructor_id, name, description, resource_key, created_at
		 FROM courses WHERE instructor_id = $1 ORDER BY created_at DESC`, instructorID)
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

// ListByNames returns courses whose name is in names. Used to resolve a
// student's membership set to course records.
func (r *PostgresRepository) ListByNames(ctx context.Context, names []string) ([]*domain.Course, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, instructor_id, name, description, resource_key, created_at
		 FROM courses WHERE name = ANY($1) ORDER BY created_at`, names)
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

func collectCourses(rows *sql.Rows) ([]*domain.Course, error) {
	defer rows.Close()
	var out []*domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.InstructorID, &c.Name, &c.Description, &c.ResourceKey, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
