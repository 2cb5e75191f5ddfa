package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"learnai/backend/internal/platform/pgerr"
	"learnai/backend/internal/student/domain"
)

// ErrDuplicateEmail is returned by Create when the email unique index rejects
// the insert. The enrollment orchestrator treats it as "already exists" and
// falls through to the membership-append path.
var ErrDuplicateEmail = errors.New("student email already exists")

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a student repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the student for id with memberships loaded, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, created_at, updated_at FROM students WHERE id = $1`, id)
	return r.scanStudent(ctx, row)
}

// GetByEmail returns the student with the given email with memberships loaded,
// or nil if not found. It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, created_at, updated_at FROM students WHERE email = $1`, email)
	return r.scanStudent(ctx, row)
}

// Create persists the student and the initial membership set in one
// transaction. The student must have ID set; it is not assigned by this
// method. Returns ErrDuplicateEmail when the email is taken.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Student) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO students (id, email, password_hash, full_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Email, s.PasswordHash, s.FullName, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	for _, course := range s.Courses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO student_courses (student_id, course_name, added_at)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (student_id, course_name) DO NOTHING`,
			s.ID, course, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AddCourse appends courseName to the student's membership set. The primary
// key on (student_id, course_name) makes a duplicate append a no-op.
func (r *PostgresRepository) AddCourse(ctx context.Context, studentID, courseName string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO student_courses (student_id, course_name, added_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (student_id, course_name) DO NOTHING`,
		studentID, courseName, time.Now().UTC())
	return err
}

func (r *PostgresRepository) scanStudent(ctx context.Context, row *sql.Row) (*domain.Student, error) {
	var s domain.Student
	err := row.Scan(&s.ID, &s.Email, &s.PasswordHash, &s.FullName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT course_name FROM student_courses WHERE student_id = $1 ORDER BY added_at`, s.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		s.Courses = append(s.Courses, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}
