package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"learnai/backend/internal/instructor/domain"
	"learnai/backend/internal/platform/pgerr"
)

// ErrDuplicateEmail is returned by Create when the email unique index rejects the insert.
var ErrDuplicateEmail = errors.New("instructor email already exists")

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an instructor repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the instructor for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Instructor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM instructors WHERE id = $1`, id)
	return scanInstructor(row)
}

// GetByEmail returns the instructor with the given email, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Instructor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM instructors WHERE email = $1`, email)
	return scanInstructor(row)
}

// Create persists the instructor. The instructor must have ID set; it is not
// assigned by this method. Returns ErrDuplicateEmail when the email is taken.
func (r *PostgresRepository) Create(ctx context.Context, i *domain.Instructor) error {
	now := time.Now().UTC()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO instructors (id, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		i.ID, i.Email, i.PasswordHash, i.CreatedAt, i.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func scanInstructor(row *sql.Row) (*domain.Instructor, error) {
	var i domain.Instructor
	err := row.Scan(&i.ID, &i.Email, &i.PasswordHash, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}
