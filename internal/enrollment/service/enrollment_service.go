package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"learnai/backend/internal/events"
	identitydomain "learnai/backend/internal/identity/domain"
	identityservice "learnai/backend/internal/identity/service"
	"learnai/backend/internal/notifier"
	"learnai/backend/internal/security"
	studentdomain "learnai/backend/internal/student/domain"
	studentrepo "learnai/backend/internal/student/repository"
)

// ErrEmailOwnedByInstructor is returned when the enrollment email already
// names an instructor. An email resolves to at most one principal across both
// identity collections, so it can never become a student as well.
var ErrEmailOwnedByInstructor = errors.New("email belongs to an instructor account")

// StudentRepo is the minimal student repository needed by the enrollment service.
type StudentRepo interface {
	GetByEmail(ctx context.Context, email string) (*studentdomain.Student, error)
	Create(ctx context.Context, s *studentdomain.Student) error
	AddCourse(ctx context.Context, studentID, courseName string) error
}

// EnrollmentService provisions student accounts at enrollment time and keeps
// the per-student course-membership set free of duplicates. Calling Enroll
// twice with the same (email, courseName) never creates two accounts and
// never duplicates the membership entry.
type EnrollmentService struct {
	resolver *identityservice.Resolver
	students StudentRepo
	hasher   *security.Hasher
	mailer   notifier.Mailer
	mailFrom string
	emitter  events.EventEmitter
	logger   *slog.Logger
}

// NewEnrollmentService returns an EnrollmentService with the given dependencies.
// mailer and emitter may be nil; delivery and audit events are then skipped.
func NewEnrollmentService(
	resolver *identityservice.Resolver,
	students StudentRepo,
	hasher *security.Hasher,
	mailer notifier.Mailer,
	mailFrom string,
	emitter events.EventEmitter,
	logger *slog.Logger,
) *EnrollmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrollmentService{
		resolver: resolver,
		students: students,
		hasher:   hasher,
		mailer:   mailer,
		mailFrom: mailFrom,
		emitter:  emitter,
		logger:   logger,
	}
}

// Enroll associates email with courseName, creating the student principal
// first if needed. Returns created=true when a new account was provisioned.
//
// New accounts get a generated one-time password, delivered asynchronously
// after the account is persisted; delivery failure is logged and emitted as an
// audit event but never fails the enrollment. The concurrent-create race is
// closed by the unique index on the student email: a duplicate insert falls
// through to the membership-append path.
func (s *EnrollmentService) Enroll(ctx context.Context, email, fullName, courseName string) (created bool, err error) {
	email = identityservice.NormalizeEmail(email)
	if err := identityservice.ValidateEmail(email); err != nil {
		return false, err
	}
	if courseName == "" {
		return false, errors.New("course name is required")
	}

	principal, err := s.resolver.Resolve(ctx, email)
	if err != nil {
		return false, err
	}
	switch principal.Kind {
	case identitydomain.KindInstructor:
		return false, ErrEmailOwnedByInstructor
	case identitydomain.KindStudent:
		return false, s.appendMembership(ctx, principal.Student, courseName)
	}

	password, err := security.GenerateOneTimePassword()
	if err != nil {
		return false, err
	}
	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	student := &studentdomain.Student{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
		FullName:     fullName,
		Courses:      []string{courseName},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := student.Validate(); err != nil {
		return false, err
	}
	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, studentrepo.ErrDuplicateEmail) {
			// Lost the create race; the account exists now, so append instead.
			existing, getErr := s.students.GetByEmail(ctx, email)
			if getErr != nil {
				return false, getErr
			}
			if existing == nil {
				return false, err
			}
			return false, s.appendMembership(ctx, existing, courseName)
		}
		return false, err
	}

	// Account is committed; everything past this point is best-effort.
	msg := notifier.WelcomeMessage(s.mailFrom, email, fullName, password)
	notifier.SendAsync(s.mailer, msg, s.logger, func(sendErr error) {
		ev := events.New(events.TypeWelcomeMailError)
		ev.PrincipalID = student.ID
		ev.Email = email
		ev.Detail = sendErr.Error()
		events.EmitAsync(s.emitter, ev)
	})

	ev := events.New(events.TypeStudentCreated)
	ev.PrincipalID = student.ID
	ev.Email = email
	ev.CourseName = courseName
	events.EmitAsync(s.emitter, ev)

	return true, nil
}

func (s *EnrollmentService) appendMembership(ctx context.Context, student *studentdomain.Student, courseName string) error {
	if err := s.students.AddCourse(ctx, student.ID, courseName); err != nil {
		return err
	}
	if !student.HasCourse(courseName) {
		ev := events.New(events.TypeStudentEnrolled)
		ev.PrincipalID = student.ID
		ev.Email = student.Email
		ev.CourseName = courseName
		events.EmitAsync(s.emitter, ev)
	}
	return nil
}
