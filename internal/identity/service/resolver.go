package service

import (
	"context"

	identitydomain "learnai/backend/internal/identity/domain"
	instructordomain "learnai/backend/internal/instructor/domain"
	studentdomain "learnai/backend/internal/student/domain"
)

// InstructorRepo is the minimal instructor repository needed by the resolver.
type InstructorRepo interface {
	GetByEmail(ctx context.Context, email string) (*instructordomain.Instructor, error)
	Create(ctx context.Context, i *instructordomain.Instructor) error
}

// StudentRepo is the minimal student repository needed by the resolver.
type StudentRepo interface {
	GetByEmail(ctx context.Context, email string) (*studentdomain.Student, error)
	GetByID(ctx context.Context, id string) (*studentdomain.Student, error)
}

// Resolver maps an email to the principal that owns it, treating the
// instructor and student collections as one logical identity space. Callers
// must resolve before any create so an email never names two principals.
type Resolver struct {
	instructors InstructorRepo
	students    StudentRepo
}

// NewResolver returns a Resolver over the two identity collections.
func NewResolver(instructors InstructorRepo, students StudentRepo) *Resolver {
	return &Resolver{instructors: instructors, students: students}
}

// Resolve looks up email in the instructor collection first, then the student
// collection. No match returns a Principal with KindNone and a nil error;
// storage failures propagate to the caller.
func (r *Resolver) Resolve(ctx context.Context, email string) (identitydomain.Principal, error) {
	inst, err := r.instructors.GetByEmail(ctx, email)
	if err != nil {
		return identitydomain.Principal{}, err
	}
	if inst != nil {
		return identitydomain.Principal{Kind: identitydomain.KindInstructor, Instructor: inst}, nil
	}
	stu, err := r.students.GetByEmail(ctx, email)
	if err != nil {
		return identitydomain.Principal{}, err
	}
	if stu != nil {
		return identitydomain.Principal{Kind: identitydomain.KindStudent, Student: stu}, nil
	}
	return identitydomain.Principal{Kind: identitydomain.KindNone}, nil
}
