package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	identitydomain "learnai/backend/internal/identity/domain"
	instructordomain "learnai/backend/internal/instructor/domain"
	"learnai/backend/internal/security"
	studentdomain "learnai/backend/internal/student/domain"
)

type fakeInstructorRepo struct {
	mu      sync.Mutex
	byEmail map[string]*instructordomain.Instructor
	err     error
}

func newFakeInstructorRepo() *fakeInstructorRepo {
	return &fakeInstructorRepo{byEmail: make(map[string]*instructordomain.Instructor)}
}

func (f *fakeInstructorRepo) GetByEmail(_ context.Context, email string) (*instructordomain.Instructor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byEmail[email], nil
}

func (f *fakeInstructorRepo) Create(_ context.Context, i *instructordomain.Instructor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byEmail[i.Email] = i
	return nil
}

type fakeStudentRepo struct {
	mu      sync.Mutex
	byEmail map[string]*studentdomain.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{byEmail: make(map[string]*studentdomain.Student)}
}

func (f *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*studentdomain.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byEmail[email], nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id string) (*studentdomain.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byEmail {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func newTestAuthService(instructors *fakeInstructorRepo, students *fakeStudentRepo) *AuthService {
	resolver := NewResolver(instructors, students)
	hasher := security.NewHasher(4)
	tokens := security.NewTokenProvider([]byte("test-secret"), "learnai-auth", "learnai-api", time.Hour)
	return NewAuthService(resolver, hasher, tokens)
}

func TestResolverChecksInstructorsFirst(t *testing.T) {
	instructors := newFakeInstructorRepo()
	students := newFakeStudentRepo()
	_ = instructors.Create(context.Background(), &instructordomain.Instructor{ID: "i-1", Email: "both@example.com", PasswordHash: "x"})
	students.byEmail["both@example.com"] = &studentdomain.Student{ID: "s-1", Email: "both@example.com", PasswordHash: "y"}

	r := NewResolver(instructors, students)
	p, err := r.Resolve(context.Background(), "both@example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Kind != identitydomain.KindInstructor {
		t.Fatalf("kind = %q, want instructor", p.Kind)
	}
}

func TestResolverNoMatchReturnsKindNone(t *testing.T) {
	r := NewResolver(newFakeInstructorRepo(), newFakeStudentRepo())
	p, err := r.Resolve(context.Background(), "missing@example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Kind != identitydomain.KindNone {
		t.Fatalf("kind = %q, want none", p.Kind)
	}
}

func TestResolverPropagatesStorageError(t *testing.T) {
	instructors := newFakeInstructorRepo()
	instructors.err = errors.New("db down")
	r := NewResolver(instructors, newFakeStudentRepo())
	if _, err := r.Resolve(context.Background(), "a@example.com"); err == nil {
		t.Fatal("expected storage error to propagate")
	}
}

func TestSignupThenLogin(t *testing.T) {
	svc := newTestAuthService(newFakeInstructorRepo(), newFakeStudentRepo())
	ctx := context.Background()

	inst, err := svc.Signup(ctx, "Prof@Example.com", "sekret")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if inst.Email != "prof@example.com" {
		t.Fatalf("email = %q, want normalized", inst.Email)
	}

	res, err := svc.Login(ctx, "prof@example.com", "sekret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a session token")
	}
	if res.Principal.Kind != identitydomain.KindInstructor {
		t.Fatalf("kind = %q, want instructor", res.Principal.Kind)
	}

	id, kind, err := svc.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != inst.ID || kind != identitydomain.KindInstructor {
		t.Fatalf("Verify = (%q, %q)", id, kind)
	}
}

func TestSignupRejectsDuplicateEmailAcrossCollections(t *testing.T) {
	instructors := newFakeInstructorRepo()
	students := newFakeStudentRepo()
	students.byEmail["taken@example.com"] = &studentdomain.Student{ID: "s-1", Email: "taken@example.com", PasswordHash: "x"}
	svc := newTestAuthService(instructors, students)

	if _, err := svc.Signup(context.Background(), "taken@example.com", "pw"); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("err = %v, want ErrEmailAlreadyRegistered", err)
	}
}

func TestSignupRejectsInvalidEmail(t *testing.T) {
	svc := newTestAuthService(newFakeInstructorRepo(), newFakeStudentRepo())
	if _, err := svc.Signup(context.Background(), "nope", "pw"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("err = %v, want ErrInvalidEmail", err)
	}
}

func TestLoginUnknownEmailIsNotFound(t *testing.T) {
	svc := newTestAuthService(newFakeInstructorRepo(), newFakeStudentRepo())
	if _, err := svc.Login(context.Background(), "ghost@example.com", "pw"); !errors.Is(err, ErrPrincipalNotFound) {
		t.Fatalf("err = %v, want ErrPrincipalNotFound", err)
	}
}

func TestLoginWrongPasswordIsInvalidCredentials(t *testing.T) {
	svc := newTestAuthService(newFakeInstructorRepo(), newFakeStudentRepo())
	ctx := context.Background()
	if _, err := svc.Signup(ctx, "prof@example.com", "right"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := svc.Login(ctx, "prof@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginAsStudent(t *testing.T) {
	students := newFakeStudentRepo()
	hasher := security.NewHasher(4)
	hash, err := hasher.Hash([]byte("pw"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	students.byEmail["ada@example.com"] = &studentdomain.Student{
		ID:           "s-1",
		Email:        "ada@example.com",
		PasswordHash: hash,
		FullName:     "Ada",
		Courses:      []string{"Algorithms"},
	}
	svc := newTestAuthService(newFakeInstructorRepo(), students)

	res, err := svc.Login(context.Background(), "ada@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Principal.Kind != identitydomain.KindStudent {
		t.Fatalf("kind = %q, want student", res.Principal.Kind)
	}
	id, kind, err := svc.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != "s-1" || kind != identitydomain.KindStudent {
		t.Fatalf("Verify = (%q, %q)", id, kind)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newFakeInstructorRepo(), newFakeStudentRepo())
	if _, _, err := svc.Verify("not.a.token"); !errors.Is(err, security.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
