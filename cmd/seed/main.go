// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev instructor (dev@example.com) already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"learnai/backend/internal/config"
	coursedomain "learnai/backend/internal/course/domain"
	courserepo "learnai/backend/internal/course/repository"
	"learnai/backend/internal/db"
	instructordomain "learnai/backend/internal/instructor/domain"
	instructorrepo "learnai/backend/internal/instructor/repository"
	"learnai/backend/internal/security"
)

const (
	devInstructorEmail = "dev@example.com"
	devPassword        = "password123"
	devCourseName      = "Intro to Go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("seed: refusing to run in production")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	instructors := instructorrepo.NewPostgresRepository(database)
	courses := courserepo.NewPostgresRepository(database)

	existing, err := instructors.GetByEmail(ctx, devInstructorEmail)
	if err != nil {
		log.Fatalf("seed: lookup dev instructor: %v", err)
	}
	if existing != nil {
		log.Printf("seed: dev instructor %s already exists, skipping", devInstructorEmail)
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("seed: hash password: %v", err)
	}

	now := time.Now().UTC()
	inst := &instructordomain.Instructor{
		ID:           uuid.New().String(),
		Email:        devInstructorEmail,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := instructors.Create(ctx, inst); err != nil {
		log.Fatalf("seed: create instructor: %v", err)
	}

	course := &coursedomain.Course{
		ID:           uuid.New().String(),
		InstructorID: inst.ID,
		Name:         devCourseName,
		Description:  "Sample course seeded for local development.",
		CreatedAt:    now,
	}
	if err := courses.Create(ctx, course); err != nil {
		log.Fatalf("seed: create course: %v", err)
	}

	log.Printf("seed: created instructor %s (password %q) and course %q", devInstructorEmail, devPassword, devCourseName)
}
