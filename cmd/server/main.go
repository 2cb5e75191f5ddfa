package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	activityhandler "learnai/backend/internal/activity/handler"
	activityrepo "learnai/backend/internal/activity/repository"
	"learnai/backend/internal/config"
	coursehandler "learnai/backend/internal/course/handler"
	courserepo "learnai/backend/internal/course/repository"
	"learnai/backend/internal/db"
	enrollmenthandler "learnai/backend/internal/enrollment/handler"
	enrollmentservice "learnai/backend/internal/enrollment/service"
	"learnai/backend/internal/events"
	"learnai/backend/internal/events/producer"
	healthhandler "learnai/backend/internal/health/handler"
	identityhandler "learnai/backend/internal/identity/handler"
	identityservice "learnai/backend/internal/identity/service"
	instructorrepo "learnai/backend/internal/instructor/repository"
	"learnai/backend/internal/notifier"
	"learnai/backend/internal/security"
	"learnai/backend/internal/server"
	"learnai/backend/internal/storage"
	studentrepo "learnai/backend/internal/student/repository"
	submissionhandler "learnai/backend/internal/submission/handler"
	submissionrepo "learnai/backend/internal/submission/repository"
	"learnai/backend/internal/telemetry/otel"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "learnai-backend", false)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	instructors := instructorrepo.NewPostgresRepository(database)
	students := studentrepo.NewPostgresRepository(database)
	courses := courserepo.NewPostgresRepository(database)
	activities := activityrepo.NewPostgresRepository(database)
	submissions := submissionrepo.NewPostgresRepository(database)

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience, cfg.SessionTTL())
	resolver := identityservice.NewResolver(instructors, students)
	authSvc := identityservice.NewAuthService(resolver, hasher, tokens)

	var presigner storage.FilePresigner = storage.DisabledPresigner{}
	if cfg.HasS3Config() {
		s3p, err := storage.NewS3Presigner(cfg)
		if err != nil {
			return err
		}
		presigner = s3p
	} else {
		logger.Warn("object storage not configured; resource grants disabled")
	}
	gateway := storage.NewResourceGateway(presigner, cfg.ResourceTTL())

	var mailer notifier.Mailer = &notifier.LogMailer{Logger: logger}
	if cfg.MailAPIKey != "" {
		mailer = notifier.NewHTTPClient(cfg.MailAPIKey, cfg.MailBaseURL)
	}

	var emitter events.EventEmitter
	if brokers := cfg.AuditKafkaBrokersList(); len(brokers) > 0 {
		kp, err := producer.NewKafkaProducer(brokers, cfg.AuditKafkaTopic)
		if err != nil {
			return err
		}
		defer kp.Close()
		emitter = kp
	}

	enrollSvc := enrollmentservice.NewEnrollmentService(
		resolver, students, hasher, mailer, cfg.MailFrom, emitter, logger,
	)

	handlers := server.Handlers{
		Auth:       identityhandler.NewAuthHandler(authSvc, emitter, logger),
		Enrollment: enrollmenthandler.NewEnrollmentHandler(enrollSvc),
		Course:     coursehandler.NewCourseHandler(courses, students, gateway),
		Activity:   activityhandler.NewActivityHandler(activities, instructors, gateway),
		Submission: submissionhandler.NewSubmissionHandler(submissions),
		Health:     healthhandler.NewHealthHandler(database),
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(handlers, authSvc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// Give in-flight mail and audit goroutines a moment to finish.
	time.Sleep(events.ShutdownDrainDuration)
	logger.Info("http server stopped")
	return nil
}
