// Package server wires the HTTP router, auth middleware, and request
// context for the API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	identitydomain "learnai/backend/internal/identity/domain"
)

// Handlers groups the per-feature handlers the router mounts.
type Handlers struct {
	Auth interface {
		Signup(http.ResponseWriter, *http.Request)
		Login(http.ResponseWriter, *http.Request)
		Logout(http.ResponseWriter, *http.Request)
	}
	Enrollment interface {
		Enroll(http.ResponseWriter, *http.Request)
	}
	Course interface {
		AddCourse(http.ResponseWriter, *http.Request)
		ListCourses(http.ResponseWriter, *http.Request)
		GetCourseInfo(http.ResponseWriter, *http.Request)
		GetCourseFile(http.ResponseWriter, *http.Request)
		ListStudentCourses(http.ResponseWriter, *http.Request)
	}
	Activity interface {
		AddActivity(http.ResponseWriter, *http.Request)
		ListActivities(http.ResponseWriter, *http.Request)
		ListCourseActivities(http.ResponseWriter, *http.Request)
		GetIndividualActivity(http.ResponseWriter, *http.Request)
	}
	Submission interface {
		Submit(http.ResponseWriter, *http.Request)
		ViewSubmissions(http.ResponseWriter, *http.Request)
	}
	Health interface {
		Healthz(http.ResponseWriter, *http.Request)
	}
}

// NewRouter builds the chi router with the standard middleware stack and all
// API routes. Route paths match the original client contract.
func NewRouter(h Handlers, verifier TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/healthz", h.Health.Healthz)
	r.Post("/signup", h.Auth.Signup)
	r.Post("/login", h.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(verifier))

		r.Post("/logout", h.Auth.Logout)
		r.Post("/get_course_info", h.Course.GetCourseInfo)
		r.Get("/get_course_file/{courseName}", h.Course.GetCourseFile)
		r.Get("/get_activities", h.Activity.ListActivities)
		r.Post("/get_student_activities", h.Activity.ListCourseActivities)
		r.Post("/get_individual_activity", h.Activity.GetIndividualActivity)
		r.Post("/submit", h.Submission.Submit)

		r.Group(func(r chi.Router) {
			r.Use(RequireKind(identitydomain.KindInstructor))
			r.Post("/enroll_student", h.Enrollment.Enroll)
			r.Post("/add_course", h.Course.AddCourse)
			r.Get("/get_courses", h.Course.ListCourses)
			r.Post("/add_activity", h.Activity.AddActivity)
			r.Post("/view_submissions", h.Submission.ViewSubmissions)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireKind(identitydomain.KindStudent))
			r.Get("/get_student_courses", h.Course.ListStudentCourses)
		})
	})

	return otelhttp.NewHandler(r, "http.server")
}
