// Package handler exposes course management and resource access over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	coursedomain "learnai/backend/internal/course/domain"
	courserepo "learnai/backend/internal/course/repository"
	"learnai/backend/internal/platform/httpx"
	"learnai/backend/internal/server"
	"learnai/backend/internal/storage"
	studentdomain "learnai/backend/internal/student/domain"
)

// StudentGetter looks up a student principal by id for membership listing.
type StudentGetter interface {
	GetByID(ctx context.Context, id string) (*studentdomain.Student, error)
}

// CourseHandler serves the course endpoints.
type CourseHandler struct {
	courses  courserepo.Repository
	students StudentGetter
	gateway  *storage.ResourceGateway
}

// NewCourseHandler returns a CourseHandler.
func NewCourseHandler(courses courserepo.Repository, students StudentGetter, gateway *storage.ResourceGateway) *CourseHandler {
	return &CourseHandler{courses: courses, students: students, gateway: gateway}
}

type courseResponse struct {
	ID          string    `json:"id"`
	CourseName  string    `json:"courseName"`
	Description string    `json:"description"`
	Resources   string    `json:"resources,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCourseResponse(c *coursedomain.Course) courseResponse {
	return courseResponse{
		ID:          c.ID,
		CourseName:  c.Name,
		Description: c.Description,
		Resources:   c.ResourceKey,
		CreatedAt:   c.CreatedAt,
	}
}

type addCourseRequest struct {
	CourseName  string `json:"courseName"`
	Description string `json:"description"`
	// FileName names the resource file the client will upload through the
	// returned presigned URL.
	FileName string `json:"fileName"`
}

type addCourseResponse struct {
	Course courseResponse       `json:"course"`
	Upload *storage.UploadGrant `json:"upload,omitempty"`
}

// AddCourse handles POST /add_course. The resource object key is chosen
// server-side and stored on the course; the client uploads the file itself
// through the presigned PUT URL in the response.
func (h *CourseHandler) AddCourse(w http.ResponseWriter, r *http.Request) {
	instructorID, _ := server.PrincipalID(r.Context())

	var req addCourseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}

	course := &coursedomain.Course{
		ID:           uuid.New().String(),
		InstructorID: instructorID,
		Name:         req.CourseName,
		Description:  req.Description,
		CreatedAt:    time.Now().UTC(),
	}

	var upload *storage.UploadGrant
	if req.FileName != "" {
		grant, err := h.gateway.GrantUploadAccess(r.Context(), instructorID, req.FileName)
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}
		course.ResourceKey = grant.Key
		upload = grant
	}

	if err := course.Validate(); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.courses.Create(r.Context(), course); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, addCourseResponse{Course: toCourseResponse(course), Upload: upload})
}

// ListCourses handles GET /get_courses. Lists the authenticated instructor's
// own courses.
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	instructorID, _ := server.PrincipalID(r.Context())
	courses, err := h.courses.ListByInstructor(r.Context(), instructorID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	out := make([]courseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, toCourseResponse(c))
	}
	httpx.RespondJSON(w, http.StatusOK, out)
}

type courseInfoRequest struct {
	CourseName string `json:"courseName"`
}

// GetCourseInfo handles POST /get_course_info. Name lookup takes the first
// match when names collide.
func (h *CourseHandler) GetCourseInfo(w http.ResponseWriter, r *http.Request) {
	var req courseInfoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	course, err := h.courses.GetByName(r.Context(), req.CourseName)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if course == nil {
		httpx.RespondJSON(w, http.StatusNotFound, httpx.ErrorResponse{Error: "Course not found"})
		return
	}
	httpx.RespondJSON(w, http.StatusOK, toCourseResponse(course))
}

// GetCourseFile handles GET /get_course_file/{courseName}. Returns a
// short-lived download URL for the course resource; the object body never
// passes through this process.
func (h *CourseHandler) GetCourseFile(w http.ResponseWriter, r *http.Request) {
	courseName := chi.URLParam(r, "courseName")
	course, err := h.courses.GetByName(r.Context(), courseName)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if course == nil {
		httpx.RespondJSON(w, http.StatusNotFound, httpx.ErrorResponse{Error: "Course not found"})
		return
	}
	grant, err := h.gateway.GrantReadAccess(r.Context(), course.ResourceKey)
	if err != nil {
		if errors.Is(err, storage.ErrNoResource) {
			httpx.RespondJSON(w, http.StatusNotFound, httpx.ErrorResponse{Error: "Course has no resource"})
			return
		}
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"url": grant.URL})
}

// ListStudentCourses handles GET /get_student_courses. Resolves the
// authenticated student's membership names to full course records.
func (h *CourseHandler) ListStudentCourses(w http.ResponseWriter, r *http.Request) {
	studentID, _ := server.PrincipalID(r.Context())
	student, err := h.students.GetByID(r.Context(), studentID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if student == nil {
		httpx.RespondJSON(w, http.StatusNotFound, httpx.ErrorResponse{Error: "User not found"})
		return
	}
	courses, err := h.courses.ListByNames(r.Context(), student.Courses)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if len(courses) == 0 {
		httpx.RespondJSON(w, http.StatusNotFound, httpx.ErrorResponse{Error: "No courses found"})
		return
	}
	out := make([]courseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, toCourseResponse(c))
	}
	httpx.RespondJSON(w, http.StatusOK, out)
}
