// Package handler exposes learning-activity endpoints over HTTP.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	activitydomain "learnai/backend/internal/activity/domain"
	activityrepo "learnai/backend/internal/activity/repository"
	instructordomain "learnai/backend/internal/instructor/domain"
	"learnai/backend/internal/platform/httpx"
	"learnai/backend/internal/server"
	"learnai/backend/internal/storage"
)

// InstructorGetter looks up an instructor by id so activities can record the
// author's email, which is what students see.
type InstructorGetter interface {
	GetByID(ctx context.Context, id string) (*instructordomain.Instructor, error)
}

// ActivityHandler serves the activity endpoints.
type ActivityHandler struct {
	activities  activityrepo.Repository
	instructors InstructorGetter
	gateway     *storage.ResourceGateway
}

// NewActivityHandler returns an ActivityHandler.
func NewActivityHandler(activities activityrepo.Repository, instructors InstructorGetter, gateway *storage.ResourceGateway) *ActivityHandler {
	return &ActivityHandler{activities: activities, instructors: instructors, gateway: gateway}
}

type activityResponse struct {
	ID           string    `json:"id"`
	CourseName   string    `json:"courseName"`
	Title        string    `json:"title"`
	InstructorID string    `json:"instructorId"`
	Materials    []string  `json:"materials,omitempty"`
	Instructions string    `json:"instructions"`
	IdealAnswer  string    `json:"idealAnswer"`
	Status       bool      `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toActivityResponse(a *activitydomain.Activity) activityResponse {
	resp := activityResponse{
		ID:           a.ID,
		CourseName:   a.CourseName,
		Title:        a.Title,
		InstructorID: a.InstructorEmail,
		Instructions: a.Instructions,
		IdealAnswer:  a.IdealAnswer,
		Status:       a.Published,
		CreatedAt:    a.CreatedAt,
	}
	if a.MaterialsKey != "" {
		resp.Materials = []string{a.MaterialsKey}
	}
	return resp
}

type addActivityRequest struct {
	CourseName   string `json:"courseName"`
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
	IdealAnswer  string `json:"idealAnswer"`
	// FileName names the materials file the client will upload through the
	// returned presigned URL.
	FileName string `json:"fileName"`
}

type addActivityResponse struct {
	Message string               `json:"message"`
	Upload  *storage.UploadGrant `json:"upload,omitempty"`
}

// AddActivity handles POST /add_activity. The materials object key is chosen
// server-side; the activity records the author's email as instructor id.
func (h *ActivityHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	instructorID, _ := server.PrincipalID(r.Context())

	var req addActivityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}

	inst, err := h.instructors.GetByID(r.Context(), instructorID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if inst == nil {
		httpx.RespondJSON(w, http.StatusNotFound, httpx.ErrorResponse{Error: "User not found"})
		return
	}

	activity := &activitydomain.Activity{
		ID:              uuid.New().String(),
		CourseName:      req.CourseName,
		Title:           req.Title,
		InstructorEmail: inst.Email,
		Instructions:    req.Instructions,
		IdealAnswer:     req.IdealAnswer,
		Published:       true,
		CreatedAt:       time.Now().UTC(),
	}

	var upload *storage.UploadGrant
	if req.FileName != "" {
		grant, err := h.gateway.GrantUploadAccess(r.Context(), instructorID, req.FileName)
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}
		activity.MaterialsKey = grant.Key
		upload = grant
	}

	if err := activity.Validate(); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.activities.Create(r.Context(), activity); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, addActivityResponse{
		Message: "Learning activity created successfully",
		Upload:  upload,
	})
}

// ListActivities handles GET /get_activities.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.List(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	out := make([]activityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityResponse(a))
	}
	httpx.RespondJSON(w, http.StatusOK, out)
}

type courseActivitiesRequest struct {
	CourseName string `json:"courseName"`
}

// ListCourseActivities handles POST /get_student_activities.
func (h *ActivityHandler) ListCourseActivities(w http.ResponseWriter, r *http.Request) {
	var req courseActivitiesRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	if req.CourseName == "" {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: "Course name is required"})
		return
	}
	activities, err := h.activities.ListByCourse(r.Context(), req.CourseName)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	out := make([]activityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityResponse(a))
	}
	httpx.RespondJSON(w, http.StatusOK, out)
}

type individualActivityRequest struct {
	CourseName string `json:"courseName"`
	Title      string `json:"title"`
}

type individualActivityResponse struct {
	Activity activityResponse `json:"activity"`
	URL      string           `json:"url,omitempty"`
}

// GetIndividualActivity handles POST /get_individual_activity. Returns the
// activity plus a short-lived download URL for its materials when it has any.
func (h *ActivityHandler) GetIndividualActivity(w http.ResponseWriter, r *http.Request) {
	var req individualActivityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	activity, err := h.activities.GetByCourseAndTitle(r.Context(), req.CourseName, req.Title)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if activity == nil {
		httpx.RespondJSON(w, http.StatusNotFound, httpx.ErrorResponse{Error: "Activity not found"})
		return
	}

	resp := individualActivityResponse{Activity: toActivityResponse(activity)}
	if activity.MaterialsKey != "" {
		grant, err := h.gateway.GrantReadAccess(r.Context(), activity.MaterialsKey)
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}
		resp.URL = grant.URL
	}
	httpx.RespondJSON(w, http.StatusOK, resp)
}
