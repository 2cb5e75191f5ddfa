// Package handler exposes submission endpoints over HTTP.
package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"learnai/backend/internal/platform/httpx"
	submissiondomain "learnai/backend/internal/submission/domain"
	submissionrepo "learnai/backend/internal/submission/repository"
)

// SubmissionHandler serves the submission endpoints.
type SubmissionHandler struct {
	submissions submissionrepo.Repository
}

// NewSubmissionHandler returns a SubmissionHandler.
func NewSubmissionHandler(submissions submissionrepo.Repository) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

type submitRequest struct {
	StudentName  string `json:"studentName"`
	Title        string `json:"title"`
	CourseName   string `json:"courseName"`
	IdealAnswer  string `json:"idealAnswer"`
	Instructions string `json:"instructions"`
	Answer       string `json:"answer"`
}

// Submit handles POST /submit.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	sub := &submissiondomain.Submission{
		ID:           uuid.New().String(),
		CourseName:   req.CourseName,
		Title:        req.Title,
		StudentName:  req.StudentName,
		Instructions: req.Instructions,
		IdealAnswer:  req.IdealAnswer,
		Answer:       req.Answer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := sub.Validate(); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.submissions.Create(r.Context(), sub); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, map[string]string{"message": "Submission created successfully"})
}

type viewSubmissionsRequest struct {
	CourseName string `json:"courseName"`
	Title      string `json:"title"`
}

type submissionResponse struct {
	ID           string    `json:"id"`
	CourseName   string    `json:"courseName"`
	Title        string    `json:"title"`
	StudentName  string    `json:"studentName"`
	Instructions string    `json:"instructions"`
	IdealAnswer  string    `json:"idealAnswer"`
	Answer       string    `json:"answer"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ViewSubmissions handles POST /view_submissions. Empty result is 404 to
// match what clients expect.
func (h *SubmissionHandler) ViewSubmissions(w http.ResponseWriter, r *http.Request) {
	var req viewSubmissionsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	subs, err := h.submissions.ListByCourseAndTitle(r.Context(), req.CourseName, req.Title)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if len(subs) == 0 {
		httpx.RespondJSON(w, http.StatusNotFound, httpx.ErrorResponse{Error: "No submissions found"})
		return
	}
	out := make([]submissionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, submissionResponse{
			ID:           s.ID,
			CourseName:   s.CourseName,
			Title:        s.Title,
			StudentName:  s.StudentName,
			Instructions: s.Instructions,
			IdealAnswer:  s.IdealAnswer,
			Answer:       s.Answer,
			CreatedAt:    s.CreatedAt,
		})
	}
	httpx.RespondJSON(w, http.StatusOK, out)
}
