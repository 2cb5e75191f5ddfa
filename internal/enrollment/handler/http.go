// Package handler exposes student enrollment over HTTP.
package handler

import (
	"net/http"

	"learnai/backend/internal/enrollment/service"
	"learnai/backend/internal/platform/httpx"
)

// EnrollmentHandler serves POST /enroll_student.
type EnrollmentHandler struct {
	enrollment *service.EnrollmentService
}

// NewEnrollmentHandler returns an EnrollmentHandler.
func NewEnrollmentHandler(enrollment *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollment: enrollment}
}

type enrollRequest struct {
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	CourseName string `json:"courseName"`
}

// Enroll handles POST /enroll_student. Both the create path and the append
// path answer 201; the message tells the two apart for the client. The
// request is made on behalf of the student, so the operation succeeds even
// when it changed nothing.
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	created, err := h.enrollment.Enroll(r.Context(), req.Email, req.FullName, req.CourseName)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	msg := "Student enrolled successfully!"
	if created {
		msg = "Student created successfully!"
	}
	httpx.RespondJSON(w, http.StatusCreated, map[string]string{"message": msg})
}
