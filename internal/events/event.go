// Package events defines best-effort audit events emitted by the API server
// (e.g. to Kafka) and consumed by the worker.
package events

import (
	"context"
	"time"
)

// Event types emitted by the identity and enrollment services.
const (
	TypeSignup           = "instructor_signup"
	TypeLogin            = "login"
	TypeStudentCreated   = "student_created"
	TypeStudentEnrolled  = "student_enrolled"
	TypeWelcomeMailError = "welcome_mail_error"
)

// Event is a single audit event. Never carries credentials or plaintext
// one-time passwords.
type Event struct {
	EventType   string    `json:"eventType"`
	PrincipalID string    `json:"principalId,omitempty"`
	Email       string    `json:"email,omitempty"`
	CourseName  string    `json:"courseName,omitempty"`
	Source      string    `json:"source"`
	Detail      string    `json:"detail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// New returns an Event stamped with the api source and current time.
func New(eventType string) *Event {
	return &Event{
		EventType: eventType,
		Source:    "learnai-api",
		CreatedAt: time.Now().UTC(),
	}
}

// EventEmitter emits audit events. Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}
