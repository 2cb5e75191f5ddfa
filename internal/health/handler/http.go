// Package handler serves readiness for Kubernetes probes and load balancers.
package handler

import (
	"context"
	"net/http"
	"time"

	"learnai/backend/internal/platform/httpx"
)

// Pinger reports whether a backing store is reachable, e.g. *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves GET /healthz.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler returns a HealthHandler. db may be nil; the DB ping is
// then skipped.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz answers 200 when the process and its database are up, 503
// otherwise.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			httpx.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
