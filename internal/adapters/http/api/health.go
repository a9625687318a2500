package api

import (
	"net/http"
	"time"
)

// HealthHandler handles liveness probes.
type HealthHandler struct {
	service string
	now     func() time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service string, now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{service: service, now: now}
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// HandleHealth handles GET /health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   h.service,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
