package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	appName string
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(appName, version string) *HealthHandler {
	return &HealthHandler{
		appName: appName,
		version: version,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	App       string    `json:"app"`
	Version   string    `json:"version,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Health handles the /health endpoint (liveness probe).
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		App:       h.appName,
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// Ready handles the /ready endpoint (readiness probe). The in-memory stores
// need no external checks, so readiness follows liveness.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}
