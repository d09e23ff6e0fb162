package handler

import (
	"encoding/json"
	"net/http"

	"github.com/assureops/api/internal/app"
	"github.com/assureops/api/pkg/apierror"
	"github.com/assureops/api/pkg/logger"
)

// StatisticsHandler handles inventory statistics HTTP requests.
type StatisticsHandler struct {
	service *app.StatisticsService
	logger  *logger.Logger
}

// NewStatisticsHandler creates a new statistics handler.
func NewStatisticsHandler(svc *app.StatisticsService, log *logger.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		service: svc,
		logger:  log,
	}
}

// GetStatistics handles GET /api/v1/statistics
func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("statistics snapshot failed", "error", err)
		apierror.InternalError(err).WriteJSON(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}
