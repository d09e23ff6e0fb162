package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/assureops/api/internal/app"
	"github.com/assureops/api/pkg/apierror"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/logger"
	"github.com/assureops/api/pkg/validator"
)

// IngestHandler handles discovery ingestion HTTP requests.
type IngestHandler struct {
	service   *app.IngestService
	validator *validator.Validator
	logger    *logger.Logger
}

// NewIngestHandler creates a new ingest handler.
func NewIngestHandler(svc *app.IngestService, v *validator.Validator, log *logger.Logger) *IngestHandler {
	return &IngestHandler{
		service:   svc,
		validator: v,
		logger:    log,
	}
}

// IngestCandidates handles POST /api/v1/ingest/candidates
//
// The batch is processed item by item. Duplicates are skipped and malformed
// candidates rejected without failing the rest; per-item outcomes are
// returned in the response.
func (h *IngestHandler) IngestCandidates(w http.ResponseWriter, r *http.Request) {
	var req app.IngestInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.BadRequest("Invalid request body").WriteJSON(w)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := h.service.Ingest(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrValidation):
			apierror.BadRequest(validationMessage(err)).WriteJSON(w)
		default:
			h.logger.Error("ingest failed", "error", err)
			apierror.InternalError(err).WriteJSON(w)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(result)
}
