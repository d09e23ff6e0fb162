package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assureops/api/internal/app"
	"github.com/assureops/api/pkg/apierror"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/logger"
	"github.com/assureops/api/pkg/validator"
)

// PendingAssetHandler handles discovered-candidate HTTP requests.
type PendingAssetHandler struct {
	ingest       *app.IngestService
	confirmation *app.ConfirmationService
	validator    *validator.Validator
	logger       *logger.Logger
}

// NewPendingAssetHandler creates a new pending asset handler.
func NewPendingAssetHandler(ingest *app.IngestService, confirmation *app.ConfirmationService, v *validator.Validator, log *logger.Logger) *PendingAssetHandler {
	return &PendingAssetHandler{
		ingest:       ingest,
		confirmation: confirmation,
		validator:    v,
		logger:       log,
	}
}

// ConfirmRequest represents the request to confirm a candidate.
type ConfirmRequest struct {
	BusinessID   string `json:"business_id" validate:"required,max=100"`
	BusinessName string `json:"business_name" validate:"max=255"`
	ConfirmedBy  string `json:"confirmed_by" validate:"max=100"`
}

// ConfirmAllRequest represents the request to confirm every recommended
// candidate, optionally narrowed to one suggested business.
type ConfirmAllRequest struct {
	BusinessID  string `json:"business_id" validate:"max=100"`
	ConfirmedBy string `json:"confirmed_by" validate:"max=100"`
}

func (h *PendingAssetHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		apierror.NotFound("Pending asset").WriteJSON(w)
	case errors.Is(err, shared.ErrAlreadyExists):
		apierror.Conflict("Asset with this ID already exists").WriteJSON(w)
	case errors.Is(err, shared.ErrValidation):
		apierror.BadRequest(validationMessage(err)).WriteJSON(w)
	default:
		h.logger.Error("service error", "error", err)
		apierror.InternalError(err).WriteJSON(w)
	}
}

// ListPendingAssets handles GET /api/v1/pending-assets
func (h *PendingAssetHandler) ListPendingAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := app.ListPendingInput{
		SuggestedBusinessID: q.Get("suggested_business_id"),
		MinConfidence:       parseQueryIntPtr(q.Get("min_confidence")),
		Recommended:         parseQueryBool(q.Get("recommended")),
		Page:                parseQueryInt(q.Get("page"), 1),
		PerPage:             parseQueryInt(q.Get("per_page"), 20),
	}

	result, err := h.ingest.ListPending(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	data := make([]PendingAssetResponse, len(result.Data))
	for i, p := range result.Data {
		data[i] = toPendingAssetResponse(p)
	}

	resp := ListResponse[PendingAssetResponse]{
		Data:       data,
		Total:      result.Total,
		Page:       result.Page,
		PerPage:    result.PerPage,
		TotalPages: result.TotalPages,
		Links:      NewPaginationLinks(r, result.Page, result.PerPage, result.TotalPages),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// GetPendingAsset handles GET /api/v1/pending-assets/{pendingId}
func (h *PendingAssetHandler) GetPendingAsset(w http.ResponseWriter, r *http.Request) {
	pendingID := chi.URLParam(r, "pendingId")

	p, err := h.ingest.GetPending(r.Context(), pendingID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toPendingAssetResponse(p))
}

// ConfirmPendingAsset handles POST /api/v1/pending-assets/{pendingId}/confirm
//
// Confirming promotes the candidate into the confirmed inventory under the
// given business. A second confirm for the same candidate returns 404.
func (h *PendingAssetHandler) ConfirmPendingAsset(w http.ResponseWriter, r *http.Request) {
	pendingID := chi.URLParam(r, "pendingId")

	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.BadRequest("Invalid request body").WriteJSON(w)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	a, err := h.confirmation.Confirm(r.Context(), app.ConfirmInput{
		PendingAssetID: pendingID,
		BusinessID:     req.BusinessID,
		BusinessName:   req.BusinessName,
		ConfirmedBy:    req.ConfirmedBy,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toAssetResponse(a))
}

// IgnorePendingAsset handles POST /api/v1/pending-assets/{pendingId}/ignore
//
// Ignoring discards the candidate permanently.
func (h *PendingAssetHandler) IgnorePendingAsset(w http.ResponseWriter, r *http.Request) {
	pendingID := chi.URLParam(r, "pendingId")

	if err := h.confirmation.Ignore(r.Context(), pendingID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ConfirmAllPendingAssets handles POST /api/v1/pending-assets/confirm-all
//
// Every candidate with a business recommendation is confirmed under its
// suggested business. Failures are reported per item and do not abort the
// pass.
func (h *PendingAssetHandler) ConfirmAllPendingAssets(w http.ResponseWriter, r *http.Request) {
	var req ConfirmAllRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierror.BadRequest("Invalid request body").WriteJSON(w)
			return
		}
	}

	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := h.confirmation.ConfirmAll(r.Context(), app.ConfirmAllInput{
		BusinessID:  req.BusinessID,
		ConfirmedBy: req.ConfirmedBy,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}
