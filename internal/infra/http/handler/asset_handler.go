package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assureops/api/internal/app"
	"github.com/assureops/api/pkg/apierror"
	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/logger"
	"github.com/assureops/api/pkg/validator"
)

// AssetHandler handles asset inventory HTTP requests.
type AssetHandler struct {
	service   *app.AssetService
	graph     *app.DependencyService
	validator *validator.Validator
	logger    *logger.Logger
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler(svc *app.AssetService, graph *app.DependencyService, v *validator.Validator, log *logger.Logger) *AssetHandler {
	return &AssetHandler{
		service:   svc,
		graph:     graph,
		validator: v,
		logger:    log,
	}
}

// AddDependencyRequest represents the request to add a dependency edge.
type AddDependencyRequest struct {
	TargetAssetID string `json:"target_asset_id" validate:"required"`
	Type          string `json:"type" validate:"required,dependency_type"`
}

// AddDependencyResponse reports whether a new edge was recorded.
// Added is false when the identical edge already existed.
type AddDependencyResponse struct {
	Added bool `json:"added"`
}

// DependencyGraphResponse represents both directions of an asset's edges.
type DependencyGraphResponse struct {
	AssetID      string               `json:"asset_id"`
	Dependencies []DependencyResponse `json:"dependencies"`
	Dependents   []string             `json:"dependents"`
}

func (h *AssetHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, asset.ErrInvalidEdge):
		apierror.InvalidEdge(err.Error()).WriteJSON(w)
	case errors.Is(err, asset.ErrUnknownAsset):
		apierror.UnknownAsset(err.Error()).WriteJSON(w)
	case errors.Is(err, shared.ErrNotFound):
		apierror.NotFound("Asset").WriteJSON(w)
	case errors.Is(err, shared.ErrAlreadyExists):
		apierror.Conflict("Asset with this ID already exists").WriteJSON(w)
	case errors.Is(err, shared.ErrValidation):
		apierror.BadRequest(validationMessage(err)).WriteJSON(w)
	default:
		h.logger.Error("service error", "error", err)
		apierror.InternalError(err).WriteJSON(w)
	}
}

// CreateAsset handles POST /api/v1/assets
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req app.CreateAssetInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.BadRequest("Invalid request body").WriteJSON(w)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	a, err := h.service.CreateAsset(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toAssetResponse(a))
}

// GetAsset handles GET /api/v1/assets/{assetId}
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")

	a, err := h.service.GetAsset(r.Context(), assetID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toAssetResponse(a))
}

// UpdateAsset handles PATCH /api/v1/assets/{assetId}
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")

	var req app.UpdateAssetInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.BadRequest("Invalid request body").WriteJSON(w)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	a, err := h.service.UpdateAsset(r.Context(), assetID, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toAssetResponse(a))
}

// DeleteAsset handles DELETE /api/v1/assets/{assetId}
//
// Deleting an asset also removes every edge that references it, in both
// directions.
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")

	if err := h.service.DeleteAsset(r.Context(), assetID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAssets handles GET /api/v1/assets
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := app.ListAssetsInput{
		BusinessID:      q.Get("business_id"),
		Types:           parseQueryArray(q.Get("type")),
		Layers:          parseQueryArray(q.Get("layer")),
		Statuses:        parseQueryArray(q.Get("status")),
		HealthStatuses:  parseQueryArray(q.Get("health_status")),
		ConfirmStatuses: parseQueryArray(q.Get("confirm_status")),
		Search:          q.Get("search"),
		Sort:            q.Get("sort"),
		Page:            parseQueryInt(q.Get("page"), 1),
		PerPage:         parseQueryInt(q.Get("per_page"), 20),
	}

	result, err := h.service.ListAssets(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	data := make([]AssetResponse, len(result.Data))
	for i, a := range result.Data {
		data[i] = toAssetResponse(a)
	}

	resp := ListResponse[AssetResponse]{
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

// ListDependencies handles GET /api/v1/assets/{assetId}/dependencies
func (h *AssetHandler) ListDependencies(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")

	a, err := h.service.GetAsset(r.Context(), assetID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := toAssetResponse(a)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(DependencyGraphResponse{
		AssetID:      resp.ID,
		Dependencies: resp.Dependencies,
		Dependents:   resp.Dependents,
	})
}

// AddDependency handles POST /api/v1/assets/{assetId}/dependencies
func (h *AssetHandler) AddDependency(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")

	var req AddDependencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.BadRequest("Invalid request body").WriteJSON(w)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	added, err := h.graph.AddDependency(r.Context(), app.AddDependencyInput{
		SourceAssetID: assetID,
		TargetAssetID: req.TargetAssetID,
		Type:          req.Type,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(AddDependencyResponse{Added: added})
}

// RemoveDependency handles DELETE /api/v1/assets/{assetId}/dependencies/{targetId}
//
// The edge type is passed as a query parameter, e.g. ?type=connect.
func (h *AssetHandler) RemoveDependency(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")
	targetID := chi.URLParam(r, "targetId")
	depType := r.URL.Query().Get("type")

	if depType == "" {
		apierror.BadRequest("Query parameter 'type' is required").WriteJSON(w)
		return
	}

	err := h.graph.RemoveDependency(r.Context(), app.RemoveDependencyInput{
		SourceAssetID: assetID,
		TargetAssetID: targetID,
		Type:          depType,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
