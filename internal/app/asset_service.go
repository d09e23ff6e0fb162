package app

import (
	"context"
	"fmt"

	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/logger"
	"github.com/assureops/api/pkg/pagination"
)

// AssetService handles asset inventory business logic.
type AssetService struct {
	assetRepo asset.Repository
	graph     *DependencyService
	logger    *logger.Logger
}

// NewAssetService creates a new AssetService.
func NewAssetService(assetRepo asset.Repository, graph *DependencyService, log *logger.Logger) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		graph:     graph,
		logger:    log.With("service", "asset"),
	}
}

// CreateAssetInput represents the input for registering an asset manually.
// Manual registration always names the owning business, so the asset enters
// the inventory already confirmed.
type CreateAssetInput struct {
	ID           string `json:"id"`
	Code         string `json:"code" validate:"max=100"`
	Name         string `json:"name" validate:"required,max=255"`
	Type         string `json:"type" validate:"required,asset_type"`
	BusinessID   string `json:"business_id" validate:"required,max=100"`
	BusinessName string `json:"business_name" validate:"required,max=255"`
	ConfirmedBy  string `json:"confirmed_by" validate:"max=100"`

	IP       string `json:"ip" validate:"omitempty,ip"`
	Hostname string `json:"hostname" validate:"max=255"`
	Port     int    `json:"port" validate:"min=0,max=65535"`
	Version  string `json:"version" validate:"max=100"`
	Vendor   string `json:"vendor" validate:"max=100"`

	Status       string `json:"status" validate:"omitempty,asset_status"`
	HealthStatus string `json:"health_status" validate:"omitempty,health_status"`
}

// UpdateAssetInput represents the input for updating an asset.
// Nil fields are left untouched.
type UpdateAssetInput struct {
	Name         *string       `json:"name" validate:"omitempty,max=255"`
	Code         *string       `json:"code" validate:"omitempty,max=100"`
	IP           *string       `json:"ip" validate:"omitempty,ip"`
	Hostname     *string       `json:"hostname" validate:"omitempty,max=255"`
	Port         *int          `json:"port" validate:"omitempty,min=0,max=65535"`
	Version      *string       `json:"version" validate:"omitempty,max=100"`
	Vendor       *string       `json:"vendor" validate:"omitempty,max=100"`
	Status       *string       `json:"status" validate:"omitempty,asset_status"`
	HealthStatus *string       `json:"health_status" validate:"omitempty,health_status"`
	Metrics      *MetricsInput `json:"metrics"`
}

// MetricsInput carries reported operational metrics.
type MetricsInput struct {
	CPUUsage       float64 `json:"cpu_usage" validate:"min=0,max=100"`
	MemoryUsage    float64 `json:"memory_usage" validate:"min=0,max=100"`
	DiskUsage      float64 `json:"disk_usage" validate:"min=0,max=100"`
	ResponseTimeMS int     `json:"response_time_ms" validate:"min=0"`
}

// ListAssetsInput represents filtering, sorting and pagination for listing.
type ListAssetsInput struct {
	BusinessID      string
	Types           []string
	Layers          []string
	Statuses        []string
	HealthStatuses  []string
	ConfirmStatuses []string
	Search          string
	Sort            string
	Page            int
	PerPage         int
}

// CreateAsset registers an asset manually. The caller supplies the owning
// business up front, so the asset is persisted confirmed.
func (s *AssetService) CreateAsset(ctx context.Context, input CreateAssetInput) (*asset.Asset, error) {
	s.logger.Info("creating asset", "name", input.Name, "type", input.Type)

	assetType, err := asset.ParseAssetType(input.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	var id shared.ID
	if input.ID != "" {
		id, err = shared.IDFromString(input.ID)
		if err != nil {
			return nil, err
		}
	}

	a, err := asset.NewAsset(id, input.Name, assetType, asset.DiscoveryManual)
	if err != nil {
		return nil, err
	}

	confirmedBy := input.ConfirmedBy
	if confirmedBy == "" {
		confirmedBy = "system"
	}
	if err := a.AssignBusiness(input.BusinessID, input.BusinessName, confirmedBy); err != nil {
		return nil, err
	}

	a.SetCode(input.Code)
	a.SetNetwork(input.IP, input.Hostname, input.Port)
	a.SetVersionInfo(input.Version, input.Vendor)

	if input.Status != "" {
		status, err := asset.ParseStatus(input.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		if err := a.UpdateStatus(status); err != nil {
			return nil, err
		}
	}
	if input.HealthStatus != "" {
		health, err := asset.ParseHealthStatus(input.HealthStatus)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		if err := a.UpdateHealthStatus(health); err != nil {
			return nil, err
		}
	}

	if err := s.assetRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("asset created", "id", a.ID().String(), "business_id", a.BusinessID())
	return a, nil
}

// GetAsset retrieves an asset by ID.
func (s *AssetService) GetAsset(ctx context.Context, assetID string) (*asset.Asset, error) {
	id, err := shared.IDFromString(assetID)
	if err != nil {
		return nil, asset.ErrAssetNotFound
	}
	return s.assetRepo.GetByID(ctx, id)
}

// UpdateAsset applies the non-nil fields of the input to an existing asset.
//
// The read-copy-write runs under the graph mutation lock: without it a patch
// could write back a snapshot taken before a concurrent edge mutation and
// silently drop the edge.
func (s *AssetService) UpdateAsset(ctx context.Context, assetID string, input UpdateAssetInput) (*asset.Asset, error) {
	id, err := shared.IDFromString(assetID)
	if err != nil {
		return nil, asset.ErrAssetNotFound
	}

	s.graph.mu.Lock()
	defer s.graph.mu.Unlock()

	a, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := a.UpdateName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Code != nil {
		a.SetCode(*input.Code)
	}
	if input.IP != nil || input.Hostname != nil || input.Port != nil {
		ip, hostname, port := a.IP(), a.Hostname(), a.Port()
		if input.IP != nil {
			ip = *input.IP
		}
		if input.Hostname != nil {
			hostname = *input.Hostname
		}
		if input.Port != nil {
			port = *input.Port
		}
		a.SetNetwork(ip, hostname, port)
	}
	if input.Version != nil || input.Vendor != nil {
		version, vendor := a.Version(), a.Vendor()
		if input.Version != nil {
			version = *input.Version
		}
		if input.Vendor != nil {
			vendor = *input.Vendor
		}
		a.SetVersionInfo(version, vendor)
	}
	if input.Status != nil {
		status, err := asset.ParseStatus(*input.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		if err := a.UpdateStatus(status); err != nil {
			return nil, err
		}
	}
	if input.HealthStatus != nil {
		health, err := asset.ParseHealthStatus(*input.HealthStatus)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		if err := a.UpdateHealthStatus(health); err != nil {
			return nil, err
		}
	}
	if input.Metrics != nil {
		a.SetMetrics(asset.Metrics{
			CPUUsage:       input.Metrics.CPUUsage,
			MemoryUsage:    input.Metrics.MemoryUsage,
			DiskUsage:      input.Metrics.DiskUsage,
			ResponseTimeMS: input.Metrics.ResponseTimeMS,
		})
	}

	if err := s.assetRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("asset updated", "id", a.ID().String())
	return a, nil
}

// DeleteAsset removes an asset. Edge cleanup cascades through the graph
// maintainer so neighbors never keep dangling references.
func (s *AssetService) DeleteAsset(ctx context.Context, assetID string) error {
	id, err := shared.IDFromString(assetID)
	if err != nil {
		return asset.ErrAssetNotFound
	}
	return s.graph.RemoveAsset(ctx, id)
}

// ListAssets retrieves assets with filtering, sorting, and pagination.
func (s *AssetService) ListAssets(ctx context.Context, input ListAssetsInput) (pagination.Result[*asset.Asset], error) {
	filter, err := buildAssetFilter(input)
	if err != nil {
		return pagination.Result[*asset.Asset]{}, err
	}

	opts := asset.ListOptions{
		Sort: pagination.NewSortOption(asset.AllowedSortFields()).Parse(input.Sort),
	}
	page := pagination.New(input.Page, input.PerPage)

	return s.assetRepo.List(ctx, filter, opts, page)
}

// CountAssets returns the number of assets matching the filter.
func (s *AssetService) CountAssets(ctx context.Context, input ListAssetsInput) (int64, error) {
	filter, err := buildAssetFilter(input)
	if err != nil {
		return 0, err
	}
	return s.assetRepo.Count(ctx, filter)
}

func buildAssetFilter(input ListAssetsInput) (asset.Filter, error) {
	filter := asset.NewFilter()

	if input.BusinessID != "" {
		filter = filter.WithBusinessID(input.BusinessID)
	}
	if input.Search != "" {
		filter = filter.WithSearch(input.Search)
	}
	for _, t := range input.Types {
		parsed, err := asset.ParseAssetType(t)
		if err != nil {
			return asset.Filter{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		filter.Types = append(filter.Types, parsed)
	}
	for _, l := range input.Layers {
		parsed, err := asset.ParseLayer(l)
		if err != nil {
			return asset.Filter{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		filter.Layers = append(filter.Layers, parsed)
	}
	for _, st := range input.Statuses {
		parsed, err := asset.ParseStatus(st)
		if err != nil {
			return asset.Filter{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		filter.Statuses = append(filter.Statuses, parsed)
	}
	for _, h := range input.HealthStatuses {
		parsed, err := asset.ParseHealthStatus(h)
		if err != nil {
			return asset.Filter{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		filter.HealthStatuses = append(filter.HealthStatuses, parsed)
	}
	for _, c := range input.ConfirmStatuses {
		parsed, err := asset.ParseConfirmStatus(c)
		if err != nil {
			return asset.Filter{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		filter.ConfirmStatuses = append(filter.ConfirmStatuses, parsed)
	}

	return filter, nil
}
