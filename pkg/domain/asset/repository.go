package asset

import (
	"context"

	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/pagination"
)

// Repository defines the interface for the authoritative asset store.
// All mutation of stored assets goes through the application services; the
// repository itself only persists what it is handed. Implementations return
// snapshots: callers may mutate a returned asset freely and nothing changes
// in the store until it is written back.
type Repository interface {
	// Create persists a new asset. Fails with ErrAssetAlreadyExists if the
	// id is already present.
	Create(ctx context.Context, asset *Asset) error

	// GetByID retrieves an asset by its ID.
	GetByID(ctx context.Context, id shared.ID) (*Asset, error)

	// Update updates an existing asset.
	Update(ctx context.Context, asset *Asset) error

	// UpdateMany updates several assets as one atomic write, so a reader
	// never observes some of them updated and others not. Fails without
	// applying anything if any asset is missing. The graph maintainer uses
	// this to keep both endpoints of an edge in step.
	UpdateMany(ctx context.Context, assets ...*Asset) error

	// Delete removes an asset by its ID. Cascading edge cleanup is the graph
	// maintainer's job, not the repository's.
	Delete(ctx context.Context, id shared.ID) error

	// List retrieves assets with filtering, sorting, and pagination.
	List(ctx context.Context, filter Filter, opts ListOptions, page pagination.Pagination) (pagination.Result[*Asset], error)

	// ListAll retrieves every asset matching the filter, unpaginated.
	// Used by the graph maintainer's cascade and the statistics fold.
	ListAll(ctx context.Context, filter Filter) ([]*Asset, error)

	// Count returns the total number of assets matching the filter.
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter defines the filtering options for listing assets.
type Filter struct {
	BusinessID      *string
	Types           []AssetType
	Layers          []Layer
	Statuses        []Status
	HealthStatuses  []HealthStatus
	ConfirmStatuses []ConfirmStatus
	Search          *string // substring match across name, code, ip, hostname
}

// ListOptions contains options for listing assets (sorting).
type ListOptions struct {
	Sort *pagination.SortOption
}

// AllowedSortFields returns the allowed sort fields for assets.
func AllowedSortFields() map[string]string {
	return map[string]string{
		"name":       "name",
		"created_at": "created_at",
		"updated_at": "updated_at",
		"type":       "type",
		"status":     "status",
		"health":     "health_status",
	}
}

// NewFilter creates an empty filter.
func NewFilter() Filter {
	return Filter{}
}

// WithBusinessID adds a business ID filter.
func (f Filter) WithBusinessID(businessID string) Filter {
	f.BusinessID = &businessID
	return f
}

// WithTypes adds a types filter.
func (f Filter) WithTypes(types ...AssetType) Filter {
	f.Types = types
	return f
}

// WithLayers adds a layers filter.
func (f Filter) WithLayers(layers ...Layer) Filter {
	f.Layers = layers
	return f
}

// WithStatuses adds a statuses filter.
func (f Filter) WithStatuses(statuses ...Status) Filter {
	f.Statuses = statuses
	return f
}

// WithHealthStatuses adds a health statuses filter.
func (f Filter) WithHealthStatuses(statuses ...HealthStatus) Filter {
	f.HealthStatuses = statuses
	return f
}

// WithConfirmStatuses adds a confirm statuses filter.
func (f Filter) WithConfirmStatuses(statuses ...ConfirmStatus) Filter {
	f.ConfirmStatuses = statuses
	return f
}

// WithSearch adds a substring search filter.
func (f Filter) WithSearch(search string) Filter {
	f.Search = &search
	return f
}

// IsEmpty returns true if no filters are set.
func (f Filter) IsEmpty() bool {
	return f.BusinessID == nil &&
		len(f.Types) == 0 &&
		len(f.Layers) == 0 &&
		len(f.Statuses) == 0 &&
		len(f.HealthStatuses) == 0 &&
		len(f.ConfirmStatuses) == 0 &&
		f.Search == nil
}

// Matches reports whether the asset satisfies every set filter.
func (f Filter) Matches(a *Asset) bool {
	if f.BusinessID != nil && a.BusinessID() != *f.BusinessID {
		return false
	}
	if len(f.Types) > 0 && !containsValue(f.Types, a.Type()) {
		return false
	}
	if len(f.Layers) > 0 && !containsValue(f.Layers, a.Layer()) {
		return false
	}
	if len(f.Statuses) > 0 && !containsValue(f.Statuses, a.Status()) {
		return false
	}
	if len(f.HealthStatuses) > 0 && !containsValue(f.HealthStatuses, a.HealthStatus()) {
		return false
	}
	if len(f.ConfirmStatuses) > 0 && !containsValue(f.ConfirmStatuses, a.ConfirmStatus()) {
		return false
	}
	if f.Search != nil && !matchesSearch(a, *f.Search) {
		return false
	}
	return true
}

func containsValue[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
