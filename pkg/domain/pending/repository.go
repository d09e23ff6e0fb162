package pending

import (
	"context"

	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/pagination"
)

// Repository defines the interface for the pending asset store.
// A pending asset leaves the store exactly once, via Delete, either because
// it was confirmed or because it was ignored; no tombstone is kept.
type Repository interface {
	// Create persists a new pending asset. Fails with
	// ErrPendingAssetAlreadyExists if the id is already present.
	Create(ctx context.Context, p *PendingAsset) error

	// GetByID retrieves a pending asset by its ID.
	GetByID(ctx context.Context, id shared.ID) (*PendingAsset, error)

	// Delete removes a pending asset by its ID.
	Delete(ctx context.Context, id shared.ID) error

	// List retrieves pending assets with filtering and pagination.
	List(ctx context.Context, filter Filter, page pagination.Pagination) (pagination.Result[*PendingAsset], error)

	// ListAll retrieves every pending asset matching the filter, unpaginated.
	ListAll(ctx context.Context, filter Filter) ([]*PendingAsset, error)

	// Count returns the total number of pending assets matching the filter.
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter defines the filtering options for listing pending assets.
type Filter struct {
	SuggestedBusinessID *string
	MinConfidence       *int
	Recommended         *bool
}

// NewFilter creates an empty filter.
func NewFilter() Filter {
	return Filter{}
}

// WithSuggestedBusinessID adds a suggested business ID filter.
func (f Filter) WithSuggestedBusinessID(businessID string) Filter {
	f.SuggestedBusinessID = &businessID
	return f
}

// WithMinConfidence adds a minimum confidence filter.
func (f Filter) WithMinConfidence(confidence int) Filter {
	f.MinConfidence = &confidence
	return f
}

// WithRecommended adds a recommended filter.
func (f Filter) WithRecommended(recommended bool) Filter {
	f.Recommended = &recommended
	return f
}

// IsEmpty returns true if no filters are set.
func (f Filter) IsEmpty() bool {
	return f.SuggestedBusinessID == nil && f.MinConfidence == nil && f.Recommended == nil
}

// Matches reports whether the pending asset satisfies every set filter.
func (f Filter) Matches(p *PendingAsset) bool {
	if f.SuggestedBusinessID != nil && p.SuggestedBusinessID() != *f.SuggestedBusinessID {
		return false
	}
	if f.MinConfidence != nil && p.Confidence() < *f.MinConfidence {
		return false
	}
	if f.Recommended != nil && p.IsRecommended() != *f.Recommended {
		return false
	}
	return true
}
