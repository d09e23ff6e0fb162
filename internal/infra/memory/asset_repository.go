// Package memory provides in-memory repository implementations backing the
// inventory engine. Stores are safe for concurrent use.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/pagination"
)

// AssetRepository is an in-memory implementation of asset.Repository.
//
// The store holds its own clones and hands out clones, so callers never share
// a mutable entity with the store or with each other. Mutation is always
// read-copy-write: get a snapshot, change it, write it back.
type AssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*asset.Asset
}

// NewAssetRepository creates an empty asset store.
func NewAssetRepository() *AssetRepository {
	return &AssetRepository{
		assets: make(map[string]*asset.Asset),
	}
}

// Create persists a new asset.
func (r *AssetRepository) Create(_ context.Context, a *asset.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := a.ID().String()
	if _, ok := r.assets[key]; ok {
		return asset.AlreadyExistsError(a.ID())
	}
	r.assets[key] = a.Clone()
	return nil
}

// GetByID retrieves an asset by its ID.
func (r *AssetRepository) GetByID(_ context.Context, id shared.ID) (*asset.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.assets[id.String()]
	if !ok {
		return nil, asset.NotFoundError(id)
	}
	return a.Clone(), nil
}

// Update updates an existing asset.
func (r *AssetRepository) Update(_ context.Context, a *asset.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := a.ID().String()
	if _, ok := r.assets[key]; !ok {
		return asset.NotFoundError(a.ID())
	}
	r.assets[key] = a.Clone()
	return nil
}

// UpdateMany updates several assets under one write lock so readers see all
// of them change together or not at all.
func (r *AssetRepository) UpdateMany(_ context.Context, assets ...*asset.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range assets {
		if _, ok := r.assets[a.ID().String()]; !ok {
			return asset.NotFoundError(a.ID())
		}
	}
	for _, a := range assets {
		r.assets[a.ID().String()] = a.Clone()
	}
	return nil
}

// Delete removes an asset by its ID.
func (r *AssetRepository) Delete(_ context.Context, id shared.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.String()
	if _, ok := r.assets[key]; !ok {
		return asset.NotFoundError(id)
	}
	delete(r.assets, key)
	return nil
}

// List retrieves assets with filtering, sorting, and pagination.
func (r *AssetRepository) List(_ context.Context, filter asset.Filter, opts asset.ListOptions, page pagination.Pagination) (pagination.Result[*asset.Asset], error) {
	r.mu.RLock()
	matched := r.collect(filter)
	r.mu.RUnlock()

	sortAssets(matched, opts.Sort)

	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit()
	if end > len(matched) {
		end = len(matched)
	}

	return pagination.NewResult(matched[start:end], total, page), nil
}

// ListAll retrieves every asset matching the filter, unpaginated.
func (r *AssetRepository) ListAll(_ context.Context, filter asset.Filter) ([]*asset.Asset, error) {
	r.mu.RLock()
	matched := r.collect(filter)
	r.mu.RUnlock()

	sortAssets(matched, nil)
	return matched, nil
}

// Count returns the total number of assets matching the filter.
func (r *AssetRepository) Count(_ context.Context, filter asset.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if filter.IsEmpty() {
		return int64(len(r.assets)), nil
	}

	var count int64
	for _, a := range r.assets {
		if filter.Matches(a) {
			count++
		}
	}
	return count, nil
}

// collect gathers clones of matching assets. Caller must hold at least a
// read lock.
func (r *AssetRepository) collect(filter asset.Filter) []*asset.Asset {
	matched := make([]*asset.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		if filter.IsEmpty() || filter.Matches(a) {
			matched = append(matched, a.Clone())
		}
	}
	return matched
}

// sortAssets orders assets by the requested sort, defaulting to newest first.
// The id is the final tiebreaker so listings are stable across calls.
func sortAssets(assets []*asset.Asset, sortOpt *pagination.SortOption) {
	sorts := []pagination.Sort{{Field: "created_at", Order: pagination.SortDesc}}
	if sortOpt != nil && !sortOpt.IsEmpty() {
		sorts = sortOpt.Sorts()
	}

	sort.SliceStable(assets, func(i, j int) bool {
		a, b := assets[i], assets[j]
		for _, s := range sorts {
			cmp := compareAssets(a, b, s.Field)
			if cmp == 0 {
				continue
			}
			if s.Order == pagination.SortDesc {
				return cmp > 0
			}
			return cmp < 0
		}
		return a.ID().String() < b.ID().String()
	})
}

func compareAssets(a, b *asset.Asset, field string) int {
	switch field {
	case "name":
		return compareStrings(a.Name(), b.Name())
	case "created_at":
		return compareTimes(a.CreatedAt(), b.CreatedAt())
	case "updated_at":
		return compareTimes(a.UpdatedAt(), b.UpdatedAt())
	case "type":
		return compareStrings(string(a.Type()), string(b.Type()))
	case "status":
		return compareStrings(string(a.Status()), string(b.Status()))
	case "health_status":
		return compareStrings(string(a.HealthStatus()), string(b.HealthStatus()))
	default:
		return 0
	}
}
