package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/assureops/api/pkg/domain/pending"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/pagination"
)

// PendingRepository is an in-memory implementation of pending.Repository.
//
// Like the asset store, it holds its own clones and hands out clones, so a
// caller's mutations never reach the store without an explicit write.
type PendingRepository struct {
	mu         sync.RWMutex
	candidates map[string]*pending.PendingAsset
}

// NewPendingRepository creates an empty pending asset store.
func NewPendingRepository() *PendingRepository {
	return &PendingRepository{
		candidates: make(map[string]*pending.PendingAsset),
	}
}

// Create persists a new pending asset.
func (r *PendingRepository) Create(_ context.Context, p *pending.PendingAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := p.ID().String()
	if _, ok := r.candidates[key]; ok {
		return pending.AlreadyExistsError(p.ID())
	}
	r.candidates[key] = p.Clone()
	return nil
}

// GetByID retrieves a pending asset by its ID.
func (r *PendingRepository) GetByID(_ context.Context, id shared.ID) (*pending.PendingAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.candidates[id.String()]
	if !ok {
		return nil, pending.NotFoundError(id)
	}
	return p.Clone(), nil
}

// Delete removes a pending asset by its ID.
func (r *PendingRepository) Delete(_ context.Context, id shared.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.String()
	if _, ok := r.candidates[key]; !ok {
		return pending.NotFoundError(id)
	}
	delete(r.candidates, key)
	return nil
}

// List retrieves pending assets with filtering and pagination.
func (r *PendingRepository) List(_ context.Context, filter pending.Filter, page pagination.Pagination) (pagination.Result[*pending.PendingAsset], error) {
	r.mu.RLock()
	matched := r.collect(filter)
	r.mu.RUnlock()

	sortPending(matched)

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

// ListAll retrieves every pending asset matching the filter, unpaginated.
func (r *PendingRepository) ListAll(_ context.Context, filter pending.Filter) ([]*pending.PendingAsset, error) {
	r.mu.RLock()
	matched := r.collect(filter)
	r.mu.RUnlock()

	sortPending(matched)
	return matched, nil
}

// Count returns the total number of pending assets matching the filter.
func (r *PendingRepository) Count(_ context.Context, filter pending.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if filter.IsEmpty() {
		return int64(len(r.candidates)), nil
	}

	var count int64
	for _, p := range r.candidates {
		if filter.Matches(p) {
			count++
		}
	}
	return count, nil
}

// collect gathers clones of matching candidates. Caller must hold at least a
// read lock.
func (r *PendingRepository) collect(filter pending.Filter) []*pending.PendingAsset {
	matched := make([]*pending.PendingAsset, 0, len(r.candidates))
	for _, p := range r.candidates {
		if filter.IsEmpty() || filter.Matches(p) {
			matched = append(matched, p.Clone())
		}
	}
	return matched
}

// sortPending orders candidates newest-discovered first, id as tiebreaker.
func sortPending(candidates []*pending.PendingAsset) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if cmp := compareTimes(a.DiscoveryTime(), b.DiscoveryTime()); cmp != 0 {
			return cmp > 0
		}
		return a.ID().String() < b.ID().String()
	})
}

func compareStrings(a, b string) int {
	return strings.Compare(a, b)
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
