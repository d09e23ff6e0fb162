package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/pending"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/pagination"
)

func mustCandidate(t *testing.T, id string, confidence int, discoveredAt time.Time) *pending.PendingAsset {
	t.Helper()
	p, err := pending.NewPendingAsset(shared.MustIDFromString(id), "cand-"+id, asset.AssetTypeHost, asset.DiscoveryLogAnalysis, confidence)
	require.NoError(t, err)
	p.SetDiscoveryInfo(discoveredAt, "netscan")
	return p
}

func TestPendingRepository_CRUD(t *testing.T) {
	repo := NewPendingRepository()
	ctx := context.Background()
	p := mustCandidate(t, "PND-1", 80, time.Now().UTC())

	require.NoError(t, repo.Create(ctx, p))
	assert.ErrorIs(t, repo.Create(ctx, p), shared.ErrAlreadyExists)

	got, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 80, got.Confidence())

	require.NoError(t, repo.Delete(ctx, p.ID()))
	_, err = repo.GetByID(ctx, p.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID()), shared.ErrNotFound)
}

func TestPendingRepository_ReturnsIsolatedCopies(t *testing.T) {
	repo := NewPendingRepository()
	ctx := context.Background()
	p := mustCandidate(t, "PND-1", 80, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, p))

	// A suggestion applied to the caller's instance after Create must not
	// reach the store.
	p.Suggest("biz-pay", "Payments", "payment subnet")

	got, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.False(t, got.IsRecommended())
	assert.Empty(t, got.SuggestedBusinessID())

	// Same for a returned snapshot.
	got.Suggest("biz-core", "Core Platform", "office network")

	again, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.False(t, again.IsRecommended())
}

func TestPendingRepository_ListNewestDiscoveredFirst(t *testing.T) {
	repo := NewPendingRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, mustCandidate(t, "PND-1", 50, base)))
	require.NoError(t, repo.Create(ctx, mustCandidate(t, "PND-2", 50, base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, mustCandidate(t, "PND-3", 50, base.Add(time.Hour))))

	result, err := repo.List(ctx, pending.NewFilter(), pagination.New(1, 20))
	require.NoError(t, err)
	require.Len(t, result.Data, 3)
	assert.Equal(t, "PND-2", result.Data[0].ID().String())
	assert.Equal(t, "PND-3", result.Data[1].ID().String())
	assert.Equal(t, "PND-1", result.Data[2].ID().String())
}

func TestPendingRepository_Filters(t *testing.T) {
	repo := NewPendingRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	weak := mustCandidate(t, "PND-1", 30, now)
	strong := mustCandidate(t, "PND-2", 90, now)
	strong.Suggest("biz-pay", "Payments", "payment subnet")
	require.NoError(t, repo.Create(ctx, weak))
	require.NoError(t, repo.Create(ctx, strong))

	result, err := repo.List(ctx, pending.NewFilter().WithMinConfidence(60), pagination.New(1, 20))
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "PND-2", result.Data[0].ID().String())

	result, err = repo.List(ctx, pending.NewFilter().WithRecommended(false), pagination.New(1, 20))
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "PND-1", result.Data[0].ID().String())

	result, err = repo.List(ctx, pending.NewFilter().WithSuggestedBusinessID("biz-pay"), pagination.New(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	count, err := repo.Count(ctx, pending.NewFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
