package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/pagination"
)

func mustAsset(t *testing.T, id, name string, assetType asset.AssetType) *asset.Asset {
	t.Helper()
	a, err := asset.NewAsset(shared.MustIDFromString(id), name, assetType, asset.DiscoveryManual)
	require.NoError(t, err)
	return a
}

func TestAssetRepository_CRUD(t *testing.T) {
	repo := NewAssetRepository()
	ctx := context.Background()
	a := mustAsset(t, "web-01", "web-01", asset.AssetTypeHost)

	require.NoError(t, repo.Create(ctx, a))
	assert.ErrorIs(t, repo.Create(ctx, a), shared.ErrAlreadyExists)

	got, err := repo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, "web-01", got.Name())

	require.NoError(t, got.UpdateName("frontend-01"))
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, "frontend-01", got.Name())

	require.NoError(t, repo.Delete(ctx, a.ID()))
	_, err = repo.GetByID(ctx, a.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, a.ID()), shared.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, a), shared.ErrNotFound)
}

func TestAssetRepository_ListFiltersAndPaginates(t *testing.T) {
	repo := NewAssetRepository()
	ctx := context.Background()

	hosts := []string{"web-01", "web-02", "web-03"}
	for _, name := range hosts {
		require.NoError(t, repo.Create(ctx, mustAsset(t, name, name, asset.AssetTypeHost)))
	}
	db := mustAsset(t, "db-01", "db-01", asset.AssetTypeDatabase)
	require.NoError(t, db.AssignBusiness("biz-pay", "Payments", "alice"))
	require.NoError(t, repo.Create(ctx, db))

	sortByName := pagination.NewSortOption(asset.AllowedSortFields()).Parse("name")
	opts := asset.ListOptions{Sort: sortByName}

	result, err := repo.List(ctx, asset.NewFilter().WithTypes(asset.AssetTypeHost), opts, pagination.New(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "web-01", result.Data[0].Name())
	assert.Equal(t, "web-02", result.Data[1].Name())

	result, err = repo.List(ctx, asset.NewFilter().WithTypes(asset.AssetTypeHost), opts, pagination.New(2, 2))
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "web-03", result.Data[0].Name())

	result, err = repo.List(ctx, asset.NewFilter().WithBusinessID("biz-pay"), opts, pagination.New(1, 20))
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "db-01", result.Data[0].Name())

	result, err = repo.List(ctx, asset.NewFilter().WithSearch("web-0"), opts, pagination.New(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
}

func TestAssetRepository_ReturnsIsolatedCopies(t *testing.T) {
	repo := NewAssetRepository()
	ctx := context.Background()
	a := mustAsset(t, "web-01", "web-01", asset.AssetTypeHost)

	require.NoError(t, repo.Create(ctx, a))

	// Mutating the caller's instance after Create must not reach the store.
	require.NoError(t, a.UpdateName("renamed-outside"))

	got, err := repo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, "web-01", got.Name())

	// Mutating a returned snapshot must not reach the store either.
	require.NoError(t, got.UpdateName("renamed-snapshot"))
	require.NoError(t, got.AssignBusiness("biz-1", "Core Platform", "alice"))

	again, err := repo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, "web-01", again.Name())
	assert.Empty(t, again.BusinessID())

	all, err := repo.ListAll(ctx, asset.NewFilter())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "web-01", all[0].Name())
}

func TestAssetRepository_UpdateMany(t *testing.T) {
	repo := NewAssetRepository()
	ctx := context.Background()

	first := mustAsset(t, "web-01", "web-01", asset.AssetTypeHost)
	second := mustAsset(t, "db-01", "db-01", asset.AssetTypeDatabase)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, first.UpdateName("web-01a"))
	require.NoError(t, second.UpdateName("db-01a"))
	require.NoError(t, repo.UpdateMany(ctx, first, second))

	got, err := repo.GetByID(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, "web-01a", got.Name())

	// A missing asset fails the whole write; nothing is applied.
	ghost := mustAsset(t, "ghost", "ghost", asset.AssetTypeHost)
	require.NoError(t, first.UpdateName("web-01b"))
	err = repo.UpdateMany(ctx, first, ghost)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	got, err = repo.GetByID(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, "web-01a", got.Name())
}

func TestAssetRepository_ConcurrentReadersAndWriters(t *testing.T) {
	repo := NewAssetRepository()
	ctx := context.Background()
	a := mustAsset(t, "web-01", "web-01", asset.AssetTypeHost)
	require.NoError(t, repo.Create(ctx, a))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := repo.GetByID(ctx, a.ID())
				if err != nil {
					continue
				}
				_ = got.UpdateName(fmt.Sprintf("web-%d-%d", n, j))
				_ = repo.Update(ctx, got)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if got, err := repo.GetByID(ctx, a.ID()); err == nil {
					_ = got.Name()
				}
				if all, err := repo.ListAll(ctx, asset.NewFilter()); err == nil {
					for _, item := range all {
						_ = item.Dependencies()
					}
				}
			}
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.NotEmpty(t, got.Name())
}

func TestAssetRepository_Count(t *testing.T) {
	repo := NewAssetRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, mustAsset(t, "web-01", "web-01", asset.AssetTypeHost)))
	require.NoError(t, repo.Create(ctx, mustAsset(t, "db-01", "db-01", asset.AssetTypeDatabase)))

	total, err := repo.Count(ctx, asset.NewFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	dbs, err := repo.Count(ctx, asset.NewFilter().WithTypes(asset.AssetTypeDatabase))
	require.NoError(t, err)
	assert.Equal(t, int64(1), dbs)
}
