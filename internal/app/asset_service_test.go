package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assureops/api/internal/infra/memory"
	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/logger"
)

func newAssetFixture(t *testing.T) (*AssetService, *memory.AssetRepository) {
	t.Helper()
	repo := memory.NewAssetRepository()
	graph := NewDependencyService(repo, logger.NewNop())
	return NewAssetService(repo, graph, logger.NewNop()), repo
}

func TestCreateAsset_ManualRegistrationIsConfirmed(t *testing.T) {
	svc, _ := newAssetFixture(t)

	a, err := svc.CreateAsset(context.Background(), CreateAssetInput{
		Name:         "pay-db-01",
		Type:         "database",
		BusinessID:   "biz-pay",
		BusinessName: "Payments",
		IP:           "10.1.2.3",
		Port:         5432,
	})
	require.NoError(t, err)

	assert.True(t, a.IsConfirmed())
	assert.Equal(t, asset.ConfirmStatusConfirmed, a.ConfirmStatus())
	assert.Equal(t, "system", a.ConfirmedBy())
	assert.Equal(t, asset.DiscoveryManual, a.DiscoveryMethod())
	assert.False(t, a.ID().IsZero())
}

func TestCreateAsset_RejectsUnknownType(t *testing.T) {
	svc, _ := newAssetFixture(t)

	_, err := svc.CreateAsset(context.Background(), CreateAssetInput{
		Name:         "x",
		Type:         "mainframe",
		BusinessID:   "biz-1",
		BusinessName: "X",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateAsset_DuplicateID(t *testing.T) {
	svc, _ := newAssetFixture(t)
	ctx := context.Background()

	input := CreateAssetInput{
		ID: "AST-1", Name: "web-01", Type: "host",
		BusinessID: "biz-1", BusinessName: "Core Platform",
	}
	_, err := svc.CreateAsset(ctx, input)
	require.NoError(t, err)

	_, err = svc.CreateAsset(ctx, input)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestUpdateAsset_PatchesOnlyProvidedFields(t *testing.T) {
	svc, _ := newAssetFixture(t)
	ctx := context.Background()

	created, err := svc.CreateAsset(ctx, CreateAssetInput{
		ID: "AST-1", Name: "web-01", Type: "host",
		BusinessID: "biz-1", BusinessName: "Core Platform",
		IP: "10.0.0.1", Hostname: "web-01.internal", Port: 443,
	})
	require.NoError(t, err)

	newIP := "10.0.0.9"
	status := "maintenance"
	updated, err := svc.UpdateAsset(ctx, "AST-1", UpdateAssetInput{
		IP:     &newIP,
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.9", updated.IP())
	assert.Equal(t, asset.StatusMaintenance, updated.Status())
	// Untouched fields survive the patch.
	assert.Equal(t, "web-01.internal", updated.Hostname())
	assert.Equal(t, 443, updated.Port())
	assert.Equal(t, created.Name(), updated.Name())
}

func TestUpdateAsset_NotFound(t *testing.T) {
	svc, _ := newAssetFixture(t)

	name := "x"
	_, err := svc.UpdateAsset(context.Background(), "ghost", UpdateAssetInput{Name: &name})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteAsset_CleansUpEdges(t *testing.T) {
	svc, repo := newAssetFixture(t)
	graph := NewDependencyService(repo, logger.NewNop())
	ctx := context.Background()

	for _, id := range []string{"app-01", "db-01"} {
		_, err := svc.CreateAsset(ctx, CreateAssetInput{
			ID: id, Name: id, Type: "host",
			BusinessID: "biz-1", BusinessName: "Core Platform",
		})
		require.NoError(t, err)
	}
	_, err := graph.AddDependency(ctx, AddDependencyInput{
		SourceAssetID: "app-01", TargetAssetID: "db-01", Type: "connect",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAsset(ctx, "db-01"))

	_, err = repo.GetByID(ctx, shared.MustIDFromString("db-01"))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	app, err := repo.GetByID(ctx, shared.MustIDFromString("app-01"))
	require.NoError(t, err)
	assert.Empty(t, app.Dependencies())
}

func TestUpdateAsset_ConcurrentWithEdgeMutation(t *testing.T) {
	repo := memory.NewAssetRepository()
	graph := NewDependencyService(repo, logger.NewNop())
	svc := NewAssetService(repo, graph, logger.NewNop())
	ctx := context.Background()

	for _, id := range []string{"app-01", "db-01"} {
		_, err := svc.CreateAsset(ctx, CreateAssetInput{
			ID: id, Name: id, Type: "host",
			BusinessID: "biz-1", BusinessName: "Core Platform",
		})
		require.NoError(t, err)
	}

	// A field patch racing an edge add must lose neither change.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		name := "frontend-01"
		_, err := svc.UpdateAsset(ctx, "app-01", UpdateAssetInput{Name: &name})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := graph.AddDependency(ctx, AddDependencyInput{
			SourceAssetID: "app-01", TargetAssetID: "db-01", Type: "connect",
		})
		assert.NoError(t, err)
	}()
	wg.Wait()

	a, err := repo.GetByID(ctx, shared.MustIDFromString("app-01"))
	require.NoError(t, err)
	assert.Equal(t, "frontend-01", a.Name())
	assert.True(t, a.HasDependencyOn(shared.MustIDFromString("db-01"), asset.DependencyConnect))
}

func TestListAssets_FiltersAndSorts(t *testing.T) {
	svc, _ := newAssetFixture(t)
	ctx := context.Background()

	seeds := []struct {
		id        string
		assetType string
	}{
		{"db-01", "database"},
		{"web-01", "host"},
		{"web-02", "host"},
	}
	for _, s := range seeds {
		_, err := svc.CreateAsset(ctx, CreateAssetInput{
			ID: s.id, Name: s.id, Type: s.assetType,
			BusinessID: "biz-1", BusinessName: "Core Platform",
		})
		require.NoError(t, err)
	}

	result, err := svc.ListAssets(ctx, ListAssetsInput{
		Types: []string{"host"},
		Sort:  "name",
		Page:  1, PerPage: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "web-01", result.Data[0].Name())

	result, err = svc.ListAssets(ctx, ListAssetsInput{
		Layers: []string{"middleware"},
		Page:   1, PerPage: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "db-01", result.Data[0].Name())

	_, err = svc.ListAssets(ctx, ListAssetsInput{Types: []string{"mainframe"}})
	assert.ErrorIs(t, err, shared.ErrValidation)
}
