package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assureops/api/internal/infra/memory"
	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/logger"
)

func newGraphFixture(t *testing.T) (*DependencyService, *memory.AssetRepository) {
	t.Helper()
	repo := memory.NewAssetRepository()
	return NewDependencyService(repo, logger.NewNop()), repo
}

func seedAsset(t *testing.T, repo *memory.AssetRepository, id, name string) shared.ID {
	t.Helper()
	a, err := asset.NewAsset(shared.MustIDFromString(id), name, asset.AssetTypeHost, asset.DiscoveryManual)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), a))
	return a.ID()
}

func TestAddDependency_MaintainsSymmetry(t *testing.T) {
	svc, repo := newGraphFixture(t)
	ctx := context.Background()
	sourceID := seedAsset(t, repo, "app-01", "app-01")
	targetID := seedAsset(t, repo, "db-01", "db-01")

	added, err := svc.AddDependency(ctx, AddDependencyInput{
		SourceAssetID: "app-01",
		TargetAssetID: "db-01",
		Type:          "connect",
	})
	require.NoError(t, err)
	assert.True(t, added)

	source, err := repo.GetByID(ctx, sourceID)
	require.NoError(t, err)
	assert.True(t, source.HasDependencyOn(targetID, asset.DependencyConnect))
	assert.Equal(t, "db-01", source.Dependencies()[0].TargetAssetName())

	target, err := repo.GetByID(ctx, targetID)
	require.NoError(t, err)
	assert.True(t, target.HasDependent(sourceID))
}

func TestAddDependency_Idempotent(t *testing.T) {
	svc, repo := newGraphFixture(t)
	ctx := context.Background()
	sourceID := seedAsset(t, repo, "app-01", "app-01")
	targetID := seedAsset(t, repo, "db-01", "db-01")

	input := AddDependencyInput{SourceAssetID: "app-01", TargetAssetID: "db-01", Type: "connect"}

	added, err := svc.AddDependency(ctx, input)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddDependency(ctx, input)
	require.NoError(t, err)
	assert.False(t, added)

	source, err := repo.GetByID(ctx, sourceID)
	require.NoError(t, err)
	assert.Len(t, source.Dependencies(), 1)

	target, err := repo.GetByID(ctx, targetID)
	require.NoError(t, err)
	assert.Len(t, target.Dependents(), 1)
}

func TestAddDependency_RejectsSelfEdge(t *testing.T) {
	svc, repo := newGraphFixture(t)
	seedAsset(t, repo, "app-01", "app-01")

	_, err := svc.AddDependency(context.Background(), AddDependencyInput{
		SourceAssetID: "app-01",
		TargetAssetID: "app-01",
		Type:          "connect",
	})
	assert.ErrorIs(t, err, asset.ErrInvalidEdge)
}

func TestAddDependency_RejectsUnknownEndpoints(t *testing.T) {
	svc, repo := newGraphFixture(t)
	ctx := context.Background()
	seedAsset(t, repo, "app-01", "app-01")

	_, err := svc.AddDependency(ctx, AddDependencyInput{
		SourceAssetID: "app-01",
		TargetAssetID: "ghost",
		Type:          "connect",
	})
	assert.ErrorIs(t, err, asset.ErrUnknownAsset)

	_, err = svc.AddDependency(ctx, AddDependencyInput{
		SourceAssetID: "ghost",
		TargetAssetID: "app-01",
		Type:          "connect",
	})
	assert.ErrorIs(t, err, asset.ErrUnknownAsset)
}

func TestRemoveDependency_KeepsIndexWhileOtherTypeRemains(t *testing.T) {
	svc, repo := newGraphFixture(t)
	ctx := context.Background()
	sourceID := seedAsset(t, repo, "app-01", "app-01")
	targetID := seedAsset(t, repo, "db-01", "db-01")

	for _, depType := range []string{"connect", "data"} {
		_, err := svc.AddDependency(ctx, AddDependencyInput{
			SourceAssetID: "app-01", TargetAssetID: "db-01", Type: depType,
		})
		require.NoError(t, err)
	}

	err := svc.RemoveDependency(ctx, RemoveDependencyInput{
		SourceAssetID: "app-01", TargetAssetID: "db-01", Type: "connect",
	})
	require.NoError(t, err)

	// The data edge still exists, so the reverse index must keep the entry.
	target, err := repo.GetByID(ctx, targetID)
	require.NoError(t, err)
	assert.True(t, target.HasDependent(sourceID))

	err = svc.RemoveDependency(ctx, RemoveDependencyInput{
		SourceAssetID: "app-01", TargetAssetID: "db-01", Type: "data",
	})
	require.NoError(t, err)

	target, err = repo.GetByID(ctx, targetID)
	require.NoError(t, err)
	assert.False(t, target.HasDependent(sourceID))
}

func TestRemoveDependency_NotFound(t *testing.T) {
	svc, repo := newGraphFixture(t)
	ctx := context.Background()
	seedAsset(t, repo, "app-01", "app-01")
	seedAsset(t, repo, "db-01", "db-01")

	err := svc.RemoveDependency(ctx, RemoveDependencyInput{
		SourceAssetID: "app-01", TargetAssetID: "db-01", Type: "connect",
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRemoveAsset_CascadesBothDirections(t *testing.T) {
	svc, repo := newGraphFixture(t)
	ctx := context.Background()
	appID := seedAsset(t, repo, "app-01", "app-01")
	midID := seedAsset(t, repo, "mid-01", "mid-01")
	dbID := seedAsset(t, repo, "db-01", "db-01")

	// app-01 -> mid-01 -> db-01
	_, err := svc.AddDependency(ctx, AddDependencyInput{SourceAssetID: "app-01", TargetAssetID: "mid-01", Type: "service"})
	require.NoError(t, err)
	_, err = svc.AddDependency(ctx, AddDependencyInput{SourceAssetID: "mid-01", TargetAssetID: "db-01", Type: "connect"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveAsset(ctx, midID))

	_, err = repo.GetByID(ctx, midID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	app, err := repo.GetByID(ctx, appID)
	require.NoError(t, err)
	assert.False(t, app.DependsOn(midID))
	assert.Empty(t, app.Dependencies())

	db, err := repo.GetByID(ctx, dbID)
	require.NoError(t, err)
	assert.False(t, db.HasDependent(midID))
	assert.Empty(t, db.Dependents())
}
