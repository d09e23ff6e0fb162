package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/pending"
	"github.com/assureops/api/pkg/domain/shared"
)

func buildAsset(t *testing.T, id string, assetType asset.AssetType) *asset.Asset {
	t.Helper()
	a, err := asset.NewAsset(shared.MustIDFromString(id), id, assetType, asset.DiscoveryManual)
	require.NoError(t, err)
	return a
}

func TestComputeStatistics_EmptyStoresHaveDenseBreakdowns(t *testing.T) {
	stats := ComputeStatistics(nil, nil)

	assert.Equal(t, int64(0), stats.TotalAssets)
	assert.Equal(t, int64(0), stats.PendingCount)
	assert.Equal(t, int64(0), stats.DependencyEdges)
	assert.Empty(t, stats.ByBusiness)

	// Every enum value is present even when nothing is counted under it.
	assert.Len(t, stats.ByType, len(asset.AllAssetTypes()))
	assert.Len(t, stats.ByLayer, len(asset.AllLayers()))
	assert.Len(t, stats.ByStatus, len(asset.AllStatuses()))
	assert.Len(t, stats.ByHealth, len(asset.AllHealthStatuses()))
	assert.Len(t, stats.ByConfirmStatus, len(asset.AllConfirmStatuses()))
	assert.Equal(t, int64(0), stats.ByType[asset.AssetTypeDatabase])
	assert.Equal(t, int64(0), stats.ByLayer[asset.LayerMiddleware])
}

func TestComputeStatistics_Counts(t *testing.T) {
	web := buildAsset(t, "web-01", asset.AssetTypeHost)
	db := buildAsset(t, "db-01", asset.AssetTypeDatabase)
	mq := buildAsset(t, "mq-01", asset.AssetTypeMiddleware)
	app := buildAsset(t, "app-01", asset.AssetTypeApplication)

	require.NoError(t, web.AssignBusiness("biz-pay", "Payments", "alice"))
	require.NoError(t, db.AssignBusiness("biz-pay", "Payments", "alice"))
	require.NoError(t, mq.AssignBusiness("biz-core", "Core Platform", "bob"))

	dep, err := asset.NewDependency(db.ID(), db.Name(), asset.DependencyConnect)
	require.NoError(t, err)
	app.AppendDependency(dep)
	dep, err = asset.NewDependency(mq.ID(), mq.Name(), asset.DependencyService)
	require.NoError(t, err)
	app.AppendDependency(dep)

	candidate, err := pending.NewPendingAsset(shared.NewID(), "cand-01", asset.AssetTypeHost, asset.DiscoveryLogAnalysis, 50)
	require.NoError(t, err)

	stats := ComputeStatistics([]*asset.Asset{web, db, mq, app}, []*pending.PendingAsset{candidate})

	assert.Equal(t, int64(4), stats.TotalAssets)
	assert.Equal(t, int64(1), stats.PendingCount)
	assert.Equal(t, int64(2), stats.DependencyEdges)

	assert.Equal(t, int64(1), stats.ByType[asset.AssetTypeHost])
	assert.Equal(t, int64(1), stats.ByType[asset.AssetTypeDatabase])
	assert.Equal(t, int64(0), stats.ByType[asset.AssetTypeContainer])

	assert.Equal(t, int64(1), stats.ByLayer[asset.LayerInfrastructure])
	assert.Equal(t, int64(2), stats.ByLayer[asset.LayerMiddleware])
	assert.Equal(t, int64(1), stats.ByLayer[asset.LayerApplication])

	assert.Equal(t, int64(3), stats.ByConfirmStatus[asset.ConfirmStatusConfirmed])
	assert.Equal(t, int64(1), stats.ByConfirmStatus[asset.ConfirmStatusAutoDiscovered])
}

func TestComputeStatistics_GroupsByBusiness(t *testing.T) {
	first := buildAsset(t, "web-01", asset.AssetTypeHost)
	second := buildAsset(t, "db-01", asset.AssetTypeDatabase)
	orphan := buildAsset(t, "tmp-01", asset.AssetTypeHost)

	require.NoError(t, first.AssignBusiness("biz-pay", "Payments", "alice"))
	require.NoError(t, second.AssignBusiness("biz-pay", "Payments", "alice"))

	stats := ComputeStatistics([]*asset.Asset{first, second, orphan}, nil)

	require.Len(t, stats.ByBusiness, 1)
	biz := stats.ByBusiness["biz-pay"]
	assert.Equal(t, "Payments", biz.BusinessName)
	assert.Equal(t, 2, biz.AssetCount)
}
