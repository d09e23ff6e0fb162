package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assureops/api/pkg/domain/shared"
)

func newTestAsset(t *testing.T, name string) *Asset {
	t.Helper()
	a, err := NewAsset(shared.NewID(), name, AssetTypeHost, DiscoveryLogAnalysis)
	require.NoError(t, err)
	return a
}

func TestNewAsset_Valid(t *testing.T) {
	id := shared.NewID()
	a, err := NewAsset(id, "web-01", AssetTypeHost, DiscoveryManual)

	require.NoError(t, err)
	assert.Equal(t, id, a.ID())
	assert.Equal(t, "web-01", a.Name())
	assert.Equal(t, ConfirmStatusAutoDiscovered, a.ConfirmStatus())
	assert.Equal(t, StatusUnknown, a.Status())
	assert.Equal(t, HealthUnknown, a.HealthStatus())
	assert.Empty(t, a.BusinessID())
	assert.Empty(t, a.Dependencies())
	assert.Empty(t, a.Dependents())
	assert.False(t, a.IsConfirmed())
	assert.Nil(t, a.ConfirmedAt())
}

func TestNewAsset_ExternalID(t *testing.T) {
	id := shared.MustIDFromString("PND-1024")
	a, err := NewAsset(id, "db-01", AssetTypeDatabase, DiscoveryImport)

	require.NoError(t, err)
	assert.Equal(t, "PND-1024", a.ID().String())
}

func TestNewAsset_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		assetName string
		assetType AssetType
		method    DiscoveryMethod
		wantErr   string
	}{
		{"empty name", "", AssetTypeHost, DiscoveryManual, "name is required"},
		{"invalid type", "web-01", AssetType("vm"), DiscoveryManual, "invalid asset type"},
		{"invalid method", "web-01", AssetTypeHost, DiscoveryMethod("guess"), "invalid discovery method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAsset(shared.NewID(), tt.assetName, tt.assetType, tt.method)

			assert.Nil(t, a)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAsset_AssignBusiness(t *testing.T) {
	a := newTestAsset(t, "web-01")

	err := a.AssignBusiness("biz-1", "Payments", "alice")
	require.NoError(t, err)

	assert.True(t, a.IsConfirmed())
	assert.Equal(t, ConfirmStatusConfirmed, a.ConfirmStatus())
	assert.Equal(t, "biz-1", a.BusinessID())
	assert.Equal(t, "Payments", a.BusinessName())
	assert.Equal(t, "alice", a.ConfirmedBy())
	require.NotNil(t, a.ConfirmedAt())
}

func TestAsset_AssignBusiness_RequiresBothIdentifiers(t *testing.T) {
	a := newTestAsset(t, "web-01")

	err := a.AssignBusiness("", "Payments", "alice")
	assert.ErrorIs(t, err, shared.ErrValidation)

	err = a.AssignBusiness("biz-1", "", "alice")
	assert.ErrorIs(t, err, shared.ErrValidation)

	// A failed assignment must not half-set ownership.
	assert.False(t, a.IsConfirmed())
	assert.Empty(t, a.BusinessID())
	assert.Empty(t, a.BusinessName())
}

func TestAsset_AppendDependency_Idempotent(t *testing.T) {
	a := newTestAsset(t, "app-01")
	target := shared.NewID()

	dep, err := NewDependency(target, "db-01", DependencyConnect)
	require.NoError(t, err)

	assert.True(t, a.AppendDependency(dep))
	assert.False(t, a.AppendDependency(dep))
	assert.Len(t, a.Dependencies(), 1)

	// Same target, different type is a distinct edge.
	dataDep, err := NewDependency(target, "db-01", DependencyData)
	require.NoError(t, err)
	assert.True(t, a.AppendDependency(dataDep))
	assert.Len(t, a.Dependencies(), 2)
}

func TestAsset_RemoveDependencyOn(t *testing.T) {
	a := newTestAsset(t, "app-01")
	target := shared.NewID()

	dep, err := NewDependency(target, "db-01", DependencyConnect)
	require.NoError(t, err)
	a.AppendDependency(dep)

	assert.False(t, a.RemoveDependencyOn(target, DependencyData))
	assert.True(t, a.RemoveDependencyOn(target, DependencyConnect))
	assert.False(t, a.RemoveDependencyOn(target, DependencyConnect))
	assert.Empty(t, a.Dependencies())
}

func TestAsset_RemoveDependenciesTo(t *testing.T) {
	a := newTestAsset(t, "app-01")
	target := shared.NewID()
	other := shared.NewID()

	for _, dt := range []DependencyType{DependencyConnect, DependencyData} {
		dep, err := NewDependency(target, "db-01", dt)
		require.NoError(t, err)
		a.AppendDependency(dep)
	}
	otherDep, err := NewDependency(other, "cache-01", DependencyConnect)
	require.NoError(t, err)
	a.AppendDependency(otherDep)

	assert.True(t, a.RemoveDependenciesTo(target))
	assert.False(t, a.DependsOn(target))
	assert.True(t, a.DependsOn(other))
	assert.Len(t, a.Dependencies(), 1)

	assert.False(t, a.RemoveDependenciesTo(target))
}

func TestAsset_DependentsIndex(t *testing.T) {
	a := newTestAsset(t, "db-01")
	source := shared.NewID()

	assert.True(t, a.AddDependent(source))
	assert.False(t, a.AddDependent(source))
	assert.True(t, a.HasDependent(source))
	assert.Len(t, a.Dependents(), 1)

	assert.True(t, a.RemoveDependent(source))
	assert.False(t, a.RemoveDependent(source))
	assert.Empty(t, a.Dependents())
}

func TestAsset_DependenciesReturnsCopy(t *testing.T) {
	a := newTestAsset(t, "app-01")
	dep, err := NewDependency(shared.NewID(), "db-01", DependencyConnect)
	require.NoError(t, err)
	a.AppendDependency(dep)

	deps := a.Dependencies()
	deps[0] = Dependency{}

	assert.Equal(t, "db-01", a.Dependencies()[0].TargetAssetName())
}

func TestNewDependency_ValidationErrors(t *testing.T) {
	_, err := NewDependency(shared.ID{}, "db-01", DependencyConnect)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = NewDependency(shared.NewID(), "db-01", DependencyType("uses"))
	assert.ErrorIs(t, err, shared.ErrValidation)
}
