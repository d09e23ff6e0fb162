package pending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/shared"
)

func newTestCandidate(t *testing.T) *PendingAsset {
	t.Helper()
	p, err := NewPendingAsset(shared.MustIDFromString("PND-1"), "db-01", asset.AssetTypeDatabase, asset.DiscoveryLogAnalysis, 85)
	require.NoError(t, err)
	return p
}

func TestNewPendingAsset_Valid(t *testing.T) {
	p := newTestCandidate(t)

	assert.Equal(t, "PND-1", p.ID().String())
	assert.Equal(t, "db-01", p.Name())
	assert.Equal(t, asset.ConfirmStatusPending, p.ConfirmStatus())
	assert.Equal(t, asset.StatusUnknown, p.Status())
	assert.Equal(t, 85, p.Confidence())
	assert.False(t, p.IsRecommended())
	assert.Empty(t, p.Evidences())
}

func TestNewPendingAsset_ConfidenceRange(t *testing.T) {
	_, err := NewPendingAsset(shared.NewID(), "db-01", asset.AssetTypeDatabase, asset.DiscoveryImport, -1)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = NewPendingAsset(shared.NewID(), "db-01", asset.AssetTypeDatabase, asset.DiscoveryImport, 101)
	assert.ErrorIs(t, err, shared.ErrValidation)

	p, err := NewPendingAsset(shared.NewID(), "db-01", asset.AssetTypeDatabase, asset.DiscoveryImport, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Confidence())
}

func TestPendingAsset_AddEvidence(t *testing.T) {
	p := newTestCandidate(t)

	err := p.AddEvidence(Evidence{
		Type:      EvidenceLog,
		Content:   "connection pool established",
		Timestamp: time.Now().UTC(),
		Source:    "netscan",
	})
	require.NoError(t, err)
	assert.Len(t, p.Evidences(), 1)

	err = p.AddEvidence(Evidence{Type: EvidenceType("rumor"), Content: "x"})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Len(t, p.Evidences(), 1)
}

func TestPendingAsset_Suggest(t *testing.T) {
	p := newTestCandidate(t)

	p.Suggest("biz-1", "Payments", "ip range 10.1.*.*")
	assert.True(t, p.IsRecommended())
	assert.Equal(t, "biz-1", p.SuggestedBusinessID())
	assert.Equal(t, "Payments", p.SuggestedBusinessName())

	// A suggestion is advisory; the candidate remains unowned.
	assert.Equal(t, asset.ConfirmStatusPending, p.ConfirmStatus())

	p.Suggest("", "", "")
	assert.False(t, p.IsRecommended())
}

func TestPendingAsset_ConfirmInto(t *testing.T) {
	p := newTestCandidate(t)
	p.SetCode("DB-001")
	p.SetNetwork("10.1.2.3", "db-01.internal", 5432)
	p.SetVersionInfo("16.2", "PostgreSQL")
	p.SetDiscoveryInfo(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), "netscan")

	a, err := p.ConfirmInto("biz-1", "Payments", "alice")
	require.NoError(t, err)

	assert.Equal(t, p.ID(), a.ID())
	assert.Equal(t, "db-01", a.Name())
	assert.Equal(t, asset.AssetTypeDatabase, a.Type())
	assert.Equal(t, "DB-001", a.Code())
	assert.Equal(t, "10.1.2.3", a.IP())
	assert.Equal(t, 5432, a.Port())
	assert.Equal(t, "netscan", a.DiscoverySource())
	assert.True(t, a.IsConfirmed())
	assert.Equal(t, "biz-1", a.BusinessID())
	assert.Equal(t, "alice", a.ConfirmedBy())
}

func TestPendingAsset_ConfirmInto_RequiresBusiness(t *testing.T) {
	p := newTestCandidate(t)

	_, err := p.ConfirmInto("", "Payments", "alice")
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = p.ConfirmInto("biz-1", "", "alice")
	assert.ErrorIs(t, err, shared.ErrValidation)
}
