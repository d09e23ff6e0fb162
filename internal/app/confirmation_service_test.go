package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assureops/api/internal/infra/memory"
	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/attribution"
	"github.com/assureops/api/pkg/domain/pending"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/logger"
)

type confirmationFixture struct {
	svc         *ConfirmationService
	assetRepo   *memory.AssetRepository
	pendingRepo *memory.PendingRepository
}

func newConfirmationFixture(t *testing.T) confirmationFixture {
	t.Helper()

	recommender, err := attribution.NewRecommender([]attribution.Rule{
		{Pattern: "10.1.*.*", BusinessID: "biz-pay", BusinessName: "Payments", Reason: "payment subnet"},
	})
	require.NoError(t, err)

	assetRepo := memory.NewAssetRepository()
	pendingRepo := memory.NewPendingRepository()
	return confirmationFixture{
		svc:         NewConfirmationService(assetRepo, pendingRepo, recommender, logger.NewNop()),
		assetRepo:   assetRepo,
		pendingRepo: pendingRepo,
	}
}

func seedCandidate(t *testing.T, repo *memory.PendingRepository, id string) *pending.PendingAsset {
	t.Helper()
	p, err := pending.NewPendingAsset(shared.MustIDFromString(id), "cand-"+id, asset.AssetTypeHost, asset.DiscoveryLogAnalysis, 80)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func seedSuggestedCandidate(t *testing.T, repo *memory.PendingRepository, id, businessID, businessName, reason string) *pending.PendingAsset {
	t.Helper()
	p, err := pending.NewPendingAsset(shared.MustIDFromString(id), "cand-"+id, asset.AssetTypeHost, asset.DiscoveryLogAnalysis, 80)
	require.NoError(t, err)
	p.Suggest(businessID, businessName, reason)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestConfirm_PromotesCandidate(t *testing.T) {
	f := newConfirmationFixture(t)
	ctx := context.Background()
	seedCandidate(t, f.pendingRepo, "PND-1")

	a, err := f.svc.Confirm(ctx, ConfirmInput{
		PendingAssetID: "PND-1",
		BusinessID:     "biz-1",
		BusinessName:   "Core Platform",
		ConfirmedBy:    "alice",
	})
	require.NoError(t, err)

	// The promoted asset keeps the candidate's id.
	assert.Equal(t, "PND-1", a.ID().String())
	assert.True(t, a.IsConfirmed())
	assert.Equal(t, "alice", a.ConfirmedBy())

	stored, err := f.assetRepo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, "biz-1", stored.BusinessID())

	_, err = f.pendingRepo.GetByID(ctx, a.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestConfirm_ReplayReturnsNotFound(t *testing.T) {
	f := newConfirmationFixture(t)
	ctx := context.Background()
	seedCandidate(t, f.pendingRepo, "PND-1")

	input := ConfirmInput{PendingAssetID: "PND-1", BusinessID: "biz-1", BusinessName: "Core Platform"}

	_, err := f.svc.Confirm(ctx, input)
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, input)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestConfirm_BusinessNameResolution(t *testing.T) {
	tests := []struct {
		name       string
		suggest    bool
		businessID string
		inputName  string
		wantName   string
	}{
		{"explicit name wins", true, "biz-pay", "Payments EMEA", "Payments EMEA"},
		{"suggestion used when ids match", true, "biz-sug", "", "Suggested Name"},
		{"rules resolve the id", false, "biz-pay", "", "Payments"},
		{"id is the last resort", false, "biz-opaque", "", "biz-opaque"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newConfirmationFixture(t)
			ctx := context.Background()
			if tt.suggest {
				seedSuggestedCandidate(t, f.pendingRepo, "PND-1", "biz-sug", "Suggested Name", "test")
			} else {
				seedCandidate(t, f.pendingRepo, "PND-1")
			}

			a, err := f.svc.Confirm(ctx, ConfirmInput{
				PendingAssetID: "PND-1",
				BusinessID:     tt.businessID,
				BusinessName:   tt.inputName,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, a.BusinessName())
		})
	}
}

func TestConfirm_DefaultsConfirmedBy(t *testing.T) {
	f := newConfirmationFixture(t)
	seedCandidate(t, f.pendingRepo, "PND-1")

	a, err := f.svc.Confirm(context.Background(), ConfirmInput{
		PendingAssetID: "PND-1",
		BusinessID:     "biz-1",
		BusinessName:   "Core Platform",
	})
	require.NoError(t, err)
	assert.Equal(t, "system", a.ConfirmedBy())
}

func TestIgnore_IsTerminal(t *testing.T) {
	f := newConfirmationFixture(t)
	ctx := context.Background()
	seedCandidate(t, f.pendingRepo, "PND-1")

	require.NoError(t, f.svc.Ignore(ctx, "PND-1"))

	// Replay gets NotFound, and the candidate never reached the inventory.
	assert.ErrorIs(t, f.svc.Ignore(ctx, "PND-1"), shared.ErrNotFound)

	_, err := f.assetRepo.GetByID(ctx, shared.MustIDFromString("PND-1"))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestConfirmAll_BestEffort(t *testing.T) {
	f := newConfirmationFixture(t)
	ctx := context.Background()

	seedSuggestedCandidate(t, f.pendingRepo, "PND-1", "biz-pay", "Payments", "payment subnet")
	seedSuggestedCandidate(t, f.pendingRepo, "PND-2", "biz-pay", "Payments", "payment subnet")

	// Without a recommendation the candidate is left alone.
	seedCandidate(t, f.pendingRepo, "PND-3")

	// Occupy PND-2's id in the inventory so its promotion fails.
	blocker, err := asset.NewAsset(shared.MustIDFromString("PND-2"), "squatter", asset.AssetTypeHost, asset.DiscoveryManual)
	require.NoError(t, err)
	require.NoError(t, f.assetRepo.Create(ctx, blocker))

	result, err := f.svc.ConfirmAll(ctx, ConfirmAllInput{ConfirmedBy: "ops"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Confirmed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 2)

	for _, item := range result.Items {
		switch item.PendingAssetID {
		case "PND-1":
			assert.True(t, item.Confirmed)
			assert.Equal(t, "biz-pay", item.BusinessID)
		case "PND-2":
			assert.False(t, item.Confirmed)
			assert.NotEmpty(t, item.Error)
		default:
			t.Fatalf("unexpected item %s", item.PendingAssetID)
		}
	}

	// The unrecommended candidate is untouched; the failed one stays pending.
	_, err = f.pendingRepo.GetByID(ctx, shared.MustIDFromString("PND-3"))
	assert.NoError(t, err)
	_, err = f.pendingRepo.GetByID(ctx, shared.MustIDFromString("PND-2"))
	assert.NoError(t, err)
}

func TestConfirmAll_FiltersBySuggestedBusiness(t *testing.T) {
	f := newConfirmationFixture(t)
	ctx := context.Background()

	seedSuggestedCandidate(t, f.pendingRepo, "PND-1", "biz-pay", "Payments", "payment subnet")
	seedSuggestedCandidate(t, f.pendingRepo, "PND-2", "biz-core", "Core Platform", "office network")

	result, err := f.svc.ConfirmAll(ctx, ConfirmAllInput{BusinessID: "biz-pay"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Confirmed)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "PND-1", result.Items[0].PendingAssetID)

	// The other business's candidate is still awaiting its own pass.
	_, err = f.pendingRepo.GetByID(ctx, shared.MustIDFromString("PND-2"))
	assert.NoError(t, err)
}
