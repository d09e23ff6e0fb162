package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/assureops/api/internal/metrics"
	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/attribution"
	"github.com/assureops/api/pkg/domain/pending"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/logger"
)

// ConfirmationService moves candidates out of the pending store, either into
// the confirmed inventory or out of the system entirely. Both decisions are
// terminal: once a candidate is confirmed or ignored, a replay gets NotFound.
type ConfirmationService struct {
	assetRepo   asset.Repository
	pendingRepo pending.Repository
	recommender *attribution.Recommender
	logger      *logger.Logger

	// mu serializes decisions so two operators cannot both confirm the
	// same candidate, and a confirm-all cannot race a single confirm.
	mu sync.Mutex
}

// NewConfirmationService creates a new ConfirmationService.
func NewConfirmationService(
	assetRepo asset.Repository,
	pendingRepo pending.Repository,
	recommender *attribution.Recommender,
	log *logger.Logger,
) *ConfirmationService {
	return &ConfirmationService{
		assetRepo:   assetRepo,
		pendingRepo: pendingRepo,
		recommender: recommender,
		logger:      log.With("service", "confirmation"),
	}
}

// ConfirmInput represents the input for confirming a candidate.
type ConfirmInput struct {
	PendingAssetID string `json:"pending_asset_id" validate:"required"`
	BusinessID     string `json:"business_id" validate:"required,max=100"`
	BusinessName   string `json:"business_name" validate:"max=255"`
	ConfirmedBy    string `json:"confirmed_by" validate:"max=100"`
}

// ConfirmAllInput represents the input for confirming every recommended
// candidate in one pass. A non-empty BusinessID narrows the pass to
// candidates whose suggestion names that business.
type ConfirmAllInput struct {
	BusinessID  string `json:"business_id" validate:"max=100"`
	ConfirmedBy string `json:"confirmed_by" validate:"max=100"`
}

// ConfirmAllItem reports the outcome for one candidate in a confirm-all pass.
type ConfirmAllItem struct {
	PendingAssetID string `json:"pending_asset_id"`
	Name           string `json:"name"`
	BusinessID     string `json:"business_id,omitempty"`
	Confirmed      bool   `json:"confirmed"`
	Error          string `json:"error,omitempty"`
}

// ConfirmAllResult summarizes a confirm-all pass.
type ConfirmAllResult struct {
	Confirmed int              `json:"confirmed"`
	Failed    int              `json:"failed"`
	Items     []ConfirmAllItem `json:"items"`
}

// Confirm assigns the candidate to a business and promotes it into the
// confirmed inventory. The candidate leaves the pending store; the promoted
// asset keeps the candidate's id.
func (s *ConfirmationService) Confirm(ctx context.Context, input ConfirmInput) (*asset.Asset, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.confirmLocked(ctx, input)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.ConfirmationsTotal.WithLabelValues("confirm", result).Inc()
	metrics.ConfirmationDuration.Observe(time.Since(start).Seconds())
	return a, err
}

func (s *ConfirmationService) confirmLocked(ctx context.Context, input ConfirmInput) (*asset.Asset, error) {
	id, err := shared.IDFromString(input.PendingAssetID)
	if err != nil {
		return nil, pending.ErrPendingAssetNotFound
	}

	p, err := s.pendingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	businessName := s.resolveBusinessName(p, input.BusinessID, input.BusinessName)
	confirmedBy := input.ConfirmedBy
	if confirmedBy == "" {
		confirmedBy = "system"
	}

	a, err := p.ConfirmInto(input.BusinessID, businessName, confirmedBy)
	if err != nil {
		return nil, err
	}

	if err := s.assetRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to promote candidate: %w", err)
	}
	if err := s.pendingRepo.Delete(ctx, id); err != nil {
		// Roll the promotion back so the candidate is not in both stores.
		_ = s.assetRepo.Delete(ctx, a.ID())
		return nil, fmt.Errorf("failed to retire candidate: %w", err)
	}

	s.logger.Info("candidate confirmed",
		"id", id.String(), "business_id", input.BusinessID, "confirmed_by", confirmedBy)
	return a, nil
}

// resolveBusinessName resolves the display name for the confirmed business.
// Explicit input wins, then the candidate's suggestion when it refers to the
// same business, then the attribution rules, then the id itself.
func (s *ConfirmationService) resolveBusinessName(p *pending.PendingAsset, businessID, businessName string) string {
	if businessName != "" {
		return businessName
	}
	if p.SuggestedBusinessID() == businessID && p.SuggestedBusinessName() != "" {
		return p.SuggestedBusinessName()
	}
	if name, ok := s.recommender.BusinessName(businessID); ok {
		return name
	}
	return businessID
}

// Ignore discards a candidate. The decision is terminal; the candidate never
// reaches the confirmed inventory and a replay gets NotFound.
func (s *ConfirmationService) Ignore(ctx context.Context, pendingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := shared.IDFromString(pendingID)
	if err != nil {
		metrics.ConfirmationsTotal.WithLabelValues("ignore", "error").Inc()
		return pending.ErrPendingAssetNotFound
	}

	if _, err := s.pendingRepo.GetByID(ctx, id); err != nil {
		metrics.ConfirmationsTotal.WithLabelValues("ignore", "error").Inc()
		return err
	}
	if err := s.pendingRepo.Delete(ctx, id); err != nil {
		metrics.ConfirmationsTotal.WithLabelValues("ignore", "error").Inc()
		return err
	}

	metrics.ConfirmationsTotal.WithLabelValues("ignore", "ok").Inc()
	s.logger.Info("candidate ignored", "id", id.String())
	return nil
}

// ConfirmAll confirms every recommended candidate using its suggested
// business. The pass is best-effort: a failing candidate is reported in its
// item and the pass moves on, so a partial result is possible.
func (s *ConfirmationService) ConfirmAll(ctx context.Context, input ConfirmAllInput) (*ConfirmAllResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filter := pending.NewFilter().WithRecommended(true)
	if input.BusinessID != "" {
		filter = filter.WithSuggestedBusinessID(input.BusinessID)
	}

	candidates, err := s.pendingRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &ConfirmAllResult{
		Items: make([]ConfirmAllItem, 0, len(candidates)),
	}

	for _, p := range candidates {
		item := ConfirmAllItem{
			PendingAssetID: p.ID().String(),
			Name:           p.Name(),
			BusinessID:     p.SuggestedBusinessID(),
		}

		_, err := s.confirmLocked(ctx, ConfirmInput{
			PendingAssetID: p.ID().String(),
			BusinessID:     p.SuggestedBusinessID(),
			BusinessName:   p.SuggestedBusinessName(),
			ConfirmedBy:    input.ConfirmedBy,
		})
		if err != nil {
			item.Error = err.Error()
			result.Failed++
			metrics.ConfirmationsTotal.WithLabelValues("confirm", "error").Inc()
		} else {
			item.Confirmed = true
			result.Confirmed++
			metrics.ConfirmationsTotal.WithLabelValues("confirm", "ok").Inc()
		}
		result.Items = append(result.Items, item)
	}

	s.logger.Info("confirm-all finished", "confirmed", result.Confirmed, "failed", result.Failed)
	return result, nil
}
