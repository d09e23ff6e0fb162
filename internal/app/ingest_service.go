package app

import (
	"context"
	"fmt"
	"time"

	"github.com/assureops/api/internal/metrics"
	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/attribution"
	"github.com/assureops/api/pkg/domain/pending"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/logger"
	"github.com/assureops/api/pkg/pagination"
)

// IngestService accepts discovery candidates from external sources, runs them
// through the attribution recommender, and files them in the pending store.
type IngestService struct {
	assetRepo   asset.Repository
	pendingRepo pending.Repository
	recommender *attribution.Recommender
	logger      *logger.Logger
}

// NewIngestService creates a new IngestService.
func NewIngestService(
	assetRepo asset.Repository,
	pendingRepo pending.Repository,
	recommender *attribution.Recommender,
	log *logger.Logger,
) *IngestService {
	return &IngestService{
		assetRepo:   assetRepo,
		pendingRepo: pendingRepo,
		recommender: recommender,
		logger:      log.With("service", "ingest"),
	}
}

// EvidenceInput carries one observation backing a candidate.
type EvidenceInput struct {
	Type      string    `json:"type" validate:"required,evidence_type"`
	Content   string    `json:"content" validate:"required,max=2000"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source" validate:"max=255"`
}

// CandidateInput represents one discovery candidate.
type CandidateInput struct {
	ID              string          `json:"id"`
	Code            string          `json:"code" validate:"max=100"`
	Name            string          `json:"name" validate:"required,max=255"`
	Type            string          `json:"type" validate:"required,asset_type"`
	IP              string          `json:"ip" validate:"omitempty,ip"`
	Hostname        string          `json:"hostname" validate:"max=255"`
	Port            int             `json:"port" validate:"min=0,max=65535"`
	Version         string          `json:"version" validate:"max=100"`
	Vendor          string          `json:"vendor" validate:"max=100"`
	Status          string          `json:"status" validate:"omitempty,asset_status"`
	HealthStatus    string          `json:"health_status" validate:"omitempty,health_status"`
	DiscoveryMethod string          `json:"discovery_method" validate:"required,discovery_method"`
	DiscoveredAt    time.Time       `json:"discovered_at"`
	Confidence      int             `json:"confidence" validate:"min=0,max=100"`
	Evidences       []EvidenceInput `json:"evidences" validate:"omitempty,max=50,dive"`
}

// IngestInput represents a batch of candidates from one discovery source.
type IngestInput struct {
	Source     string           `json:"source" validate:"required,max=255"`
	Candidates []CandidateInput `json:"candidates" validate:"required,min=1,max=1000,dive"`
}

// IngestItemResult reports the outcome for one candidate.
type IngestItemResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Outcome     string `json:"outcome"` // accepted, skipped, rejected
	Recommended bool   `json:"recommended"`
	Error       string `json:"error,omitempty"`
}

// IngestResult summarizes a processed batch.
type IngestResult struct {
	Accepted int                `json:"accepted"`
	Skipped  int                `json:"skipped"`
	Rejected int                `json:"rejected"`
	Items    []IngestItemResult `json:"items"`
}

// Ingest processes a candidate batch. Candidates whose id already exists in
// either store are skipped, not errors; a malformed candidate is rejected
// without failing the rest of the batch.
func (s *IngestService) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	s.logger.Info("ingesting candidates", "source", input.Source, "count", len(input.Candidates))

	result := &IngestResult{
		Items: make([]IngestItemResult, 0, len(input.Candidates)),
	}

	for _, c := range input.Candidates {
		item := s.ingestOne(ctx, input.Source, c)
		switch item.Outcome {
		case "accepted":
			result.Accepted++
		case "skipped":
			result.Skipped++
		default:
			result.Rejected++
		}
		metrics.CandidatesIngestedTotal.WithLabelValues(input.Source, item.Outcome).Inc()
		result.Items = append(result.Items, item)
	}

	s.logger.Info("ingest finished",
		"source", input.Source,
		"accepted", result.Accepted, "skipped", result.Skipped, "rejected", result.Rejected)
	return result, nil
}

func (s *IngestService) ingestOne(ctx context.Context, source string, c CandidateInput) IngestItemResult {
	item := IngestItemResult{ID: c.ID, Name: c.Name}

	p, err := s.buildCandidate(source, c)
	if err != nil {
		item.Outcome = "rejected"
		item.Error = err.Error()
		return item
	}
	item.ID = p.ID().String()

	// Dedup against both stores: a candidate already filed, or already
	// confirmed into the inventory, is not re-ingested.
	if _, err := s.pendingRepo.GetByID(ctx, p.ID()); err == nil {
		item.Outcome = "skipped"
		return item
	}
	if _, err := s.assetRepo.GetByID(ctx, p.ID()); err == nil {
		item.Outcome = "skipped"
		return item
	}

	if rec, ok := s.recommender.Recommend(p.IP()); ok {
		p.Suggest(rec.BusinessID, rec.BusinessName, rec.Reason)
		metrics.CandidatesRecommendedTotal.Inc()
		item.Recommended = true
	}

	if err := s.pendingRepo.Create(ctx, p); err != nil {
		if shared.IsAlreadyExists(err) {
			item.Outcome = "skipped"
			return item
		}
		item.Outcome = "rejected"
		item.Error = err.Error()
		return item
	}

	item.Outcome = "accepted"
	return item
}

func (s *IngestService) buildCandidate(source string, c CandidateInput) (*pending.PendingAsset, error) {
	assetType, err := asset.ParseAssetType(c.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	method, err := asset.ParseDiscoveryMethod(c.DiscoveryMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	var id shared.ID
	if c.ID != "" {
		id, err = shared.IDFromString(c.ID)
		if err != nil {
			return nil, err
		}
	}

	p, err := pending.NewPendingAsset(id, c.Name, assetType, method, c.Confidence)
	if err != nil {
		return nil, err
	}

	p.SetCode(c.Code)
	p.SetNetwork(c.IP, c.Hostname, c.Port)
	p.SetVersionInfo(c.Version, c.Vendor)
	p.SetDiscoveryInfo(c.DiscoveredAt, source)

	if c.Status != "" || c.HealthStatus != "" {
		status := asset.StatusUnknown
		if c.Status != "" {
			if status, err = asset.ParseStatus(c.Status); err != nil {
				return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
			}
		}
		health := asset.HealthUnknown
		if c.HealthStatus != "" {
			if health, err = asset.ParseHealthStatus(c.HealthStatus); err != nil {
				return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
			}
		}
		if err := p.SetObservedState(status, health); err != nil {
			return nil, err
		}
	}

	for _, ev := range c.Evidences {
		evType, err := pending.ParseEvidenceType(ev.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		ts := ev.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		evSource := ev.Source
		if evSource == "" {
			evSource = source
		}
		if err := p.AddEvidence(pending.Evidence{
			Type:      evType,
			Content:   ev.Content,
			Timestamp: ts,
			Source:    evSource,
		}); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// ListPendingInput represents filtering and pagination for listing candidates.
type ListPendingInput struct {
	SuggestedBusinessID string
	MinConfidence       *int
	Recommended         *bool
	Page                int
	PerPage             int
}

// ListPending retrieves pending assets with filtering and pagination.
func (s *IngestService) ListPending(ctx context.Context, input ListPendingInput) (pagination.Result[*pending.PendingAsset], error) {
	filter := pending.NewFilter()
	if input.SuggestedBusinessID != "" {
		filter = filter.WithSuggestedBusinessID(input.SuggestedBusinessID)
	}
	if input.MinConfidence != nil {
		filter = filter.WithMinConfidence(*input.MinConfidence)
	}
	if input.Recommended != nil {
		filter = filter.WithRecommended(*input.Recommended)
	}

	page := pagination.New(input.Page, input.PerPage)
	return s.pendingRepo.List(ctx, filter, page)
}

// GetPending retrieves a pending asset by ID.
func (s *IngestService) GetPending(ctx context.Context, pendingID string) (*pending.PendingAsset, error) {
	id, err := shared.IDFromString(pendingID)
	if err != nil {
		return nil, pending.ErrPendingAssetNotFound
	}
	return s.pendingRepo.GetByID(ctx, id)
}
