package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/assureops/api/internal/metrics"
	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/shared"
	"github.com/assureops/api/pkg/logger"
)

// DependencyService is the sole writer of the dependency graph. It keeps the
// two edge lists symmetric: whenever source lists an edge to target, target's
// dependents index contains source, and only then.
type DependencyService struct {
	assetRepo asset.Repository
	logger    *logger.Logger

	// mu serializes every read-copy-write touching the edge lists: graph
	// mutations here, and asset field patches in AssetService, which would
	// otherwise write back a snapshot missing a concurrently added edge.
	mu sync.Mutex
}

// NewDependencyService creates a new DependencyService.
func NewDependencyService(assetRepo asset.Repository, log *logger.Logger) *DependencyService {
	return &DependencyService{
		assetRepo: assetRepo,
		logger:    log.With("service", "dependency"),
	}
}

// AddDependencyInput represents the input for adding a dependency edge.
type AddDependencyInput struct {
	SourceAssetID string `validate:"required"`
	TargetAssetID string `validate:"required"`
	Type          string `validate:"required,dependency_type"`
}

// RemoveDependencyInput represents the input for removing a dependency edge.
type RemoveDependencyInput struct {
	SourceAssetID string `validate:"required"`
	TargetAssetID string `validate:"required"`
	Type          string `validate:"required,dependency_type"`
}

// AddDependency adds a typed edge from source to target. Re-adding an
// identical edge is a no-op; the return value reports whether the graph
// changed. Self-edges are rejected with ErrInvalidEdge, edges referencing
// ids outside the live asset set with ErrUnknownAsset.
func (s *DependencyService) AddDependency(ctx context.Context, input AddDependencyInput) (bool, error) {
	sourceID, err := shared.IDFromString(input.SourceAssetID)
	if err != nil {
		return false, fmt.Errorf("%w: invalid source asset ID", shared.ErrValidation)
	}
	targetID, err := shared.IDFromString(input.TargetAssetID)
	if err != nil {
		return false, fmt.Errorf("%w: invalid target asset ID", shared.ErrValidation)
	}
	depType, err := asset.ParseDependencyType(input.Type)
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	if sourceID.Equals(targetID) {
		return false, asset.SelfDependencyError(sourceID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source, err := s.assetRepo.GetByID(ctx, sourceID)
	if err != nil {
		return false, asset.UnknownAssetError(sourceID)
	}
	target, err := s.assetRepo.GetByID(ctx, targetID)
	if err != nil {
		return false, asset.UnknownAssetError(targetID)
	}

	if source.HasDependencyOn(targetID, depType) {
		return false, nil
	}

	dep, err := asset.NewDependency(targetID, target.Name(), depType)
	if err != nil {
		return false, err
	}

	source.AppendDependency(dep)
	target.AddDependent(sourceID)

	// Both endpoints land in one write so a reader never sees the edge
	// without its reverse index entry.
	if err := s.assetRepo.UpdateMany(ctx, source, target); err != nil {
		return false, fmt.Errorf("failed to link assets: %w", err)
	}

	metrics.DependencyEdgesTotal.WithLabelValues("add", "ok").Inc()
	s.logger.Info("dependency added",
		"source", sourceID.String(), "target", targetID.String(), "type", depType.String())
	return true, nil
}

// RemoveDependency removes the edge identified by (source, target, type).
// The dependents index entry is dropped only when no edge of any type from
// source to target remains.
func (s *DependencyService) RemoveDependency(ctx context.Context, input RemoveDependencyInput) error {
	sourceID, err := shared.IDFromString(input.SourceAssetID)
	if err != nil {
		return fmt.Errorf("%w: invalid source asset ID", shared.ErrValidation)
	}
	targetID, err := shared.IDFromString(input.TargetAssetID)
	if err != nil {
		return fmt.Errorf("%w: invalid target asset ID", shared.ErrValidation)
	}
	depType, err := asset.ParseDependencyType(input.Type)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source, err := s.assetRepo.GetByID(ctx, sourceID)
	if err != nil {
		return err
	}

	if !source.RemoveDependencyOn(targetID, depType) {
		return fmt.Errorf("%w: no %s dependency from %s to %s",
			shared.ErrNotFound, depType.String(), sourceID.String(), targetID.String())
	}

	changed := []*asset.Asset{source}
	if !source.DependsOn(targetID) {
		target, err := s.assetRepo.GetByID(ctx, targetID)
		if err == nil {
			target.RemoveDependent(sourceID)
			changed = append(changed, target)
		}
	}
	if err := s.assetRepo.UpdateMany(ctx, changed...); err != nil {
		return fmt.Errorf("failed to unlink assets: %w", err)
	}

	metrics.DependencyEdgesTotal.WithLabelValues("remove", "ok").Inc()
	s.logger.Info("dependency removed",
		"source", sourceID.String(), "target", targetID.String(), "type", depType.String())
	return nil
}

// RemoveAsset deletes an asset and cascades the edge cleanup: every neighbor
// referencing it, in either direction, is scrubbed so no dangling edge or
// dependents entry survives.
func (s *DependencyService) RemoveAsset(ctx context.Context, id shared.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	changed := make([]*asset.Asset, 0, len(a.Dependencies())+len(a.Dependents())+1)

	// Scrub the dependents index of every asset this one points at.
	for _, dep := range a.Dependencies() {
		target, err := s.assetRepo.GetByID(ctx, dep.TargetAssetID())
		if err != nil {
			continue
		}
		if target.RemoveDependent(id) {
			changed = append(changed, target)
		}
	}

	// Drop every edge pointing at the deleted asset.
	for _, sourceID := range a.Dependents() {
		source, err := s.assetRepo.GetByID(ctx, sourceID)
		if err != nil {
			continue
		}
		if source.RemoveDependenciesTo(id) {
			changed = append(changed, source)
		}
	}

	// One atomic write isolates the departing asset along with its scrubbed
	// neighbors, so a reader between the scrub and the delete sees a fully
	// symmetric graph.
	a.Detach()
	changed = append(changed, a)
	if err := s.assetRepo.UpdateMany(ctx, changed...); err != nil {
		return fmt.Errorf("failed to scrub neighbor edges: %w", err)
	}

	if err := s.assetRepo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.DependencyEdgesTotal.WithLabelValues("cascade", "ok").Inc()
	s.logger.Info("asset removed with cascading edge cleanup", "id", id.String())
	return nil
}
