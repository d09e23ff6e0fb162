package asset

import (
	"fmt"

	"github.com/assureops/api/pkg/domain/shared"
)

// Dependency represents a typed directed edge from an asset to another asset
// it relies on. The reverse index (each target's dependents list) is derived
// data owned by the graph maintainer, never authored directly.
type Dependency struct {
	targetAssetID   shared.ID
	targetAssetName string
	dependencyType  DependencyType
}

// NewDependency creates a new dependency edge with validation.
func NewDependency(targetAssetID shared.ID, targetAssetName string, depType DependencyType) (Dependency, error) {
	if targetAssetID.IsZero() {
		return Dependency{}, fmt.Errorf("%w: target asset ID is required", shared.ErrValidation)
	}
	if !depType.IsValid() {
		return Dependency{}, fmt.Errorf("%w: invalid dependency type", shared.ErrValidation)
	}
	return Dependency{
		targetAssetID:   targetAssetID,
		targetAssetName: targetAssetName,
		dependencyType:  depType,
	}, nil
}

// TargetAssetID returns the target asset ID.
func (d Dependency) TargetAssetID() shared.ID { return d.targetAssetID }

// TargetAssetName returns the target asset name recorded on the edge.
func (d Dependency) TargetAssetName() string { return d.targetAssetName }

// Type returns the dependency type.
func (d Dependency) Type() DependencyType { return d.dependencyType }

// SameEdge reports whether the edge has the given target and type.
// Edge identity is (source, target, type); source is implied by the owner.
func (d Dependency) SameEdge(targetAssetID shared.ID, depType DependencyType) bool {
	return d.targetAssetID.Equals(targetAssetID) && d.dependencyType == depType
}
