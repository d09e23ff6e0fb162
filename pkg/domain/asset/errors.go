package asset

import (
	"errors"
	"fmt"

	"github.com/assureops/api/pkg/domain/shared"
)

// Domain-specific errors for asset.
var (
	ErrAssetNotFound      = fmt.Errorf("asset %w", shared.ErrNotFound)
	ErrAssetAlreadyExists = fmt.Errorf("asset %w", shared.ErrAlreadyExists)

	// ErrUnknownAsset is returned when a dependency edge references an asset
	// id that does not resolve against the live asset set.
	ErrUnknownAsset = errors.New("unknown asset")

	// ErrInvalidEdge is returned for structurally invalid edges, e.g. an
	// asset declared to depend on itself.
	ErrInvalidEdge = errors.New("invalid dependency edge")
)

// NotFoundError creates an asset not found error with the ID.
func NotFoundError(assetID shared.ID) error {
	return fmt.Errorf("%w: id=%s", ErrAssetNotFound, assetID.String())
}

// AlreadyExistsError creates an asset already exists error with the ID.
func AlreadyExistsError(assetID shared.ID) error {
	return fmt.Errorf("%w: id=%s", ErrAssetAlreadyExists, assetID.String())
}

// UnknownAssetError creates an unknown asset error for an edge endpoint.
func UnknownAssetError(assetID shared.ID) error {
	return fmt.Errorf("%w: id=%s", ErrUnknownAsset, assetID.String())
}

// SelfDependencyError creates an invalid edge error for a self-dependency.
func SelfDependencyError(assetID shared.ID) error {
	return fmt.Errorf("%w: asset %s cannot depend on itself", ErrInvalidEdge, assetID.String())
}
