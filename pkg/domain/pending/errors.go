package pending

import (
	"fmt"

	"github.com/assureops/api/pkg/domain/shared"
)

// Domain-specific errors for pending assets.
var (
	ErrPendingAssetNotFound      = fmt.Errorf("pending asset %w", shared.ErrNotFound)
	ErrPendingAssetAlreadyExists = fmt.Errorf("pending asset %w", shared.ErrAlreadyExists)
)

// NotFoundError creates a pending asset not found error with the ID.
func NotFoundError(id shared.ID) error {
	return fmt.Errorf("%w: id=%s", ErrPendingAssetNotFound, id.String())
}

// AlreadyExistsError creates a pending asset already exists error.
func AlreadyExistsError(id shared.ID) error {
	return fmt.Errorf("%w: id=%s", ErrPendingAssetAlreadyExists, id.String())
}
