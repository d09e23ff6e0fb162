package asset

import (
	"fmt"
	"slices"
	"time"

	"github.com/assureops/api/pkg/domain/shared"
)

// Asset represents a managed infrastructure/middleware/application unit.
//
// Ownership invariant: businessID and businessName are either both set or
// both empty, and they are non-empty exactly when confirmStatus is CONFIRMED.
// All mutation of the relationship lists goes through the graph maintainer;
// dependents is derived data and never authored by callers.
type Asset struct {
	id   shared.ID
	code string
	name string

	assetType     AssetType
	confirmStatus ConfirmStatus
	businessID    string
	businessName  string

	ip       string
	hostname string
	port     int
	version  string
	vendor   string

	dependencies []Dependency
	dependents   []shared.ID

	status       Status
	healthStatus HealthStatus
	metrics      *Metrics

	discoveryMethod DiscoveryMethod
	discoveryTime   time.Time
	discoverySource string

	createdAt   time.Time
	updatedAt   time.Time
	confirmedAt *time.Time
	confirmedBy string
}

// NewAsset creates a new Asset entity.
// The asset starts unowned with status/health unknown; ownership is assigned
// via AssignBusiness.
func NewAsset(id shared.ID, name string, assetType AssetType, method DiscoveryMethod) (*Asset, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	if !assetType.IsValid() {
		return nil, fmt.Errorf("%w: invalid asset type", shared.ErrValidation)
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: invalid discovery method", shared.ErrValidation)
	}
	if id.IsZero() {
		id = shared.NewID()
	}

	now := time.Now().UTC()
	return &Asset{
		id:              id,
		name:            name,
		assetType:       assetType,
		confirmStatus:   ConfirmStatusAutoDiscovered,
		dependencies:    make([]Dependency, 0),
		dependents:      make([]shared.ID, 0),
		status:          StatusUnknown,
		healthStatus:    HealthUnknown,
		discoveryMethod: method,
		discoveryTime:   now,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Clone returns a deep copy of the asset. Stores hand out clones so no two
// goroutines ever share a mutable entity.
func (a *Asset) Clone() *Asset {
	c := *a
	c.dependencies = make([]Dependency, len(a.dependencies))
	copy(c.dependencies, a.dependencies)
	c.dependents = make([]shared.ID, len(a.dependents))
	copy(c.dependents, a.dependents)
	if a.metrics != nil {
		m := *a.metrics
		c.metrics = &m
	}
	if a.confirmedAt != nil {
		t := *a.confirmedAt
		c.confirmedAt = &t
	}
	return &c
}

// ID returns the asset ID.
func (a *Asset) ID() shared.ID { return a.id }

// Code returns the human-readable secondary identifier.
func (a *Asset) Code() string { return a.code }

// Name returns the asset name.
func (a *Asset) Name() string { return a.name }

// Type returns the asset type.
func (a *Asset) Type() AssetType { return a.assetType }

// Layer returns the architectural layer derived from the asset type.
func (a *Asset) Layer() Layer { return a.assetType.Layer() }

// ConfirmStatus returns the confirmation status.
func (a *Asset) ConfirmStatus() ConfirmStatus { return a.confirmStatus }

// BusinessID returns the owning business ID, empty if unowned.
func (a *Asset) BusinessID() string { return a.businessID }

// BusinessName returns the owning business name, empty if unowned.
func (a *Asset) BusinessName() string { return a.businessName }

// IP returns the network address.
func (a *Asset) IP() string { return a.ip }

// Hostname returns the hostname.
func (a *Asset) Hostname() string { return a.hostname }

// Port returns the port, 0 if unset.
func (a *Asset) Port() int { return a.port }

// Version returns the software version.
func (a *Asset) Version() string { return a.version }

// Vendor returns the vendor.
func (a *Asset) Vendor() string { return a.vendor }

// Status returns the operational status.
func (a *Asset) Status() Status { return a.status }

// HealthStatus returns the health status.
func (a *Asset) HealthStatus() HealthStatus { return a.healthStatus }

// Metrics returns the reported metrics, nil when none have been reported.
func (a *Asset) Metrics() *Metrics {
	if a.metrics == nil {
		return nil
	}
	m := *a.metrics
	return &m
}

// DiscoveryMethod returns how the asset was discovered.
func (a *Asset) DiscoveryMethod() DiscoveryMethod { return a.discoveryMethod }

// DiscoveryTime returns when the asset was discovered.
func (a *Asset) DiscoveryTime() time.Time { return a.discoveryTime }

// DiscoverySource returns the discovery source, empty if unknown.
func (a *Asset) DiscoverySource() string { return a.discoverySource }

// CreatedAt returns the creation timestamp.
func (a *Asset) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last update timestamp.
func (a *Asset) UpdatedAt() time.Time { return a.updatedAt }

// ConfirmedAt returns when the asset was confirmed, nil if never.
func (a *Asset) ConfirmedAt() *time.Time { return a.confirmedAt }

// ConfirmedBy returns the principal that confirmed the asset.
func (a *Asset) ConfirmedBy() string { return a.confirmedBy }

// Dependencies returns a copy of the dependency edges.
func (a *Asset) Dependencies() []Dependency {
	result := make([]Dependency, len(a.dependencies))
	copy(result, a.dependencies)
	return result
}

// Dependents returns a copy of the ids of assets depending on this asset.
func (a *Asset) Dependents() []shared.ID {
	result := make([]shared.ID, len(a.dependents))
	copy(result, a.dependents)
	return result
}

// AssignBusiness assigns the asset to a business and marks it confirmed.
// Both identifiers are required so the ownership invariant cannot be half-set.
func (a *Asset) AssignBusiness(businessID, businessName, confirmedBy string) error {
	if businessID == "" {
		return fmt.Errorf("%w: business ID is required", shared.ErrValidation)
	}
	if businessName == "" {
		return fmt.Errorf("%w: business name is required", shared.ErrValidation)
	}
	now := time.Now().UTC()
	a.businessID = businessID
	a.businessName = businessName
	a.confirmStatus = ConfirmStatusConfirmed
	a.confirmedAt = &now
	a.confirmedBy = confirmedBy
	a.updatedAt = now
	return nil
}

// UpdateName updates the asset name.
func (a *Asset) UpdateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	a.name = name
	a.updatedAt = time.Now().UTC()
	return nil
}

// SetCode sets the secondary identifier.
func (a *Asset) SetCode(code string) {
	a.code = code
	a.updatedAt = time.Now().UTC()
}

// SetNetwork sets the network identity attributes.
func (a *Asset) SetNetwork(ip, hostname string, port int) {
	a.ip = ip
	a.hostname = hostname
	a.port = port
	a.updatedAt = time.Now().UTC()
}

// SetVersionInfo sets the version and vendor.
func (a *Asset) SetVersionInfo(version, vendor string) {
	a.version = version
	a.vendor = vendor
	a.updatedAt = time.Now().UTC()
}

// UpdateStatus updates the operational status.
func (a *Asset) UpdateStatus(status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: invalid status", shared.ErrValidation)
	}
	a.status = status
	a.updatedAt = time.Now().UTC()
	return nil
}

// UpdateHealthStatus updates the health status.
func (a *Asset) UpdateHealthStatus(health HealthStatus) error {
	if !health.IsValid() {
		return fmt.Errorf("%w: invalid health status", shared.ErrValidation)
	}
	a.healthStatus = health
	a.updatedAt = time.Now().UTC()
	return nil
}

// SetMetrics records reported metrics.
func (a *Asset) SetMetrics(m Metrics) {
	a.metrics = &m
	a.updatedAt = time.Now().UTC()
}

// SetDiscoveryInfo sets the discovery provenance fields.
func (a *Asset) SetDiscoveryInfo(method DiscoveryMethod, discoveredAt time.Time, source string) error {
	if !method.IsValid() {
		return fmt.Errorf("%w: invalid discovery method", shared.ErrValidation)
	}
	a.discoveryMethod = method
	if !discoveredAt.IsZero() {
		a.discoveryTime = discoveredAt
	}
	a.discoverySource = source
	a.updatedAt = time.Now().UTC()
	return nil
}

// IsConfirmed returns true if the asset is confirmed to a business.
func (a *Asset) IsConfirmed() bool {
	return a.confirmStatus == ConfirmStatusConfirmed
}

// HasDependencyOn reports whether an identical edge already exists.
func (a *Asset) HasDependencyOn(targetAssetID shared.ID, depType DependencyType) bool {
	for _, d := range a.dependencies {
		if d.SameEdge(targetAssetID, depType) {
			return true
		}
	}
	return false
}

// AppendDependency appends a dependency edge. Re-adding an identical edge is
// a no-op; the return value reports whether the list changed. Self-edges are
// the maintainer's responsibility to reject before calling.
func (a *Asset) AppendDependency(d Dependency) bool {
	if a.HasDependencyOn(d.TargetAssetID(), d.Type()) {
		return false
	}
	a.dependencies = append(a.dependencies, d)
	a.updatedAt = time.Now().UTC()
	return true
}

// RemoveDependencyOn removes the edge to the given target with the given type.
func (a *Asset) RemoveDependencyOn(targetAssetID shared.ID, depType DependencyType) bool {
	for i, d := range a.dependencies {
		if d.SameEdge(targetAssetID, depType) {
			a.dependencies = append(a.dependencies[:i], a.dependencies[i+1:]...)
			a.updatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// RemoveDependenciesTo removes every edge pointing at the given target,
// regardless of type. Used for cascading cleanup when the target is deleted.
func (a *Asset) RemoveDependenciesTo(targetAssetID shared.ID) bool {
	kept := a.dependencies[:0]
	removed := false
	for _, d := range a.dependencies {
		if d.TargetAssetID().Equals(targetAssetID) {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	if removed {
		a.dependencies = kept
		a.updatedAt = time.Now().UTC()
	}
	return removed
}

// DependsOn reports whether any edge points at the given target.
func (a *Asset) DependsOn(targetAssetID shared.ID) bool {
	for _, d := range a.dependencies {
		if d.TargetAssetID().Equals(targetAssetID) {
			return true
		}
	}
	return false
}

// AddDependent records that the given asset depends on this one.
// Maintainer-owned reverse index; idempotent.
func (a *Asset) AddDependent(sourceAssetID shared.ID) bool {
	if slices.ContainsFunc(a.dependents, sourceAssetID.Equals) {
		return false
	}
	a.dependents = append(a.dependents, sourceAssetID)
	a.updatedAt = time.Now().UTC()
	return true
}

// RemoveDependent removes the given asset from the dependents index.
func (a *Asset) RemoveDependent(sourceAssetID shared.ID) bool {
	for i, id := range a.dependents {
		if id.Equals(sourceAssetID) {
			a.dependents = append(a.dependents[:i], a.dependents[i+1:]...)
			a.updatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// Detach drops every dependency edge and dependents entry. Used by the graph
// maintainer just before the asset leaves the inventory, so a concurrent
// reader never sees edges to an asset that is about to disappear.
func (a *Asset) Detach() {
	a.dependencies = make([]Dependency, 0)
	a.dependents = make([]shared.ID, 0)
	a.updatedAt = time.Now().UTC()
}

// HasDependent reports whether the given asset is in the dependents index.
func (a *Asset) HasDependent(sourceAssetID shared.ID) bool {
	return slices.ContainsFunc(a.dependents, sourceAssetID.Equals)
}
