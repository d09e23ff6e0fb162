package asset

import (
	"fmt"
	"slices"
	"strings"
)

// AssetType represents the type of an asset.
type AssetType string

const (
	AssetTypeHost        AssetType = "host"
	AssetTypeDatabase    AssetType = "database"
	AssetTypeMiddleware  AssetType = "middleware"
	AssetTypeApplication AssetType = "application"
	AssetTypeNetwork     AssetType = "network"
	AssetTypeStorage     AssetType = "storage"
	AssetTypeContainer   AssetType = "container"
)

// AllAssetTypes returns all valid asset types.
func AllAssetTypes() []AssetType {
	return []AssetType{
		AssetTypeHost,
		AssetTypeDatabase,
		AssetTypeMiddleware,
		AssetTypeApplication,
		AssetTypeNetwork,
		AssetTypeStorage,
		AssetTypeContainer,
	}
}

// IsValid checks if the asset type is valid.
func (t AssetType) IsValid() bool {
	return slices.Contains(AllAssetTypes(), t)
}

// String returns the string representation.
func (t AssetType) String() string {
	return string(t)
}

// Layer returns the architectural layer the asset type belongs to.
// The mapping is fixed: changing it is a compile-time-visible change here,
// not scattered through the statistics code.
func (t AssetType) Layer() Layer {
	switch t {
	case AssetTypeHost, AssetTypeNetwork, AssetTypeStorage, AssetTypeContainer:
		return LayerInfrastructure
	case AssetTypeDatabase, AssetTypeMiddleware:
		return LayerMiddleware
	case AssetTypeApplication:
		return LayerApplication
	default:
		return LayerInfrastructure
	}
}

// ParseAssetType parses a string into an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	t := AssetType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid asset type: %s", s)
	}
	return t, nil
}

// Layer represents the coarse architectural tier of an asset.
type Layer string

const (
	LayerInfrastructure Layer = "infrastructure"
	LayerMiddleware     Layer = "middleware"
	LayerApplication    Layer = "application"
)

// AllLayers returns all valid layers.
func AllLayers() []Layer {
	return []Layer{
		LayerInfrastructure,
		LayerMiddleware,
		LayerApplication,
	}
}

// IsValid checks if the layer is valid.
func (l Layer) IsValid() bool {
	return slices.Contains(AllLayers(), l)
}

// String returns the string representation.
func (l Layer) String() string {
	return string(l)
}

// ParseLayer parses a string into a Layer.
func ParseLayer(s string) (Layer, error) {
	l := Layer(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", fmt.Errorf("invalid layer: %s", s)
	}
	return l, nil
}

// Status represents the operational status of an asset.
type Status string

const (
	StatusOnline      Status = "online"
	StatusOffline     Status = "offline"
	StatusMaintenance Status = "maintenance"
	StatusUnknown     Status = "unknown"
)

// AllStatuses returns all valid statuses.
func AllStatuses() []Status {
	return []Status{
		StatusOnline,
		StatusOffline,
		StatusMaintenance,
		StatusUnknown,
	}
}

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	return slices.Contains(AllStatuses(), s)
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status.
func ParseStatus(str string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(str)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status: %s", str)
	}
	return s, nil
}

// HealthStatus represents the health of an asset.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
	HealthUnknown  HealthStatus = "unknown"
)

// AllHealthStatuses returns all valid health statuses.
func AllHealthStatuses() []HealthStatus {
	return []HealthStatus{
		HealthHealthy,
		HealthWarning,
		HealthCritical,
		HealthUnknown,
	}
}

// IsValid checks if the health status is valid.
func (h HealthStatus) IsValid() bool {
	return slices.Contains(AllHealthStatuses(), h)
}

// String returns the string representation.
func (h HealthStatus) String() string {
	return string(h)
}

// ParseHealthStatus parses a string into a HealthStatus.
func ParseHealthStatus(s string) (HealthStatus, error) {
	h := HealthStatus(strings.ToLower(strings.TrimSpace(s)))
	if !h.IsValid() {
		return "", fmt.Errorf("invalid health status: %s", s)
	}
	return h, nil
}

// ConfirmStatus represents where an asset stands in the ownership workflow.
type ConfirmStatus string

const (
	ConfirmStatusConfirmed      ConfirmStatus = "confirmed"
	ConfirmStatusPending        ConfirmStatus = "pending"
	ConfirmStatusAutoDiscovered ConfirmStatus = "auto_discovered"
)

// AllConfirmStatuses returns all valid confirm statuses.
func AllConfirmStatuses() []ConfirmStatus {
	return []ConfirmStatus{
		ConfirmStatusConfirmed,
		ConfirmStatusPending,
		ConfirmStatusAutoDiscovered,
	}
}

// IsValid checks if the confirm status is valid.
func (c ConfirmStatus) IsValid() bool {
	return slices.Contains(AllConfirmStatuses(), c)
}

// String returns the string representation.
func (c ConfirmStatus) String() string {
	return string(c)
}

// ParseConfirmStatus parses a string into a ConfirmStatus.
func ParseConfirmStatus(s string) (ConfirmStatus, error) {
	c := ConfirmStatus(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid confirm status: %s", s)
	}
	return c, nil
}

// DiscoveryMethod represents how an asset entered the inventory.
type DiscoveryMethod string

const (
	DiscoveryManual      DiscoveryMethod = "manual"
	DiscoveryImport      DiscoveryMethod = "import"
	DiscoveryLogAnalysis DiscoveryMethod = "log_analysis"
	DiscoveryCMDBSync    DiscoveryMethod = "cmdb_sync"
)

// AllDiscoveryMethods returns all valid discovery methods.
func AllDiscoveryMethods() []DiscoveryMethod {
	return []DiscoveryMethod{
		DiscoveryManual,
		DiscoveryImport,
		DiscoveryLogAnalysis,
		DiscoveryCMDBSync,
	}
}

// IsValid checks if the discovery method is valid.
func (d DiscoveryMethod) IsValid() bool {
	return slices.Contains(AllDiscoveryMethods(), d)
}

// String returns the string representation.
func (d DiscoveryMethod) String() string {
	return string(d)
}

// ParseDiscoveryMethod parses a string into a DiscoveryMethod.
func ParseDiscoveryMethod(s string) (DiscoveryMethod, error) {
	d := DiscoveryMethod(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid discovery method: %s", s)
	}
	return d, nil
}

// DependencyType represents the type of a dependency edge between assets.
type DependencyType string

const (
	DependencyDeploy  DependencyType = "deploy"
	DependencyConnect DependencyType = "connect"
	DependencyData    DependencyType = "data"
	DependencyService DependencyType = "service"
)

// AllDependencyTypes returns all valid dependency types.
func AllDependencyTypes() []DependencyType {
	return []DependencyType{
		DependencyDeploy,
		DependencyConnect,
		DependencyData,
		DependencyService,
	}
}

// IsValid checks if the dependency type is valid.
func (t DependencyType) IsValid() bool {
	return slices.Contains(AllDependencyTypes(), t)
}

// String returns the string representation.
func (t DependencyType) String() string {
	return string(t)
}

// ParseDependencyType parses a string into a DependencyType.
func ParseDependencyType(s string) (DependencyType, error) {
	t := DependencyType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid dependency type: %s", s)
	}
	return t, nil
}

// Metrics holds optional operational metrics reported for an asset.
type Metrics struct {
	CPUUsage       float64 // percent
	MemoryUsage    float64 // percent
	DiskUsage      float64 // percent
	ResponseTimeMS int
}
