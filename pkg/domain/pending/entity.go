// Package pending holds the auto-discovered candidate assets awaiting human
// confirmation of business ownership.
package pending

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/shared"
)

// EvidenceType represents the kind of observation backing a candidate asset.
type EvidenceType string

const (
	EvidenceLog            EvidenceType = "log"
	EvidenceNetworkTraffic EvidenceType = "network_traffic"
	EvidenceAPICall        EvidenceType = "api_call"
	EvidenceConfig         EvidenceType = "config"
)

// AllEvidenceTypes returns all valid evidence types.
func AllEvidenceTypes() []EvidenceType {
	return []EvidenceType{
		EvidenceLog,
		EvidenceNetworkTraffic,
		EvidenceAPICall,
		EvidenceConfig,
	}
}

// IsValid checks if the evidence type is valid.
func (t EvidenceType) IsValid() bool {
	return slices.Contains(AllEvidenceTypes(), t)
}

// String returns the string representation.
func (t EvidenceType) String() string {
	return string(t)
}

// ParseEvidenceType parses a string into an EvidenceType.
func ParseEvidenceType(s string) (EvidenceType, error) {
	t := EvidenceType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid evidence type: %s", s)
	}
	return t, nil
}

// Evidence is a single observation supporting the existence of a candidate.
type Evidence struct {
	Type      EvidenceType
	Content   string
	Timestamp time.Time
	Source    string
}

// PendingAsset is an auto-discovered asset awaiting confirmation. It carries
// the candidate's identity attributes plus the discovery-workflow fields; it
// stays unowned (no business) until confirmed, at which point it leaves this
// store for good.
type PendingAsset struct {
	id   shared.ID
	code string
	name string

	assetType    asset.AssetType
	status       asset.Status
	healthStatus asset.HealthStatus

	ip       string
	hostname string
	port     int
	version  string
	vendor   string

	discoveryMethod asset.DiscoveryMethod
	discoveryTime   time.Time
	discoverySource string

	confidence int
	evidences  []Evidence

	suggestedBusinessID   string
	suggestedBusinessName string
	reason                string
	recommended           bool

	createdAt time.Time
	updatedAt time.Time
}

// NewPendingAsset creates a new candidate asset.
// The id usually comes from the external discovery source; a zero id gets a
// generated one. Confidence is a 0-100 integer score.
func NewPendingAsset(id shared.ID, name string, assetType asset.AssetType, method asset.DiscoveryMethod, confidence int) (*PendingAsset, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	if !assetType.IsValid() {
		return nil, fmt.Errorf("%w: invalid asset type", shared.ErrValidation)
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: invalid discovery method", shared.ErrValidation)
	}
	if confidence < 0 || confidence > 100 {
		return nil, fmt.Errorf("%w: confidence must be between 0 and 100", shared.ErrValidation)
	}
	if id.IsZero() {
		id = shared.NewID()
	}

	now := time.Now().UTC()
	return &PendingAsset{
		id:              id,
		name:            name,
		assetType:       assetType,
		status:          asset.StatusUnknown,
		healthStatus:    asset.HealthUnknown,
		discoveryMethod: method,
		discoveryTime:   now,
		confidence:      confidence,
		evidences:       make([]Evidence, 0),
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Clone returns a deep copy of the candidate. Stores hand out clones so no
// two goroutines ever share a mutable entity.
func (p *PendingAsset) Clone() *PendingAsset {
	c := *p
	c.evidences = make([]Evidence, len(p.evidences))
	copy(c.evidences, p.evidences)
	return &c
}

// ID returns the pending asset ID.
func (p *PendingAsset) ID() shared.ID { return p.id }

// Code returns the secondary identifier.
func (p *PendingAsset) Code() string { return p.code }

// Name returns the candidate name.
func (p *PendingAsset) Name() string { return p.name }

// Type returns the asset type.
func (p *PendingAsset) Type() asset.AssetType { return p.assetType }

// Layer returns the architectural layer derived from the asset type.
func (p *PendingAsset) Layer() asset.Layer { return p.assetType.Layer() }

// ConfirmStatus always reports pending; candidates never carry ownership.
func (p *PendingAsset) ConfirmStatus() asset.ConfirmStatus { return asset.ConfirmStatusPending }

// Status returns the observed operational status.
func (p *PendingAsset) Status() asset.Status { return p.status }

// HealthStatus returns the observed health.
func (p *PendingAsset) HealthStatus() asset.HealthStatus { return p.healthStatus }

// IP returns the network address.
func (p *PendingAsset) IP() string { return p.ip }

// Hostname returns the hostname.
func (p *PendingAsset) Hostname() string { return p.hostname }

// Port returns the port, 0 if unset.
func (p *PendingAsset) Port() int { return p.port }

// Version returns the software version.
func (p *PendingAsset) Version() string { return p.version }

// Vendor returns the vendor.
func (p *PendingAsset) Vendor() string { return p.vendor }

// DiscoveryMethod returns how the candidate was discovered.
func (p *PendingAsset) DiscoveryMethod() asset.DiscoveryMethod { return p.discoveryMethod }

// DiscoveryTime returns when the candidate was discovered.
func (p *PendingAsset) DiscoveryTime() time.Time { return p.discoveryTime }

// DiscoverySource returns the discovery source.
func (p *PendingAsset) DiscoverySource() string { return p.discoverySource }

// Confidence returns the 0-100 discovery confidence score.
func (p *PendingAsset) Confidence() int { return p.confidence }

// Evidences returns a copy of the supporting evidence.
func (p *PendingAsset) Evidences() []Evidence {
	result := make([]Evidence, len(p.evidences))
	copy(result, p.evidences)
	return result
}

// SuggestedBusinessID returns the recommended owning business, empty if none.
func (p *PendingAsset) SuggestedBusinessID() string { return p.suggestedBusinessID }

// SuggestedBusinessName returns the recommended business name.
func (p *PendingAsset) SuggestedBusinessName() string { return p.suggestedBusinessName }

// Reason returns the human-readable recommendation justification.
func (p *PendingAsset) Reason() string { return p.reason }

// IsRecommended reports whether an attribution rule matched this candidate.
func (p *PendingAsset) IsRecommended() bool { return p.recommended }

// CreatedAt returns the creation timestamp.
func (p *PendingAsset) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last update timestamp.
func (p *PendingAsset) UpdatedAt() time.Time { return p.updatedAt }

// SetCode sets the secondary identifier.
func (p *PendingAsset) SetCode(code string) {
	p.code = code
	p.updatedAt = time.Now().UTC()
}

// SetNetwork sets the network identity attributes.
func (p *PendingAsset) SetNetwork(ip, hostname string, port int) {
	p.ip = ip
	p.hostname = hostname
	p.port = port
	p.updatedAt = time.Now().UTC()
}

// SetVersionInfo sets the version and vendor.
func (p *PendingAsset) SetVersionInfo(version, vendor string) {
	p.version = version
	p.vendor = vendor
	p.updatedAt = time.Now().UTC()
}

// SetObservedState records the status and health reported by the source.
func (p *PendingAsset) SetObservedState(status asset.Status, health asset.HealthStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: invalid status", shared.ErrValidation)
	}
	if !health.IsValid() {
		return fmt.Errorf("%w: invalid health status", shared.ErrValidation)
	}
	p.status = status
	p.healthStatus = health
	p.updatedAt = time.Now().UTC()
	return nil
}

// SetDiscoveryInfo sets the discovery provenance fields.
func (p *PendingAsset) SetDiscoveryInfo(discoveredAt time.Time, source string) {
	if !discoveredAt.IsZero() {
		p.discoveryTime = discoveredAt
	}
	p.discoverySource = source
	p.updatedAt = time.Now().UTC()
}

// AddEvidence appends a supporting observation.
func (p *PendingAsset) AddEvidence(e Evidence) error {
	if !e.Type.IsValid() {
		return fmt.Errorf("%w: invalid evidence type", shared.ErrValidation)
	}
	p.evidences = append(p.evidences, e)
	p.updatedAt = time.Now().UTC()
	return nil
}

// Suggest records the attribution recommender's advisory proposal.
// It never assigns ownership; only confirmation does that.
func (p *PendingAsset) Suggest(businessID, businessName, reason string) {
	p.suggestedBusinessID = businessID
	p.suggestedBusinessName = businessName
	p.reason = reason
	p.recommended = businessID != ""
	p.updatedAt = time.Now().UTC()
}

// ConfirmInto builds the confirmed Asset this candidate becomes. The asset
// keeps the candidate's id and core attributes (name, type, ip, port); the
// caller is responsible for the cross-store move.
func (p *PendingAsset) ConfirmInto(businessID, businessName, confirmedBy string) (*asset.Asset, error) {
	a, err := asset.NewAsset(p.id, p.name, p.assetType, p.discoveryMethod)
	if err != nil {
		return nil, err
	}
	a.SetCode(p.code)
	a.SetNetwork(p.ip, p.hostname, p.port)
	a.SetVersionInfo(p.version, p.vendor)
	if err := a.UpdateStatus(p.status); err != nil {
		return nil, err
	}
	if err := a.UpdateHealthStatus(p.healthStatus); err != nil {
		return nil, err
	}
	if err := a.SetDiscoveryInfo(p.discoveryMethod, p.discoveryTime, p.discoverySource); err != nil {
		return nil, err
	}
	if err := a.AssignBusiness(businessID, businessName, confirmedBy); err != nil {
		return nil, err
	}
	return a, nil
}
