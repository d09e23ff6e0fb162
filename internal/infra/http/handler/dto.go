package handler

import (
	"time"

	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/pending"
)

// AssetResponse represents an asset in API responses.
type AssetResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code,omitempty"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Layer         string `json:"layer"`
	ConfirmStatus string `json:"confirm_status"`
	BusinessID    string `json:"business_id,omitempty"`
	BusinessName  string `json:"business_name,omitempty"`

	IP       string `json:"ip,omitempty"`
	Hostname string `json:"hostname,omitempty"`
	Port     int    `json:"port,omitempty"`
	Version  string `json:"version,omitempty"`
	Vendor   string `json:"vendor,omitempty"`

	Status       string           `json:"status"`
	HealthStatus string           `json:"health_status"`
	Metrics      *MetricsResponse `json:"metrics,omitempty"`

	DiscoveryMethod string    `json:"discovery_method"`
	DiscoveryTime   time.Time `json:"discovery_time"`
	DiscoverySource string    `json:"discovery_source,omitempty"`

	Dependencies []DependencyResponse `json:"dependencies"`
	Dependents   []string             `json:"dependents"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	ConfirmedBy string     `json:"confirmed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DependencyResponse represents an outgoing dependency edge.
type DependencyResponse struct {
	TargetAssetID   string `json:"target_asset_id"`
	TargetAssetName string `json:"target_asset_name"`
	Type            string `json:"type"`
}

// MetricsResponse represents reported operational metrics.
type MetricsResponse struct {
	CPUUsage       float64 `json:"cpu_usage"`
	MemoryUsage    float64 `json:"memory_usage"`
	DiskUsage      float64 `json:"disk_usage"`
	ResponseTimeMS int     `json:"response_time_ms"`
}

// PendingAssetResponse represents a discovered candidate in API responses.
type PendingAssetResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code,omitempty"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Layer         string `json:"layer"`
	ConfirmStatus string `json:"confirm_status"`

	IP       string `json:"ip,omitempty"`
	Hostname string `json:"hostname,omitempty"`
	Port     int    `json:"port,omitempty"`
	Version  string `json:"version,omitempty"`
	Vendor   string `json:"vendor,omitempty"`

	Status       string `json:"status"`
	HealthStatus string `json:"health_status"`

	DiscoveryMethod string    `json:"discovery_method"`
	DiscoveryTime   time.Time `json:"discovery_time"`
	DiscoverySource string    `json:"discovery_source,omitempty"`

	Confidence int                `json:"confidence"`
	Evidences  []EvidenceResponse `json:"evidences"`

	SuggestedBusinessID   string `json:"suggested_business_id,omitempty"`
	SuggestedBusinessName string `json:"suggested_business_name,omitempty"`
	Reason                string `json:"reason,omitempty"`
	Recommended           bool   `json:"recommended"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EvidenceResponse represents a piece of discovery evidence.
type EvidenceResponse struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
}

func toAssetResponse(a *asset.Asset) AssetResponse {
	deps := a.Dependencies()
	depResponses := make([]DependencyResponse, len(deps))
	for i, d := range deps {
		depResponses[i] = DependencyResponse{
			TargetAssetID:   d.TargetAssetID().String(),
			TargetAssetName: d.TargetAssetName(),
			Type:            d.Type().String(),
		}
	}

	dependents := a.Dependents()
	dependentIDs := make([]string, len(dependents))
	for i, id := range dependents {
		dependentIDs[i] = id.String()
	}

	resp := AssetResponse{
		ID:              a.ID().String(),
		Code:            a.Code(),
		Name:            a.Name(),
		Type:            a.Type().String(),
		Layer:           a.Layer().String(),
		ConfirmStatus:   a.ConfirmStatus().String(),
		BusinessID:      a.BusinessID(),
		BusinessName:    a.BusinessName(),
		IP:              a.IP(),
		Hostname:        a.Hostname(),
		Port:            a.Port(),
		Version:         a.Version(),
		Vendor:          a.Vendor(),
		Status:          a.Status().String(),
		HealthStatus:    a.HealthStatus().String(),
		DiscoveryMethod: a.DiscoveryMethod().String(),
		DiscoveryTime:   a.DiscoveryTime(),
		DiscoverySource: a.DiscoverySource(),
		Dependencies:    depResponses,
		Dependents:      dependentIDs,
		ConfirmedAt:     a.ConfirmedAt(),
		ConfirmedBy:     a.ConfirmedBy(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}

	if m := a.Metrics(); m != nil {
		resp.Metrics = &MetricsResponse{
			CPUUsage:       m.CPUUsage,
			MemoryUsage:    m.MemoryUsage,
			DiskUsage:      m.DiskUsage,
			ResponseTimeMS: m.ResponseTimeMS,
		}
	}

	return resp
}

func toPendingAssetResponse(p *pending.PendingAsset) PendingAssetResponse {
	evidences := p.Evidences()
	evResponses := make([]EvidenceResponse, len(evidences))
	for i, e := range evidences {
		evResponses[i] = EvidenceResponse{
			Type:      e.Type.String(),
			Content:   e.Content,
			Timestamp: e.Timestamp,
			Source:    e.Source,
		}
	}

	return PendingAssetResponse{
		ID:                    p.ID().String(),
		Code:                  p.Code(),
		Name:                  p.Name(),
		Type:                  p.Type().String(),
		Layer:                 p.Layer().String(),
		ConfirmStatus:         p.ConfirmStatus().String(),
		IP:                    p.IP(),
		Hostname:              p.Hostname(),
		Port:                  p.Port(),
		Version:               p.Version(),
		Vendor:                p.Vendor(),
		Status:                p.Status().String(),
		HealthStatus:          p.HealthStatus().String(),
		DiscoveryMethod:       p.DiscoveryMethod().String(),
		DiscoveryTime:         p.DiscoveryTime(),
		DiscoverySource:       p.DiscoverySource(),
		Confidence:            p.Confidence(),
		Evidences:             evResponses,
		SuggestedBusinessID:   p.SuggestedBusinessID(),
		SuggestedBusinessName: p.SuggestedBusinessName(),
		Reason:                p.Reason(),
		Recommended:           p.IsRecommended(),
		CreatedAt:             p.CreatedAt(),
		UpdatedAt:             p.UpdatedAt(),
	}
}
