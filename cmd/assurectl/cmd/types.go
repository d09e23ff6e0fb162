package cmd

import "time"

// assetItem mirrors the API asset representation.
type assetItem struct {
	ID            string `json:"id" yaml:"id"`
	Code          string `json:"code,omitempty" yaml:"code,omitempty"`
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"`
	Layer         string `json:"layer" yaml:"layer"`
	ConfirmStatus string `json:"confirm_status" yaml:"confirm_status"`
	BusinessID    string `json:"business_id,omitempty" yaml:"business_id,omitempty"`
	BusinessName  string `json:"business_name,omitempty" yaml:"business_name,omitempty"`

	IP       string `json:"ip,omitempty" yaml:"ip,omitempty"`
	Hostname string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
	Vendor   string `json:"vendor,omitempty" yaml:"vendor,omitempty"`

	Status       string `json:"status" yaml:"status"`
	HealthStatus string `json:"health_status" yaml:"health_status"`

	DiscoveryMethod string    `json:"discovery_method" yaml:"discovery_method"`
	DiscoveryTime   time.Time `json:"discovery_time" yaml:"discovery_time"`
	DiscoverySource string    `json:"discovery_source,omitempty" yaml:"discovery_source,omitempty"`

	Dependencies []dependencyItem `json:"dependencies" yaml:"dependencies"`
	Dependents   []string         `json:"dependents" yaml:"dependents"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty" yaml:"confirmed_at,omitempty"`
	ConfirmedBy string     `json:"confirmed_by,omitempty" yaml:"confirmed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at"`
}

type dependencyItem struct {
	TargetAssetID   string `json:"target_asset_id" yaml:"target_asset_id"`
	TargetAssetName string `json:"target_asset_name" yaml:"target_asset_name"`
	Type            string `json:"type" yaml:"type"`
}

// pendingItem mirrors the API pending asset representation.
type pendingItem struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`

	IP       string `json:"ip,omitempty" yaml:"ip,omitempty"`
	Hostname string `json:"hostname,omitempty" yaml:"hostname,omitempty"`

	DiscoveryMethod string    `json:"discovery_method" yaml:"discovery_method"`
	DiscoveryTime   time.Time `json:"discovery_time" yaml:"discovery_time"`
	DiscoverySource string    `json:"discovery_source,omitempty" yaml:"discovery_source,omitempty"`

	Confidence int `json:"confidence" yaml:"confidence"`

	SuggestedBusinessID   string `json:"suggested_business_id,omitempty" yaml:"suggested_business_id,omitempty"`
	SuggestedBusinessName string `json:"suggested_business_name,omitempty" yaml:"suggested_business_name,omitempty"`
	Reason                string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Recommended           bool   `json:"recommended" yaml:"recommended"`
}

// listEnvelope mirrors the API paginated list response.
type listEnvelope[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// statisticsItem mirrors the API statistics response.
type statisticsItem struct {
	TotalAssets     int64                       `json:"total_assets" yaml:"total_assets"`
	PendingCount    int64                       `json:"pending_count" yaml:"pending_count"`
	ByType          map[string]int64            `json:"by_type" yaml:"by_type"`
	ByLayer         map[string]int64            `json:"by_layer" yaml:"by_layer"`
	ByStatus        map[string]int64            `json:"by_status" yaml:"by_status"`
	ByHealth        map[string]int64            `json:"by_health" yaml:"by_health"`
	ByConfirmStatus map[string]int64            `json:"by_confirm_status" yaml:"by_confirm_status"`
	ByBusiness      map[string]businessStatItem `json:"by_business" yaml:"by_business"`
	DependencyEdges int64                       `json:"dependency_edges" yaml:"dependency_edges"`
}

type businessStatItem struct {
	BusinessID   string `json:"business_id" yaml:"business_id"`
	BusinessName string `json:"business_name" yaml:"business_name"`
	AssetCount   int    `json:"asset_count" yaml:"asset_count"`
}

// confirmAllOutcome mirrors the API confirm-all response.
type confirmAllOutcome struct {
	Confirmed int `json:"confirmed" yaml:"confirmed"`
	Failed    int `json:"failed" yaml:"failed"`
	Items     []struct {
		PendingAssetID string `json:"pending_asset_id" yaml:"pending_asset_id"`
		Name           string `json:"name" yaml:"name"`
		BusinessID     string `json:"business_id,omitempty" yaml:"business_id,omitempty"`
		Confirmed      bool   `json:"confirmed" yaml:"confirmed"`
		Error          string `json:"error,omitempty" yaml:"error,omitempty"`
	} `json:"items" yaml:"items"`
}
