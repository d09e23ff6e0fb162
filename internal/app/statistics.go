package app

import (
	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/pending"
)

// BusinessStats aggregates one business's slice of the inventory.
type BusinessStats struct {
	BusinessID   string `json:"business_id"`
	BusinessName string `json:"business_name"`
	AssetCount   int    `json:"asset_count"`
}

// Statistics is a point-in-time aggregation over the inventory. The breakdown
// maps are dense: every enum value appears, zero or not, so dashboard series
// never gain or lose keys between snapshots.
type Statistics struct {
	TotalAssets     int64                         `json:"total_assets"`
	PendingCount    int64                         `json:"pending_count"`
	ByType          map[asset.AssetType]int64     `json:"by_type"`
	ByLayer         map[asset.Layer]int64         `json:"by_layer"`
	ByStatus        map[asset.Status]int64        `json:"by_status"`
	ByHealth        map[asset.HealthStatus]int64  `json:"by_health"`
	ByConfirmStatus map[asset.ConfirmStatus]int64 `json:"by_confirm_status"`
	ByBusiness      map[string]BusinessStats      `json:"by_business"`
	DependencyEdges int64                         `json:"dependency_edges"`
}

// ComputeStatistics folds the current store contents into a Statistics value.
// It is a pure function of its inputs; callers pass consistent snapshots.
func ComputeStatistics(assets []*asset.Asset, candidates []*pending.PendingAsset) Statistics {
	stats := Statistics{
		TotalAssets:     int64(len(assets)),
		PendingCount:    int64(len(candidates)),
		ByType:          make(map[asset.AssetType]int64, len(asset.AllAssetTypes())),
		ByLayer:         make(map[asset.Layer]int64, len(asset.AllLayers())),
		ByStatus:        make(map[asset.Status]int64, len(asset.AllStatuses())),
		ByHealth:        make(map[asset.HealthStatus]int64, len(asset.AllHealthStatuses())),
		ByConfirmStatus: make(map[asset.ConfirmStatus]int64, len(asset.AllConfirmStatuses())),
		ByBusiness:      make(map[string]BusinessStats),
	}

	for _, t := range asset.AllAssetTypes() {
		stats.ByType[t] = 0
	}
	for _, l := range asset.AllLayers() {
		stats.ByLayer[l] = 0
	}
	for _, st := range asset.AllStatuses() {
		stats.ByStatus[st] = 0
	}
	for _, h := range asset.AllHealthStatuses() {
		stats.ByHealth[h] = 0
	}
	for _, c := range asset.AllConfirmStatuses() {
		stats.ByConfirmStatus[c] = 0
	}

	for _, a := range assets {
		stats.ByType[a.Type()]++
		stats.ByLayer[a.Layer()]++
		stats.ByStatus[a.Status()]++
		stats.ByHealth[a.HealthStatus()]++
		stats.ByConfirmStatus[a.ConfirmStatus()]++
		stats.DependencyEdges += int64(len(a.Dependencies()))

		if a.BusinessID() != "" {
			biz := stats.ByBusiness[a.BusinessID()]
			biz.BusinessID = a.BusinessID()
			biz.BusinessName = a.BusinessName()
			biz.AssetCount++
			stats.ByBusiness[a.BusinessID()] = biz
		}
	}

	return stats
}
