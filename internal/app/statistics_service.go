package app

import (
	"context"
	"time"

	"github.com/assureops/api/internal/metrics"
	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/pending"
	"github.com/assureops/api/pkg/logger"
)

// StatisticsService computes inventory statistics snapshots and keeps the
// exported gauges current.
type StatisticsService struct {
	assetRepo   asset.Repository
	pendingRepo pending.Repository
	logger      *logger.Logger
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(assetRepo asset.Repository, pendingRepo pending.Repository, log *logger.Logger) *StatisticsService {
	return &StatisticsService{
		assetRepo:   assetRepo,
		pendingRepo: pendingRepo,
		logger:      log.With("service", "statistics"),
	}
}

// Snapshot computes a point-in-time aggregation over both stores.
func (s *StatisticsService) Snapshot(ctx context.Context) (Statistics, error) {
	assets, err := s.assetRepo.ListAll(ctx, asset.NewFilter())
	if err != nil {
		return Statistics{}, err
	}
	candidates, err := s.pendingRepo.ListAll(ctx, pending.NewFilter())
	if err != nil {
		return Statistics{}, err
	}
	return ComputeStatistics(assets, candidates), nil
}

// RefreshGauges recomputes the snapshot and pushes it into the exported
// inventory gauges. Called by the cron refresher.
func (s *StatisticsService) RefreshGauges(ctx context.Context) error {
	start := time.Now()

	stats, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.Error("stats refresh failed", "error", err)
		return err
	}

	for layer, count := range stats.ByLayer {
		metrics.AssetsByLayer.WithLabelValues(layer.String()).Set(float64(count))
	}
	for t, count := range stats.ByType {
		metrics.AssetsByType.WithLabelValues(t.String()).Set(float64(count))
	}
	metrics.PendingAssets.Set(float64(stats.PendingCount))
	metrics.StatsRefreshLag.Set(0)

	s.logger.Debug("stats gauges refreshed",
		"total_assets", stats.TotalAssets,
		"pending", stats.PendingCount,
		"took", time.Since(start).String())
	return nil
}
