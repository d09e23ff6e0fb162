// Package routes registers all HTTP routes for the API.
package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/assureops/api/internal/infra/http/handler"
)

// Handlers holds all HTTP handlers for route registration.
type Handlers struct {
	Health       *handler.HealthHandler
	Asset        *handler.AssetHandler
	PendingAsset *handler.PendingAssetHandler
	Ingest       *handler.IngestHandler
	Statistics   *handler.StatisticsHandler
}

// Register registers all application routes.
func Register(r chi.Router, h Handlers) {
	r.Get("/health", h.Health.Health)
	r.Get("/ready", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", h.Asset.ListAssets)
			r.Post("/", h.Asset.CreateAsset)

			r.Route("/{assetId}", func(r chi.Router) {
				r.Get("/", h.Asset.GetAsset)
				r.Patch("/", h.Asset.UpdateAsset)
				r.Delete("/", h.Asset.DeleteAsset)

				r.Route("/dependencies", func(r chi.Router) {
					r.Get("/", h.Asset.ListDependencies)
					r.Post("/", h.Asset.AddDependency)
					r.Delete("/{targetId}", h.Asset.RemoveDependency)
				})
			})
		})

		r.Route("/pending-assets", func(r chi.Router) {
			r.Get("/", h.PendingAsset.ListPendingAssets)
			r.Post("/confirm-all", h.PendingAsset.ConfirmAllPendingAssets)

			r.Route("/{pendingId}", func(r chi.Router) {
				r.Get("/", h.PendingAsset.GetPendingAsset)
				r.Post("/confirm", h.PendingAsset.ConfirmPendingAsset)
				r.Post("/ignore", h.PendingAsset.IgnorePendingAsset)
			})
		})

		r.Post("/ingest/candidates", h.Ingest.IngestCandidates)

		r.Get("/statistics", h.Statistics.GetStatistics)
	})
}
