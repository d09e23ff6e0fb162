package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/assureops/api/internal/app"
	"github.com/assureops/api/internal/config"
	"github.com/assureops/api/internal/infra/http"
	"github.com/assureops/api/internal/infra/http/handler"
	"github.com/assureops/api/internal/infra/http/routes"
	"github.com/assureops/api/internal/infra/memory"
	"github.com/assureops/api/pkg/domain/attribution"
	"github.com/assureops/api/pkg/logger"
	"github.com/assureops/api/pkg/validator"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	// ==========================================================================
	// Configuration & Logger
	// ==========================================================================
	cfg, err := config.Load()
	if err != nil {
		log := logger.NewDefault()
		log.Error("failed to load configuration", "error", err)
		return 1
	}

	log := initLogger(cfg)
	log.Info("starting application", "app", cfg.App.Name, "env", cfg.App.Env, "version", version)

	// ==========================================================================
	// Repositories
	// ==========================================================================
	assetRepo := memory.NewAssetRepository()
	pendingRepo := memory.NewPendingRepository()
	log.Info("repositories initialized")

	// ==========================================================================
	// Attribution Rules
	// ==========================================================================
	rules, err := config.LoadAttributionRules(cfg.Attribution.RulesPath)
	if err != nil {
		log.Error("failed to load attribution rules", "error", err, "path", cfg.Attribution.RulesPath)
		return 1
	}

	recommender, err := attribution.NewRecommender(rules)
	if err != nil {
		log.Error("invalid attribution rules", "error", err)
		return 1
	}
	log.Info("attribution recommender initialized", "rules", len(rules))

	// ==========================================================================
	// Services
	// ==========================================================================
	graphSvc := app.NewDependencyService(assetRepo, log)
	assetSvc := app.NewAssetService(assetRepo, graphSvc, log)
	ingestSvc := app.NewIngestService(assetRepo, pendingRepo, recommender, log)
	confirmationSvc := app.NewConfirmationService(assetRepo, pendingRepo, recommender, log)
	statsSvc := app.NewStatisticsService(assetRepo, pendingRepo, log)
	log.Info("services initialized")

	// ==========================================================================
	// Handlers & HTTP Server
	// ==========================================================================
	v := validator.New()
	handlers := routes.Handlers{
		Health:       handler.NewHealthHandler(cfg.App.Name, version),
		Asset:        handler.NewAssetHandler(assetSvc, graphSvc, v, log),
		PendingAsset: handler.NewPendingAssetHandler(ingestSvc, confirmationSvc, v, log),
		Ingest:       handler.NewIngestHandler(ingestSvc, v, log),
		Statistics:   handler.NewStatisticsHandler(statsSvc, log),
	}

	server := http.NewServer(cfg, log)
	routes.Register(server.Router(), handlers)

	// ==========================================================================
	// Stats Refresher
	// ==========================================================================
	var scheduler *cron.Cron
	if cfg.Stats.Enabled {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Stats.Schedule, func() {
			if err := statsSvc.RefreshGauges(ctx); err != nil {
				log.Error("stats refresh failed", "error", err)
			}
		})
		if err != nil {
			log.Error("invalid stats schedule", "error", err, "schedule", cfg.Stats.Schedule)
			return 1
		}
		scheduler.Start()
		log.Info("stats refresher started", "schedule", cfg.Stats.Schedule)
	}

	// ==========================================================================
	// Start Server
	// ==========================================================================
	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", "error", err)
		}
	}()
	log.Info("application started", "http_addr", cfg.Server.Addr())

	// ==========================================================================
	// Graceful Shutdown
	// ==========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		<-scheduler.Stop().Done()
		log.Info("stats refresher stopped")
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
		return 1
	}

	log.Info("application stopped")
	return 0
}

func initLogger(cfg *config.Config) *logger.Logger {
	var log *logger.Logger
	if cfg.IsProduction() {
		log = logger.New(logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
		})
	} else {
		log = logger.NewDevelopment()
	}
	log.SetDefault()
	return log
}
