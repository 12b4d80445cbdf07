package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/biostack-io/biostack-engine/pkg/config"
	"github.com/biostack-io/biostack-engine/pkg/dataset"
	"github.com/biostack-io/biostack-engine/pkg/handlers"
	"github.com/biostack-io/biostack-engine/pkg/middleware"
	"github.com/biostack-io/biostack-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("data_dir", cfg.DataDir))

	// Load the static dataset once; it is immutable for the process lifetime.
	data, err := dataset.Load(cfg.DataDir)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}
	logger.Info("Dataset loaded",
		zap.Int("categories", len(data.Categories())),
		zap.Int("entries", len(data.Entries())),
		zap.Int("rules", len(data.Rules())))

	compatibilityService := services.NewCompatibilityService(data, logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewCatalogHandler(data, logger).RegisterRoutes(mux)
	handlers.NewCompatibilityHandler(compatibilityService, logger).RegisterRoutes(mux)
	handlers.NewDisclaimersHandler(logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting biostack-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a development logger for local runs and a production
// logger otherwise.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
