package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/offerlens/backend/config"
	httpDelivery "github.com/offerlens/backend/internal/delivery/http"
	"github.com/offerlens/backend/internal/domain"
	"github.com/offerlens/backend/internal/infrastructure/cache"
	"github.com/offerlens/backend/internal/infrastructure/source"
	"github.com/offerlens/backend/internal/usecase"
)

// sourceKind maps the validated config string onto the domain type
func sourceKind(kind string) domain.SourceKind {
	if kind == string(domain.SourceKindPermanent) {
		return domain.SourceKindPermanent
	}
	return domain.SourceKindMerchant
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting OfferLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Sources configured: %d", len(cfg.Sources.Tables))

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	specs := make([]source.Spec, len(cfg.Sources.Tables))
	for i, table := range cfg.Sources.Tables {
		specs[i] = source.Spec{
			Name: table.Name,
			URL:  table.URL,
			Kind: sourceKind(table.Kind),
		}
	}
	loader := source.NewClient(specs, memoryCache, cfg.Cache.TTL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		loader.SetDebug(true)
		log.Printf("Source client debug mode enabled")
	}

	// Initialize usecase layer
	boostRules := make([]usecase.BoostRule, len(cfg.Matching.BoostedKeywords))
	for i, rule := range cfg.Matching.BoostedKeywords {
		boostRules[i] = usecase.BoostRule{
			Keyword:           rule.Keyword,
			QueryDistance:     rule.QueryDistance,
			CandidateDistance: rule.CandidateDistance,
		}
	}

	catalog := usecase.NewCatalogService(loader, cfg.Aliases, usecase.CatalogServiceConfig{
		MinScoreThreshold:  cfg.Matching.MinScoreThreshold,
		MaxPerCategory:     cfg.Matching.MaxSuggestionsPerCategory,
		BoostRules:         boostRules,
		StrictVariantMatch: cfg.Matching.StrictVariantMatch,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})

	log.Printf("Matching: threshold=%.0f, cap=%d, strictVariant=%v, debug=%v",
		cfg.Matching.MinScoreThreshold,
		cfg.Matching.MaxSuggestionsPerCategory,
		cfg.Matching.StrictVariantMatch,
		cfg.Matching.EnableDebugLogging)

	// Initial load: best-effort, the server starts even if sources are
	// down and a later /reload can recover
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := catalog.Reload(ctx); err != nil {
		log.Printf("WARNING: initial load produced no data: %v", err)
	}
	cancel()
	log.Printf("Sources loaded: %d (failures: %d)", catalog.SourceCount(), len(catalog.LoadErrors()))

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalog)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
